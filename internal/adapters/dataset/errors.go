package dataset

import "errors"

// Sentinel kinds for dataset loading errors. These allow errors.Is/As
// from callers.
var (
	ErrFetch  = errors.New("dataset fetch failed")
	ErrRead   = errors.New("dataset read failed")
	ErrSchema = errors.New("unexpected dataset schema")
	ErrParse  = errors.New("dataset parse failed")
)
