package series

import "errors"

// Sentinel error kinds for series validation. These allow errors.Is/As
// from callers.
var (
	ErrEmptySeries   = errors.New("empty funding series")
	ErrUnsortedYears = errors.New("years not in ascending order")
	ErrDuplicateYear = errors.New("duplicate year")
)
