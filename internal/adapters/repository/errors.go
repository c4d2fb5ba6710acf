package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrEmptyStore   = errors.New("no snapshot published yet")
	ErrYearNotFound = errors.New("year not found")
)
