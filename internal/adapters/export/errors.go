package export

import "errors"

// Sentinel kinds for export errors.
var (
	ErrCreateDir  = errors.New("create export directory failed")
	ErrWriteFile  = errors.New("write export file failed")
	ErrEmptyInput = errors.New("nothing to export")
)
