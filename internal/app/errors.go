package service

import "errors"

// Error constants.
var (
	// ErrExportDisabled is returned by Export when no export directory
	// was configured.
	ErrExportDisabled = errors.New("export directory not configured")
)
