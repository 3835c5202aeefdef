package catalog

import "errors"

var (
	// ErrScanExists is returned when a scan name has already been claimed.
	// Scan names are write-once; a conflicting start must leave no trace.
	ErrScanExists = errors.New("scan name already exists")

	// ErrScanNotFound is returned when an operation names an unknown scan.
	ErrScanNotFound = errors.New("scan not found")
)
