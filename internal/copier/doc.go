// Package copier materializes a cross-scan diff into a target directory.
//
// Copies are flat: every file lands directly in the target folder regardless
// of where it came from, and a later file with the same name overwrites an
// earlier one. Missing sources are reported, never fatal; destination write
// failures stop the batch.
package copier
