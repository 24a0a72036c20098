package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrLoadFailed is returned when stored data exists but cannot be read
	// or decoded. A missing file or empty table is empty state, not this error.
	ErrLoadFailed = errors.New("failed to load stored data")

	// ErrSaveFailed is returned when a snapshot could not be written. The
	// previous stored state is left intact.
	ErrSaveFailed = errors.New("failed to save data")
)
