package store

import "errors"

// Common store errors used across all implementations.
var (
	// ErrKeyNotFound is returned when a requested key does not exist in the
	// store.
	ErrKeyNotFound = errors.New("key not found")

	// ErrClosed is returned when an operation runs against a store that has
	// already been closed.
	ErrClosed = errors.New("store is closed")
)
