package service

import "errors"

// Common error types for application services.
var (
	// ErrWordAlreadyTracked indicates the word is already in the learning set.
	ErrWordAlreadyTracked = errors.New("word is already being learned")

	// ErrWordExists indicates the word already exists in the catalog or the
	// custom word collection.
	ErrWordExists = errors.New("word already exists")

	// ErrWordNotFound indicates the requested word is not in the learning set.
	// Mutating operations treat this as an informational no-op; read
	// operations surface it to the caller.
	ErrWordNotFound = errors.New("word not found")

	// ErrMalformedImport indicates an import payload is missing one of the
	// required collections. Nothing is merged.
	ErrMalformedImport = errors.New("import payload is missing required collections")
)
