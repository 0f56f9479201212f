// Package store defines the persistence contract for the application: a
// small key-value interface mirroring the browser localStorage the data
// model was designed around. Collections are stored as JSON documents under
// well-known keys; implementations live under internal/platform.
package store

import "context"

// Well-known storage keys. The layout matches the original localStorage
// scheme so exported snapshots stay human-inspectable.
const (
	KeyLearningWords = "learning-words"
	KeyCustomWords   = "custom-words"
	KeyStatistics    = "statistics"
	KeyTheme         = "theme"
)

// KV is the storage collaborator: a durable key-value byte store.
// Writes are synchronous and best-effort; callers treat failures as
// non-fatal and keep their in-memory state authoritative.
type KV interface {
	// Get retrieves the value stored under key.
	// Returns ErrKeyNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}

// Keys lists every key the application persists, in the order they are
// cleared by the wipe-all operation.
func Keys() []string {
	return []string{KeyLearningWords, KeyCustomWords, KeyStatistics, KeyTheme}
}
