// Package store provides the key-value persistence layer for ponto.
// Keys are namespaced strings like "day:2026-02-27"; values are JSON blobs.
// Two backends are available: per-key JSON files and a single SQLite file.
package store

// Store is a synchronous key-value store. A missing key is a valid state
// reported via the boolean, never an error.
type Store interface {
	// Get returns the value for key, or (nil, false, nil) if absent.
	Get(key string) ([]byte, bool, error)
	// Set writes the value for key, creating or replacing it atomically.
	Set(key string, value []byte) error
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error
	// Keys lists all stored keys with the given prefix, sorted ascending.
	Keys(prefix string) ([]string, error)
	// Close releases backend resources.
	Close() error
}
