// Package cache provides the key/value stores behind the metadata catalog.
//
// A [Store] maps a key to one whole JSON document. Writes replace the
// document; there is no expiry, so a present entry is trusted until the
// store is cleared. Four implementations are provided:
//
//   - [FileStore]: one file per key in a directory (CLI default)
//   - [MemoryStore]: process-local map, for tests and one-shot runs
//   - [RedisStore]: string keys under a prefix in Redis
//   - [MongoStore]: one document per key in a MongoDB collection
package cache

import (
	"context"
	"errors"
)

// Store is a durable key/value store for JSON documents.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the document stored under key. A missing key is reported
	// as ok=false with a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set replaces the document stored under key.
	Set(ctx context.Context, key string, data []byte) error

	// Clear removes every document. Clearing an empty store is not an error.
	Clear(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// Describer is implemented by stores that can name their backing location
// for display (a directory, a Redis prefix, a collection).
type Describer interface {
	Location() string
}

var (
	// ErrInvalidKey is returned for empty keys.
	ErrInvalidKey = errors.New("cache key must not be empty")

	// ErrNoDir is returned by NewFileStore for an empty directory.
	ErrNoDir = errors.New("cache directory must not be empty")
)

// Location returns a human-readable location for s, or its kind when the
// store does not describe itself.
func Location(s Store) string {
	if d, ok := s.(Describer); ok {
		return d.Location()
	}
	return "memory"
}
