// Package kv provides the small key-value store the client keeps its local
// state in. Keys are string paths joined with ':' for storage.
//
// Badger persists values on disk; Memory is used in tests.
package kv

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("kv: not found")

// Key is a hierarchical path represented as a slice of string segments.
// Key{"bible_favorites"} encodes to "bible_favorites" and
// Key{"cache", "study"} to "cache:study".
type Key []string

// String returns the encoded key.
func (k Key) String() string {
	return strings.Join(k, ":")
}

func (k Key) bytes() []byte {
	return []byte(k.String())
}

// Store is the interface for a key-value store with path-based keys.
type Store interface {
	// Get retrieves the value for a key. Returns ErrNotFound if not present.
	Get(ctx context.Context, key Key) ([]byte, error)

	// Set stores a key-value pair. Overwrites any existing value.
	Set(ctx context.Context, key Key, value []byte) error

	// Delete removes a key. No error if the key does not exist.
	Delete(ctx context.Context, key Key) error

	// Close releases any resources held by the store.
	Close() error
}
