package core

import "context"

// DefaultStorageKey is the slot holding the JSON-encoded collection.
// A future format change gets a new key; old slots are never migrated.
const DefaultStorageKey = "notes_app_notes_v1"

// Storage defines the contract for the persistence medium.
// It is a synchronous key-value store of opaque slots, so the core stays
// independent of where bytes end up (files, an embedded DB, memory).
type Storage interface {
	// Get returns the value held in key, or ErrSlotNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value held in key.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Lister is implemented by storages that can enumerate their slots.
type Lister interface {
	// Keys returns the slot keys matching a doublestar glob pattern, sorted.
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// Watchable is implemented by storages that can report external changes to a slot.
type Watchable interface {
	// Watch emits a signal each time key changes outside this process.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, key string) (<-chan struct{}, error)
}
