package cache

import "context"

// Store maps a request fingerprint to the raw payload retrieved for it.
// Entries never expire; they are removed only by Delete or Clear.
type Store interface {
	// Get returns the payload stored under key. Absence is not an error.
	Get(key string) ([]byte, bool)

	// Put stores payload under key, replacing any previous entry.
	// Storage failures are swallowed.
	Put(key string, payload []byte)
}

// Backend is a durable key/value store that keeps entries across restarts
type Backend interface {
	// Load returns the payload for key and whether it was found
	Load(ctx context.Context, key string) ([]byte, bool, error)

	// Save stores payload under key, overwriting any existing value
	Save(ctx context.Context, key string, payload []byte) error

	// Delete removes the given keys; missing keys are ignored
	Delete(ctx context.Context, keys []string) error

	// Clear removes every entry owned by the backend
	Clear(ctx context.Context) error

	// Count returns the number of stored entries
	Count(ctx context.Context) (int, error)

	// Name identifies the backend in logs and metrics
	Name() string

	Close() error
}
