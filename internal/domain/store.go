package domain

import "context"

// Store is the contract over the durable, synchronous, string-keyed
// storage medium that holds every persistent collection as one whole
// serialized blob. Get returns ErrKeyNotFound when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Database defines lifecycle operations for the underlying storage
// backend. Each implementation owns its own migration files and
// strategy, keeping the backend swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
