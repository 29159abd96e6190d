package interfaces

import (
	"context"
	"time"
)

// Cache defines the interface for the fetch-response cache. Fetchers use it
// to avoid re-downloading identical source bodies when runs overlap or are
// re-triggered shortly after one another.
// Implementations can be Redis, in-memory, or any other caching solution.
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns the cached data as []byte or an error if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
