// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Provides TTL support with periodic janitor cleanup of expired items

package memory

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const janitorInterval = 10 * time.Minute

// MemoryCache implements the Cache interface using in-process storage.
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache instance.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: gocache.New(gocache.NoExpiration, janitorInterval),
	}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	value, ok := c.items.Get(key)
	if !ok {
		return nil, errors.New("key not found")
	}

	stored, ok := value.([]byte)
	if !ok {
		return nil, errors.New("key not found")
	}

	// Return a copy so callers cannot mutate the cached bytes.
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a value in the cache with the given TTL. A zero TTL stores the
// value without expiration.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	expiration := ttl
	if ttl == 0 {
		expiration = gocache.NoExpiration
	}

	c.items.Set(key, stored, expiration)
	return nil
}

// Delete removes a key from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	c.items.Delete(key)
	return nil
}
