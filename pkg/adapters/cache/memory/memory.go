package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache implements the search cache in process memory
type Cache struct {
	items *gocache.Cache
}

// NewCache creates an in-memory cache. Entries expire after defaultTTL unless
// Set is given its own TTL; expired entries are purged every cleanupInterval.
func NewCache(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		items: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the cached value for key
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := c.items.Get(key)
	if !ok {
		return nil, false, nil
	}
	data, ok := v.([]byte)
	if !ok {
		c.items.Delete(key)
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores value under key for ttl
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	// Copy so later writes to the caller's slice do not leak into the cache
	stored := make([]byte, len(value))
	copy(stored, value)
	c.items.Set(key, stored, ttl)
	return nil
}

// Len returns the number of entries, including expired ones not yet purged
func (c *Cache) Len() int {
	return c.items.ItemCount()
}
