package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "tlregion:cache:"

// Cache implements the search cache using Redis
type Cache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCache creates a new Redis cache
func NewCache(client *redis.Client, logger *zap.Logger) *Cache {
	return &Cache{
		client: client,
		logger: logger,
	}
}

// Get returns the cached value for key
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, getCacheKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cache entry: %w", err)
	}

	return data, true, nil
}

// Set stores value under key with TTL
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, getCacheKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}

	c.logger.Debug("cache entry saved",
		zap.String("key", key),
		zap.Duration("ttl", ttl))

	return nil
}

// Flush removes every entry written by this cache. Run at startup so results
// computed from an earlier version of the datasets are not served.
func (c *Cache) Flush(ctx context.Context) error {
	var cursor uint64

	for {
		batch, next, err := c.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}

		if len(batch) > 0 {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("failed to delete keys: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return nil
}

// getCacheKey returns the Redis key for a cache entry
func getCacheKey(key string) string {
	return keyPrefix + key
}
