package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetCacheKey(t *testing.T) {
	assert.Equal(t, "tlregion:cache:search:dili", getCacheKey("search:dili"))
}

// newTestCache connects to the Redis named by TEST_REDIS_ADDR
func newTestCache(t *testing.T) *Cache {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	c := NewCache(client, zap.NewNop())
	t.Cleanup(func() { _ = c.Flush(context.Background()) })
	return c
}

func TestRedisRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "search:nothing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "search:baucau", []byte(`[]`), time.Minute))
	got, ok, err := c.Get(ctx, "search:baucau")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, c.Flush(ctx))
	_, ok, err = c.Get(ctx, "search:baucau")
	require.NoError(t, err)
	assert.False(t, ok)
}
