package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedisLimiter connects to a local Redis instance and skips the test
// when none is available.
func setupRedisLimiter(t *testing.T) *RedisLimiter {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // test DB
	})

	limiter := NewRedisLimiter(client, "test:ratelimit:")

	if err := limiter.Ping(context.Background()); err != nil {
		t.Skipf("Redis server not available: %v", err)
	}

	t.Cleanup(func() {
		client.Close()
	})

	return limiter
}

func TestRedisLimiter_Allow(t *testing.T) {
	limiter := setupRedisLimiter(t)

	ctx := context.Background()
	key := "ip:127.0.0.1"
	defer limiter.Reset(ctx, key)

	allowed, info, err := limiter.Allow(ctx, key, 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "first request should always be allowed")
	assert.Equal(t, 5, info.Limit)
	assert.Equal(t, 4, info.Remaining)
}

func TestRedisLimiter_ExhaustsBucket(t *testing.T) {
	limiter := setupRedisLimiter(t)

	ctx := context.Background()
	key := "ip:10.1.1.1"
	defer limiter.Reset(ctx, key)

	limit := 3
	for i := 0; i < limit; i++ {
		allowed, _, err := limiter.Allow(ctx, key, limit, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, fmt.Sprintf("request %d should be allowed", i+1))
	}

	allowed, info, err := limiter.Allow(ctx, key, limit, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "request past the limit should be denied")
	assert.Equal(t, 0, info.Remaining)
}

func TestRedisLimiter_Reset(t *testing.T) {
	limiter := setupRedisLimiter(t)

	ctx := context.Background()
	key := "ip:10.2.2.2"

	for i := 0; i < 2; i++ {
		_, _, err := limiter.Allow(ctx, key, 2, time.Minute)
		require.NoError(t, err)
	}

	allowed, _, err := limiter.Allow(ctx, key, 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, key))

	allowed, _, err = limiter.Allow(ctx, key, 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "request after reset should be allowed")
}
