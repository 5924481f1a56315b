package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRedisLimiter(client, "chat", limit, time.Minute)
	fixed := time.Date(2026, 3, 1, 12, 0, 30, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }
	return limiter, mr
}

func TestRedisLimiterBlocksAfterLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed, "hit %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)

	other, err := limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other, "keys must be limited separately")
}

func TestRedisLimiterSetsExpiry(t *testing.T) {
	limiter, mr := newTestLimiter(t, 5)

	_, err := limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, time.Minute, mr.TTL(keys[0]))
}

func TestRedisLimiterNewWindowResets(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	require.True(t, allowed)

	next := limiter.now().Add(time.Minute)
	limiter.now = func() time.Time { return next }

	allowed, err = limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiterReportsOutage(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "ip")
	assert.Error(t, err)
}
