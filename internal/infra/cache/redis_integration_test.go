package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.Run(ctx, "redis:7-alpine",
		testcontainers.WithExposedPorts("6379/tcp"),
		testcontainers.WithWaitStrategy(wait.ForListeningPort("6379/tcp")),
	)
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	return client
}

func TestRedisStateStore(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()
	store := NewStateStore(client)

	require.NoError(t, store.Save(ctx, "s1", time.Minute))

	ok, err := store.Consume(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Consume(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRateLimiter(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()

	limiter := &redisRateLimiter{
		client:   client,
		settings: limiterSettings{capacity: 2, interval: time.Hour, ttl: 5 * time.Hour, prefix: "test"},
		now:      time.Now,
	}

	for range 2 {
		d, err := limiter.Allow(ctx, "ip:1")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}

	d, err := limiter.Allow(ctx, "ip:1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Greater(t, d.RetryAfter, time.Minute)
}
