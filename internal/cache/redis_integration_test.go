package cache

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisIntegration(t *testing.T) {
	ctx := context.Background()
	r := setupRedis(t)

	fixed := time.Unix(1_700_000_000, 0)
	r.now = func() time.Time { return fixed }

	for i := 1; i <= 3; i++ {
		q, err := r.Allow(ctx, "user:u1", 3, time.Minute)
		require.NoError(t, err)
		require.True(t, q.Allowed)
		require.Equal(t, 3-i, q.Remaining)
	}
	q, err := r.Allow(ctx, "user:u1", 3, time.Minute)
	require.NoError(t, err)
	require.False(t, q.Allowed)
	require.Equal(t, 0, q.Remaining)
	require.True(t, q.Reset.After(fixed))

	other, err := r.Allow(ctx, "user:u2", 3, time.Minute)
	require.NoError(t, err)
	require.True(t, other.Allowed)

	claimed, err := r.ClaimEvent(ctx, "evt_1")
	require.NoError(t, err)
	require.True(t, claimed)

	claimed, err = r.ClaimEvent(ctx, "evt_1")
	require.NoError(t, err)
	require.False(t, claimed)

	require.NoError(t, r.ReleaseEvent(ctx, "evt_1"))
	claimed, err = r.ClaimEvent(ctx, "evt_1")
	require.NoError(t, err)
	require.True(t, claimed)
}

func setupRedis(t *testing.T) *Redis {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })

	client := redis.NewClient(&redis.Options{Addr: "localhost:" + resource.GetPort("6379/tcp")})
	require.NoError(t, pool.Retry(func() error {
		return client.Ping(context.Background()).Err()
	}))

	r := NewWithClient(zap.NewNop().Sugar(), client, time.Hour)
	t.Cleanup(func() { _ = r.Close() })
	return r
}
