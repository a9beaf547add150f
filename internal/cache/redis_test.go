package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitlementKey(t *testing.T) {
	assert.Equal(t, "studynotes:entitled:user-1", entitlementKey("user-1"))
}

func TestRedisEntitlements_MarkEntitledSkipsNonPositiveTTL(t *testing.T) {
	// A nil client would panic if MarkEntitled reached Redis.
	r := NewRedisEntitlements(nil)
	assert.NoError(t, r.MarkEntitled(context.Background(), "user-1", 0))
	assert.NoError(t, r.MarkEntitled(context.Background(), "user-1", -time.Second))
}

func TestNoop(t *testing.T) {
	var c EntitlementCache = Noop{}
	ok, err := c.Entitled(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.MarkEntitled(context.Background(), "user-1", time.Minute))
}

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisEntitlements) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, NewRedisEntitlements(client)
}

func TestRedisEntitlements_RoundTrip(t *testing.T) {
	srv, r := newMiniRedis(t)
	ctx := context.Background()

	ok, err := r.Entitled(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.MarkEntitled(ctx, "user-1", time.Minute))

	ok, err = r.Entitled(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, srv.TTL(entitlementKey("user-1")))

	ok, err = r.Entitled(ctx, "user-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisEntitlements_Expires(t *testing.T) {
	srv, r := newMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, r.MarkEntitled(ctx, "user-1", 30*time.Second))
	srv.FastForward(31 * time.Second)

	ok, err := r.Entitled(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisEntitlements_ServerDown(t *testing.T) {
	srv, r := newMiniRedis(t)
	srv.Close()

	_, err := r.Entitled(context.Background(), "user-1")
	assert.Error(t, err)
}
