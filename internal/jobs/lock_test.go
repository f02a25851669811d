package jobs

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisLock_AcquireAndRelease(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()

	lock := NewRedisLock(client, "lock:test")
	acquired, err := lock.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.True(t, lock.IsHeld())

	require.NoError(t, lock.Unlock(ctx))
	assert.False(t, lock.IsHeld())

	// Lock is free again after release.
	acquired, err = lock.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisLock_ContendedByAnotherInstance(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()

	first := NewRedisLock(client, "lock:contended")
	second := NewRedisLock(client, "lock:contended")

	acquired, err := first.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, acquired)

	acquired, err = second.TryLock(ctx)
	require.NoError(t, err)
	assert.False(t, acquired)

	// Releasing from the instance that does not hold the lock is a no-op.
	require.NoError(t, second.Unlock(ctx))
	held, err := client.Exists(ctx, "lock:contended").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), held)

	require.NoError(t, first.Unlock(ctx))
	acquired, err = second.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisLock_NilClientSingleInstanceMode(t *testing.T) {
	lock := NewRedisLock(nil, "lock:nil")
	acquired, err := lock.TryLock(context.Background())
	require.NoError(t, err)
	assert.True(t, acquired)
	require.NoError(t, lock.Unlock(context.Background()))
}
