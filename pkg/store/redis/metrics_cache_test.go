package redis

import (
	"context"
	"testing"
	"time"

	"planpulse/internal/model"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*MetricsCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return &MetricsCache{redis: client, ttl: ttl}, mr
}

func TestMetricsCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	days := 12
	m := &model.ProjectMetrics{
		ProjectID:       "p-1",
		TotalTasks:      4,
		OverallProgress: 37.5,
		DaysRemaining:   &days,
		IsOnTrack:       true,
	}

	require.NoError(t, cache.Set(ctx, m))

	got, err := cache.Get(ctx, "p-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, m.OverallProgress, got.OverallProgress)
	require.NotNil(t, got.DaysRemaining)
	assert.Equal(t, 12, *got.DaysRemaining)
}

func TestMetricsCache_MissReturnsNil(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	got, err := cache.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMetricsCache_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &model.ProjectMetrics{ProjectID: "p-1"}))
	require.NoError(t, cache.Invalidate(ctx, "p-1"))

	got, err := cache.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMetricsCache_Expiry(t *testing.T) {
	cache, mr := newTestCache(t, time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &model.ProjectMetrics{ProjectID: "p-1"}))
	mr.FastForward(2 * time.Second)

	got, err := cache.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
