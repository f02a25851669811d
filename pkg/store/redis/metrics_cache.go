package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"planpulse/internal/model"

	"github.com/go-redis/redis/v8"
)

const metricsKeyPrefix = "metrics:project:" // cached dashboard snapshot per project

// MetricsCache caches computed project metrics in Redis with a short TTL.
// The aggregation itself is cheap; the cache exists so dashboard polling
// doesn't hammer MySQL with task and entry scans.
type MetricsCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewMetricsCache creates a metrics cache
func NewMetricsCache(redisClient *RedisClient, ttl time.Duration) *MetricsCache {
	return &MetricsCache{
		redis: redisClient.GetClient(),
		ttl:   ttl,
	}
}

// Get retrieves a cached snapshot, nil on miss
func (c *MetricsCache) Get(ctx context.Context, projectID string) (*model.ProjectMetrics, error) {
	data, err := c.redis.Get(ctx, metricsKeyPrefix+projectID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached metrics: %w", err)
	}

	var m model.ProjectMetrics
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached metrics: %w", err)
	}
	return &m, nil
}

// Set stores a snapshot with the configured TTL
func (c *MetricsCache) Set(ctx context.Context, m *model.ProjectMetrics) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}
	if err := c.redis.Set(ctx, metricsKeyPrefix+m.ProjectID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache metrics: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot after a task or progress write
func (c *MetricsCache) Invalidate(ctx context.Context, projectID string) error {
	if err := c.redis.Del(ctx, metricsKeyPrefix+projectID).Err(); err != nil {
		return fmt.Errorf("failed to invalidate metrics: %w", err)
	}
	return nil
}
