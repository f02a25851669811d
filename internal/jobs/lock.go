package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"planpulse/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const lockTTL = 30 * time.Second

// unlockScript deletes the key only when this instance still owns it.
const unlockScript = `
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`

// RedisLock is a best-effort distributed lock keeping periodic jobs from
// running on every replica at once. Without a Redis client it degrades to
// single-instance mode and always grants the lock.
type RedisLock struct {
	client    *redis.Client
	lockKey   string
	lockValue string

	mu     sync.Mutex
	isHeld bool
}

// NewRedisLock creates a lock for the given key.
func NewRedisLock(client *redis.Client, lockKey string) *RedisLock {
	return &RedisLock{
		client:    client,
		lockKey:   lockKey,
		lockValue: uuid.NewString(),
	}
}

// TryLock attempts to acquire the lock without blocking.
func (l *RedisLock) TryLock(ctx context.Context) (bool, error) {
	if l.client == nil {
		logger.Warn("redis client is nil, skipping distributed lock (running in single-instance mode)")
		l.mu.Lock()
		l.isHeld = true
		l.mu.Unlock()
		return true, nil
	}

	acquired, err := l.client.SetNX(ctx, l.lockKey, l.lockValue, lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock %s: %w", l.lockKey, err)
	}

	l.mu.Lock()
	l.isHeld = acquired
	l.mu.Unlock()

	if !acquired {
		logger.DebugCtx(ctx, "lock %s already held by another instance", l.lockKey)
	}
	return acquired, nil
}

// Unlock releases the lock if this instance owns it.
func (l *RedisLock) Unlock(ctx context.Context) error {
	l.mu.Lock()
	held := l.isHeld
	l.isHeld = false
	l.mu.Unlock()

	if !held || l.client == nil {
		return nil
	}

	if _, err := l.client.Eval(ctx, unlockScript, []string{l.lockKey}, l.lockValue).Result(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.lockKey, err)
	}
	return nil
}

// IsHeld reports whether this instance currently holds the lock.
func (l *RedisLock) IsHeld() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isHeld
}
