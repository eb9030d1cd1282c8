package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/buildcore/backend/internal/domain/asset"
	"github.com/redis/go-redis/v9"
)

// RedisGenerationLock implements asset.GenerationLock using Redis SETNX.
// One key per period serializes depreciation runs across processes; the
// TTL bounds how long a crashed run can block the next attempt.
type RedisGenerationLock struct {
	client    *redis.Client
	keyPrefix string
}

// RedisGenerationLockConfig holds Redis connection settings for the lock
type RedisGenerationLockConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisGenerationLock creates a Redis-backed generation lock
func NewRedisGenerationLock(cfg RedisGenerationLockConfig) (*RedisGenerationLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis for generation lock: %w", err)
	}

	return NewRedisGenerationLockWithClient(client), nil
}

// NewRedisGenerationLockWithClient creates a generation lock with an existing Redis client
func NewRedisGenerationLockWithClient(client *redis.Client) *RedisGenerationLock {
	return &RedisGenerationLock{
		client:    client,
		keyPrefix: "depreciation:lock:",
	}
}

// periodKey returns the Redis key for a period's lock
func (l *RedisGenerationLock) periodKey(periodDate time.Time) string {
	return l.keyPrefix + asset.PeriodOf(periodDate).Format("2006-01")
}

// Acquire attempts to take the run lock for the period.
// Returns false when another run already holds it.
func (l *RedisGenerationLock) Acquire(ctx context.Context, periodDate time.Time, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.periodKey(periodDate), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire generation lock: %w", err)
	}
	return ok, nil
}

// Release frees the run lock for the period
func (l *RedisGenerationLock) Release(ctx context.Context, periodDate time.Time) error {
	if err := l.client.Del(ctx, l.periodKey(periodDate)).Err(); err != nil {
		return fmt.Errorf("failed to release generation lock: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (l *RedisGenerationLock) Close() error {
	return l.client.Close()
}

var _ asset.GenerationLock = (*RedisGenerationLock)(nil)
