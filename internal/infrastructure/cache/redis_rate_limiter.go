package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter implements RateLimiter using Redis. Suitable for
// distributed deployments where multiple instances must share counters.
type RedisRateLimiter struct {
	client    *redis.Client
	keyPrefix string
	cfg       RateLimiterConfig
}

// NewRedisRateLimiter creates a rate limiter backed by an existing Redis
// client shared with the rest of the application
func NewRedisRateLimiter(client *redis.Client, cfg RateLimiterConfig) (*RedisRateLimiter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisRateLimiter{
		client:    client,
		keyPrefix: "ratelimit:",
		cfg:       cfg,
	}, nil
}

// Allow increments the key's window counter and checks it against the limit.
// INCR and the NX expiry run in one pipeline, so the window TTL is set
// exactly once per window even under concurrent hits.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := l.keyPrefix + key

	pipe := l.client.Pipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.cfg.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to update rate limit counter: %w", err)
	}

	if count.Val() <= int64(l.cfg.Limit) {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl < 0 {
		ttl = l.cfg.Window
	}
	return false, ttl, nil
}

var _ RateLimiter = (*RedisRateLimiter)(nil)
