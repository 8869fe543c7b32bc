package cache

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiterFactory creates rate limiters based on configuration
type RateLimiterFactory struct {
	client                *redis.Client
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// RateLimiterFactoryOption is a functional option for configuring the factory
type RateLimiterFactoryOption func(*RateLimiterFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) RateLimiterFactoryOption {
	return func(f *RateLimiterFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to local counters when
// Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) RateLimiterFactoryOption {
	return func(f *RateLimiterFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewRateLimiterFactory creates a new factory
func NewRateLimiterFactory(client *redis.Client, opts ...RateLimiterFactoryOption) *RateLimiterFactory {
	f := &RateLimiterFactory{
		client:                client,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Create returns a Redis-backed rate limiter, falling back to local counters
// when Redis is unreachable and fallback is allowed
func (f *RateLimiterFactory) Create(cfg RateLimiterConfig) (RateLimiter, error) {
	limiter, err := NewRedisRateLimiter(f.client, cfg)
	if err == nil {
		f.logger.Info("using Redis rate limiter",
			zap.Int("limit", cfg.Limit),
			zap.Duration("window", cfg.Window))
		return limiter, nil
	}

	if !f.allowInMemoryFallback {
		return nil, err
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory rate limiter",
		zap.Error(err))
	return NewInMemoryRateLimiter(cfg), nil
}
