package cache

import (
	"context"
	"time"
)

// RateLimiter throttles requests per key using a fixed window. The key is
// chosen by the caller (client IP for anonymous traffic, user ID for
// authenticated traffic).
type RateLimiter interface {
	// Allow records a hit for key and reports whether it is within the
	// window's limit. RetryAfter is how long the caller should wait before
	// the window resets; it is zero when the request is allowed.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// RateLimiterConfig holds the window parameters shared by all implementations
type RateLimiterConfig struct {
	Limit  int
	Window time.Duration
}

// DefaultRateLimiterConfig returns sensible defaults for API traffic
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Limit:  100,
		Window: time.Minute,
	}
}
