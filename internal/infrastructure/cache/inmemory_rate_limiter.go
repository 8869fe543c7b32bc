package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryRateLimiter implements RateLimiter with local counters. Suitable
// for single-instance deployments and tests; counters are not shared across
// processes.
type InMemoryRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	cfg     RateLimiterConfig
	now     func() time.Time
}

type window struct {
	count    int
	resetsAt time.Time
}

// NewInMemoryRateLimiter creates an in-memory rate limiter
func NewInMemoryRateLimiter(cfg RateLimiterConfig) *InMemoryRateLimiter {
	return &InMemoryRateLimiter{
		windows: make(map[string]*window),
		cfg:     cfg,
		now:     time.Now,
	}
}

// Allow records a hit for key and checks it against the window's limit
func (l *InMemoryRateLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetsAt) {
		l.windows[key] = &window{count: 1, resetsAt: now.Add(l.cfg.Window)}
		l.evictExpired(now)
		return true, 0, nil
	}

	w.count++
	if w.count <= l.cfg.Limit {
		return true, 0, nil
	}
	return false, w.resetsAt.Sub(now), nil
}

// evictExpired drops windows that have already reset, so idle keys do not
// accumulate. Called under the lock.
func (l *InMemoryRateLimiter) evictExpired(now time.Time) {
	for key, w := range l.windows {
		if !now.Before(w.resetsAt) {
			delete(l.windows, key)
		}
	}
}

var _ RateLimiter = (*InMemoryRateLimiter)(nil)
