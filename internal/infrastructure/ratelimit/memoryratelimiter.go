package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryRateLimiter is the single-instance limiter used when Redis is
// disabled. Each window is a token bucket refilled at limit per window.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	buckets map[string][]*rate.Limiter
	now     func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		buckets: make(map[string][]*rate.Limiter),
		now:     time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string, limits Limits) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	windows := limits.windows()
	buckets, ok := l.buckets[key]
	if !ok {
		buckets = make([]*rate.Limiter, len(windows))
		for i, w := range windows {
			if w.limit > 0 {
				buckets[i] = rate.NewLimiter(rate.Every(w.duration/time.Duration(w.limit)), w.limit)
			}
		}
		l.buckets[key] = buckets
	}

	now := l.now()
	for _, b := range buckets {
		if b != nil && b.TokensAt(now) < 1 {
			return false, nil
		}
	}
	for _, b := range buckets {
		if b != nil {
			b.AllowN(now, 1)
		}
	}
	return true, nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.buckets, key)
	l.mu.Unlock()
	return nil
}
