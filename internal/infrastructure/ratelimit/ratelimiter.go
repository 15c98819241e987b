// Package ratelimit bounds how often a principal may submit hypervisor
// check-ins.
package ratelimit

import (
	"context"
	"time"
)

// Limits holds the allowance per window. Zero disables a window.
type Limits struct {
	PerMinute int
	PerHour   int
}

func (l Limits) windows() []window {
	return []window{
		{time.Minute, l.PerMinute},
		{time.Hour, l.PerHour},
	}
}

type window struct {
	duration time.Duration
	limit    int
}

type RateLimiter interface {
	// Allow records one request for key and reports whether it fits
	// every configured window.
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	Reset(ctx context.Context, key string) error
}
