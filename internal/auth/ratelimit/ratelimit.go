// Package ratelimit implements a fixed-window counter limiter used to cap
// per-identity operations such as contact messages. Counters live behind
// the Counter interface so the backing store can be Redis in production
// and in-process memory in tests and single-node deployments.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Counter is a TTL'd increment-only counter. Implementations must set the
// window expiry when a key is first created and leave it untouched on
// subsequent increments, so the window is fixed rather than sliding.
type Counter interface {
	// Get returns the current count for key, 0 when absent.
	Get(ctx context.Context, key string) (int64, error)

	// Increment bumps the counter by one, creating it with the given
	// window expiry when absent, and returns the new value.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter enforces per-identity operation quotas.
type Limiter struct {
	counter Counter
}

func NewLimiter(counter Counter) *Limiter {
	return &Limiter{counter: counter}
}

// Allow reports whether identityID may perform op again within the current
// window. A denied call does not consume quota, so a client hammering a
// full window cannot extend its own lockout.
func (l *Limiter) Allow(ctx context.Context, identityID, op string, limit int64, window time.Duration) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", op, identityID)

	count, err := l.counter.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if count >= limit {
		return false, nil
	}

	if _, err := l.counter.Increment(ctx, key, window); err != nil {
		return false, err
	}
	return true, nil
}
