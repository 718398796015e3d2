// Package limiter throttles repeated login failures per (username, client IP).
package limiter

import (
	"context"
	"time"
)

// Limiter gates login attempts. Allow is consulted before credentials are
// checked; Failure records a failed attempt and reports whether the pair is
// now blocked; Success resets the counters.
type Limiter interface {
	Allow(ctx context.Context, username, ip string) (bool, time.Duration, error)
	Failure(ctx context.Context, username, ip string) (bool, time.Duration, error)
	Success(ctx context.Context, username, ip string) error
}

type noopLimiter struct{}

// NewNoop returns a limiter that never blocks, used when Redis is not configured.
func NewNoop() Limiter {
	return noopLimiter{}
}

func (noopLimiter) Allow(context.Context, string, string) (bool, time.Duration, error) {
	return true, 0, nil
}

func (noopLimiter) Failure(context.Context, string, string) (bool, time.Duration, error) {
	return false, 0, nil
}

func (noopLimiter) Success(context.Context, string, string) error {
	return nil
}
