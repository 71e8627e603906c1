package roblox

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// newLimiter creates the client-wide limiter. Non-positive values fall back
// to 10 rps with a burst of 10.
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = 10
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// newPageLimiter spaces page requests of a single pager by delay. The first
// page goes out immediately.
func newPageLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// wait blocks on l. A wait the context deadline cannot cover is reported as
// context.DeadlineExceeded so callers can tell it apart from page failures.
func wait(ctx context.Context, l *rate.Limiter) error {
	err := l.Wait(ctx)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
}
