package inference

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter throttles model calls with a per-minute and a per-day token
// bucket. A limit of zero leaves that bucket unlimited.
type RateLimiter struct {
	minute *rate.Limiter
	day    *rate.Limiter

	now func() time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(requestsPerMinute, requestsPerDay int) *RateLimiter {
	return &RateLimiter{
		minute: newBucket(requestsPerMinute, time.Minute),
		day:    newBucket(requestsPerDay, 24*time.Hour),
		now:    time.Now,
	}
}

// newBucket allows n requests per period, all of them in a burst.
func newBucket(n int, period time.Duration) *rate.Limiter {
	if n <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(period/time.Duration(n)), n)
}

// Wait blocks until both buckets grant a request. It fails fast when the
// wait would outlast ctx's deadline.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := rl.now()
	delay, cancel := rl.reserve(now)
	if delay == 0 {
		return nil
	}
	if deadline, ok := ctx.Deadline(); ok && deadline.Sub(now) < delay {
		cancel()
		return fmt.Errorf("waiting %s would exceed context deadline: %w", delay.Round(time.Millisecond), context.DeadlineExceeded)
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// reserve takes a token from both buckets and returns how long the caller
// must wait before acting on them. cancel hands the tokens back.
func (rl *RateLimiter) reserve(now time.Time) (time.Duration, func()) {
	minute := rl.minute.ReserveN(now, 1)
	day := rl.day.ReserveN(now, 1)

	cancel := func() {
		at := rl.now()
		minute.CancelAt(at)
		day.CancelAt(at)
	}
	return max(minute.DelayFrom(now), day.DelayFrom(now)), cancel
}

// Stats returns the whole tokens left in each bucket; -1 marks an unlimited bucket.
func (rl *RateLimiter) Stats() (minuteTokens, dayTokens int) {
	now := rl.now()
	return tokensLeft(rl.minute, now), tokensLeft(rl.day, now)
}

func tokensLeft(l *rate.Limiter, now time.Time) int {
	if l.Limit() == rate.Inf {
		return -1
	}
	return int(math.Max(0, math.Floor(l.TokensAt(now))))
}
