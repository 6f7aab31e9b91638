package inference

import (
	"context"
	"fmt"
	"time"
)

// Limited throttles another Generator and bounds each call with a timeout.
type Limited struct {
	next    Generator
	limiter *RateLimiter
	timeout time.Duration
}

// NewLimited wraps next. A nil limiter or zero timeout disables that part.
func NewLimited(next Generator, limiter *RateLimiter, timeout time.Duration) *Limited {
	return &Limited{
		next:    next,
		limiter: limiter,
		timeout: timeout,
	}
}

func (l *Limited) Generate(ctx context.Context, prompt string, sampling SamplingConfig) (string, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit error: %w", err)
		}
	}

	return l.next.Generate(ctx, prompt, sampling)
}
