package inference

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(perMinute, perDay int) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(perMinute, perDay)
	rl.now = clock.now
	return rl, clock
}

func TestRateLimiterMinuteBucket(t *testing.T) {
	rl, clock := newTestLimiter(2, 0)

	minute, day := rl.Stats()
	assert.Equal(t, 2, minute)
	assert.Equal(t, -1, day)

	delay, _ := rl.reserve(clock.now())
	assert.Zero(t, delay)
	delay, _ = rl.reserve(clock.now())
	assert.Zero(t, delay)

	delay, cancel := rl.reserve(clock.now())
	assert.InDelta(t, float64(30*time.Second), float64(delay), float64(time.Millisecond))
	cancel()

	clock.advance(31 * time.Second)
	delay, _ = rl.reserve(clock.now())
	assert.Zero(t, delay)

	clock.advance(10 * time.Minute)
	minute, _ = rl.Stats()
	assert.Equal(t, 2, minute, "bucket refills up to its burst")
}

func TestRateLimiterDayBucketDominates(t *testing.T) {
	rl, clock := newTestLimiter(10, 1)

	delay, _ := rl.reserve(clock.now())
	require.Zero(t, delay)

	clock.advance(2 * time.Minute)
	delay, cancel := rl.reserve(clock.now())
	assert.InDelta(t, float64(24*time.Hour-2*time.Minute), float64(delay), float64(time.Second))
	cancel()

	_, day := rl.Stats()
	assert.Equal(t, 0, day)
}

func TestRateLimiterUnlimited(t *testing.T) {
	rl, _ := newTestLimiter(0, 0)
	for i := 0; i < 100; i++ {
		require.NoError(t, rl.Wait(context.Background()))
	}
	minute, day := rl.Stats()
	assert.Equal(t, -1, minute)
	assert.Equal(t, -1, day)
}

func TestRateLimiterWaitHonoursContext(t *testing.T) {
	rl, _ := newTestLimiter(1, 0)
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, rl.Wait(ctx), context.Canceled)

	live := NewRateLimiter(1, 0)
	require.NoError(t, live.Wait(context.Background()))
	short, cancelShort := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancelShort()
	err := live.Wait(short)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorContains(t, err, "would exceed context deadline")
}
