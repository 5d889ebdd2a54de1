// Package throttle spaces outbound catalog requests so that at most one
// request starts per interval across the whole process.
package throttle

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the minimum spacing between catalog requests.
const DefaultInterval = 10 * time.Second

// Throttle hands out non-overlapping dispatch slots. Create one at startup and
// share it between every component that talks to the catalog.
type Throttle struct {
	limiter  *rate.Limiter
	interval time.Duration

	// last is the most recently granted slot. The limiter's float token math
	// can land a nanosecond early, so slots are floored at last+interval.
	mu   sync.Mutex
	last time.Time

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// Option configures a Throttle
type Option func(*Throttle)

// WithClock replaces the wall clock used to reserve slots.
func WithClock(now func() time.Time) Option {
	return func(t *Throttle) { t.now = now }
}

// WithSleep replaces the function used to wait for a reserved slot.
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(t *Throttle) { t.sleep = sleep }
}

// New creates a throttle allowing one request per interval.
func New(interval time.Duration, opts ...Option) *Throttle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	t := &Throttle{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Interval returns the configured spacing.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}

// Wait blocks until the caller may dispatch its request and returns the granted
// dispatch instant. Slots are reserved atomically, so concurrent callers are
// serialized at least one interval apart.
func (t *Throttle) Wait(ctx context.Context) (time.Time, error) {
	t.mu.Lock()
	now := t.now()
	r := t.limiter.ReserveN(now, 1)
	if !r.OK() {
		// burst is 1, so a single token is always reservable
		t.mu.Unlock()
		return now, nil
	}

	slot := now.Add(r.DelayFrom(now))
	if !t.last.IsZero() {
		if floor := t.last.Add(t.interval); slot.Before(floor) {
			slot = floor
		}
	}
	prev := t.last
	t.last = slot
	t.mu.Unlock()

	delay := slot.Sub(now)
	if delay <= 0 {
		return slot, nil
	}

	slog.Debug("Throttling catalog request", "delay", delay)
	if err := t.sleep(ctx, delay); err != nil {
		t.mu.Lock()
		r.CancelAt(t.now())
		if t.last.Equal(slot) {
			t.last = prev
		}
		t.mu.Unlock()
		return time.Time{}, err
	}
	return slot, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
