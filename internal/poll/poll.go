// Package poll holds the timing primitives shared by every polling loop.
package poll

import (
	"context"
	"time"
)

const (
	// DefaultInterval is the pause between poll ticks
	DefaultInterval = 500 * time.Millisecond
	// DefaultMaxFailures is how many consecutive transport failures a loop absorbs
	DefaultMaxFailures = 3
	// maxBackoff caps the pause after repeated transport failures
	maxBackoff = 10 * time.Second
)

// Sleep pauses for d and reports false if ctx was cancelled first.
// Cancellation is only observed here, between ticks.
func Sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Backoff tracks consecutive transport failures of one loop
type Backoff struct {
	Interval    time.Duration
	MaxFailures int
	failures    int
}

// NewBackoff returns a Backoff doubling from interval
func NewBackoff(interval time.Duration) *Backoff {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Backoff{Interval: interval, MaxFailures: DefaultMaxFailures}
}

// Failed records a failure and returns the pause before the next attempt.
// ok is false once the loop should give up.
func (b *Backoff) Failed() (wait time.Duration, ok bool) {
	b.failures++
	if b.failures > b.MaxFailures {
		return 0, false
	}
	wait = b.Interval << b.failures
	if wait > maxBackoff || wait <= 0 {
		wait = maxBackoff
	}
	return wait, true
}

// Succeeded resets the failure count
func (b *Backoff) Succeeded() {
	b.failures = 0
}

// Failures returns the current count of consecutive failures
func (b *Backoff) Failures() int {
	return b.failures
}
