package testutil

import (
	"context"
	"sync"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// FakeClock provides a controllable clock for tests.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock initializes a FakeClock at the provided start time.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the fake time forward.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SleepRecorder stands in for a context-aware sleep. It advances an optional
// FakeClock and records every requested duration.
type SleepRecorder struct {
	mu     sync.Mutex
	clock  *FakeClock
	sleeps []time.Duration
}

// NewSleepRecorder returns a recorder that advances clock when non-nil.
func NewSleepRecorder(clock *FakeClock) *SleepRecorder {
	return &SleepRecorder{clock: clock}
}

// Sleep records d and returns ctx.Err() without blocking.
func (s *SleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.sleeps = append(s.sleeps, d)
	s.mu.Unlock()
	if s.clock != nil {
		s.clock.Advance(d)
	}
	return ctx.Err()
}

// Sleeps returns the recorded durations in call order.
func (s *SleepRecorder) Sleeps() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.sleeps))
	copy(out, s.sleeps)
	return out
}
