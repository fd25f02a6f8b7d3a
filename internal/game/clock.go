package game

import (
	"sync"
	"time"
)

// Clock abstracts time so decay and gift cooldowns are testable.
type Clock interface {
	Now() time.Time
}

// EpochMS is the epoch-millisecond representation the save format uses for
// all timestamps.
func EpochMS(t time.Time) int64 { return t.UnixMilli() }

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FakeClock is deterministic and test-friendly.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{t: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
