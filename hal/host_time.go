//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

type wallClock struct{}

func (wallClock) Sleep(d time.Duration) { time.Sleep(d) }

// virtualClock never blocks: Sleep only moves its notion of now forward and
// reports the slept interval to onSleep. Headless runs use it to replay long
// scenarios instantly.
type virtualClock struct {
	mu      sync.Mutex
	now     time.Time
	slept   time.Duration
	sleeps  uint64
	onSleep func(n uint64, d time.Duration)

	// realtime also blocks for d, for paced headless runs.
	realtime bool
}

func newVirtualClock(start time.Time) *virtualClock {
	return &virtualClock{now: start}
}

func (c *virtualClock) Sleep(d time.Duration) {
	c.mu.Lock()
	if d > 0 {
		c.now = c.now.Add(d)
		c.slept += d
	}
	c.sleeps++
	n := c.sleeps
	hook := c.onSleep
	c.mu.Unlock()

	if c.realtime && d > 0 {
		time.Sleep(d)
	}
	if hook != nil {
		hook(n, d)
	}
}

func (c *virtualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *virtualClock) elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slept
}
