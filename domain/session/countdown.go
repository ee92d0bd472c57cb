package session

import (
	"math"
	"time"
)

// Countdown is a deadline polled once per frame. The zero value is idle.
type Countdown struct {
	deadline time.Time
	active   bool
}

// Start arms the countdown to expire d after now.
func (c *Countdown) Start(now time.Time, d time.Duration) {
	c.deadline = now.Add(d)
	c.active = true
}

// Cancel disarms the countdown.
func (c *Countdown) Cancel() { c.active = false }

// Active reports whether the countdown is armed.
func (c *Countdown) Active() bool { return c.active }

// Expired reports whether an armed countdown has reached its deadline. It
// disarms the countdown when it does, so expiry fires once.
func (c *Countdown) Expired(now time.Time) bool {
	if !c.active || now.Before(c.deadline) {
		return false
	}
	c.active = false
	return true
}

// Remaining is the time left, zero when idle or past due.
func (c *Countdown) Remaining(now time.Time) time.Duration {
	if !c.active {
		return 0
	}
	if d := c.deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Seconds rounds the remaining time up to whole seconds for display.
func (c *Countdown) Seconds(now time.Time) int {
	return int(math.Ceil(c.Remaining(now).Seconds()))
}
