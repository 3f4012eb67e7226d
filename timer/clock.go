package timer

import "time"

// Clock supplies the current simulation time.
type Clock interface {
	Now() time.Duration
}

// SimClock is a manually advanced clock. The level owns one and advances it
// by the clamped frame delta, so every timer in a level sees the same time.
type SimClock struct {
	now time.Duration
}

func NewSimClock() *SimClock {
	return &SimClock{}
}

func (c *SimClock) Now() time.Duration {
	if c == nil {
		return 0
	}
	return c.now
}

// Advance moves the clock forward by dt seconds. Negative deltas are ignored.
func (c *SimClock) Advance(dt float64) {
	if c == nil || dt <= 0 {
		return
	}
	c.now += time.Duration(dt * float64(time.Second))
}

// Set jumps the clock to an absolute time.
func (c *SimClock) Set(t time.Duration) {
	if c == nil {
		return
	}
	c.now = t
}
