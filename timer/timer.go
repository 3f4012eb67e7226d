package timer

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

var (
	ErrNilClock       = errors.New("timer: clock is nil")
	ErrRandomBounds   = errors.New("timer: random lower bound out of range")
	ErrNegativePeriod = errors.New("timer: negative duration")
)

// Timer is a pollable countdown. It does nothing on its own; the owner calls
// Update every frame.
type Timer struct {
	clock Clock

	duration   time.Duration
	lowerBound time.Duration
	random     bool
	rng        *rand.Rand

	repeat   bool
	onExpire func()

	active  bool
	start   time.Duration
	current time.Duration
}

type Option func(*Timer)

// WithCallback sets a function fired once per activation on expiry.
func WithCallback(fn func()) Option {
	return func(t *Timer) { t.onExpire = fn }
}

// WithRepeat makes the timer re-activate itself immediately after expiring.
func WithRepeat() Option {
	return func(t *Timer) { t.repeat = true }
}

// WithRandom draws the effective duration uniformly from [lower, duration]
// on every activation.
func WithRandom(lower time.Duration, rng *rand.Rand) Option {
	return func(t *Timer) {
		t.random = true
		t.lowerBound = lower
		t.rng = rng
	}
}

// New builds an inactive timer.
func New(clock Clock, d time.Duration, opts ...Option) (*Timer, error) {
	if clock == nil {
		return nil, ErrNilClock
	}
	if d < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativePeriod, d)
	}
	t := &Timer{clock: clock, duration: d, current: d}
	for _, opt := range opts {
		opt(t)
	}
	if t.random {
		if t.lowerBound < 0 || t.lowerBound > t.duration {
			return nil, fmt.Errorf("%w: [%s, %s]", ErrRandomBounds, t.lowerBound, t.duration)
		}
		if t.rng == nil {
			t.rng = rand.New(rand.NewPCG(uint64(d), uint64(t.lowerBound)))
		}
	}
	return t, nil
}

// MustNew is New for durations known at compile time.
func MustNew(clock Clock, d time.Duration, opts ...Option) *Timer {
	t, err := New(clock, d, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Activate (re)starts the countdown from now.
func (t *Timer) Activate() {
	if t == nil {
		return
	}
	t.active = true
	t.start = t.clock.Now()
	t.current = t.nextDuration()
}

// Deactivate stops the countdown without firing the callback.
func (t *Timer) Deactivate() {
	if t == nil {
		return
	}
	t.active = false
	t.start = 0
}

// Update polls the timer. On expiry the callback fires and the timer either
// stops or, if repeating, restarts with a freshly drawn duration.
func (t *Timer) Update() {
	if t == nil || !t.active {
		return
	}
	if t.clock.Now()-t.start < t.current {
		return
	}
	t.Deactivate()
	if t.onExpire != nil {
		t.onExpire()
	}
	if t.repeat && !t.active {
		t.Activate()
	}
}

func (t *Timer) Active() bool {
	return t != nil && t.active
}

// Duration is the effective duration of the current (or next) activation.
func (t *Timer) Duration() time.Duration {
	if t == nil {
		return 0
	}
	return t.current
}

// Remaining is the time left before expiry, zero when inactive.
func (t *Timer) Remaining() time.Duration {
	if t == nil || !t.active {
		return 0
	}
	left := t.current - (t.clock.Now() - t.start)
	if left < 0 {
		return 0
	}
	return left
}

// SetDuration changes the nominal duration for future activations.
func (t *Timer) SetDuration(d time.Duration) {
	if t == nil || d < 0 {
		return
	}
	t.duration = d
	if !t.active {
		t.current = d
	}
}

func (t *Timer) nextDuration() time.Duration {
	if !t.random || t.duration == t.lowerBound {
		return t.duration
	}
	span := int64(t.duration - t.lowerBound)
	return t.lowerBound + time.Duration(t.rng.Int64N(span+1))
}
