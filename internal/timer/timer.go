// internal/timer/timer.go
//
// Countdown controller for timed play modes.
//
// A Controller knows nothing about games: it counts a total duration down in
// fixed one-second ticks and reports each tick and the expiry to a Listener.
//
// Cancellation:
//   - Every Start/Resume arms a fresh handle with the Scheduler.
//   - Pause/Reset (and expiry) cancel the active handle and stop its schedule.
//   - A tick delivered for a handle that is no longer active is dropped, so a
//     schedule armed before a Pause/Reset can never move the countdown again.

package timer

import (
	"errors"
	"sync"
	"time"
)

// Period is the logical tick length.
const Period = time.Second

// ErrInvalidDuration is returned by New for a non-positive total.
var ErrInvalidDuration = errors.New("timer: total duration must be positive")

// Listener receives countdown notifications. Both callbacks are optional and
// are invoked without the controller's lock held.
type Listener struct {
	OnTick    func(remaining, total time.Duration)
	OnExpired func()
}

// State is a point-in-time copy of the countdown.
type State struct {
	Remaining time.Duration
	Total     time.Duration
	Running   bool
}

// handle identifies one armed schedule.
type handle struct {
	stop func()
}

// Controller is a cancellable countdown. Safe for concurrent use.
type Controller struct {
	mu        sync.Mutex
	total     time.Duration
	remaining time.Duration
	running   bool
	active    *handle

	sched    Scheduler
	listener Listener
}

// New creates a stopped controller. A nil scheduler means real time.
func New(total time.Duration, sched Scheduler, l Listener) (*Controller, error) {
	if total <= 0 {
		return nil, ErrInvalidDuration
	}
	if sched == nil {
		sched = TickerScheduler{}
	}
	return &Controller{total: total, sched: sched, listener: l}, nil
}

// Start resets the countdown to the total and begins ticking.
// Calling Start on a running controller restarts it.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.remaining = c.total
	c.armLocked()
}

// Pause stops ticking and keeps the remaining time.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
}

// Resume continues a paused countdown. No-op when running or when nothing remains.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running || c.remaining <= 0 {
		return
	}
	c.armLocked()
}

// Reset stops ticking and zeroes the remaining time.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.remaining = 0
}

// State returns a copy of the countdown state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Remaining: c.remaining, Total: c.total, Running: c.running}
}

func (c *Controller) armLocked() {
	h := &handle{}
	c.active = h
	c.running = true
	h.stop = c.sched.Every(Period, func() { c.tick(h) })
}

func (c *Controller) cancelLocked() {
	if c.active != nil {
		if c.active.stop != nil {
			c.active.stop()
		}
		c.active = nil
	}
	c.running = false
}

// tick advances the countdown for h; stale handles are ignored.
func (c *Controller) tick(h *handle) {
	c.mu.Lock()
	if h != c.active {
		c.mu.Unlock()
		return
	}
	c.remaining -= Period
	if c.remaining < 0 {
		c.remaining = 0
	}
	remaining, total := c.remaining, c.total
	expired := remaining == 0
	if expired {
		c.cancelLocked()
	}
	l := c.listener
	c.mu.Unlock()

	if l.OnTick != nil {
		l.OnTick(remaining, total)
	}
	if expired && l.OnExpired != nil {
		l.OnExpired()
	}
}
