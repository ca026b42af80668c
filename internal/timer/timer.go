// Package timer provides the countdown primitive driving per-question timing.
// One Controller exists per active question; it ticks at one-second
// granularity while started and unpaused, and fires an expiry notification
// exactly once when the countdown reaches zero.
package timer

import (
	"sync"
	"time"
)

// Status describes what the controller is currently doing.
type Status string

const (
	StatusStopped   Status = "stopped"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// Controller is a single-question countdown with pause/resume/expire
// semantics. Stopping the controller guarantees that no further tick or
// expiry callbacks fire for the stopped run: every run carries a generation
// token that Stop and Reset invalidate.
type Controller struct {
	mu        sync.Mutex
	interval  time.Duration
	limit     int
	remaining int
	active    bool
	paused    bool
	expired   bool
	gen       uint64

	onTick   func(remaining int)
	onExpire func()
}

type options struct {
	interval time.Duration
}

// Option configures a Controller or Stopwatch.
type Option func(*options)

// WithInterval overrides the tick interval. Tests use short intervals.
func WithInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

func applyOptions(opts []Option) options {
	o := options{interval: time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New creates a stopped controller with the given time limit in seconds.
func New(limit int, opts ...Option) *Controller {
	o := applyOptions(opts)
	return &Controller{
		interval:  o.interval,
		limit:     limit,
		remaining: limit,
	}
}

// OnTick registers the per-second callback. Set before Start.
func (c *Controller) OnTick(fn func(remaining int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTick = fn
}

// OnExpire registers the expiry callback. Set before Start.
func (c *Controller) OnExpire(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onExpire = fn
}

// Start begins (or restarts) the countdown from the current remaining time.
// Starting an already-running controller is a no-op.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active || c.remaining <= 0 {
		return
	}
	c.active = true
	c.paused = false
	c.expired = false
	c.gen++

	go c.run(c.gen)
}

// run is the tick loop for one generation. It exits as soon as the
// generation is invalidated by Stop, Reset, or a newer Start.
func (c *Controller) run(gen uint64) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.gen != gen || !c.active {
			c.mu.Unlock()
			return
		}
		if c.paused {
			c.mu.Unlock()
			continue
		}

		c.remaining--
		remaining := c.remaining
		onTick := c.onTick

		var onExpire func()
		if remaining <= 0 {
			c.remaining = 0
			remaining = 0
			c.active = false
			c.expired = true
			onExpire = c.onExpire
		}
		c.mu.Unlock()

		if onTick != nil {
			onTick(remaining)
		}
		if onExpire != nil {
			onExpire()
			return
		}
	}
}

// Pause suspends ticking without altering remaining time. Idempotent.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

// Resume continues ticking after a pause. Idempotent.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

// Stop cancels the countdown. No tick or expiry callback fires for the
// stopped run after the generation is invalidated.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
	c.paused = false
	c.gen++
}

// Reset stops the controller and reinitializes it with a new limit. Ticking
// does not resume until Start is called again.
func (c *Controller) Reset(limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
	c.paused = false
	c.expired = false
	c.limit = limit
	c.remaining = limit
	c.gen++
}

// SetRemaining overrides the remaining time, clamped to [0, limit]. Used when
// restoring a persisted session.
func (c *Controller) SetRemaining(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	if seconds > c.limit {
		seconds = c.limit
	}
	c.remaining = seconds
}

// Remaining returns the seconds left on the countdown.
func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Limit returns the configured time limit in seconds.
func (c *Controller) Limit() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limit
}

// Status reports the controller's current state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.expired || c.remaining == 0:
		return StatusCompleted
	case c.active && c.paused:
		return StatusPaused
	case c.active:
		return StatusRunning
	default:
		return StatusStopped
	}
}
