package timer

import (
	"fmt"
	"sync"
	"time"
)

// FormatSeconds renders a second count as MM:SS.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Progress returns the elapsed fraction of the countdown as a percentage.
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.limit == 0 {
		return 0
	}
	return float64(c.limit-c.remaining) / float64(c.limit) * 100
}

// InWarningZone reports whether the countdown is in its last 25%.
func (c *Controller) InWarningZone() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining > 0 && float64(c.remaining) <= float64(c.limit)*0.25
}

// InDangerZone reports whether the countdown is in its last 10%.
func (c *Controller) InDangerZone() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining > 0 && float64(c.remaining) <= float64(c.limit)*0.1
}

// Stopwatch counts up in one-second increments, for showing elapsed
// interview time.
type Stopwatch struct {
	mu       sync.Mutex
	interval time.Duration
	elapsed  int
	active   bool
	gen      uint64
}

// NewStopwatch creates a stopped stopwatch.
func NewStopwatch(opts ...Option) *Stopwatch {
	o := applyOptions(opts)
	return &Stopwatch{interval: o.interval}
}

// Start begins counting. No-op when already running.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.gen++
	gen := s.gen

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for range ticker.C {
			s.mu.Lock()
			if s.gen != gen || !s.active {
				s.mu.Unlock()
				return
			}
			s.elapsed++
			s.mu.Unlock()
		}
	}()
}

// Pause suspends counting.
func (s *Stopwatch) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.gen++
}

// Reset stops the stopwatch and zeroes the elapsed time.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.elapsed = 0
	s.gen++
}

// Elapsed returns the seconds counted so far.
func (s *Stopwatch) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}
