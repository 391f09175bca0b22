package headless

import (
	"sync"
	"time"
)

// Clock supplies time to the headless event loop. Sleep is how the loop
// waits for the next timer.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// FakeClock provides controllable time for deterministic timer tests.
// Sleep advances the clock instead of blocking, so a loop driven by a
// FakeClock runs its timers in virtual time.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Sleep is Advance.
func (c *FakeClock) Sleep(d time.Duration) {
	if d > 0 {
		c.Advance(d)
	}
}
