package clock

import "sync/atomic"

// ManualClock is a clock advanced explicitly by the test or simulation that
// owns it. It never moves on its own.
type ManualClock struct {
	count atomic.Uint32
}

// NewManualClock creates a ManualClock at the given tick.
func NewManualClock(start Ticks) *ManualClock {
	c := new(ManualClock)
	c.count.Store(uint32(start))
	return c
}

// Now returns the current tick count.
func (c *ManualClock) Now() Ticks {
	return Ticks(c.count.Load())
}

// Advance moves the clock forward by d ticks.
func (c *ManualClock) Advance(d Ticks) {
	c.count.Add(uint32(d))
}

// Set moves the clock to an absolute tick count. Moving backwards is allowed
// only through wraparound semantics and is the caller's responsibility.
func (c *ManualClock) Set(t Ticks) {
	c.count.Store(uint32(t))
}

// Sleep advances the clock by d ticks. A manual clock has nothing to wait
// for, so sleeping and advancing are the same operation.
func (c *ManualClock) Sleep(d Ticks) {
	c.Advance(d)
}
