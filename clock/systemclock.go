package clock

import "time"

// SystemClock derives ticks from the wall clock. The count is monotonic from
// the moment of construction and wraps like any other tick counter.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a SystemClock starting at tick 0.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the milliseconds elapsed since the clock was created.
func (c *SystemClock) Now() Ticks {
	return Ticks(time.Since(c.start).Milliseconds())
}

// Sleep blocks the calling goroutine for d milliseconds.
func (c *SystemClock) Sleep(d Ticks) {
	time.Sleep(time.Duration(d) * time.Millisecond)
}
