package clock

import (
	"sync/atomic"
	"time"
)

// TickerClock counts ticks from a periodic ticker, mirroring a timer
// interrupt incrementing a counter. The counter is atomic so producers on
// other goroutines can read it safely.
type TickerClock struct {
	count atomic.Uint32
	stop  chan struct{}
	done  chan struct{}
}

// NewTickerClock creates a TickerClock. The clock does not count until Start
// is called.
func NewTickerClock() *TickerClock {
	return &TickerClock{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start begins incrementing the counter once per interval.
func (c *TickerClock) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		defer close(c.done)
		for {
			select {
			case <-ticker.C:
				c.count.Add(1)
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop ends the counting. The counter keeps its final value.
func (c *TickerClock) Stop() {
	close(c.stop)
	<-c.done
}

// Now returns the current tick count.
func (c *TickerClock) Now() Ticks {
	return Ticks(c.count.Load())
}

// Sleep busy-waits until d ticks have passed.
func (c *TickerClock) Sleep(d Ticks) {
	start := c.Now()
	for Ticks(c.count.Load())-start < d {
		time.Sleep(time.Millisecond)
	}
}
