package timed

import (
	"container/list"
	"log"

	"github.com/jEdwinCo/reacto/clock"
)

// A Callback is the one-shot function a timed event fires. It receives the
// event itself so it can re-link it for periodic behavior.
type Callback func(ev *Event)

// An Event is a one-shot callback armed with a relative delay. An event is
// configured once and then linked into a scheduler, which computes the
// absolute deadline; an event that is not linked is inert.
type Event struct {
	delay    clock.Ticks
	callback Callback

	deadline clock.Ticks
	elem     *list.Element
	sched    *Scheduler
}

// NewEvent creates an Event that fires cb once, delay ticks after it is
// linked. Delays must stay below half the counter range for wraparound
// comparisons to hold.
func NewEvent(delay clock.Ticks, cb Callback) *Event {
	if cb == nil {
		log.Panic("timed: event callback must not be nil")
	}

	return &Event{delay: delay, callback: cb}
}

// Delay returns the relative delay the event is configured with.
func (e *Event) Delay() clock.Ticks {
	return e.delay
}

// SetDelay reconfigures the relative delay. It does not move an already
// linked event; re-link to apply the new delay.
func (e *Event) SetDelay(d clock.Ticks) {
	e.delay = d
}

// Deadline returns the absolute tick the event is armed for. It is only
// meaningful while the event is linked.
func (e *Event) Deadline() clock.Ticks {
	return e.deadline
}

// Linked reports whether the event is currently armed in a scheduler.
func (e *Event) Linked() bool {
	return e.elem != nil
}
