// Package timed provides the deadline-ordered one-shot event scheduler. The
// scheduler is a pollable source: the main loop asks it for readiness and
// dispatches the earliest expired event. It is single-threaded by
// construction and must only be touched from the loop's goroutine.
package timed

import (
	"container/list"

	"github.com/jEdwinCo/reacto/clock"
	"github.com/jEdwinCo/reacto/hooking"
)

// HookPosLink marks when an event is armed.
var HookPosLink = &hooking.HookPos{Name: "Timed Link"}

// HookPosUnlink marks when an event is disarmed without firing.
var HookPosUnlink = &hooking.HookPos{Name: "Timed Unlink"}

// HookPosFire marks when an expired event's callback is about to run.
var HookPosFire = &hooking.HookPos{Name: "Timed Fire"}

// A Scheduler keeps linked events ordered by deadline, earliest first, ties
// broken by link order. Each event appears at most once; linking an already
// linked event disarms it and re-arms it with a fresh deadline.
type Scheduler struct {
	hooking.HookableBase

	name    string
	clk     clock.Clock
	pending *list.List
}

// NewScheduler creates a Scheduler that reads deadlines from clk.
func NewScheduler(name string, clk clock.Clock) *Scheduler {
	return &Scheduler{
		name:    name,
		clk:     clk,
		pending: list.New(),
	}
}

// Name returns the name of the scheduler.
func (s *Scheduler) Name() string {
	return s.name
}

// Len returns the number of linked events.
func (s *Scheduler) Len() int {
	return s.pending.Len()
}

// Link arms ev with deadline now + delay and inserts it into the pending
// set. If ev is already linked, anywhere, it is unlinked first, so a re-link
// always resets the deadline rather than being rejected.
func (s *Scheduler) Link(ev *Event) {
	if ev.sched != nil {
		ev.sched.remove(ev)
	}

	now := s.clk.Now()
	ev.deadline = now + ev.delay

	// Insert before the first entry that expires strictly later. Remaining
	// times are compared as signed differences from now, so entries that
	// already expired sort first even when the counter has wrapped.
	var at *list.Element
	for e := s.pending.Front(); e != nil; e = e.Next() {
		other := e.Value.(*Event)
		if int32(other.deadline-now) > int32(ev.deadline-now) {
			at = e
			break
		}
	}

	if at != nil {
		ev.elem = s.pending.InsertBefore(ev, at)
	} else {
		ev.elem = s.pending.PushBack(ev)
	}
	ev.sched = s

	if s.NumHooks() > 0 {
		s.InvokeHook(hooking.HookCtx{Domain: s, Pos: HookPosLink, Item: ev})
	}
}

// Unlink disarms ev. Unlinking an event that is not linked, either because
// it never was or because it already fired, is a no-op.
func (s *Scheduler) Unlink(ev *Event) {
	if ev.elem == nil || ev.sched != s {
		return
	}

	s.remove(ev)

	if s.NumHooks() > 0 {
		s.InvokeHook(hooking.HookCtx{Domain: s, Pos: HookPosUnlink, Item: ev})
	}
}

func (s *Scheduler) remove(ev *Event) {
	s.pending.Remove(ev.elem)
	ev.elem = nil
	ev.sched = nil
}

// Ready reports whether the earliest deadline has elapsed. It is part of the
// pollable source contract used by the main loop.
func (s *Scheduler) Ready() bool {
	front := s.pending.Front()
	if front == nil {
		return false
	}

	return clock.Elapsed(s.clk.Now(), front.Value.(*Event).deadline)
}

// Dispatch fires the earliest expired event, if any. The event is unlinked
// before its callback runs, so the callback sees it one-shot and may re-link
// it, and an Unlink racing a just-fired event is a harmless no-op. Dispatch
// with nothing expired does nothing and is not an error.
func (s *Scheduler) Dispatch() error {
	front := s.pending.Front()
	if front == nil {
		return nil
	}

	ev := front.Value.(*Event)
	if !clock.Elapsed(s.clk.Now(), ev.deadline) {
		return nil
	}

	s.remove(ev)

	if s.NumHooks() > 0 {
		s.InvokeHook(hooking.HookCtx{Domain: s, Pos: HookPosFire, Item: ev})
	}

	ev.callback(ev)

	return nil
}
