// Package queue provides the fixed-capacity event queue that carries records
// from a producer context into the main loop. The queue is a
// single-producer/single-consumer ring: one goroutine (an interrupt handler
// stand-in, an OS signal handler, an I/O callback) pushes, the main loop
// consumes. That discipline makes the queue safe without locks, as long as a
// record is fully written before the producer cursor that exposes it
// advances.
package queue

import (
	"errors"
	"log"
	"sync/atomic"

	"github.com/jEdwinCo/reacto/hooking"
)

// HookPosPush marks when a record is pushed into the queue.
var HookPosPush = &hooking.HookPos{Name: "Queue Push"}

// HookPosDrop marks when a full queue drops an incoming record.
var HookPosDrop = &hooking.HookPos{Name: "Queue Drop"}

// HookPosConsume marks when the oldest record is consumed after dispatch.
var HookPosConsume = &hooking.HookPos{Name: "Queue Consume"}

// ErrNoSlot is returned by Dispatch when the queue has data but no slot is
// connected to its signal. The record is still consumed so that the loop
// cannot spin on a permanently ready source.
var ErrNoSlot = errors.New("queue: no slot connected")

// A Queue is a fixed-capacity ring of event records. Records are small
// values copied in on push and copied out on peek; the queue owns nothing
// beyond its storage array.
//
// Exactly one producer may push and exactly one consumer may peek and
// consume. Two producers pushing concurrently are out of contract.
type Queue[T any] struct {
	hooking.HookableBase

	name  string
	mask  uint32
	slots []T

	head    atomic.Uint32 // consumer cursor, written only by the consumer
	tail    atomic.Uint32 // producer cursor, written only by the producer
	dropped atomic.Uint32

	signal Signal[T]
}

// New creates a Queue with the given capacity. The capacity must be a power
// of two so that cursor wrap is a mask.
func New[T any](name string, capacity int) *Queue[T] {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		log.Panicf("queue %s: capacity must be a positive power of two, got %d",
			name, capacity)
	}

	q := &Queue[T]{
		name:  name,
		mask:  uint32(capacity - 1),
		slots: make([]T, capacity),
	}
	q.signal.queue = q

	return q
}

// Name returns the name of the queue.
func (q *Queue[T]) Name() string {
	return q.name
}

// Capacity returns the number of slots in the ring.
func (q *Queue[T]) Capacity() int {
	return len(q.slots)
}

// Len returns the number of unconsumed records.
func (q *Queue[T]) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

// Dropped returns the number of records discarded because the queue was full.
func (q *Queue[T]) Dropped() uint32 {
	return q.dropped.Load()
}

// Signal returns the handle used to connect a slot or register the queue
// with a main loop. The signal is ready whenever the queue holds unconsumed
// records.
func (q *Queue[T]) Signal() *Signal[T] {
	return &q.signal
}

// Push writes a record into the queue from the producer context. When the
// queue is full the record is dropped, the drop counter is incremented, and
// Push returns false. The write of the record completes before the producer
// cursor advances, so the consumer never observes a half-written slot.
//
// Hooks fired from Push run in the producer context; register hooks before
// the producer starts.
func (q *Queue[T]) Push(v T) bool {
	t := q.tail.Load()
	if t-q.head.Load() == uint32(len(q.slots)) {
		q.dropped.Add(1)

		if q.NumHooks() > 0 {
			q.InvokeHook(hooking.HookCtx{
				Domain: q,
				Pos:    HookPosDrop,
				Item:   v,
			})
		}

		return false
	}

	q.slots[t&q.mask] = v
	q.tail.Store(t + 1)

	if q.NumHooks() > 0 {
		q.InvokeHook(hooking.HookCtx{
			Domain: q,
			Pos:    HookPosPush,
			Item:   v,
		})
	}

	return true
}

// Peek copies the oldest unconsumed record without consuming it. The second
// return value is false when the queue is empty; an empty peek is not an
// error.
func (q *Queue[T]) Peek() (T, bool) {
	h := q.head.Load()
	if q.tail.Load() == h {
		var zero T
		return zero, false
	}

	return q.slots[h&q.mask], true
}

// Pop consumes and returns the oldest record. It is the consumer-side
// primitive that Dispatch uses after the slot handler returns.
func (q *Queue[T]) Pop() (T, bool) {
	h := q.head.Load()
	if q.tail.Load() == h {
		var zero T
		return zero, false
	}

	v := q.slots[h&q.mask]
	q.head.Store(h + 1)

	if q.NumHooks() > 0 {
		q.InvokeHook(hooking.HookCtx{
			Domain: q,
			Pos:    HookPosConsume,
			Item:   v,
		})
	}

	return v, true
}

// Ready reports whether the queue holds unconsumed records. It is part of
// the pollable source contract used by the main loop.
func (q *Queue[T]) Ready() bool {
	return q.tail.Load() != q.head.Load()
}

// Dispatch invokes the slot connected to the queue's signal and then
// consumes the record the handler observed. One record is consumed per
// dispatch, after the handler returns, so a handler that peeks always sees
// the record being dispatched.
func (q *Queue[T]) Dispatch() error {
	slot := q.signal.slot
	if slot == nil {
		q.Pop()
		return ErrNoSlot
	}

	err := slot.handler.Handle(q)
	q.Pop()

	return err
}
