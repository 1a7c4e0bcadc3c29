package queue

import "log"

// A Handler is the callback a slot wraps. It is invoked with the queue whose
// signal fired; a nil return means normal continuation, a non-nil return is
// reported by the main loop and the source stays registered.
type Handler[T any] interface {
	Handle(q *Queue[T]) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc[T any] func(q *Queue[T]) error

// Handle calls f.
func (f HandlerFunc[T]) Handle(q *Queue[T]) error {
	return f(q)
}

// A Signal reports that its queue holds unconsumed records. It is the handle
// a slot connects to and the handle applications hand to the main loop.
type Signal[T any] struct {
	queue *Queue[T]
	slot  *Slot[T]
}

// Ready reports whether the signal's queue has unconsumed records.
func (s *Signal[T]) Ready() bool {
	return s.queue.Ready()
}

// Queue returns the queue the signal belongs to.
func (s *Signal[T]) Queue() *Queue[T] {
	return s.queue
}

// A Slot wraps a handler so it can be connected to exactly one signal. The
// binding is a lookup entry, not an ownership relation; signals and slots
// outlive each other independently.
type Slot[T any] struct {
	handler Handler[T]
}

// NewSlot creates a Slot around a handler.
func NewSlot[T any](h Handler[T]) *Slot[T] {
	if h == nil {
		log.Panic("queue: slot handler must not be nil")
	}

	return &Slot[T]{handler: h}
}

// Connect binds the slot to a signal. Connecting another slot to the same
// signal later replaces this binding.
func (s *Slot[T]) Connect(sig *Signal[T]) {
	sig.slot = s
}
