package loop

import (
	"errors"
	"log"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/jEdwinCo/reacto/hooking"
)

// HookPosBeforeDispatch marks the moment right before a ready source is
// dispatched.
var HookPosBeforeDispatch = &hooking.HookPos{Name: "Before Dispatch"}

// HookPosAfterDispatch marks the moment right after a source was dispatched.
var HookPosAfterDispatch = &hooking.HookPos{Name: "After Dispatch"}

// HookPosDispatchError marks a dispatch that returned a non-nil error.
var HookPosDispatchError = &hooking.HookPos{Name: "Dispatch Error"}

// ErrNotStartable is returned by Run when the loop is already running or has
// already stopped. A stopped loop is terminal.
var ErrNotStartable = errors.New("loop: not in a startable state")

const (
	stateNew = int32(iota)
	stateRunning
	stateStopped
)

// A Loop polls registered sources and dispatches the ready ones, one at a
// time, in the order the active strategy dictates. Exactly one goroutine
// runs the loop; handlers run synchronously on it.
type Loop struct {
	hooking.HookableBase

	strategy Strategy
	idle     func()

	entriesLock sync.Mutex
	entries     []Entry

	state  atomic.Int32
	quit   atomic.Bool
	passes atomic.Uint64
}

// NewLoop creates a Loop with the given strategy. The default idle behavior
// yields the processor between empty passes.
func NewLoop(strategy Strategy) *Loop {
	if strategy == nil {
		log.Panic("loop: strategy must not be nil")
	}

	return &Loop{
		strategy: strategy,
		idle:     runtime.Gosched,
	}
}

// SetIdle replaces what the loop does on a pass where no source was ready.
// Useful to sleep a host clock instead of spinning.
func (l *Loop) SetIdle(f func()) {
	if f == nil {
		log.Panic("loop: idle function must not be nil")
	}

	l.idle = f
}

// Strategy returns the active scheduling strategy.
func (l *Loop) Strategy() Strategy {
	return l.strategy
}

// AddSource registers a source with a priority. Sources registered before
// Run are ordered deterministically; registration after Run is tolerated but
// only takes effect at the next pass boundary. Sources stay registered until
// the loop ends.
func (l *Loop) AddSource(src Source, priority int) {
	if src == nil {
		log.Panic("loop: source must not be nil")
	}

	l.entriesLock.Lock()
	l.entries = append(l.entries, Entry{Source: src, Priority: priority})
	l.entriesLock.Unlock()
}

// Sources returns a snapshot of the registered entries.
func (l *Loop) Sources() []Entry {
	l.entriesLock.Lock()
	defer l.entriesLock.Unlock()

	snapshot := make([]Entry, len(l.entries))
	copy(snapshot, l.entries)

	return snapshot
}

// Passes returns the number of dispatch passes completed so far.
func (l *Loop) Passes() uint64 {
	return l.passes.Load()
}

// Running reports whether Run is currently executing.
func (l *Loop) Running() bool {
	return l.state.Load() == stateRunning
}

// Quit asks the loop to stop. It is cooperative: the request is observed
// between dispatches, never by preempting an in-flight handler. Safe to call
// from any goroutine, including from a handler running on the loop.
func (l *Loop) Quit() {
	l.quit.Store(true)
}

// Run enters the dispatch loop and repeats passes until Quit is observed.
// Each pass polls the sources in strategy order and synchronously dispatches
// every ready one. Run returns ErrNotStartable if the loop already ran;
// stopped is a terminal state.
func (l *Loop) Run() error {
	if !l.state.CompareAndSwap(stateNew, stateRunning) {
		return ErrNotStartable
	}
	defer l.state.Store(stateStopped)

	for !l.quit.Load() {
		arranged := l.strategy.Arrange(l.passes.Load(), l.Sources())
		l.passes.Add(1)

		dispatched := false
		for _, ent := range arranged {
			if l.quit.Load() {
				break
			}

			if !ent.Source.Ready() {
				continue
			}

			l.dispatch(ent.Source)
			dispatched = true
		}

		if !dispatched && !l.quit.Load() {
			l.idle()
		}
	}

	return nil
}

func (l *Loop) dispatch(src Source) {
	if l.NumHooks() > 0 {
		l.InvokeHook(hooking.HookCtx{
			Domain: l,
			Pos:    HookPosBeforeDispatch,
			Item:   src,
		})
	}

	err := src.Dispatch()

	if l.NumHooks() > 0 {
		l.InvokeHook(hooking.HookCtx{
			Domain: l,
			Pos:    HookPosAfterDispatch,
			Item:   src,
			Detail: err,
		})
	}

	if err != nil {
		log.Printf("loop: source %s: %v", src.Name(), err)

		if l.NumHooks() > 0 {
			l.InvokeHook(hooking.HookCtx{
				Domain: l,
				Pos:    HookPosDispatchError,
				Item:   src,
				Detail: err,
			})
		}
	}
}
