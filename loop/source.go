// Package loop provides the cooperative main loop that drives a reactive
// runtime. The loop owns a registry of pollable sources, asks a scheduling
// strategy for the dispatch order each pass, and invokes ready sources
// synchronously until told to quit.
package loop

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Source is anything the loop can poll for readiness and dispatch. Event
// queues and timed schedulers implement it alike, so the loop never
// distinguishes source kinds.
//
// Dispatch returning nil means normal continuation. A non-nil error is
// logged by the loop and surfaced through hooks; the source stays
// registered. Dispatch is always called from the loop goroutine and must not
// block: a blocking handler stalls every other source.
type Source interface {
	Named
	Ready() bool
	Dispatch() error
}

// An Entry is a registered source together with its priority. Priorities
// only matter to strategies that look at them.
type Entry struct {
	Source   Source
	Priority int
}
