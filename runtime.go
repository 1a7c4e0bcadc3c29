// Package reacto wires the runtime pieces, clock, main loop, monitor, and
// recorder, into one assembly.
package reacto

import (
	"github.com/jEdwinCo/reacto/clock"
	"github.com/jEdwinCo/reacto/datarecording"
	"github.com/jEdwinCo/reacto/loop"
	"github.com/jEdwinCo/reacto/monitoring"
)

// A Runtime holds everything a reactive application needs to run: the clock
// that stamps deadlines, the loop that dispatches, and the optional monitor
// and recorder around them.
type Runtime struct {
	id string

	clk      clock.Clock
	l        *loop.Loop
	monitor  *monitoring.Monitor
	recorder *datarecording.SQLiteWriter
}

// ID returns the unique id of this runtime instance.
func (r *Runtime) ID() string {
	return r.id
}

// Clock returns the clock the runtime schedules against.
func (r *Runtime) Clock() clock.Clock {
	return r.clk
}

// Loop returns the main loop.
func (r *Runtime) Loop() *loop.Loop {
	return r.l
}

// Monitor returns the monitor, or nil when monitoring is disabled.
func (r *Runtime) Monitor() *monitoring.Monitor {
	return r.monitor
}

// DataRecorder returns the recorder, or nil when recording is disabled.
func (r *Runtime) DataRecorder() *datarecording.SQLiteWriter {
	return r.recorder
}

// RegisterSource registers a pollable source with the main loop.
func (r *Runtime) RegisterSource(src loop.Source, priority int) {
	r.l.AddSource(src, priority)
}

// Run enters the main loop and blocks until Quit is observed.
func (r *Runtime) Run() error {
	return r.l.Run()
}

// Quit cooperatively stops the main loop.
func (r *Runtime) Quit() {
	r.l.Quit()
}

// Terminate flushes and closes the recorder. Call it after Run returns.
func (r *Runtime) Terminate() {
	if r.recorder != nil {
		r.recorder.Flush()
		r.recorder.Close()
	}
}
