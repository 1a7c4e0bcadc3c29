// Package tracing records what the main loop dispatches, so a run can be
// inspected after the fact.
package tracing

import (
	"github.com/rs/xid"

	"github.com/jEdwinCo/reacto/clock"
	"github.com/jEdwinCo/reacto/datarecording"
	"github.com/jEdwinCo/reacto/hooking"
	"github.com/jEdwinCo/reacto/loop"
)

// DispatchRecord is one row of the dispatch trace.
type DispatchRecord struct {
	ID     string
	Source string
	Tick   uint32
	Error  string
}

// DispatchTracer is a hook that records every dispatched source into a data
// recorder. Attach it to a Loop with AcceptHook.
type DispatchTracer struct {
	recorder datarecording.DataRecorder
	clk      clock.Clock
}

// NewDispatchTracer creates a DispatchTracer writing into recorder. It
// creates the dispatches table immediately.
func NewDispatchTracer(
	recorder datarecording.DataRecorder,
	clk clock.Clock,
) *DispatchTracer {
	t := &DispatchTracer{
		recorder: recorder,
		clk:      clk,
	}

	recorder.CreateTable("dispatches", DispatchRecord{})

	return t
}

// Func records a row after each dispatch.
func (t *DispatchTracer) Func(ctx hooking.HookCtx) {
	if ctx.Pos != loop.HookPosAfterDispatch {
		return
	}

	src := ctx.Item.(loop.Source)

	errStr := ""
	if err, ok := ctx.Detail.(error); ok && err != nil {
		errStr = err.Error()
	}

	t.recorder.InsertData("dispatches", DispatchRecord{
		ID:     xid.New().String(),
		Source: src.Name(),
		Tick:   uint32(t.clk.Now()),
		Error:  errStr,
	})
}
