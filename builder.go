package reacto

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/xid"

	"github.com/jEdwinCo/reacto/clock"
	"github.com/jEdwinCo/reacto/datarecording"
	"github.com/jEdwinCo/reacto/loop"
	"github.com/jEdwinCo/reacto/monitoring"
	"github.com/jEdwinCo/reacto/tracing"
)

// Builder can be used to build a Runtime.
type Builder struct {
	clk      clock.Clock
	strategy loop.Strategy

	monitorOn   bool
	monitorPort int

	recordOn   bool
	recordPath string
}

// MakeBuilder creates a builder with the default configuration: a system
// clock, the fair strategy, monitoring on, recording off.
func MakeBuilder() Builder {
	return Builder{
		monitorOn: true,
	}
}

// WithClock sets the clock the runtime schedules against.
func (b Builder) WithClock(clk clock.Clock) Builder {
	b.clk = clk
	return b
}

// WithStrategy sets the loop's scheduling strategy.
func (b Builder) WithStrategy(s loop.Strategy) Builder {
	b.strategy = s
	return b
}

// WithoutMonitoring disables the monitoring server.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithRecording enables dispatch-trace recording into path + ".sqlite3". An
// empty path picks a unique name.
func (b Builder) WithRecording(path string) Builder {
	b.recordOn = true
	b.recordPath = path
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}
}

// applyEnv lets a .env file or the environment override the configuration.
// REACTO_MONITOR_PORT moves the monitoring server; REACTO_RECORD_PATH turns
// recording on.
func (b Builder) applyEnv() Builder {
	_ = godotenv.Load()

	if port, ok := os.LookupEnv("REACTO_MONITOR_PORT"); ok {
		p, err := strconv.Atoi(port)
		if err != nil {
			panic("REACTO_MONITOR_PORT is not a number: " + port)
		}
		b.monitorPort = p
	}

	if path, ok := os.LookupEnv("REACTO_RECORD_PATH"); ok {
		b.recordOn = true
		b.recordPath = path
	}

	return b
}

// Build builds the Runtime.
func (b Builder) Build() *Runtime {
	b = b.applyEnv()
	b.parametersMustBeValid()

	r := &Runtime{
		id: xid.New().String(),
	}

	r.clk = b.clk
	if r.clk == nil {
		r.clk = clock.NewSystemClock()
	}

	strategy := b.strategy
	if strategy == nil {
		strategy = loop.NewFairStrategy()
	}
	r.l = loop.NewLoop(strategy)

	if b.recordOn {
		path := b.recordPath
		if path == "" {
			path = "reacto_run_" + r.id
		}
		r.recorder = datarecording.NewSQLiteWriter(path)
		r.recorder.Init()
		r.l.AcceptHook(tracing.NewDispatchTracer(r.recorder, r.clk))
	}

	if b.monitorOn {
		r.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			r.monitor.WithPortNumber(b.monitorPort)
		}
		r.monitor.RegisterLoop(r.l)
		r.monitor.RegisterClock(r.clk)
		r.monitor.StartServer()
	}

	return r
}
