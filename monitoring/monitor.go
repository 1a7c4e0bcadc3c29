// Package monitoring turns a running loop into a small web server so the
// runtime can be inspected, and asked to quit, from outside.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/jEdwinCo/reacto/clock"
	"github.com/jEdwinCo/reacto/loop"
)

// Monitor exposes a loop and its sources over HTTP. All endpoints are
// read-only except /api/quit.
type Monitor struct {
	l          *loop.Loop
	clk        clock.Clock
	portNumber int
	port       int
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterLoop registers the loop to be monitored.
func (m *Monitor) RegisterLoop(l *loop.Loop) {
	m.l = l
}

// RegisterClock registers the clock the /api/now endpoint reads.
func (m *Monitor) RegisterClock(clk clock.Clock) {
	m.clk = clk
}

// Port returns the port the server listens on. Valid after StartServer.
func (m *Monitor) Port() int {
	return m.port
}

// StartServer starts the monitor as a web server, on the configured port or
// a random one.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/quit", m.quitLoop)
	r.HandleFunc("/api/strategy", m.strategy)
	r.HandleFunc("/api/sources", m.listSources)
	r.HandleFunc("/api/source/{name}", m.listSourceDetails)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.port = listener.Addr().(*net.TCPAddr).Port

	fmt.Fprintf(os.Stderr,
		"Monitoring runtime with http://localhost:%d\n", m.port)

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()
}

// OpenDashboard opens the source listing in the default browser.
func (m *Monitor) OpenDashboard() {
	err := browser.OpenURL(
		fmt.Sprintf("http://localhost:%d/api/sources", m.port))
	dieOnErr(err)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"now\":%d}", m.clk.Now())
}

func (m *Monitor) quitLoop(w http.ResponseWriter, _ *http.Request) {
	m.l.Quit()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) strategy(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"strategy\":%q,\"passes\":%d}",
		m.l.Strategy().Name(), m.l.Passes())
}

type sourceRsp struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Ready    bool   `json:"ready"`
	Level    int    `json:"level,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}

type levelled interface {
	Len() int
}

type bounded interface {
	Capacity() int
}

func (m *Monitor) listSources(w http.ResponseWriter, _ *http.Request) {
	entries := m.l.Sources()

	rsp := make([]sourceRsp, 0, len(entries))
	for _, ent := range entries {
		s := sourceRsp{
			Name:     ent.Source.Name(),
			Priority: ent.Priority,
			Ready:    ent.Source.Ready(),
		}

		if lv, ok := ent.Source.(levelled); ok {
			s.Level = lv.Len()
		}
		if b, ok := ent.Source.(bounded); ok {
			s.Capacity = b.Capacity()
		}

		rsp = append(rsp, s)
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listSourceDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	src := m.findSourceOr404(w, name)
	if src == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(src)
	serializer.SetMaxDepth(1)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) findSourceOr404(
	w http.ResponseWriter,
	name string,
) loop.Source {
	var src loop.Source
	for _, ent := range m.l.Sources() {
		if ent.Source.Name() == name {
			src = ent.Source
		}
	}

	if src == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Source not found"))
		dieOnErr(err)
	}

	return src
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memorySize, err := proc.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	rspBytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(rspBytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
