package main

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jEdwinCo/reacto"
	"github.com/jEdwinCo/reacto/clock"
	"github.com/jEdwinCo/reacto/examples/buttonblink"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the button blink demo.",
	Long: "Run the button blink demo: a simulated button is pressed on the " +
		"given schedule, presses are classified as single or double, and " +
		"LED toggles are printed.",
	Run: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().Uint32("window", uint32(buttonblink.DefaultWindow),
		"double press window in milliseconds")
	demoCmd.Flags().String("presses", "0,100,800",
		"comma-separated delays in milliseconds between button presses")
	demoCmd.Flags().Bool("monitor", false,
		"start the monitoring server")
	demoCmd.Flags().String("record", "",
		"record the dispatch trace into this SQLite database")
}

// consoleLEDs prints LED toggles instead of driving pins.
type consoleLEDs struct{}

func (consoleLEDs) Toggle(led buttonblink.LEDEvent) {
	switch led {
	case buttonblink.LED0:
		log.Print("LED0 toggled (single press)")
	case buttonblink.LED1:
		log.Print("LED1 toggled (double press)")
	}
}

func runDemo(cmd *cobra.Command, _ []string) {
	window, _ := cmd.Flags().GetUint32("window")
	presses, _ := cmd.Flags().GetString("presses")
	monitor, _ := cmd.Flags().GetBool("monitor")
	record, _ := cmd.Flags().GetString("record")

	delays := parseDelays(presses)

	clk := clock.NewTickerClock()
	clk.Start(time.Millisecond)
	defer clk.Stop()

	builder := reacto.MakeBuilder().WithClock(clk)
	if !monitor {
		builder = builder.WithoutMonitoring()
	}
	if record != "" {
		builder = builder.WithRecording(record)
	}

	rt := builder.Build()
	rt.Loop().SetIdle(func() { time.Sleep(time.Millisecond) })
	app := buttonblink.New(
		rt.Loop(), rt.Clock(), consoleLEDs{}, clock.Ticks(window))

	// The presser goroutine stands in for the button interrupt.
	go func() {
		for _, d := range delays {
			clk.Sleep(d)
			app.PressButton()
		}

		clk.Sleep(clock.Ticks(window) + 100)
		rt.Quit()
	}()

	err := rt.Run()
	if err != nil {
		log.Fatal(err)
	}
	rt.Terminate()
}

func parseDelays(presses string) []clock.Ticks {
	parts := strings.Split(presses, ",")

	delays := make([]clock.Ticks, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			log.Fatalf("invalid press delay %q: %v", p, err)
		}
		delays = append(delays, clock.Ticks(d))
	}

	return delays
}
