package reacto_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jEdwinCo/reacto"
	"github.com/jEdwinCo/reacto/clock"
	"github.com/jEdwinCo/reacto/loop"
	"github.com/jEdwinCo/reacto/queue"
)

var _ = Describe("Builder", func() {
	It("should build a runtime with the defaults", func() {
		rt := reacto.MakeBuilder().
			WithoutMonitoring().
			Build()

		Expect(rt.ID()).NotTo(BeEmpty())
		Expect(rt.Clock()).NotTo(BeNil())
		Expect(rt.Loop()).NotTo(BeNil())
		Expect(rt.Monitor()).To(BeNil())
		Expect(rt.DataRecorder()).To(BeNil())
	})

	It("should honor the injected clock and strategy", func() {
		clk := clock.NewManualClock(7)
		rt := reacto.MakeBuilder().
			WithoutMonitoring().
			WithClock(clk).
			WithStrategy(loop.NewPriorityStrategy()).
			Build()

		Expect(rt.Clock().Now()).To(Equal(clock.Ticks(7)))
		Expect(rt.Loop().Strategy().Name()).To(Equal("Priority"))
	})

	It("should refuse a monitor port without monitoring", func() {
		Expect(func() {
			reacto.MakeBuilder().
				WithoutMonitoring().
				WithMonitorPort(8080).
				Build()
		}).To(Panic())
	})

	It("should record dispatches when recording is enabled", func() {
		path := filepath.Join(GinkgoT().TempDir(), "run")
		rt := reacto.MakeBuilder().
			WithoutMonitoring().
			WithClock(clock.NewManualClock(0)).
			WithRecording(path).
			Build()
		defer rt.Terminate()

		q := queue.New[int]("Events", 8)
		queue.NewSlot(queue.HandlerFunc[int](func(q *queue.Queue[int]) error {
			rt.Quit()
			return nil
		})).Connect(q.Signal())
		rt.RegisterSource(q, 0)

		q.Push(1)
		Expect(rt.Run()).To(Succeed())

		rt.DataRecorder().Flush()
		var count int
		err := rt.DataRecorder().QueryRow(
			"SELECT COUNT(*) FROM dispatches;").Scan(&count)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(1))
	})
})
