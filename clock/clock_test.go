package clock

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Elapsed", func() {
	It("should report a passed deadline as elapsed", func() {
		Expect(Elapsed(100, 50)).To(BeTrue())
	})

	It("should report the exact deadline as elapsed", func() {
		Expect(Elapsed(100, 100)).To(BeTrue())
	})

	It("should report a future deadline as not elapsed", func() {
		Expect(Elapsed(100, 101)).To(BeFalse())
	})

	It("should survive the counter wrapping", func() {
		near := Ticks(math.MaxUint32 - 10)
		deadline := near + 250 // wraps to 239

		Expect(Elapsed(near, deadline)).To(BeFalse())
		Expect(Elapsed(near+250, deadline)).To(BeTrue())
		Expect(Elapsed(300, deadline)).To(BeTrue())
	})
})

var _ = Describe("Until", func() {
	It("should count down to a future deadline", func() {
		Expect(Until(150, 100)).To(Equal(Ticks(50)))
	})

	It("should return zero for an elapsed deadline", func() {
		Expect(Until(100, 150)).To(Equal(Ticks(0)))
	})

	It("should count across the wrap boundary", func() {
		near := Ticks(math.MaxUint32 - 10)
		Expect(Until(near+250, near)).To(Equal(Ticks(250)))
	})
})

var _ = Describe("ManualClock", func() {
	It("should start at the given tick", func() {
		c := NewManualClock(42)
		Expect(c.Now()).To(Equal(Ticks(42)))
	})

	It("should advance explicitly", func() {
		c := NewManualClock(0)
		c.Advance(250)
		c.Advance(1)
		Expect(c.Now()).To(Equal(Ticks(251)))
	})

	It("should treat sleep as advance", func() {
		c := NewManualClock(10)
		c.Sleep(5)
		Expect(c.Now()).To(Equal(Ticks(15)))
	})

	It("should wrap like any counter", func() {
		c := NewManualClock(Ticks(math.MaxUint32))
		c.Advance(1)
		Expect(c.Now()).To(Equal(Ticks(0)))
	})
})
