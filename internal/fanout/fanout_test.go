package fanout_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arya-analytics/plume/internal/fanout"
	"github.com/arya-analytics/plume/internal/wire"
)

var _ = Describe("Controller", func() {
	var c *fanout.Controller
	BeforeEach(func() {
		c = fanout.New(fanout.Config{Initial: 4, Min: 2, Max: 8, MinSamples: 4})
	})
	Describe("ForPriority", func() {
		It("Should go as wide as allowed for critical traffic", func() {
			Expect(c.ForPriority(wire.PriorityCritical)).To(Equal(8))
		})
		It("Should widen high priority traffic by two", func() {
			Expect(c.ForPriority(wire.PriorityHigh)).To(Equal(6))
		})
		It("Should leave normal traffic at the current fanout", func() {
			Expect(c.ForPriority(wire.PriorityNormal)).To(Equal(4))
		})
		It("Should narrow low priority traffic by one", func() {
			Expect(c.ForPriority(wire.PriorityLow)).To(Equal(3))
		})
		It("Should never drop below the minimum", func() {
			narrow := fanout.New(fanout.Config{Initial: 2, Min: 2, Max: 8})
			Expect(narrow.ForPriority(wire.PriorityLow)).To(Equal(2))
		})
	})
	Describe("Optimal", func() {
		It("Should return the minimum for trivial networks", func() {
			Expect(c.Optimal(0)).To(Equal(2))
			Expect(c.Optimal(1)).To(Equal(2))
		})
		It("Should approximate ceil(ln(n))", func() {
			Expect(c.Optimal(20)).To(Equal(3))
			Expect(c.Optimal(150)).To(Equal(6))
		})
		It("Should respect the upper bound on large networks", func() {
			Expect(c.Optimal(1_000_000)).To(Equal(8))
		})
	})
	Describe("Adjust", func() {
		It("Should not adjust before enough outcomes are observed", func() {
			c.RecordDelivery(false)
			c.Adjust()
			Expect(c.Fanout()).To(Equal(4))
		})
		It("Should widen the fanout under sustained failure", func() {
			for i := 0; i < 4; i++ {
				c.RecordSend()
				c.RecordDelivery(false)
			}
			sends, reported, delivered := c.Window()
			Expect(sends).To(Equal(4))
			Expect(reported).To(Equal(4))
			Expect(delivered).To(BeZero())
			c.Adjust()
			Expect(c.Fanout()).To(Equal(5))
			sends, reported, delivered = c.Window()
			Expect(sends + reported + delivered).To(BeZero())
		})
		It("Should narrow the fanout under sustained success", func() {
			for i := 0; i < 4; i++ {
				c.RecordSend()
				c.RecordDelivery(true)
			}
			c.Adjust()
			Expect(c.Fanout()).To(Equal(3))
		})
		It("Should hold steady in the middle band", func() {
			for i := 0; i < 8; i++ {
				c.RecordDelivery(i%8 != 0)
			}
			c.Adjust()
			Expect(c.Fanout()).To(Equal(4))
		})
		It("Should never exceed the configured bounds", func() {
			for round := 0; round < 20; round++ {
				for i := 0; i < 4; i++ {
					c.RecordDelivery(false)
				}
				c.Adjust()
			}
			Expect(c.Fanout()).To(Equal(8))
		})
	})
})
