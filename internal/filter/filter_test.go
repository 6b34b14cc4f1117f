package filter_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arya-analytics/plume/internal/filter"
)

var _ = Describe("Filter", func() {
	var f *filter.Filter
	BeforeEach(func() {
		f = filter.New(filter.Config{Bits: 1 << 12, Hashes: 4})
	})
	Describe("Add + Contains", func() {
		It("Should report an added id as contained", func() {
			f.Add("msg-1")
			Expect(f.Contains("msg-1")).To(BeTrue())
		})
		It("Should not report an id that was never added", func() {
			Expect(f.Contains("msg-1")).To(BeFalse())
		})
		It("Should never produce a false negative", func() {
			for i := 0; i < 500; i++ {
				f.Add(fmt.Sprintf("msg-%d", i))
			}
			for i := 0; i < 500; i++ {
				Expect(f.Contains(fmt.Sprintf("msg-%d", i))).To(BeTrue())
			}
		})
	})
	Describe("Seen", func() {
		It("Should return false on first sight and true afterwards", func() {
			Expect(f.Seen("msg-1")).To(BeFalse())
			Expect(f.Seen("msg-1")).To(BeTrue())
			Expect(f.Contains("msg-1")).To(BeTrue())
		})
	})
	Describe("Clear", func() {
		It("Should forget all previously added ids", func() {
			f.Add("msg-1")
			f.Clear()
			Expect(f.Contains("msg-1")).To(BeFalse())
		})
	})
	Describe("FalsePositiveRate", func() {
		It("Should return zero for an empty filter", func() {
			Expect(f.FalsePositiveRate()).To(BeZero())
		})
		It("Should grow with load", func() {
			f.Add("msg-1")
			low := f.FalsePositiveRate()
			for i := 0; i < 1000; i++ {
				f.Add(fmt.Sprintf("msg-%d", i))
			}
			Expect(f.FalsePositiveRate()).To(BeNumerically(">", low))
			Expect(f.FalsePositiveRate()).To(BeNumerically("<", 1))
		})
	})
	Describe("Merge", func() {
		It("Should union the contents of another filter", func() {
			other := filter.New(filter.Config{Bits: 1 << 12, Hashes: 4})
			other.Add("msg-2")
			f.Add("msg-1")
			Expect(f.Merge(other)).To(Succeed())
			Expect(f.Contains("msg-1")).To(BeTrue())
			Expect(f.Contains("msg-2")).To(BeTrue())
		})
		It("Should fail when filter parameters differ", func() {
			other := filter.New(filter.Config{Bits: 1 << 10, Hashes: 3})
			Expect(f.Merge(other)).ToNot(Succeed())
		})
	})
})
