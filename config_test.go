package plume_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arya-analytics/plume"
)

var _ = Describe("Config", func() {
	Describe("Merge", func() {
		It("Should fall back to defaults for unset fields", func() {
			cfg := plume.Config{}.Merge(plume.DefaultConfig())
			Expect(cfg.TTL).To(Equal(plume.DefaultTTL))
			Expect(cfg.Logger).ToNot(BeNil())
			Expect(cfg.Cache.MaxSize).To(Equal(1000))
			Expect(cfg.Fanout.Min).To(Equal(2))
			Expect(cfg.Fanout.Max).To(Equal(8))
		})
		It("Should preserve explicit overrides", func() {
			cfg := plume.Config{TTL: 5, Cache: plume.CacheConfig{MaxSize: 10}}.
				Merge(plume.DefaultConfig())
			Expect(cfg.TTL).To(Equal(5))
			Expect(cfg.Cache.MaxSize).To(Equal(10))
		})
	})
	Describe("Validate", func() {
		It("Should reject inverted fanout bounds", func() {
			_, err := plume.New("node-a",
				func(plume.NodeID, plume.Message) bool { return true },
				plume.WithFanout(plume.FanoutConfig{Min: 9, Max: 3}),
			)
			Expect(err).To(HaveOccurred())
		})
	})
	Describe("New", func() {
		It("Should require a node id", func() {
			_, err := plume.New("", func(plume.NodeID, plume.Message) bool { return true })
			Expect(err).To(HaveOccurred())
		})
		It("Should require a send function", func() {
			_, err := plume.New("node-a", nil)
			Expect(err).To(HaveOccurred())
		})
	})
})
