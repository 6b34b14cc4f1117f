package plume_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arya-analytics/plume"
)

var _ = Describe("Message", func() {
	Describe("Validate", func() {
		It("Should accept a well formed gossip message", func() {
			msg := plume.NewGossip("node-a", "m1", []byte("payload"), plume.DefaultTTL)
			Expect(msg.Validate()).To(Succeed())
		})
		It("Should reject a message without an origin", func() {
			msg := plume.NewGossip("", "m1", nil, plume.DefaultTTL)
			Expect(msg.Validate()).ToNot(Succeed())
		})
		It("Should reject a gossip message without an id", func() {
			msg := plume.NewGossip("node-a", "", nil, plume.DefaultTTL)
			Expect(msg.Validate()).ToNot(Succeed())
		})
		It("Should reject an ihave message without ids", func() {
			msg := plume.NewIHave("node-a", nil)
			Expect(msg.Validate()).ToNot(Succeed())
		})
		It("Should reject an iwant message without ids", func() {
			msg := plume.NewIWant("node-a", nil)
			Expect(msg.Validate()).ToNot(Succeed())
		})
		It("Should accept graft and prune messages", func() {
			Expect(plume.NewGraft("node-a").Validate()).To(Succeed())
			Expect(plume.NewPrune("node-a").Validate()).To(Succeed())
		})
		It("Should reject an unknown message type", func() {
			msg := plume.Message{Type: plume.MessageType(42), Origin: "node-a"}
			Expect(msg.Validate()).ToNot(Succeed())
		})
	})
})

var _ = Describe("PriorityFor", func() {
	It("Should map known broadcast categories", func() {
		Expect(plume.PriorityFor("new_block")).To(Equal(plume.PriorityCritical))
		Expect(plume.PriorityFor("settlement")).To(Equal(plume.PriorityHigh))
		Expect(plume.PriorityFor("new_entry")).To(Equal(plume.PriorityNormal))
		Expect(plume.PriorityFor("peer_announce")).To(Equal(plume.PriorityLow))
	})
	It("Should default unrecognized categories to normal", func() {
		Expect(plume.PriorityFor("carrier_pigeon")).To(Equal(plume.PriorityNormal))
	})
	It("Should order critical before high before normal before low", func() {
		Expect(plume.PriorityCritical < plume.PriorityHigh).To(BeTrue())
		Expect(plume.PriorityHigh < plume.PriorityNormal).To(BeTrue())
		Expect(plume.PriorityNormal < plume.PriorityLow).To(BeTrue())
	})
})
