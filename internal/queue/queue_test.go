package queue_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arya-analytics/plume/internal/queue"
	"github.com/arya-analytics/plume/internal/wire"
)

func gossip(id wire.MessageID) wire.Message {
	return wire.NewGossip("node-a", id, nil, wire.DefaultTTL)
}

var _ = Describe("Queue", func() {
	var q *queue.Queue
	BeforeEach(func() {
		q = queue.New(queue.Config{MaxSize: 10})
	})
	It("Should return false when popping an empty queue", func() {
		_, ok := q.Pop()
		Expect(ok).To(BeFalse())
	})
	It("Should dequeue in priority order", func() {
		Expect(q.Put("low", gossip("low"), "node-b", wire.PriorityLow)).To(BeTrue())
		Expect(q.Put("critical", gossip("critical"), "node-b", wire.PriorityCritical)).To(BeTrue())
		Expect(q.Put("normal", gossip("normal"), "node-b", wire.PriorityNormal)).To(BeTrue())
		for _, want := range []wire.MessageID{"critical", "normal", "low"} {
			item, ok := q.Pop()
			Expect(ok).To(BeTrue())
			Expect(item.ID).To(Equal(want))
		}
	})
	It("Should preserve FIFO order within a priority", func() {
		Expect(q.Put("first", gossip("first"), "node-b", wire.PriorityNormal)).To(BeTrue())
		Expect(q.Put("second", gossip("second"), "node-b", wire.PriorityNormal)).To(BeTrue())
		item, _ := q.Pop()
		Expect(item.ID).To(Equal(wire.MessageID("first")))
		item, _ = q.Pop()
		Expect(item.ID).To(Equal(wire.MessageID("second")))
	})
	It("Should reject puts beyond capacity without changing contents", func() {
		small := queue.New(queue.Config{MaxSize: 3})
		for i := 0; i < 3; i++ {
			id := wire.MessageID(fmt.Sprintf("m%d", i))
			Expect(small.Put(id, gossip(id), "node-b", wire.PriorityNormal)).To(BeTrue())
		}
		Expect(small.Put("m3", gossip("m3"), "node-b", wire.PriorityCritical)).To(BeFalse())
		Expect(small.Len()).To(Equal(3))
		item, _ := small.Pop()
		Expect(item.ID).To(Equal(wire.MessageID("m0")))
	})
})
