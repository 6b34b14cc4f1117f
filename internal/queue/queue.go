// Package queue buffers outbound per-peer transmissions so higher priority
// traffic is sent first. Ordering is (priority, arrival): within the same
// priority strict FIFO order is preserved via a monotonic sequence number.
// The queue is bounded; a full queue rejects new items rather than growing
// under a slow or malicious peer.
package queue

import (
	"container/heap"
	"sync"

	"github.com/arya-analytics/plume/internal/wire"
)

// Item is a pending transmission to a single peer.
type Item struct {
	ID       wire.MessageID
	Message  wire.Message
	Peer     wire.NodeID
	Priority wire.Priority
	seq      uint64
}

type Queue struct {
	mu    sync.Mutex
	cfg   Config
	items items
	seq   uint64
}

func New(cfg Config) *Queue {
	cfg = cfg.Merge(DefaultConfig())
	return &Queue{cfg: cfg}
}

// Put enqueues a transmission. Returns false without enqueuing when the
// queue is at capacity; the caller must handle the backpressure.
func (q *Queue) Put(id wire.MessageID, msg wire.Message, peer wire.NodeID, priority wire.Priority) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) >= q.cfg.MaxSize {
		return false
	}
	q.seq++
	heap.Push(&q.items, &Item{
		ID:       id,
		Message:  msg,
		Peer:     peer,
		Priority: priority,
		seq:      q.seq,
	})
	return true
}

// Pop dequeues the highest-priority, earliest-enqueued item. The second
// return value is false when the queue is empty.
func (q *Queue) Pop() (Item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Item{}, false
	}
	item := heap.Pop(&q.items).(*Item)
	return *item, true
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

type items []*Item

func (h items) Len() int { return len(h) }

func (h items) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h items) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *items) Push(x interface{}) { *h = append(*h, x.(*Item)) }

func (h *items) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
