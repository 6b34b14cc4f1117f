package plume

import (
	"sync"

	"github.com/arya-analytics/plume/internal/tree"
)

// PeerStats is an informational snapshot of a single peer's tree counters.
type PeerStats = tree.PeerStats

// counters are the monotonically increasing protocol counters.
type counters struct {
	MessagesGossiped   int
	MessagesReceived   int
	DuplicatesFiltered int
	IHavesReceived     int
	IWantsReceived     int
	Grafts             int
	Prunes             int
}

type stats struct {
	mu sync.Mutex
	counters
}

func (s *stats) add(apply func(*counters)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&s.counters)
}

func (s *stats) snapshot() counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters
}

// Stats is a point-in-time snapshot of a Protocol's counters and component
// state, intended for operational dashboards and metrics exporters.
type Stats struct {
	MessagesGossiped   int
	MessagesReceived   int
	DuplicatesFiltered int
	IHavesReceived     int
	IWantsReceived     int
	Grafts             int
	Prunes             int
	CurrentFanout      int
	EagerPeers         int
	LazyPeers          int
	CacheSize          int
	QueueDepth         int
}

// Stats snapshots the protocol counters along with the current fanout,
// partition sizes, cache size, and outbound queue depth.
func (p *Protocol) Stats() Stats {
	c := p.stats.snapshot()
	return Stats{
		MessagesGossiped:   c.MessagesGossiped,
		MessagesReceived:   c.MessagesReceived,
		DuplicatesFiltered: c.DuplicatesFiltered,
		IHavesReceived:     c.IHavesReceived,
		IWantsReceived:     c.IWantsReceived,
		Grafts:             c.Grafts,
		Prunes:             c.Prunes,
		CurrentFanout:      p.fanout.Fanout(),
		EagerPeers:         p.tree.NumEager(),
		LazyPeers:          p.tree.NumLazy(),
		CacheSize:          p.cache.Len(),
		QueueDepth:         p.queue.Len(),
	}
}
