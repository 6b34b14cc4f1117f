// Package tree maintains the Plumtree partition of known peers: an eager
// set that receives full payload pushes and a lazy set that receives only
// IHAVE announcements. Duplicate and missing counters re-balance the two
// sets edge by edge, with no global coordination. The counters only signal;
// the caller decides whether to act, keeping every transition auditable.
package tree

import (
	"sort"
	"sync"
	"time"

	"github.com/arya-analytics/plume/internal/wire"
)

type peer struct {
	duplicates int
	missing    int
	rttSum     time.Duration
	rttCount   int
}

// PeerStats is an informational snapshot of a single peer's counters. RTT
// figures feed dashboards only, never partitioning decisions.
type PeerStats struct {
	Eager      bool
	Duplicates int
	Missing    int
	AvgRTT     time.Duration
}

type Tree struct {
	mu    sync.Mutex
	cfg   Config
	eager map[wire.NodeID]*peer
	lazy  map[wire.NodeID]*peer
}

func New(cfg Config) *Tree {
	cfg = cfg.Merge(DefaultConfig())
	return &Tree{
		cfg:   cfg,
		eager: make(map[wire.NodeID]*peer),
		lazy:  make(map[wire.NodeID]*peer),
	}
}

// AddPeer registers a new peer, preferring the eager set while it has
// capacity, then the lazy set. Returns false if the peer is already known
// or both sets are full.
func (t *Tree) AddPeer(id wire.NodeID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.known(id) {
		return false
	}
	if len(t.eager) < t.cfg.MaxEager {
		t.eager[id] = &peer{}
		return true
	}
	if len(t.lazy) < t.cfg.MaxLazy {
		t.lazy[id] = &peer{}
		return true
	}
	return false
}

// RemovePeer discards the peer and its counters from whichever set holds it.
func (t *Tree) RemovePeer(id wire.NodeID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.known(id) {
		return false
	}
	delete(t.eager, id)
	delete(t.lazy, id)
	return true
}

// Graft promotes a lazy peer to eager. No-op for unknown or already-eager
// peers. Grafts are tree repair and deliberately ignore MaxEager; capacity
// re-balances through subsequent prunes.
func (t *Tree) Graft(id wire.NodeID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.lazy[id]
	if !ok {
		return false
	}
	delete(t.lazy, id)
	p.missing = 0
	t.eager[id] = p
	return true
}

// Prune demotes an eager peer to lazy. No-op for unknown or already-lazy
// peers.
func (t *Tree) Prune(id wire.NodeID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.eager[id]
	if !ok {
		return false
	}
	delete(t.eager, id)
	p.duplicates = 0
	t.lazy[id] = p
	return true
}

// RecordDuplicate increments the peer's duplicate counter and reports true
// exactly when the counter reaches the prune threshold: the edge is
// over-connected and the caller should prune it.
func (t *Tree) RecordDuplicate(id wire.NodeID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.lookup(id)
	if !ok {
		return false
	}
	p.duplicates++
	return p.duplicates == t.cfg.PruneThreshold
}

// RecordMissing increments the peer's missing counter and reports true
// exactly when the counter reaches the graft threshold: the edge is
// under-connected and the caller should graft it.
func (t *Tree) RecordMissing(id wire.NodeID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.lookup(id)
	if !ok {
		return false
	}
	p.missing++
	return p.missing == t.cfg.GraftThreshold
}

// RecordRTT accumulates an observed round trip time for the peer.
func (t *Tree) RecordRTT(id wire.NodeID, rtt time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.lookup(id); ok {
		p.rttSum += rtt
		p.rttCount++
	}
}

// EagerPeers returns the eager set in a stable order.
func (t *Tree) EagerPeers() []wire.NodeID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return sortedKeys(t.eager)
}

// LazyPeers returns the lazy set in a stable order.
func (t *Tree) LazyPeers() []wire.NodeID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return sortedKeys(t.lazy)
}

// IsEager reports whether the peer currently occupies the eager set.
func (t *Tree) IsEager(id wire.NodeID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.eager[id]
	return ok
}

// IsLazy reports whether the peer currently occupies the lazy set.
func (t *Tree) IsLazy(id wire.NodeID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.lazy[id]
	return ok
}

func (t *Tree) NumEager() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.eager)
}

func (t *Tree) NumLazy() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.lazy)
}

// Stats returns the peer's counters, and false for unknown peers.
func (t *Tree) Stats(id wire.NodeID) (PeerStats, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.lookup(id)
	if !ok {
		return PeerStats{}, false
	}
	stats := PeerStats{
		Duplicates: p.duplicates,
		Missing:    p.missing,
	}
	if _, ok := t.eager[id]; ok {
		stats.Eager = true
	}
	if p.rttCount > 0 {
		stats.AvgRTT = p.rttSum / time.Duration(p.rttCount)
	}
	return stats, true
}

// lookup must be called with mu held.
func (t *Tree) lookup(id wire.NodeID) (*peer, bool) {
	if p, ok := t.eager[id]; ok {
		return p, true
	}
	p, ok := t.lazy[id]
	return p, ok
}

// known must be called with mu held.
func (t *Tree) known(id wire.NodeID) bool {
	_, ok := t.lookup(id)
	return ok
}

func sortedKeys(peers map[wire.NodeID]*peer) []wire.NodeID {
	ids := make([]wire.NodeID, 0, len(peers))
	for id := range peers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
