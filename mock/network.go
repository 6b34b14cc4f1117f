// Package mock wires Protocol instances together in one process, standing
// in for a real transport. Each node's send callback delivers synchronously
// into the receiving node's Process, which makes multi-node dissemination
// directly assertable from a single test.
package mock

import (
	"sync"

	"github.com/arya-analytics/plume"
)

type Network struct {
	mu    sync.RWMutex
	nodes map[plume.NodeID]*plume.Protocol
	down  map[plume.NodeID]bool
	sent  map[plume.NodeID]int
}

func NewNetwork() *Network {
	return &Network{
		nodes: make(map[plume.NodeID]*plume.Protocol),
		down:  make(map[plume.NodeID]bool),
		sent:  make(map[plume.NodeID]int),
	}
}

// New constructs a Protocol joined to the network under the given id.
func (n *Network) New(id plume.NodeID, opts ...plume.Option) (*plume.Protocol, error) {
	p, err := plume.New(id, n.sender(id), opts...)
	if err != nil {
		return nil, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nodes[id] = p
	return p, nil
}

// Node returns the protocol registered under id.
func (n *Network) Node(id plume.NodeID) *plume.Protocol {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.nodes[id]
}

// Connect introduces two nodes to each other's peer trees.
func (n *Network) Connect(a, b plume.NodeID) {
	n.mu.RLock()
	pa, pb := n.nodes[a], n.nodes[b]
	n.mu.RUnlock()
	if pa != nil {
		pa.AddPeer(b)
	}
	if pb != nil {
		pb.AddPeer(a)
	}
}

// ConnectAll joins every registered node to every other.
func (n *Network) ConnectAll() {
	n.mu.RLock()
	ids := make([]plume.NodeID, 0, len(n.nodes))
	for id := range n.nodes {
		ids = append(ids, id)
	}
	n.mu.RUnlock()
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			n.Connect(a, b)
		}
	}
}

// SetDown marks a node as unreachable; sends to it report failure until it
// is brought back up.
func (n *Network) SetDown(id plume.NodeID, down bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.down[id] = down
}

// Sent returns how many messages have been delivered to the given node.
func (n *Network) Sent(id plume.NodeID) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.sent[id]
}

func (n *Network) sender(from plume.NodeID) plume.SendFunc {
	return func(peer plume.NodeID, msg plume.Message) bool {
		n.mu.Lock()
		target, ok := n.nodes[peer]
		if ok && !n.down[peer] {
			n.sent[peer]++
		} else {
			target = nil
		}
		n.mu.Unlock()
		if target == nil {
			return false
		}
		target.Process(from, msg)
		return true
	}
}
