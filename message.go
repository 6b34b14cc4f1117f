package plume

import "github.com/arya-analytics/plume/internal/wire"

// NewGossip builds a GOSSIP message carrying a full payload.
func NewGossip(origin NodeID, id MessageID, payload []byte, ttl int) Message {
	return wire.NewGossip(origin, id, payload, ttl)
}

// NewIHave builds an IHAVE announcement for the given ids.
func NewIHave(origin NodeID, ids []MessageID) Message { return wire.NewIHave(origin, ids) }

// NewIWant builds an IWANT request for the given ids.
func NewIWant(origin NodeID, ids []MessageID) Message { return wire.NewIWant(origin, ids) }

// NewGraft builds a GRAFT request.
func NewGraft(origin NodeID) Message { return wire.NewGraft(origin) }

// NewPrune builds a PRUNE request.
func NewPrune(origin NodeID) Message { return wire.NewPrune(origin) }
