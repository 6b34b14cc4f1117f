// Package plume implements a Plumtree-style epidemic broadcast protocol.
// A Protocol instance disseminates identified, opaque payloads across a
// dynamic peer set: eager peers receive full pushes, lazy peers receive
// IHAVE announcements and pull on demand, and the partition between the two
// self-repairs through GRAFT and PRUNE signals derived from observed
// duplicates and misses. Delivery is eventual, redundant, and best-effort;
// plume never guarantees ordering or exactly-once semantics.
//
// The transport and peer lifecycle live with the caller: a Protocol is
// wired to the network through a single Send callback, and delivers
// received payloads through an OnMessage callback.
package plume

import "github.com/arya-analytics/plume/internal/wire"

type (
	// NodeID uniquely identifies a peer.
	NodeID = wire.NodeID
	// MessageID uniquely identifies a disseminated message.
	MessageID = wire.MessageID
	// Priority governs queue ordering and fanout width.
	Priority = wire.Priority
	// Message is the wire-level tagged union exchanged between peers.
	Message = wire.Message
	// MessageType tags the variant of a Message.
	MessageType = wire.MessageType
)

const (
	PriorityCritical = wire.PriorityCritical
	PriorityHigh     = wire.PriorityHigh
	PriorityNormal   = wire.PriorityNormal
	PriorityLow      = wire.PriorityLow

	MessageGossip = wire.MessageGossip
	MessageIHave  = wire.MessageIHave
	MessageIWant  = wire.MessageIWant
	MessageGraft  = wire.MessageGraft
	MessagePrune  = wire.MessagePrune

	// DefaultTTL is the hop budget assigned to freshly originated gossip.
	DefaultTTL = wire.DefaultTTL
)

// PriorityFor maps an application-level broadcast category, such as
// "new_block" or "settlement", to a Priority. Unrecognized categories map
// to PriorityNormal.
func PriorityFor(category string) Priority { return wire.PriorityFor(category) }
