// Package wire defines the identifiers, priorities, and message kinds
// exchanged between peers. Everything above the transport speaks in these
// types; everything below them is opaque bytes.
package wire

// NodeID uniquely identifies a peer. IDs are assigned by the connection
// layer and are opaque to the protocol.
type NodeID string

// MessageID uniquely identifies a disseminated message. IDs are generated
// by the originator; two messages with the same ID are treated as identical
// regardless of payload.
type MessageID string
