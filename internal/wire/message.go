package wire

import (
	"time"

	"github.com/cockroachdb/errors"
)

// MessageType tags the variant of a Message.
type MessageType uint8

const (
	// MessageGossip carries a full payload to an eager peer.
	MessageGossip MessageType = iota + 1
	// MessageIHave announces possession of message IDs to a lazy peer.
	MessageIHave
	// MessageIWant requests full payloads for message IDs.
	MessageIWant
	// MessageGraft asks the receiver to promote the sender to its eager set.
	MessageGraft
	// MessagePrune asks the receiver to demote the sender to its lazy set.
	MessagePrune
)

func (t MessageType) String() string {
	switch t {
	case MessageGossip:
		return "gossip"
	case MessageIHave:
		return "ihave"
	case MessageIWant:
		return "iwant"
	case MessageGraft:
		return "graft"
	case MessagePrune:
		return "prune"
	}
	return "invalid"
}

// DefaultTTL is the hop budget assigned to a freshly originated GOSSIP.
const DefaultTTL = 3

// Message is the tagged union exchanged between peers. Which fields are
// required depends on Type; Validate enforces the per-variant field sets
// before a message reaches dispatch.
type Message struct {
	Type      MessageType
	Origin    NodeID
	Timestamp time.Time

	// GOSSIP only.
	ID      MessageID
	Payload []byte
	TTL     int

	// IHAVE and IWANT only.
	IDs []MessageID
}

// Validate rejects structurally invalid messages. A message that fails
// validation must not mutate any protocol state.
func (m Message) Validate() error {
	if m.Origin == "" {
		return errors.New("wire: message origin required")
	}
	switch m.Type {
	case MessageGossip:
		if m.ID == "" {
			return errors.New("wire: gossip message id required")
		}
		if m.TTL < 0 {
			return errors.Newf("wire: negative ttl %d", m.TTL)
		}
	case MessageIHave, MessageIWant:
		if len(m.IDs) == 0 {
			return errors.Newf("wire: %s requires at least one message id", m.Type)
		}
	case MessageGraft, MessagePrune:
	default:
		return errors.Newf("wire: unknown message type %d", m.Type)
	}
	return nil
}

// NewGossip builds a GOSSIP message carrying a full payload.
func NewGossip(origin NodeID, id MessageID, payload []byte, ttl int) Message {
	return Message{
		Type:      MessageGossip,
		Origin:    origin,
		Timestamp: time.Now(),
		ID:        id,
		Payload:   payload,
		TTL:       ttl,
	}
}

// NewIHave builds an IHAVE announcement for the given ids.
func NewIHave(origin NodeID, ids []MessageID) Message {
	return Message{Type: MessageIHave, Origin: origin, Timestamp: time.Now(), IDs: ids}
}

// NewIWant builds an IWANT request for the given ids.
func NewIWant(origin NodeID, ids []MessageID) Message {
	return Message{Type: MessageIWant, Origin: origin, Timestamp: time.Now(), IDs: ids}
}

// NewGraft builds a GRAFT request.
func NewGraft(origin NodeID) Message {
	return Message{Type: MessageGraft, Origin: origin, Timestamp: time.Now()}
}

// NewPrune builds a PRUNE request.
func NewPrune(origin NodeID) Message {
	return Message{Type: MessagePrune, Origin: origin, Timestamp: time.Now()}
}
