package plume

// SendFunc hands a wire message to the transport layer for delivery to a
// peer. The return value reports whether the message was accepted for
// transmission, not that the remote peer acknowledged it. SendFunc may
// block on network I/O; the protocol never invokes it while holding an
// internal lock, so a slow peer cannot stall processing for others.
type SendFunc func(peer NodeID, msg Message) bool

// OnMessageFunc receives each newly delivered payload. It is invoked at
// most once per message id for the lifetime of a Protocol instance.
type OnMessageFunc func(payload []byte)
