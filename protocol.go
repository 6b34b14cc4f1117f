package plume

import (
	"context"
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/arya-analytics/plume/internal/cache"
	"github.com/arya-analytics/plume/internal/fanout"
	"github.com/arya-analytics/plume/internal/filter"
	"github.com/arya-analytics/plume/internal/queue"
	"github.com/arya-analytics/plume/internal/tree"
	"github.com/arya-analytics/plume/internal/wire"
)

// Protocol is a single node's view of the broadcast overlay. It owns the
// duplicate filter, message cache, outbound queue, peer tree, and fanout
// controller, and is the only component that mutates them. Safe for
// concurrent use from any number of peer-handling goroutines.
type Protocol struct {
	Config
	nodeID NodeID
	send   SendFunc

	filter *filter.Rotating
	cache  *cache.Cache
	queue  *queue.Queue
	tree   *tree.Tree
	fanout *fanout.Controller

	stats stats
}

// New constructs a Protocol for the given node, wired to the transport
// through send. Component configurations fall back to defaults; see the
// With* options.
func New(nodeID NodeID, send SendFunc, opts ...Option) (*Protocol, error) {
	if nodeID == "" {
		return nil, errors.New("plume: node id required")
	}
	if send == nil {
		return nil, errors.New("plume: send function required")
	}
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg = cfg.Merge(DefaultConfig())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Protocol{
		Config: cfg,
		nodeID: nodeID,
		send:   send,
		filter: filter.NewRotating(cfg.Filter),
		cache:  cache.New(cfg.Cache),
		queue:  queue.New(cfg.Queue),
		tree:   tree.New(cfg.Tree),
		fanout: fanout.New(cfg.Fanout),
	}, nil
}

// NodeID returns the local node identifier.
func (p *Protocol) NodeID() NodeID { return p.nodeID }

// AddPeer registers a peer with the tree manager, preferring the eager set
// while it has capacity.
func (p *Protocol) AddPeer(id NodeID) bool {
	added := p.tree.AddPeer(id)
	if added {
		p.Logger.Debug("peer added",
			zap.String("peer", string(id)),
			zap.Int("eager", p.tree.NumEager()),
			zap.Int("lazy", p.tree.NumLazy()),
		)
	}
	return added
}

// RemovePeer discards a peer and its counters.
func (p *Protocol) RemovePeer(id NodeID) bool { return p.tree.RemovePeer(id) }

// PeerStats returns the tree manager's counters for a peer.
func (p *Protocol) PeerStats(id NodeID) (PeerStats, bool) { return p.tree.Stats(id) }

// RecordRTT feeds an observed round trip time for a peer into its stats.
// Informational only; never affects partitioning.
func (p *Protocol) RecordRTT(id NodeID, rtt time.Duration) { p.tree.RecordRTT(id, rtt) }

// Gossip originates a message: marks it seen, caches it, pushes it to a
// priority-dependent number of eager peers, and announces it to every lazy
// peer. Returns the number of peers the message was sent or announced to.
// Originating an id that has already been disseminated is a no-op returning
// zero.
func (p *Protocol) Gossip(id MessageID, payload []byte, priority Priority) int {
	if p.filter.Seen(string(id)) {
		p.Logger.Debug("origination skipped, id already seen", zap.String("id", string(id)))
		return 0
	}
	p.cache.Put(id, payload, priority, p.nodeID)
	p.stats.add(func(c *counters) { c.MessagesGossiped++ })

	msg := wire.NewGossip(p.nodeID, id, payload, p.TTL)
	count := p.push(msg, priority)
	count += p.announce(id)
	p.fanout.Adjust()

	p.Logger.Debug("gossip originated",
		zap.String("id", string(id)),
		zap.Stringer("priority", priority),
		zap.Int("peers", count),
	)
	return count
}

// Process dispatches a wire message received from a peer. Returns false
// when the message is structurally invalid or rejected as a duplicate; a
// false return never mutates protocol state beyond duplicate accounting.
func (p *Protocol) Process(sender NodeID, msg Message) bool {
	if err := msg.Validate(); err != nil {
		p.Logger.Warn("rejecting invalid wire message",
			zap.String("sender", string(sender)),
			zap.Error(err),
		)
		return false
	}
	switch msg.Type {
	case wire.MessageGossip:
		return p.processGossip(sender, msg)
	case wire.MessageIHave:
		return p.processIHave(sender, msg)
	case wire.MessageIWant:
		return p.processIWant(sender, msg)
	case wire.MessageGraft:
		p.stats.add(func(c *counters) { c.Grafts++ })
		p.tree.Graft(sender)
		return true
	case wire.MessagePrune:
		p.stats.add(func(c *counters) { c.Prunes++ })
		p.tree.Prune(sender)
		return true
	}
	return false
}

func (p *Protocol) processGossip(sender NodeID, msg Message) bool {
	if p.filter.Seen(string(msg.ID)) {
		p.stats.add(func(c *counters) { c.DuplicatesFiltered++ })
		if p.tree.RecordDuplicate(sender) {
			p.tree.Prune(sender)
			p.transmit(sender, wire.NewPrune(p.nodeID), wire.PriorityNormal)
			p.Logger.Debug("pruned redundant eager peer", zap.String("peer", string(sender)))
		}
		return false
	}

	p.cache.Put(msg.ID, msg.Payload, wire.PriorityNormal, msg.Origin)
	p.stats.add(func(c *counters) { c.MessagesReceived++ })
	if p.OnMessage != nil {
		p.OnMessage(msg.Payload)
	}

	// Forward one hop down the tree, dropping the message once its hop
	// budget is spent, and lazily announce it so pruned branches can pull.
	if msg.TTL > 1 {
		fwd := msg
		fwd.TTL--
		p.push(fwd, wire.PriorityNormal, sender, msg.Origin)
	}
	p.announce(msg.ID, sender)
	p.fanout.Adjust()
	return true
}

func (p *Protocol) processIHave(sender NodeID, msg Message) bool {
	p.stats.add(func(c *counters) { c.IHavesReceived++ })

	missing := make([]MessageID, 0, len(msg.IDs))
	for _, id := range msg.IDs {
		if _, ok := p.cache.Get(id); ok {
			continue
		}
		if p.filter.Contains(string(id)) {
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return true
	}

	// A lazy peer that keeps advertising content we never received eagerly
	// marks an under-connected edge.
	if p.tree.IsLazy(sender) && p.tree.RecordMissing(sender) {
		p.tree.Graft(sender)
		p.transmit(sender, wire.NewGraft(p.nodeID), wire.PriorityNormal)
		p.Logger.Debug("grafted lazy peer", zap.String("peer", string(sender)))
	}

	p.transmit(sender, wire.NewIWant(p.nodeID, missing), wire.PriorityNormal)
	return true
}

func (p *Protocol) processIWant(sender NodeID, msg Message) bool {
	p.stats.add(func(c *counters) { c.IWantsReceived++ })
	for _, id := range msg.IDs {
		entry, ok := p.cache.Get(id)
		if !ok {
			// Not held; the peer will ask elsewhere or wait for the next
			// announcement.
			continue
		}
		p.transmit(sender, wire.NewGossip(entry.Origin, id, entry.Payload, p.TTL), entry.Priority)
	}
	return true
}

// push sends a GOSSIP to a priority-dependent number of eager peers,
// excluding any listed ids. Peer ids are copied out of the tree before any
// send, so no component lock is held across transport calls.
func (p *Protocol) push(msg Message, priority Priority, exclude ...NodeID) int {
	eager := p.tree.EagerPeers()
	candidates := eager[:0:0]
	for _, id := range eager {
		if !contains(exclude, id) {
			candidates = append(candidates, id)
		}
	}
	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	width := p.fanout.ForPriority(priority)
	if width > len(candidates) {
		width = len(candidates)
	}
	count := 0
	for _, peer := range candidates[:width] {
		if p.transmit(peer, msg, priority) {
			count++
		}
	}
	return count
}

// announce sends an IHAVE for id to every lazy peer except those excluded.
func (p *Protocol) announce(id MessageID, exclude ...NodeID) int {
	count := 0
	for _, peer := range p.tree.LazyPeers() {
		if contains(exclude, peer) {
			continue
		}
		if p.transmit(peer, wire.NewIHave(p.nodeID, []MessageID{id}), wire.PriorityLow) {
			count++
		}
	}
	return count
}

// transmit hands one message to the transport, either synchronously or via
// the outbound queue. GOSSIP outcomes feed the fanout controller; transport
// failures are recorded, never retried here.
func (p *Protocol) transmit(peer NodeID, msg Message, priority Priority) bool {
	if p.AsyncSend {
		if p.queue.Put(msg.ID, msg, peer, priority) {
			return true
		}
		if msg.Type == wire.MessageGossip {
			p.fanout.RecordDelivery(false)
		}
		p.Logger.Warn("outbound queue full, dropping message",
			zap.String("peer", string(peer)),
			zap.Stringer("type", msg.Type),
		)
		return false
	}
	if msg.Type == wire.MessageGossip {
		p.fanout.RecordSend()
	}
	ok := p.send(peer, msg)
	if msg.Type == wire.MessageGossip {
		p.fanout.RecordDelivery(ok)
	}
	return ok
}

// Run drains the outbound queue, invoking the transport outside all
// component locks. Only meaningful with WithAsyncSend; returns once ctx is
// done.
func (p *Protocol) Run(ctx context.Context) error {
	if !p.AsyncSend {
		return errors.New("plume: async send not enabled")
	}
	for {
		item, ok := p.queue.Pop()
		if !ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.FlushInterval):
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if item.Message.Type == wire.MessageGossip {
			p.fanout.RecordSend()
			p.fanout.RecordDelivery(p.send(item.Peer, item.Message))
			continue
		}
		p.send(item.Peer, item.Message)
	}
}

func contains(ids []NodeID, id NodeID) bool {
	for _, other := range ids {
		if other == id {
			return true
		}
	}
	return false
}
