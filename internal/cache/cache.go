// Package cache is a bounded, time-limited store of recently disseminated
// messages. The orchestrator serves IWANT requests from it instead of
// re-deriving payloads from the application layer. Expiry is checked lazily
// on access; no background sweeper is required for correctness.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/arya-analytics/plume/internal/wire"
)

// Entry is a cached message.
type Entry struct {
	ID         wire.MessageID
	Payload    []byte
	Priority   wire.Priority
	Origin     wire.NodeID
	insertedAt time.Time
}

// Cache stores up to MaxSize live entries, evicting oldest-by-insertion
// first. Entries older than TTL behave as absent.
type Cache struct {
	mu      sync.Mutex
	cfg     Config
	entries map[wire.MessageID]*list.Element
	// order holds *Entry values, oldest insertion at the front.
	order *list.List
}

func New(cfg Config) *Cache {
	cfg = cfg.Merge(DefaultConfig())
	return &Cache{
		cfg:     cfg,
		entries: make(map[wire.MessageID]*list.Element),
		order:   list.New(),
	}
}

// Put inserts or overwrites an entry, timestamped now. At capacity, the
// single oldest entry is evicted first.
func (c *Cache) Put(id wire.MessageID, payload []byte, priority wire.Priority, origin wire.NodeID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[id]; ok {
		c.order.Remove(elem)
		delete(c.entries, id)
	}
	if c.order.Len() >= c.cfg.MaxSize {
		c.evictOldest()
	}
	entry := &Entry{
		ID:         id,
		Payload:    payload,
		Priority:   priority,
		Origin:     origin,
		insertedAt: time.Now(),
	}
	c.entries[id] = c.order.PushBack(entry)
}

// Get returns the entry for id if present and not expired. Expired entries
// encountered along the way are removed.
func (c *Cache) Get(id wire.MessageID) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.entries[id]
	if !ok {
		return Entry{}, false
	}
	entry := elem.Value.(*Entry)
	if c.expired(entry) {
		c.order.Remove(elem)
		delete(c.entries, id)
		return Entry{}, false
	}
	return *entry, true
}

// MessageIDs returns the ids of all live entries, for building IHAVE
// announcements. Expired entries are dropped as they are encountered.
func (c *Cache) MessageIDs() []wire.MessageID {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]wire.MessageID, 0, c.order.Len())
	var next *list.Element
	for elem := c.order.Front(); elem != nil; elem = next {
		next = elem.Next()
		entry := elem.Value.(*Entry)
		if c.expired(entry) {
			c.order.Remove(elem)
			delete(c.entries, entry.ID)
			continue
		}
		ids = append(ids, entry.ID)
	}
	return ids
}

// Len returns the number of entries currently held, including any whose TTL
// has elapsed but that have not yet been touched.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cache) expired(entry *Entry) bool {
	return time.Since(entry.insertedAt) > c.cfg.TTL
}

// evictOldest must be called with mu held.
func (c *Cache) evictOldest() {
	front := c.order.Front()
	if front == nil {
		return
	}
	entry := c.order.Remove(front).(*Entry)
	delete(c.entries, entry.ID)
}
