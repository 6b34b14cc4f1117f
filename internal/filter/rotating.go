package filter

import (
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
)

// Rotating wraps two bloom filter generations, an active one that receives
// writes and a retiring one that still answers reads. Once per Interval the
// retiring generation is discarded and the active one takes its place. Ids
// older than two intervals are forgotten; a duplicate of a genuinely old
// message is cheap to re-deliver once, so this bounds memory at no real
// cost.
type Rotating struct {
	mu        sync.Mutex
	cfg       Config
	active    *bloom.BloomFilter
	retiring  *bloom.BloomFilter
	rotatedAt time.Time
}

func NewRotating(cfg Config) *Rotating {
	cfg = cfg.Merge(DefaultConfig())
	return &Rotating{
		cfg:       cfg,
		active:    bloom.New(cfg.Bits, cfg.Hashes),
		rotatedAt: time.Now(),
	}
}

// rotateIfDue must be called with mu held.
func (r *Rotating) rotateIfDue() {
	elapsed := time.Since(r.rotatedAt)
	if elapsed < r.cfg.Interval {
		return
	}
	if elapsed >= 2*r.cfg.Interval {
		// The active generation itself is stale. Start over.
		r.retiring = nil
	} else {
		r.retiring = r.active
	}
	r.active = bloom.New(r.cfg.Bits, r.cfg.Hashes)
	r.rotatedAt = time.Now()
}

// Add marks id as seen in the active generation.
func (r *Rotating) Add(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rotateIfDue()
	r.active.AddString(id)
}

// Contains checks both generations, so ids seen just before a rotation are
// not forgotten within one rotation window.
func (r *Rotating) Contains(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rotateIfDue()
	return r.contains(id)
}

// Seen atomically checks both generations and records id in the active one.
func (r *Rotating) Seen(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rotateIfDue()
	seen := r.contains(id)
	r.active.AddString(id)
	return seen
}

func (r *Rotating) contains(id string) bool {
	if r.active.TestString(id) {
		return true
	}
	return r.retiring != nil && r.retiring.TestString(id)
}

// Clear resets both generations.
func (r *Rotating) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active.ClearAll()
	r.retiring = nil
	r.rotatedAt = time.Now()
}

// FalsePositiveRate estimates the false positive probability of the active
// generation.
func (r *Rotating) FalsePositiveRate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return estimateRate(r.active)
}
