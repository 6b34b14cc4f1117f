// Package filter answers "has this message id been seen" in O(1) expected
// time with bounded memory. False negatives are impossible; false positives
// are possible and bounded by the configured bit and hash counts. That
// trade-off is deliberate: an exact set would grow without bound under
// sustained traffic.
package filter

import (
	"math"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cockroachdb/errors"
)

// Filter is a mutex-guarded bloom filter over message ids.
type Filter struct {
	mu    sync.Mutex
	bloom *bloom.BloomFilter
}

func New(cfg Config) *Filter {
	cfg = cfg.Merge(DefaultConfig())
	return &Filter{bloom: bloom.New(cfg.Bits, cfg.Hashes)}
}

// Add marks id as seen.
func (f *Filter) Add(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bloom.AddString(id)
}

// Contains reports whether id has (probably) been seen.
func (f *Filter) Contains(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bloom.TestString(id)
}

// Seen marks id as seen and reports whether it had been seen before, as a
// single atomic operation. Two callers racing on the same id observe exactly
// one "not seen".
func (f *Filter) Seen(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bloom.TestAndAddString(id)
}

// Clear resets the filter to empty.
func (f *Filter) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bloom.ClearAll()
}

// FalsePositiveRate estimates the current false positive probability from
// the filter's load. Returns 0 for an empty filter.
func (f *Filter) FalsePositiveRate() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return estimateRate(f.bloom)
}

// Merge unions another filter's bit array into this one. Both filters must
// share the same bit and hash counts.
func (f *Filter) Merge(other *Filter) error {
	other.mu.Lock()
	cp := other.bloom.Copy()
	other.mu.Unlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	return errors.Wrap(f.bloom.Merge(cp), "filter: merge")
}

func estimateRate(b *bloom.BloomFilter) float64 {
	n := float64(b.ApproximatedSize())
	if n == 0 {
		return 0
	}
	k := float64(b.K())
	m := float64(b.Cap())
	return math.Pow(1-math.Exp(-k*n/m), k)
}
