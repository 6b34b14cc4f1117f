// Package fanout decides how many eager peers each message is pushed to.
// Epidemic broadcast reaches full coverage with high probability at a
// fanout proportional to the log of the network size, so the controller
// starts from a configured width, offers a size-aware suggestion, and nudges
// the width up or down from observed delivery success.
package fanout

import (
	"math"
	"sync"

	"github.com/arya-analytics/plume/internal/wire"
)

// Controller holds the current fanout and the delivery window feeding its
// adjustment. All methods are safe for concurrent use.
type Controller struct {
	mu      sync.Mutex
	cfg     Config
	current int
	// Window counters, reset on each adjustment.
	sends     int
	reported  int
	delivered int
}

func New(cfg Config) *Controller {
	cfg = cfg.Merge(DefaultConfig())
	return &Controller{cfg: cfg, current: cfg.clamp(cfg.Initial)}
}

// Fanout returns the current fanout.
func (c *Controller) Fanout() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// ForPriority widens or narrows the current fanout by message priority.
// Critical traffic always goes as wide as allowed.
func (c *Controller) ForPriority(p wire.Priority) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch p {
	case wire.PriorityCritical:
		return c.cfg.Max
	case wire.PriorityHigh:
		return c.cfg.clamp(c.current + 2)
	case wire.PriorityLow:
		return c.cfg.clamp(c.current - 1)
	}
	return c.current
}

// Optimal suggests a fanout of ceil(ln(networkSize)), clamped to the
// configured bounds. Networks of size one or less get the minimum.
func (c *Controller) Optimal(networkSize int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if networkSize <= 1 {
		return c.cfg.Min
	}
	return c.cfg.clamp(int(math.Ceil(math.Log(float64(networkSize)))))
}

// RecordSend notes a push attempt.
func (c *Controller) RecordSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sends++
}

// RecordDelivery notes the outcome of a push attempt.
func (c *Controller) RecordDelivery(success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reported++
	if success {
		c.delivered++
	}
}

// Window reports the send attempts and delivery outcomes observed since
// the last adjustment.
func (c *Controller) Window() (sends, reported, delivered int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sends, c.reported, c.delivered
}

// Adjust applies one proportional correction step from the observed
// delivery ratio: sustained success narrows the fanout to save bandwidth,
// sustained failure widens it. A no-op until MinSamples outcomes have been
// reported. The window resets after each correction.
func (c *Controller) Adjust() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reported < c.cfg.MinSamples {
		return
	}
	ratio := float64(c.delivered) / float64(c.reported)
	switch {
	case ratio >= c.cfg.NarrowAbove:
		c.current = c.cfg.clamp(c.current - 1)
	case ratio < c.cfg.WidenBelow:
		c.current = c.cfg.clamp(c.current + 1)
	}
	c.sends, c.reported, c.delivered = 0, 0, 0
}
