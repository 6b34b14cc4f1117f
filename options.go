package plume

import (
	"go.uber.org/zap"

	"github.com/arya-analytics/plume/internal/cache"
	"github.com/arya-analytics/plume/internal/fanout"
	"github.com/arya-analytics/plume/internal/filter"
	"github.com/arya-analytics/plume/internal/queue"
	"github.com/arya-analytics/plume/internal/tree"
)

type (
	// FilterConfig configures the duplicate filter.
	FilterConfig = filter.Config
	// CacheConfig configures the message cache.
	CacheConfig = cache.Config
	// QueueConfig configures the outbound message queue.
	QueueConfig = queue.Config
	// TreeConfig configures the eager/lazy peer tree.
	TreeConfig = tree.Config
	// FanoutConfig configures the adaptive fanout controller.
	FanoutConfig = fanout.Config
)

// Option overrides part of a Protocol's configuration at construction.
type Option func(*Config)

// WithLogger sets the logger for protocol-level logs.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *Config) { cfg.Logger = logger }
}

// WithOnMessage sets the callback invoked for each newly delivered payload.
func WithOnMessage(fn OnMessageFunc) Option {
	return func(cfg *Config) { cfg.OnMessage = fn }
}

// WithTTL overrides the hop budget assigned to originated gossip.
func WithTTL(hops int) Option {
	return func(cfg *Config) { cfg.TTL = hops }
}

// WithAsyncSend routes outbound traffic through the bounded priority queue.
// The caller must run Protocol.Run to drain it.
func WithAsyncSend() Option {
	return func(cfg *Config) { cfg.AsyncSend = true }
}

// WithFilter overrides the duplicate filter configuration.
func WithFilter(c FilterConfig) Option {
	return func(cfg *Config) { cfg.Filter = c }
}

// WithCache overrides the message cache configuration.
func WithCache(c CacheConfig) Option {
	return func(cfg *Config) { cfg.Cache = c }
}

// WithQueue overrides the outbound queue configuration.
func WithQueue(c QueueConfig) Option {
	return func(cfg *Config) { cfg.Queue = c }
}

// WithTree overrides the peer tree configuration.
func WithTree(c TreeConfig) Option {
	return func(cfg *Config) { cfg.Tree = c }
}

// WithFanout overrides the fanout controller configuration.
func WithFanout(c FanoutConfig) Option {
	return func(cfg *Config) { cfg.Fanout = c }
}
