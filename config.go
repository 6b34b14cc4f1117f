package plume

import (
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

// Config assembles the per-component configurations of a Protocol. The
// zero value is usable; every field falls back to the component defaults
// through Merge.
type Config struct {
	// Logger receives protocol-level debug and warning logs.
	Logger *zap.Logger
	// OnMessage receives each newly delivered payload. Optional.
	OnMessage OnMessageFunc
	// TTL is the hop budget assigned to originated gossip.
	TTL int
	// AsyncSend routes outbound traffic through the bounded priority queue
	// drained by Run, instead of sending synchronously.
	AsyncSend bool
	// FlushInterval is how long Run idles when the outbound queue is empty.
	FlushInterval time.Duration

	Filter filter.Config
	Cache  cache.Config
	Queue  queue.Config
	Tree   tree.Config
	Fanout fanout.Config
}

func (cfg Config) Merge(def Config) Config {
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
	if cfg.TTL == 0 {
		cfg.TTL = def.TTL
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = def.FlushInterval
	}
	cfg.Filter = cfg.Filter.Merge(def.Filter)
	cfg.Cache = cfg.Cache.Merge(def.Cache)
	cfg.Queue = cfg.Queue.Merge(def.Queue)
	cfg.Tree = cfg.Tree.Merge(def.Tree)
	cfg.Fanout = cfg.Fanout.Merge(def.Fanout)
	return cfg
}

func (cfg Config) Validate() error {
	if cfg.TTL < 0 {
		return errors.Newf("plume: negative ttl %d", cfg.TTL)
	}
	if err := cfg.Filter.Validate(); err != nil {
		return err
	}
	if err := cfg.Cache.Validate(); err != nil {
		return err
	}
	if err := cfg.Queue.Validate(); err != nil {
		return err
	}
	if err := cfg.Tree.Validate(); err != nil {
		return err
	}
	return cfg.Fanout.Validate()
}

func DefaultConfig() Config {
	return Config{
		Logger:        zap.NewNop(),
		TTL:           wire.DefaultTTL,
		FlushInterval: 5 * time.Millisecond,
		Filter:        filter.DefaultConfig(),
		Cache:         cache.DefaultConfig(),
		Queue:         queue.DefaultConfig(),
		Tree:          tree.DefaultConfig(),
		Fanout:        fanout.DefaultConfig(),
	}
}
