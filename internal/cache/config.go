package cache

import (
	"time"

	"github.com/cockroachdb/errors"
)

type Config struct {
	// MaxSize bounds the number of live entries.
	MaxSize int
	// TTL is how long an entry remains reachable after insertion.
	TTL time.Duration
}

func (cfg Config) Merge(def Config) Config {
	if cfg.MaxSize == 0 {
		cfg.MaxSize = def.MaxSize
	}
	if cfg.TTL == 0 {
		cfg.TTL = def.TTL
	}
	return cfg
}

func (cfg Config) Validate() error {
	if cfg.MaxSize < 0 {
		return errors.New("cache: max size must be positive")
	}
	if cfg.TTL < 0 {
		return errors.New("cache: ttl must be positive")
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		MaxSize: 1000,
		TTL:     5 * time.Minute,
	}
}
