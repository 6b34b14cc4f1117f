package filter

import (
	"time"

	"github.com/cockroachdb/errors"
)

type Config struct {
	// Bits is the size of the bloom filter bit array.
	Bits uint
	// Hashes is the number of hash functions applied per id.
	Hashes uint
	// Interval is how often a Rotating filter retires its oldest
	// generation. Ignored by the plain Filter.
	Interval time.Duration
}

func (cfg Config) Merge(def Config) Config {
	if cfg.Bits == 0 {
		cfg.Bits = def.Bits
	}
	if cfg.Hashes == 0 {
		cfg.Hashes = def.Hashes
	}
	if cfg.Interval == 0 {
		cfg.Interval = def.Interval
	}
	return cfg
}

func (cfg Config) Validate() error {
	if cfg.Bits == 0 {
		return errors.New("filter: bits must be positive")
	}
	if cfg.Hashes == 0 {
		return errors.New("filter: hashes must be positive")
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Bits:     1 << 18,
		Hashes:   5,
		Interval: 10 * time.Minute,
	}
}
