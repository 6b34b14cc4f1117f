package tree

import "github.com/cockroachdb/errors"

type Config struct {
	// MaxEager bounds how many peers receive full pushes.
	MaxEager int
	// MaxLazy bounds how many peers receive IHAVE announcements only.
	MaxLazy int
	// PruneThreshold is the duplicate count at which an eager edge is
	// signaled for demotion.
	PruneThreshold int
	// GraftThreshold is the missing count at which a lazy edge is signaled
	// for promotion.
	GraftThreshold int
}

func (cfg Config) Merge(def Config) Config {
	if cfg.MaxEager == 0 {
		cfg.MaxEager = def.MaxEager
	}
	if cfg.MaxLazy == 0 {
		cfg.MaxLazy = def.MaxLazy
	}
	if cfg.PruneThreshold == 0 {
		cfg.PruneThreshold = def.PruneThreshold
	}
	if cfg.GraftThreshold == 0 {
		cfg.GraftThreshold = def.GraftThreshold
	}
	return cfg
}

func (cfg Config) Validate() error {
	if cfg.MaxEager < 0 || cfg.MaxLazy < 0 {
		return errors.New("tree: peer capacities must be positive")
	}
	if cfg.PruneThreshold < 0 || cfg.GraftThreshold < 0 {
		return errors.New("tree: thresholds must be positive")
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		MaxEager:       6,
		MaxLazy:        30,
		PruneThreshold: 3,
		GraftThreshold: 3,
	}
}
