package queue

import "github.com/cockroachdb/errors"

type Config struct {
	// MaxSize bounds the number of pending transmissions.
	MaxSize int
}

func (cfg Config) Merge(def Config) Config {
	if cfg.MaxSize == 0 {
		cfg.MaxSize = def.MaxSize
	}
	return cfg
}

func (cfg Config) Validate() error {
	if cfg.MaxSize < 0 {
		return errors.New("queue: max size must be positive")
	}
	return nil
}

func DefaultConfig() Config {
	return Config{MaxSize: 1000}
}
