package fanout

import "github.com/cockroachdb/errors"

type Config struct {
	// Initial is the starting fanout, clamped to [Min, Max].
	Initial int
	// Min and Max bound the fanout under all conditions.
	Min int
	Max int
	// MinSamples is how many delivery outcomes must be observed before an
	// adjustment step is taken.
	MinSamples int
	// NarrowAbove is the delivery success ratio at or above which the
	// fanout steps down by one.
	NarrowAbove float64
	// WidenBelow is the delivery success ratio below which the fanout
	// steps up by one.
	WidenBelow float64
}

func (cfg Config) Merge(def Config) Config {
	if cfg.Initial == 0 {
		cfg.Initial = def.Initial
	}
	if cfg.Min == 0 {
		cfg.Min = def.Min
	}
	if cfg.Max == 0 {
		cfg.Max = def.Max
	}
	if cfg.MinSamples == 0 {
		cfg.MinSamples = def.MinSamples
	}
	if cfg.NarrowAbove == 0 {
		cfg.NarrowAbove = def.NarrowAbove
	}
	if cfg.WidenBelow == 0 {
		cfg.WidenBelow = def.WidenBelow
	}
	return cfg
}

func (cfg Config) Validate() error {
	if cfg.Min > cfg.Max {
		return errors.Newf("fanout: min %d exceeds max %d", cfg.Min, cfg.Max)
	}
	if cfg.WidenBelow > cfg.NarrowAbove {
		return errors.New("fanout: widen ratio exceeds narrow ratio")
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Initial:     4,
		Min:         2,
		Max:         8,
		MinSamples:  16,
		NarrowAbove: 0.95,
		WidenBelow:  0.80,
	}
}

func (cfg Config) clamp(fanout int) int {
	if fanout < cfg.Min {
		return cfg.Min
	}
	if fanout > cfg.Max {
		return cfg.Max
	}
	return fanout
}
