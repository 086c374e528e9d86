// Package config loads trisect settings from TOML.
//
// A file only needs the keys it changes; everything else keeps the value
// from Default. Unknown keys are an error so a typo does not silently fall
// back to a default.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
)

// Strategy names accepted in [index] strategy.
const (
	StrategyOctree = "octree"
	StrategyBrute  = "brute"
	StrategyRtree  = "rtree"
)

// Strategies lists the accepted strategy names in display order.
var Strategies = []string{StrategyOctree, StrategyBrute, StrategyRtree}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Duration is a time.Duration written as a string ("5s", "250ms") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// IndexConfig selects and tunes the spatial index.
type IndexConfig struct {
	Strategy   string `toml:"strategy"`
	MaxObjects int    `toml:"max_objects"` // octree: leaf capacity before a split
	MaxDepth   int    `toml:"max_depth"`   // octree: split depth limit
	Workers    int    `toml:"workers"`     // octree: concurrent leaf scans
}

// OutputConfig controls what the CLI prints.
type OutputConfig struct {
	Pairs bool `toml:"pairs"`
	Dump  bool `toml:"dump"`
	Stats bool `toml:"stats"`
}

// Config is the full set of settings.
type Config struct {
	Index   IndexConfig  `toml:"index"`
	Output  OutputConfig `toml:"output"`
	Timeout Duration     `toml:"timeout"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Index: IndexConfig{
			Strategy:   StrategyOctree,
			MaxObjects: 8,
			MaxDepth:   10,
			Workers:    1,
		},
		Timeout: Duration{30 * time.Second},
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}

// Parse is Load for an in-memory document.
func Parse(doc string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(doc, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := lo.Map(keys, func(k toml.Key, _ int) string { return k.String() })
	return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(names, ", "))
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	if !lo.Contains(Strategies, c.Index.Strategy) {
		return fmt.Errorf("%w: strategy %q (want one of %s)", ErrInvalid, c.Index.Strategy, strings.Join(Strategies, ", "))
	}
	if c.Index.MaxObjects < 1 {
		return fmt.Errorf("%w: max_objects %d < 1", ErrInvalid, c.Index.MaxObjects)
	}
	if c.Index.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth %d < 0", ErrInvalid, c.Index.MaxDepth)
	}
	if c.Index.Workers < 1 {
		return fmt.Errorf("%w: workers %d < 1", ErrInvalid, c.Index.Workers)
	}
	if c.Timeout.Duration < 0 {
		return fmt.Errorf("%w: timeout %s is negative", ErrInvalid, c.Timeout)
	}
	return nil
}
