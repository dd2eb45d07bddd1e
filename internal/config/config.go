// Package config gathers every tunable of the game into one record that can
// be read from a YAML file and patched with key=value overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"deep-miner/internal/audio"
	"deep-miner/internal/commerce"
	"deep-miner/internal/feedback"
	"deep-miner/internal/hazard"
	"deep-miner/internal/kinematics"
	"deep-miner/internal/ledger"
	"deep-miner/internal/save"
	"deep-miner/internal/world"

	"gopkg.in/yaml.v3"
)

// Config is the full set of game parameters.
type Config struct {
	// Seed drives world generation. Zero asks the caller to pick one.
	Seed       int64              `yaml:"seed"`
	World      world.Params       `yaml:"world"`
	Kinematics kinematics.Params  `yaml:"kinematics"`
	Ledger     ledger.Params      `yaml:"ledger"`
	Hazard     hazard.Params      `yaml:"hazard"`
	Prices     commerce.Prices    `yaml:"prices"`
	Feedback   feedback.Durations `yaml:"feedback"`
	Save       save.Options       `yaml:"save"`
	Audio      audio.Options      `yaml:"audio"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		World:      world.DefaultParams(),
		Kinematics: kinematics.DefaultParams(),
		Ledger:     ledger.DefaultParams(),
		Hazard:     hazard.DefaultParams(),
		Prices:     commerce.DefaultPrices(),
		Feedback:   feedback.DefaultDurations(),
		Save:       save.DefaultOptions(),
		Audio:      audio.DefaultOptions(),
	}
}

// Validate clamps every section.
func (c *Config) Validate() {
	c.World.Validate()
	c.Kinematics.Validate()
	c.Ledger.Validate()
	c.Hazard.Validate()
	c.Prices.Validate()
	c.Feedback.Validate()
	c.Save.Validate()
	c.Audio.Validate()
}

// Load reads a YAML file on top of the defaults. Keys missing from the file
// keep their default values.
func Load(path string) (Config, error) {
	c := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return DefaultConfig(), fmt.Errorf("%s: %w", path, err)
	}
	c.Validate()
	return c, nil
}

// FromMap returns the defaults patched with overrides.
func FromMap(kv map[string]string) (Config, error) {
	c := DefaultConfig()
	err := c.Apply(kv)
	return c, err
}

// Apply sets dotted keys such as "world.depth" or "prices.cargo.base".
// Each key is applied on its own; a bad key or value is reported and the
// remaining keys are still applied.
func (c *Config) Apply(kv map[string]string) error {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		if err := c.set(k, kv[k]); err != nil {
			errs = append(errs, fmt.Errorf("%s=%s: %w", k, kv[k], err))
		}
	}
	c.Validate()
	return errors.Join(errs...)
}

func (c *Config) set(key, value string) error {
	parts := strings.Split(key, ".")
	for _, p := range parts {
		if p == "" {
			return fmt.Errorf("malformed key")
		}
	}
	// Build {a: {b: value}} with an untagged scalar so YAML resolves the
	// value against the destination field type.
	var node any = &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	for i := len(parts) - 1; i >= 0; i-- {
		node = map[string]any{parts[i]: node}
	}
	doc, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	next := *c
	dec := yaml.NewDecoder(bytes.NewReader(doc))
	dec.KnownFields(true)
	if err := dec.Decode(&next); err != nil {
		return err
	}
	*c = next
	return nil
}

// ParsePairs splits key=value strings.
func ParsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid override %q, expected key=value", kv)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}
