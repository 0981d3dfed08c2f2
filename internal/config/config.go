// Package config reads and writes run files for the bioavailability model.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fbio/internal/dynamo"
	"github.com/san-kum/fbio/internal/pbtk"
	"github.com/san-kum/fbio/internal/physiology"
)

const (
	DefaultIntegrator = "rk45"
	DefaultHorizon    = pbtk.DefaultHorizon
	DefaultGridPoints = pbtk.DefaultGridPoints
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Chemical   pbtk.Chemical    `yaml:"chemical"`
	Physiology PhysiologyConfig `yaml:"physiology"`
	Horizon    float64          `yaml:"horizon"`
	GridPoints int              `yaml:"grid_points"`
	Integrator string           `yaml:"integrator"`
	Tolerance  dynamo.Tolerance `yaml:"tolerance"`
}

type PhysiologyConfig struct {
	BodyWeight float64 `yaml:"body_weight"`
}

func DefaultConfig() *Config {
	return &Config{
		Physiology: PhysiologyConfig{BodyWeight: physiology.DefaultBodyWeight},
		Horizon:    DefaultHorizon,
		GridPoints: DefaultGridPoints,
		Integrator: DefaultIntegrator,
		Tolerance:  dynamo.DefaultConfig().Tolerance,
	}
}

// Load reads a run file over the defaults. Unknown keys are rejected so a
// misspelled field cannot silently fall back to its default.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a run file on top of base, e.g. a preset. Keys absent from
// the file keep base's values. base is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cp := *base
	if err := decode(data, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := decode(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Chemical.Validate(); err != nil {
		return err
	}
	if !(c.Horizon > 0) || math.IsInf(c.Horizon, 1) {
		return fmt.Errorf("%w: horizon must be positive and finite, got %g", ErrInvalidConfig, c.Horizon)
	}
	if c.GridPoints < 2 {
		return fmt.Errorf("%w: grid_points must be at least 2, got %d", ErrInvalidConfig, c.GridPoints)
	}
	if !(c.Physiology.BodyWeight > 0) || math.IsInf(c.Physiology.BodyWeight, 1) {
		return fmt.Errorf("%w: body_weight must be positive, got %g", ErrInvalidConfig, c.Physiology.BodyWeight)
	}
	return nil
}

// Individual builds the physiology for the configured body weight.
func (c *Config) Individual() physiology.Physiology {
	return physiology.Standard(c.Physiology.BodyWeight)
}

// Options returns solver options. The integrator is resolved by name
// elsewhere and left nil here.
func (c *Config) Options() pbtk.Options {
	opts := pbtk.DefaultOptions()
	opts.Horizon = c.Horizon
	opts.GridPoints = c.GridPoints
	if c.Tolerance.Rel > 0 || c.Tolerance.Abs > 0 {
		opts.Tolerance = c.Tolerance
	}
	return opts
}
