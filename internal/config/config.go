// Package config loads scenario descriptions from YAML and builds
// simulation worlds from them.
package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/chargesim/internal/world"
)

const (
	DefaultDt    = 1.0 / 60
	DefaultTicks = 600
	DefaultSeed  = 1
)

var (
	ErrUnknownKind    = errors.New("config: unknown body kind")
	ErrBadRadius      = errors.New("config: radius must be positive")
	ErrBadPosition    = errors.New("config: position must be finite")
	ErrOffsetBound    = errors.New("config: offset outside electron bound")
	ErrInsulatorState = errors.New("config: insulator cannot carry an offset or be grounded")
	ErrConductorPaint = errors.New("config: conductor cannot carry painted charges")
)

// Config describes one simulation scenario.
type Config struct {
	Name   string       `yaml:"name"`
	Dt     float64      `yaml:"dt"`
	Ticks  int          `yaml:"ticks"`
	Seed   int64        `yaml:"seed"`
	Bodies []BodyConfig `yaml:"bodies"`
}

// BodyConfig describes one body. Kind-specific fields are validated at
// build time.
type BodyConfig struct {
	Kind      string       `yaml:"kind"`
	X         float64      `yaml:"x"`
	Y         float64      `yaml:"y"`
	Radius    float64      `yaml:"radius"`
	Offset    int          `yaml:"offset,omitempty"`
	Grounded  bool         `yaml:"grounded,omitempty"`
	StaticPos [][2]float64 `yaml:"static_pos,omitempty"`
	StaticNeg [][2]float64 `yaml:"static_neg,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:  "default",
		Dt:    DefaultDt,
		Ticks: DefaultTicks,
		Seed:  DefaultSeed,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildWorld validates the scenario and constructs a world, drawing all
// layout phases from rng.
func (c *Config) BuildWorld(rng *rand.Rand) (*world.World, error) {
	w := world.New()
	for i, bc := range c.Bodies {
		b, err := bc.build(rng)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		w.Bodies = append(w.Bodies, b)
	}
	return w, nil
}

func (bc BodyConfig) build(rng *rand.Rand) (world.Body, error) {
	if bc.Radius <= 0 {
		return nil, fmt.Errorf("%w, got %g", ErrBadRadius, bc.Radius)
	}
	pos := world.Vec2{X: bc.X, Y: bc.Y}
	if !pos.IsValid() {
		return nil, fmt.Errorf("%w, got (%g, %g)", ErrBadPosition, bc.X, bc.Y)
	}

	switch bc.Kind {
	case "conductor":
		if len(bc.StaticPos) > 0 || len(bc.StaticNeg) > 0 {
			return nil, ErrConductorPaint
		}
		if bc.Offset > world.DefaultElectronCount || bc.Offset < -world.DefaultElectronCount {
			return nil, fmt.Errorf("%w: %d", ErrOffsetBound, bc.Offset)
		}
		return world.NewConductor(pos, bc.Radius, bc.Offset, bc.Grounded, rng), nil

	case "insulator":
		if bc.Offset != 0 || bc.Grounded {
			return nil, ErrInsulatorState
		}
		in := world.NewInsulator(pos, bc.Radius)
		for _, p := range bc.StaticPos {
			in.PaintPos(world.Vec2{X: p[0], Y: p[1]})
		}
		for _, p := range bc.StaticNeg {
			in.PaintNeg(world.Vec2{X: p[0], Y: p[1]})
		}
		return in, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, bc.Kind)
	}
}
