package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/gcfg.v1"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/particlelife/internal/engine"
)

const (
	DefaultParticles = 1024
	DefaultTypes     = 8
	DefaultWidth     = 128.0
	DefaultTicks     = 1000
	DefaultLayout    = LayoutUniform
)

// Placement layouts.
const (
	LayoutUniform = "uniform"
	LayoutNoise   = "noise"
)

// Config describes one particle life run. Field tags serve the YAML, JSON
// and INI (gcfg) encodings.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation" json:"simulation"`
	Physics    PhysicsConfig    `yaml:"physics" json:"physics"`
}

type SimulationConfig struct {
	Particles int     `yaml:"particles" json:"particles" gcfg:"particles"`
	Types     int     `yaml:"types" json:"types" gcfg:"types"`
	Width     float64 `yaml:"width" json:"width" gcfg:"width"`
	Height    float64 `yaml:"height" json:"height" gcfg:"height"`
	Wrap      bool    `yaml:"wrap" json:"wrap" gcfg:"wrap"`
	Seed      int64   `yaml:"seed" json:"seed" gcfg:"seed"`
	Ticks     int     `yaml:"ticks" json:"ticks" gcfg:"ticks"`
	Layout    string  `yaml:"layout" json:"layout" gcfg:"layout"`
	Workers   int     `yaml:"workers" json:"workers" gcfg:"workers"`
}

type PhysicsConfig struct {
	MeanAttraction float64 `yaml:"mean_attraction" json:"mean_attraction" gcfg:"mean-attraction"`
	StdAttraction  float64 `yaml:"std_attraction" json:"std_attraction" gcfg:"std-attraction"`
	MinRadiusLower float64 `yaml:"min_radius_lower" json:"min_radius_lower" gcfg:"min-radius-lower"`
	MinRadiusUpper float64 `yaml:"min_radius_upper" json:"min_radius_upper" gcfg:"min-radius-upper"`
	MaxRadiusLower float64 `yaml:"max_radius_lower" json:"max_radius_lower" gcfg:"max-radius-lower"`
	MaxRadiusUpper float64 `yaml:"max_radius_upper" json:"max_radius_upper" gcfg:"max-radius-upper"`
	Friction       float64 `yaml:"friction" json:"friction" gcfg:"friction"`
}

func DefaultConfig() *Config {
	p := engine.DefaultParams()
	return &Config{
		Simulation: SimulationConfig{
			Particles: DefaultParticles,
			Types:     DefaultTypes,
			Width:     DefaultWidth,
			Height:    DefaultWidth,
			Wrap:      true,
			Ticks:     DefaultTicks,
			Layout:    DefaultLayout,
		},
		Physics: PhysicsConfig{
			MeanAttraction: p.MeanAttraction,
			StdAttraction:  p.StdAttraction,
			MinRadiusLower: p.MinRadiusLower,
			MinRadiusUpper: p.MinRadiusUpper,
			MaxRadiusLower: p.MaxRadiusLower,
			MaxRadiusUpper: p.MaxRadiusUpper,
			Friction:       p.Friction,
		},
	}
}

// Load reads a config file over the defaults. .ini, .gcfg and .conf files
// are parsed as INI; everything else as YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".gcfg", ".conf":
		if err := gcfg.ReadFileInto(cfg, path); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	return cfg, nil
}

// ParseINI reads an INI document over the defaults.
func ParseINI(doc string) (*Config, error) {
	cfg := DefaultConfig()
	if err := gcfg.ReadStringInto(cfg, doc); err != nil {
		return nil, err
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

// Validate checks everything the engine would reject, up front.
func (c *Config) Validate() error {
	s := c.Simulation
	if s.Particles < 0 {
		return fmt.Errorf("config: particle count must be non-negative, got %d", s.Particles)
	}
	if s.Types < 1 || s.Types > engine.MaxTypes {
		return fmt.Errorf("config: %w: got %d", engine.ErrTypeCount, s.Types)
	}
	if _, err := c.World(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if s.Ticks < 0 {
		return fmt.Errorf("config: tick count must be non-negative, got %d", s.Ticks)
	}
	switch s.Layout {
	case "", LayoutUniform, LayoutNoise:
	default:
		return fmt.Errorf("config: unknown layout %q (want %s or %s)", s.Layout, LayoutUniform, LayoutNoise)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) World() (engine.World, error) {
	return engine.NewWorld(c.Simulation.Width, c.Simulation.Height, c.Simulation.Wrap)
}

func (c *Config) Params() engine.Params {
	p := c.Physics
	return engine.Params{
		MeanAttraction: p.MeanAttraction,
		StdAttraction:  p.StdAttraction,
		MinRadiusLower: p.MinRadiusLower,
		MinRadiusUpper: p.MinRadiusUpper,
		MaxRadiusLower: p.MaxRadiusLower,
		MaxRadiusUpper: p.MaxRadiusUpper,
		Friction:       p.Friction,
	}
}

// SetParams copies engine parameters back, e.g. after a control panel
// tweaked them.
func (c *Config) SetParams(p engine.Params) {
	c.Physics = PhysicsConfig{
		MeanAttraction: p.MeanAttraction,
		StdAttraction:  p.StdAttraction,
		MinRadiusLower: p.MinRadiusLower,
		MinRadiusUpper: p.MinRadiusUpper,
		MaxRadiusLower: p.MaxRadiusLower,
		MaxRadiusUpper: p.MaxRadiusUpper,
		Friction:       p.Friction,
	}
}

// Clone returns a deep copy; presets are handed out through it.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// PhysicsKeys lists the keys accepted by PhysicsConfig.Set, in field order.
func PhysicsKeys() []string {
	return []string{
		"mean_attraction", "std_attraction",
		"min_radius_lower", "min_radius_upper",
		"max_radius_lower", "max_radius_upper",
		"friction",
	}
}

// Set assigns a physics parameter by its YAML key.
func (p *PhysicsConfig) Set(key string, v float64) error {
	switch key {
	case "mean_attraction":
		p.MeanAttraction = v
	case "std_attraction":
		p.StdAttraction = v
	case "min_radius_lower":
		p.MinRadiusLower = v
	case "min_radius_upper":
		p.MinRadiusUpper = v
	case "max_radius_lower":
		p.MaxRadiusLower = v
	case "max_radius_upper":
		p.MaxRadiusUpper = v
	case "friction":
		p.Friction = v
	default:
		return fmt.Errorf("config: unknown physics parameter %q", key)
	}
	return nil
}
