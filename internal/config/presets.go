package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"small": {
		Simulation: SimulationConfig{Particles: 300, Types: 4, Width: 64, Height: 64, Wrap: true, Ticks: 500, Layout: LayoutUniform},
		Physics:    PhysicsConfig{MeanAttraction: 0, StdAttraction: 0.04, MinRadiusLower: 0, MinRadiusUpper: 6, MaxRadiusLower: 6, MaxRadiusUpper: 20, Friction: 0.05},
	},
	"dense": {
		Simulation: SimulationConfig{Particles: 4096, Types: 8, Width: 160, Height: 160, Wrap: true, Ticks: 1000, Layout: LayoutUniform},
		Physics:    PhysicsConfig{MeanAttraction: 0, StdAttraction: 0.05, MinRadiusLower: 0, MinRadiusUpper: 8, MaxRadiusLower: 8, MaxRadiusUpper: 24, Friction: 0.08},
	},
	"cells": {
		Simulation: SimulationConfig{Particles: 1500, Types: 6, Width: 128, Height: 128, Wrap: true, Ticks: 2000, Layout: LayoutNoise},
		Physics:    PhysicsConfig{MeanAttraction: 0.02, StdAttraction: 0.06, MinRadiusLower: 2, MinRadiusUpper: 6, MaxRadiusLower: 12, MaxRadiusUpper: 30, Friction: 0.1},
	},
	"walls": {
		Simulation: SimulationConfig{Particles: 1024, Types: 5, Width: 128, Height: 96, Wrap: false, Ticks: 1000, Layout: LayoutUniform},
		Physics:    PhysicsConfig{MeanAttraction: -0.01, StdAttraction: 0.04, MinRadiusLower: 0, MinRadiusUpper: 10, MaxRadiusLower: 10, MaxRadiusUpper: 40, Friction: 0.05},
	},
	"chaos": {
		Simulation: SimulationConfig{Particles: 2048, Types: 12, Width: 192, Height: 192, Wrap: true, Ticks: 1000, Layout: LayoutUniform},
		Physics:    PhysicsConfig{MeanAttraction: 0, StdAttraction: 0.12, MinRadiusLower: 0, MinRadiusUpper: 12, MaxRadiusLower: 12, MaxRadiusUpper: 48, Friction: 0.02},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
