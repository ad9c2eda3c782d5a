// Package placement seeds the initial particle frame. Uniform scatters
// particles over the whole world; Noise clusters each type into the
// high-density patches of its own Perlin field.
package placement

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/particlelife/internal/engine"
)

const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 3

	// noiseScale maps world units onto the noise lattice.
	noiseScale = 1.0 / 32

	maxAttempts = 64
)

// Layout produces n particles for model m.
type Layout interface {
	Name() string
	Place(e *engine.Engine, m *engine.TypeModel, n int, rng *rand.Rand) []engine.Particle
}

func New(name string) (Layout, error) {
	switch name {
	case "", "uniform":
		return Uniform{}, nil
	case "noise":
		return Noise{}, nil
	}
	return nil, fmt.Errorf("placement: unknown layout %q", name)
}

type Uniform struct{}

func (Uniform) Name() string { return "uniform" }

func (Uniform) Place(e *engine.Engine, m *engine.TypeModel, n int, rng *rand.Rand) []engine.Particle {
	return e.CreateParticles(m, n, rng)
}

// Noise keeps the velocity and type draws of Uniform but rejection-samples
// positions against a per-type Perlin density.
type Noise struct{}

func (Noise) Name() string { return "noise" }

func (Noise) Place(e *engine.Engine, m *engine.TypeModel, n int, rng *rand.Rand) []engine.Particle {
	ps := e.CreateParticles(m, n, rng)
	fields := make([]*perlin.Perlin, m.NumTypes())
	for i := range fields {
		fields[i] = perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, rng.Int63())
	}
	size := e.World().Size()
	for i := range ps {
		ps[i].Pos = sample(fields[ps[i].Type], size, rng)
	}
	return ps
}

// sample draws a point whose acceptance probability follows the field.
// After maxAttempts the last candidate is kept.
func sample(f *perlin.Perlin, size r2.Vec, rng *rand.Rand) r2.Vec {
	var pos r2.Vec
	for range maxAttempts {
		pos = r2.Vec{X: rng.Float64() * size.X, Y: rng.Float64() * size.Y}
		if Density(f, pos) >= rng.Float64() {
			break
		}
	}
	return pos
}

// Density maps the field at pos into [0, 1].
func Density(f *perlin.Perlin, pos r2.Vec) float64 {
	d := (f.Noise2D(pos.X*noiseScale, pos.Y*noiseScale) + 1) / 2
	switch {
	case d < 0:
		return 0
	case d > 1:
		return 1
	}
	return d
}
