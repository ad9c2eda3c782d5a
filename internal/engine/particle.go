package engine

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Diameter is the particle diameter in world units. It is the lower bound
// for every interaction radius.
const Diameter = 1.0

// Particle is a single simulated body.
type Particle struct {
	Pos  r2.Vec
	Vel  r2.Vec
	Type uint8
}

// IsValid reports whether the particle's position and velocity are finite.
func (p Particle) IsValid() bool {
	for _, v := range [4]float64{p.Pos.X, p.Pos.Y, p.Vel.X, p.Vel.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of a particle array.
func Clone(ps []Particle) []Particle {
	c := make([]Particle, len(ps))
	copy(c, ps)
	return c
}
