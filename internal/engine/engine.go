package engine

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// smoothing controls how sharply the collision response grows as two
	// particles approach.
	smoothing = 2.0

	// minDist2 is the squared distance under which a pair exerts no force.
	minDist2 = 0.01

	// initialSpeed is the standard deviation of each initial velocity axis.
	initialSpeed = 0.2

	minChunk = 64
)

// Engine advances particle frames inside a fixed world.
type Engine struct {
	world   World
	workers int
}

type Option func(*Engine)

// WithWorkers bounds the goroutines used per phase. n <= 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

func New(w World, opts ...Option) *Engine {
	e := &Engine{world: w}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) World() World { return e.world }

func (e *Engine) Extent() (width, height float64) { return e.world.Extent() }

// CreateParticles places n particles uniformly over the world with
// normally distributed velocities and uniformly drawn types.
func (e *Engine) CreateParticles(m *TypeModel, n int, rng *rand.Rand) []Particle {
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = Particle{
			Vel:  r2.Vec{X: rng.NormFloat64() * initialSpeed, Y: rng.NormFloat64() * initialSpeed},
			Pos:  r2.Vec{X: rng.Float64() * e.world.Width, Y: rng.Float64() * e.world.Height},
			Type: uint8(rng.Intn(m.NumTypes())),
		}
	}
	return ps
}

// Step advances prev by one tick and returns the new frame. prev is never
// modified.
func (e *Engine) Step(m *TypeModel, p Params, prev []Particle) ([]Particle, error) {
	if err := p.ValidateFriction(); err != nil {
		return nil, err
	}
	if err := checkTypes(m, prev); err != nil {
		return nil, err
	}

	grid := NewGrid(prev, e.world, GridSize)
	vel := make([]r2.Vec, len(prev))
	e.accumulate(m, grid, prev, vel)
	grid.Release()

	next := make([]Particle, len(prev))
	e.integrate(p.Friction, prev, vel, next)
	return next, nil
}

func checkTypes(m *TypeModel, ps []Particle) error {
	n := m.NumTypes()
	for i, p := range ps {
		if int(p.Type) >= n {
			return fmt.Errorf("%w: particle %d has type %d, model has %d", ErrTypeOutOfRange, i, p.Type, n)
		}
	}
	return nil
}

// accumulate is phase A: vel[i] = prev[i].Vel + sum of pair forces on i.
func (e *Engine) accumulate(m *TypeModel, grid *Grid, prev []Particle, vel []r2.Vec) {
	radius := m.MaxInteractionRadius()
	ParallelFor(len(prev), minChunk, e.workers, func(start, end int) {
		var candidates []Particle
		for i := start; i < end; i++ {
			p := prev[i]
			v := p.Vel
			candidates = grid.Neighbors(p.Pos, radius, candidates[:0])
			for _, q := range candidates {
				v = r2.Add(v, e.force(m, p, q))
			}
			vel[i] = v
		}
	})
}

// integrate is phase B: move by the phase A velocity, damp it, then apply
// the boundary policy.
func (e *Engine) integrate(friction float64, prev []Particle, vel []r2.Vec, next []Particle) {
	damp := 1 - friction
	ParallelFor(len(prev), minChunk, e.workers, func(start, end int) {
		for i := start; i < end; i++ {
			v := vel[i]
			pos := r2.Add(prev[i].Pos, v)
			pos, v = e.world.Confine(pos, r2.Scale(damp, v))
			next[i] = Particle{Pos: pos, Vel: v, Type: prev[i].Type}
		}
	})
}

// force is the velocity contribution of q on p.
func (e *Engine) force(m *TypeModel, p, q Particle) r2.Vec {
	dx := e.world.Delta(p.Pos, q.Pos)
	d2 := r2.Norm2(dx)
	minR, maxR := m.Radii(p.Type, q.Type)
	if d2 < minDist2 || d2 > maxR*maxR {
		return r2.Vec{}
	}
	r := math.Sqrt(d2)
	f := magnitude(m.Attraction(p.Type, q.Type), r, minR, maxR)
	return r2.Scale(f, r2.Scale(1/r, dx))
}

// magnitude is the signed force law. Beyond minR it is a tent peaking at
// the attraction coefficient halfway between the cutoffs; within minR it
// is a smoothed repulsion independent of the attraction sign.
func magnitude(a, r, minR, maxR float64) float64 {
	if r > minR {
		span := maxR - minR
		if span <= 0 {
			return 0
		}
		mid := (maxR + minR) / 2
		return a * (1 - 2*math.Abs(r-mid)/span)
	}
	return smoothing * minR * (1/(minR+smoothing) - 1/(r+smoothing))
}
