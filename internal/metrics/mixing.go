package metrics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/particlelife/internal/engine"
)

// TypeMixing is the fraction of neighbor pairs within radius that have
// different types. Well-mixed soup sits near 1-1/n; segregated clusters
// push it toward 0.
type TypeMixing struct {
	world  engine.World
	radius float64
	dst    []engine.Particle
	value  float64
}

func NewTypeMixing(w engine.World, radius float64) *TypeMixing {
	return &TypeMixing{world: w, radius: radius}
}

func (m *TypeMixing) Name() string { return "type_mixing" }

func (m *TypeMixing) Observe(ps []engine.Particle, tick int) {
	if len(ps) < 2 || m.radius <= 0 {
		m.value = 0
		return
	}
	grid := engine.NewGrid(ps, m.world, engine.GridSize)
	defer grid.Release()

	r2max := m.radius * m.radius
	var pairs, mixed int
	for _, p := range ps {
		m.dst = grid.Neighbors(p.Pos, m.radius, m.dst[:0])
		for _, q := range m.dst {
			d := r2.Norm2(m.world.Delta(p.Pos, q.Pos))
			if d == 0 || d > r2max {
				continue
			}
			pairs++
			if p.Type != q.Type {
				mixed++
			}
		}
	}
	if pairs == 0 {
		m.value = 0
		return
	}
	m.value = float64(mixed) / float64(pairs)
}

func (m *TypeMixing) Value() float64 { return m.value }
func (m *TypeMixing) Reset()         { m.value = 0 }
