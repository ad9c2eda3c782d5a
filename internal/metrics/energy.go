package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/particlelife/internal/engine"
)

// KineticEnergy is the mean of |v|²/2 over the latest frame (unit mass).
type KineticEnergy struct {
	buf   []float64
	value float64
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(ps []engine.Particle, tick int) {
	if len(ps) == 0 {
		k.value = 0
		return
	}
	k.buf = resize(k.buf, len(ps))
	for i, p := range ps {
		k.buf[i] = 0.5 * r2.Norm2(p.Vel)
	}
	k.value = floats.Sum(k.buf) / float64(len(ps))
}

func (k *KineticEnergy) Value() float64 { return k.value }
func (k *KineticEnergy) Reset()         { k.value = 0 }

// Momentum is the magnitude of the mean velocity. Asymmetric attraction
// does not conserve momentum, so a swarm drifting as a whole shows up here.
type Momentum struct {
	value float64
}

func NewMomentum() *Momentum { return &Momentum{} }

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) Observe(ps []engine.Particle, tick int) {
	if len(ps) == 0 {
		m.value = 0
		return
	}
	var sum r2.Vec
	for _, p := range ps {
		sum = r2.Add(sum, p.Vel)
	}
	m.value = r2.Norm(r2.Scale(1/float64(len(ps)), sum))
}

func (m *Momentum) Value() float64 { return m.value }
func (m *Momentum) Reset()         { m.value = 0 }

func resize(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	return s[:n]
}
