package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/particlelife/internal/engine"
)

type MeanSpeed struct {
	speeds []float64
	value  float64
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) Observe(ps []engine.Particle, tick int) {
	m.speeds = speeds(m.speeds, ps)
	if len(m.speeds) == 0 {
		m.value = 0
		return
	}
	m.value = stat.Mean(m.speeds, nil)
}

func (m *MeanSpeed) Value() float64 { return m.value }
func (m *MeanSpeed) Reset()         { m.value = 0 }

// SpeedSpread is the standard deviation of particle speeds in the latest
// frame.
type SpeedSpread struct {
	speeds []float64
	value  float64
}

func NewSpeedSpread() *SpeedSpread { return &SpeedSpread{} }

func (s *SpeedSpread) Name() string { return "speed_stddev" }

func (s *SpeedSpread) Observe(ps []engine.Particle, tick int) {
	s.speeds = speeds(s.speeds, ps)
	if len(s.speeds) < 2 {
		s.value = 0
		return
	}
	s.value = stat.StdDev(s.speeds, nil)
}

func (s *SpeedSpread) Value() float64 { return s.value }
func (s *SpeedSpread) Reset()         { s.value = 0 }

// MaxSpeed tracks the fastest particle seen since the last Reset.
type MaxSpeed struct {
	speeds []float64
	max    float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(ps []engine.Particle, tick int) {
	m.speeds = speeds(m.speeds, ps)
	if len(m.speeds) == 0 {
		return
	}
	m.max = math.Max(m.max, floats.Max(m.speeds))
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

func speeds(buf []float64, ps []engine.Particle) []float64 {
	buf = resize(buf, len(ps))
	for i, p := range ps {
		buf[i] = r2.Norm(p.Vel)
	}
	return buf
}
