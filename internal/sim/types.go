package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/particlelife/internal/engine"
)

type Metric interface {
	Name() string
	Observe(ps []engine.Particle, tick int)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(tick int, ps []engine.Particle)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(tick int, ps []engine.Particle)

func (f ObserverFunc) OnTick(tick int, ps []engine.Particle) { f(tick, ps) }

type Config struct {
	Ticks int
	// SampleEvery records metric series every k ticks; 0 means every tick.
	SampleEvery    int
	ValidateFrames bool
	Seed           int64
}

type Result struct {
	Seed     int64
	TicksRun int
	Final    []engine.Particle
	Samples  []int
	Series   map[string][]float64
	Metrics  map[string]float64
	Errors   []error
	Elapsed  time.Duration
}

// TicksPerSecond is the measured throughput of the run.
func (r *Result) TicksPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.TicksRun) / r.Elapsed.Seconds()
}

type SimError struct {
	Tick    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("sim: tick %d: %s", e.Tick, e.Message)
}

// ValidFrame reports whether every particle in ps is finite.
func ValidFrame(ps []engine.Particle) bool {
	for _, p := range ps {
		if !p.IsValid() {
			return false
		}
	}
	return true
}
