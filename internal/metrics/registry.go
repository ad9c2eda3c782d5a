package metrics

import (
	"fmt"
	"sort"

	"github.com/san-kum/particlelife/internal/engine"
)

// MixingRadius is the neighborhood used by the default type_mixing metric.
const MixingRadius = 5.0

// Metric matches sim.Metric.
type Metric interface {
	Name() string
	Observe(ps []engine.Particle, tick int)
	Value() float64
	Reset()
}

var constructors = map[string]func(w engine.World) Metric{
	"kinetic_energy": func(engine.World) Metric { return NewKineticEnergy() },
	"momentum":       func(engine.World) Metric { return NewMomentum() },
	"mean_speed":     func(engine.World) Metric { return NewMeanSpeed() },
	"speed_stddev":   func(engine.World) Metric { return NewSpeedSpread() },
	"max_speed":      func(engine.World) Metric { return NewMaxSpeed() },
	"type_mixing":    func(w engine.World) Metric { return NewTypeMixing(w, MixingRadius) },
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func New(name string, w engine.World) (Metric, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("metrics: unknown metric %q", name)
	}
	return ctor(w), nil
}

// Default returns one instance of every metric, in name order.
func Default(w engine.World) []Metric {
	names := Names()
	out := make([]Metric, len(names))
	for i, name := range names {
		out[i] = constructors[name](w)
	}
	return out
}
