package experiment

import (
	"github.com/san-kum/particlelife/internal/engine"
	"github.com/san-kum/particlelife/internal/metrics"
	"github.com/san-kum/particlelife/internal/sim"
)

func resolveMetrics(names []string, w engine.World) ([]sim.Metric, error) {
	if len(names) == 0 {
		names = metrics.Names()
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := metrics.New(name, w)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
