package analysis

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/particlelife/internal/engine"
)

// PairCorrelation computes the radial distribution function g(r) of a
// frame over [0, maxR) in bins equal-width shells. g ≈ 1 for uniformly
// scattered particles; peaks mark preferred spacings inside clusters.
// Pairs are found through the engine's grid and respect wrap.
func PairCorrelation(ps []engine.Particle, w engine.World, maxR float64, bins int) []float64 {
	g := make([]float64, bins)
	if len(ps) < 2 || bins < 1 || maxR <= 0 {
		return g
	}

	grid := engine.NewGrid(ps, w, engine.GridSize)
	defer grid.Release()

	width := maxR / float64(bins)
	counts := make([]float64, bins)
	var dst []engine.Particle
	for _, p := range ps {
		dst = grid.Neighbors(p.Pos, maxR, dst[:0])
		for _, q := range dst {
			r := r2.Norm(w.Delta(p.Pos, q.Pos))
			if r == 0 || r >= maxR {
				continue
			}
			counts[int(r/width)]++
		}
	}

	// normalize against an ideal gas of the same density
	density := float64(len(ps)) / (w.Width * w.Height)
	for i := range g {
		lo, hi := float64(i)*width, float64(i+1)*width
		shell := math.Pi * (hi*hi - lo*lo)
		g[i] = counts[i] / (float64(len(ps)) * density * shell)
	}
	return g
}
