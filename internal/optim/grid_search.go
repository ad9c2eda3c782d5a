package optim

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/particlelife/internal/config"
	"github.com/san-kum/particlelife/internal/experiment"
)

// Point is one evaluated grid cell. Err is set when the parameter
// combination was invalid or the run failed; Value is then NaN.
type Point struct {
	Params map[string]float64
	Value  float64
	Err    error
}

// GridSearch runs a base configuration over every combination of the
// given physics parameter values and scores each run by one metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	limit      int
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(params), len(ranges))
	}
	var probe config.PhysicsConfig
	for i, name := range params {
		if err := probe.Set(name, 0); err != nil {
			return nil, fmt.Errorf("optim: %w", err)
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", name)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// SetLimit bounds concurrent runs. n <= 0 means GOMAXPROCS.
func (g *GridSearch) SetLimit(n int) { g.limit = n }

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Points enumerates the grid in row-major order, last parameter fastest.
func (g *GridSearch) Points() []map[string]float64 {
	out := make([]map[string]float64, 0, g.Size())
	idx := make([]int, len(g.ranges))
	for {
		p := make(map[string]float64, len(g.paramNames))
		for d, name := range g.paramNames {
			p[name] = g.ranges[d][idx[d]]
		}
		out = append(out, p)

		d := len(idx) - 1
		for ; d >= 0; d-- {
			idx[d]++
			if idx[d] < len(g.ranges[d]) {
				break
			}
			idx[d] = 0
		}
		if d < 0 {
			return out
		}
	}
}

// Search evaluates every grid point and returns all of them in grid order
// along with the index of the best one (largest value when maximize is
// set, smallest otherwise). best is -1 when no point succeeded.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metric string, maximize bool) (points []Point, best int, err error) {
	limit := g.limit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	grid := g.Points()
	points = make([]Point, len(grid))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, params := range grid {
		eg.Go(func() error {
			v, err := evaluate(ctx, base, params, metric)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			points[i] = Point{Params: params, Value: v, Err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, -1, err
	}

	best = -1
	for i, p := range points {
		if p.Err != nil || math.IsNaN(p.Value) {
			continue
		}
		if best < 0 || (maximize && p.Value > points[best].Value) || (!maximize && p.Value < points[best].Value) {
			best = i
		}
	}
	return points, best, nil
}

func evaluate(ctx context.Context, base *config.Config, params map[string]float64, metric string) (float64, error) {
	cfg := base.Clone()
	for name, v := range params {
		if err := cfg.Physics.Set(name, v); err != nil {
			return math.NaN(), err
		}
	}
	exp, err := experiment.New(cfg, experiment.WithMetrics(metric))
	if err != nil {
		return math.NaN(), err
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return math.NaN(), err
	}
	if len(result.Errors) > 0 {
		return math.NaN(), result.Errors[0]
	}
	return result.Metrics[metric], nil
}
