package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Trial runs one independent simulation for a seed.
type Trial func(ctx context.Context, seed int64) (*Result, error)

// Ensemble runs a trial for consecutive seeds concurrently. The first
// failing trial cancels the rest.
type Ensemble struct {
	trial     Trial
	numRuns   int
	seedStart int64
	limit     int
}

func NewEnsemble(trial Trial, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{trial: trial, numRuns: numRuns, seedStart: seedStart}
}

// SetLimit bounds concurrent trials. n <= 0 means GOMAXPROCS.
func (e *Ensemble) SetLimit(n int) { e.limit = n }

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	limit := e.limit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, e.numRuns)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := 0; i < e.numRuns; i++ {
		seed := e.seedStart + int64(i)
		g.Go(func() error {
			res, err := e.trial(ctx, seed)
			if err != nil {
				return err
			}
			res.Seed = seed
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
