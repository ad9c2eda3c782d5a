package sim

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/san-kum/particlelife/internal/engine"
)

func seededTrial(t *testing.T) Trial {
	w, err := engine.NewWorld(48, 48, true)
	if err != nil {
		t.Fatal(err)
	}
	return func(ctx context.Context, seed int64) (*Result, error) {
		m, err := engine.NewTypeModel(3, engine.DefaultParams(), rand.NewSource(uint64(seed)))
		if err != nil {
			return nil, err
		}
		e := engine.New(w, engine.WithWorkers(1))
		ps := e.CreateParticles(m, 100, rand.New(rand.NewSource(uint64(seed))))
		return New(e, m, engine.DefaultParams()).Run(ctx, ps, Config{Ticks: 5, Seed: seed})
	}
}

func TestEnsemble(t *testing.T) {
	trial := seededTrial(t)
	ens := NewEnsemble(trial, 4, 10)
	ens.SetLimit(2)

	results, err := ens.Run(context.Background())
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, res := range results {
		if res.Seed != 10+int64(i) {
			t.Errorf("result %d: expected seed %d, got %d", i, 10+i, res.Seed)
		}
		solo, err := trial(context.Background(), res.Seed)
		if err != nil {
			t.Fatal(err)
		}
		for j := range solo.Final {
			if solo.Final[j] != res.Final[j] {
				t.Fatalf("seed %d: ensemble run differs from solo run at particle %d", res.Seed, j)
			}
		}
	}
}

func TestEnsembleError(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32
	ens := NewEnsemble(func(ctx context.Context, seed int64) (*Result, error) {
		calls.Add(1)
		if seed == 2 {
			return nil, boom
		}
		return &Result{}, nil
	}, 5, 0)

	if _, err := ens.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if calls.Load() == 0 {
		t.Error("trial never ran")
	}
}
