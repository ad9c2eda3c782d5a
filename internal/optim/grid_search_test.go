package optim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/particlelife/internal/config"
)

func tinyConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Simulation.Particles = 60
	cfg.Simulation.Types = 3
	cfg.Simulation.Width = 32
	cfg.Simulation.Height = 32
	cfg.Simulation.Ticks = 5
	cfg.Simulation.Seed = 3
	return cfg
}

func TestNewGridSearch_Validation(t *testing.T) {
	_, err := NewGridSearch([]string{"friction"}, nil)
	assert.Error(t, err)

	_, err = NewGridSearch([]string{"gravity"}, [][]float64{{1}})
	assert.Error(t, err)

	_, err = NewGridSearch([]string{"friction"}, [][]float64{{}})
	assert.Error(t, err)
}

func TestPoints(t *testing.T) {
	g, err := NewGridSearch(
		[]string{"friction", "std_attraction"},
		[][]float64{{0.1, 0.2}, {0.01, 0.02, 0.03}},
	)
	require.NoError(t, err)
	assert.Equal(t, 6, g.Size())

	pts := g.Points()
	require.Len(t, pts, 6)
	assert.Equal(t, map[string]float64{"friction": 0.1, "std_attraction": 0.01}, pts[0])
	assert.Equal(t, map[string]float64{"friction": 0.1, "std_attraction": 0.03}, pts[2])
	assert.Equal(t, map[string]float64{"friction": 0.2, "std_attraction": 0.01}, pts[3])
	assert.Equal(t, map[string]float64{"friction": 0.2, "std_attraction": 0.03}, pts[5])
}

func TestSearch(t *testing.T) {
	g, err := NewGridSearch([]string{"friction"}, [][]float64{{0.05, 0.5, 2}})
	require.NoError(t, err)
	g.SetLimit(2)

	for _, maximize := range []bool{true, false} {
		points, best, err := g.Search(context.Background(), tinyConfig(), "kinetic_energy", maximize)
		require.NoError(t, err)
		require.Len(t, points, 3)

		// friction 2 is out of range
		assert.Error(t, points[2].Err)
		require.NoError(t, points[0].Err)
		require.NoError(t, points[1].Err)
		require.True(t, best == 0 || best == 1)

		other := 1 - best
		if maximize {
			assert.GreaterOrEqual(t, points[best].Value, points[other].Value)
		} else {
			assert.LessOrEqual(t, points[best].Value, points[other].Value)
		}
	}
}

func TestSearch_Reproducible(t *testing.T) {
	g, err := NewGridSearch([]string{"mean_attraction"}, [][]float64{{-0.02, 0.02}})
	require.NoError(t, err)

	a, _, err := g.Search(context.Background(), tinyConfig(), "mean_speed", true)
	require.NoError(t, err)
	b, _, err := g.Search(context.Background(), tinyConfig(), "mean_speed", true)
	require.NoError(t, err)
	for i := range a {
		assert.Equal(t, a[i].Value, b[i].Value)
	}
}

func TestSearch_Canceled(t *testing.T) {
	g, err := NewGridSearch([]string{"friction"}, [][]float64{{0.1, 0.2}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = g.Search(ctx, tinyConfig(), "kinetic_energy", true)
	assert.ErrorIs(t, err, context.Canceled)
}
