package automation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/particlelife/internal/config"
	"github.com/san-kum/particlelife/internal/storage"
)

const scenarioYAML = `
name: friction-steps
preset: small
steps:
  - name: warm
    particles: 80
    types: 3
    ticks: 4
    seed: 9
  - name: cold
    particles: 80
    types: 3
    ticks: 4
    seed: 9
    wrap: false
    physics:
      friction: 0.4
    save_as: cold
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	require.NoError(t, err)
	assert.Equal(t, "friction-steps", sc.Name)
	require.Len(t, sc.Steps, 2)

	cfg, err := sc.Config(1)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Simulation.Particles)
	assert.False(t, cfg.Simulation.Wrap)
	assert.Equal(t, 0.4, cfg.Physics.Friction)
	// untouched settings come from the preset
	assert.Equal(t, config.Presets["small"].Simulation.Width, cfg.Simulation.Width)
}

func TestParseScenario_Errors(t *testing.T) {
	_, err := ParseScenario([]byte("name: empty\n"))
	assert.Error(t, err)

	sc, err := ParseScenario([]byte("steps:\n  - preset: nope\n"))
	require.NoError(t, err)
	_, err = sc.Config(0)
	assert.Error(t, err)

	sc, err = ParseScenario([]byte("steps:\n  - physics:\n      gravity: 1\n"))
	require.NoError(t, err)
	_, err = sc.Config(0)
	assert.Error(t, err)
}

func TestRunScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	require.NoError(t, err)

	st := storage.New(t.TempDir())
	results, err := RunScenario(context.Background(), sc, st, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 4, results[0].Result.TicksRun)
	assert.Empty(t, results[0].RunID)
	require.NotEmpty(t, results[1].RunID)

	meta, err := st.Load(results[1].RunID)
	require.NoError(t, err)
	assert.Equal(t, "cold", meta.Name)
	assert.Equal(t, 0.4, meta.Config.Physics.Friction)
}

func TestRunScenario_NoStore(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	require.NoError(t, err)

	results, err := RunScenario(context.Background(), sc, nil, nil)
	assert.Error(t, err)
	assert.Len(t, results, 1)
}

func TestRunSweep(t *testing.T) {
	base := config.GetPreset("small")
	base.Simulation.Particles = 60
	base.Simulation.Ticks = 3

	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base:      base,
		ParamName: "friction",
		ParamMin:  0,
		ParamMax:  0.5,
		NumSteps:  3,
	}, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []float64{0, 0.25, 0.5}, []float64{results[0].ParamValue, results[1].ParamValue, results[2].ParamValue})
	for _, r := range results {
		assert.LessOrEqual(t, r.MinEnergy, r.MaxEnergy)
		assert.Contains(t, r.Metrics, "kinetic_energy")
	}

	_, err = RunSweep(context.Background(), &ParameterSweep{Base: base, ParamName: "friction", NumSteps: 1}, nil)
	assert.Error(t, err)
}
