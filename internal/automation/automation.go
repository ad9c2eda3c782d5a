package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/particlelife/internal/analysis"
	"github.com/san-kum/particlelife/internal/config"
	"github.com/san-kum/particlelife/internal/experiment"
	"github.com/san-kum/particlelife/internal/sim"
	"github.com/san-kum/particlelife/internal/storage"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Preset      string         `yaml:"preset"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from the scenario preset (or its own) and applies
// overrides. Zero values leave the preset's setting alone.
type ScenarioStep struct {
	Name      string             `yaml:"name"`
	Preset    string             `yaml:"preset"`
	Particles int                `yaml:"particles"`
	Types     int                `yaml:"types"`
	Seed      int64              `yaml:"seed"`
	Ticks     int                `yaml:"ticks"`
	Wrap      *bool              `yaml:"wrap"`
	Layout    string             `yaml:"layout"`
	Physics   map[string]float64 `yaml:"physics"`
	SaveAs    string             `yaml:"save_as"`
}

// StepResult pairs a step with its outcome. RunID is empty unless the
// step was saved.
type StepResult struct {
	Step   ScenarioStep
	Result *sim.Result
	RunID  string
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Config resolves the configuration of step i.
func (s *Scenario) Config(i int) (*config.Config, error) {
	step := s.Steps[i]
	name := step.Preset
	if name == "" {
		name = s.Preset
	}
	cfg := config.DefaultConfig()
	if name != "" {
		if cfg = config.GetPreset(name); cfg == nil {
			return nil, fmt.Errorf("step %d: unknown preset %q", i+1, name)
		}
	}

	sc := &cfg.Simulation
	if step.Particles > 0 {
		sc.Particles = step.Particles
	}
	if step.Types > 0 {
		sc.Types = step.Types
	}
	if step.Seed != 0 {
		sc.Seed = step.Seed
	}
	if step.Ticks > 0 {
		sc.Ticks = step.Ticks
	}
	if step.Wrap != nil {
		sc.Wrap = *step.Wrap
	}
	if step.Layout != "" {
		sc.Layout = step.Layout
	}
	for k, v := range step.Physics {
		if err := cfg.Physics.Set(k, v); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("step %d: %w", i+1, err)
	}
	return cfg, nil
}

// RunScenario executes every step in order. Steps with save_as are stored
// in st, which may be nil when nothing is saved.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "name", step.Name)

		cfg, err := scenario.Config(i)
		if err != nil {
			return results, err
		}
		exp, err := experiment.New(cfg, experiment.WithLogger(logger))
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: step, Result: result}
		if step.SaveAs != "" {
			if st == nil {
				return results, fmt.Errorf("step %d: save_as set but no store", i+1)
			}
			if sr.RunID, err = st.Save(step.SaveAs, cfg, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs a base config across evenly spaced values of one
// physics parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds the final metrics of one sweep point and the range of
// kinetic energy seen over the run.
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	MaxEnergy  float64
	MinEnergy  float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *slog.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	if logger == nil {
		logger = slog.Default()
	}

	values := floats.Span(make([]float64, sweep.NumSteps), sweep.ParamMin, sweep.ParamMax)
	results := make([]SweepResult, 0, len(values))

	for i, v := range values {
		cfg := sweep.Base.Clone()
		if err := cfg.Physics.Set(sweep.ParamName, v); err != nil {
			return nil, err
		}
		exp, err := experiment.New(cfg, experiment.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, v, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		energy := analysis.Describe(result.Series["kinetic_energy"])
		results = append(results, SweepResult{
			ParamValue: v,
			Metrics:    result.Metrics,
			MaxEnergy:  energy.Max,
			MinEnergy:  energy.Min,
		})

		logger.Info("sweep point", "step", i+1, "of", len(values), sweep.ParamName, v)
	}

	return results, nil
}
