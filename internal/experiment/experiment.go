package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/exp/rand"

	"github.com/san-kum/particlelife/internal/config"
	"github.com/san-kum/particlelife/internal/engine"
	"github.com/san-kum/particlelife/internal/placement"
	"github.com/san-kum/particlelife/internal/sim"
)

// placementStream offsets the placement seed from the model seed so the
// two draw sequences never share a source.
const placementStream = 0x9e3779b97f4a7c15

type Experiment struct {
	cfg     *config.Config
	world   engine.World
	engine  *engine.Engine
	model   *engine.TypeModel
	runner  *sim.Runner
	initial []engine.Particle
	logger  *slog.Logger
	metrics []string
}

type Option func(*Experiment)

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

// WithMetrics selects metrics by name. The default is every metric.
func WithMetrics(names ...string) Option {
	return func(e *Experiment) { e.metrics = names }
}

// New validates cfg and builds everything a run needs, including the
// initial frame. The same config and seed always produce the same run.
func New(cfg *config.Config, opts ...Option) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Experiment{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}

	w, err := cfg.World()
	if err != nil {
		return nil, err
	}
	e.world = w
	e.engine = engine.New(w, engine.WithWorkers(cfg.Simulation.Workers))

	seed := uint64(cfg.Simulation.Seed)
	params := cfg.Params()
	e.model, err = engine.NewTypeModel(cfg.Simulation.Types, params, rand.NewSource(seed))
	if err != nil {
		return nil, fmt.Errorf("experiment: %w", err)
	}

	layout, err := placement.New(cfg.Simulation.Layout)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed ^ placementStream))
	e.initial = layout.Place(e.engine, e.model, cfg.Simulation.Particles, rng)

	ms, err := resolveMetrics(e.metrics, w)
	if err != nil {
		return nil, err
	}
	e.runner = sim.New(e.engine, e.model, params)
	e.runner.SetLogger(e.logger)
	for _, m := range ms {
		e.runner.AddMetric(m)
	}

	e.logger.Debug("experiment ready",
		"layout", layout.Name(), "world", fmt.Sprintf("%gx%g", w.Width, w.Height), "wrap", w.Wrap,
		"max_radius", e.model.MaxInteractionRadius())
	return e, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.runner.Run(ctx, e.initial, e.SimConfig())
}

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Ticks:          e.cfg.Simulation.Ticks,
		ValidateFrames: true,
		Seed:           e.cfg.Simulation.Seed,
	}
}

// Randomize redraws the type model from the runner's current parameters.
// Particles keep moving under the new rules.
func (e *Experiment) Randomize() error {
	return e.model.Randomize(e.runner.Params())
}

func (e *Experiment) Config() *config.Config     { return e.cfg }
func (e *Experiment) World() engine.World        { return e.world }
func (e *Experiment) Engine() *engine.Engine     { return e.engine }
func (e *Experiment) Model() *engine.TypeModel   { return e.model }
func (e *Experiment) Runner() *sim.Runner        { return e.runner }
func (e *Experiment) Initial() []engine.Particle { return e.initial }

// Trial adapts a base config into a sim.Trial: each seed gets its own
// experiment built from a copy of base.
func Trial(base *config.Config, opts ...Option) sim.Trial {
	return func(ctx context.Context, seed int64) (*sim.Result, error) {
		cfg := base.Clone()
		cfg.Simulation.Seed = seed
		exp, err := New(cfg, opts...)
		if err != nil {
			return nil, err
		}
		return exp.Run(ctx)
	}
}
