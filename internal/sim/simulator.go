package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/particlelife/internal/engine"
)

// Runner drives an engine over many ticks. Parameters may be changed
// between runs or from a callback; the model is shared, not copied.
type Runner struct {
	engine    *engine.Engine
	model     *engine.TypeModel
	params    engine.Params
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
}

func New(e *engine.Engine, m *engine.TypeModel, p engine.Params) *Runner {
	return &Runner{
		engine:    e,
		model:     m,
		params:    p,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    slog.Default(),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

func (r *Runner) Engine() *engine.Engine    { return r.engine }
func (r *Runner) Model() *engine.TypeModel  { return r.model }
func (r *Runner) Params() engine.Params     { return r.params }
func (r *Runner) SetParams(p engine.Params) { r.params = p }

// Tick advances one frame with the current parameters.
func (r *Runner) Tick(prev []engine.Particle) ([]engine.Particle, error) {
	return r.engine.Step(r.model, r.params, prev)
}

func (r *Runner) Run(ctx context.Context, initial []engine.Particle, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	every := cfg.SampleEvery
	if every == 0 {
		every = 1
	}

	result := &Result{
		Seed:    cfg.Seed,
		Samples: make([]int, 0, cfg.Ticks/every+1),
		Series:  make(map[string][]float64, len(r.metrics)),
		Metrics: make(map[string]float64, len(r.metrics)),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	r.logger.Debug("run start",
		"particles", len(initial), "types", r.model.NumTypes(), "ticks", cfg.Ticks, "seed", cfg.Seed)
	start := time.Now()

	frame := initial
	r.sample(result, frame, 0)

	for i := 1; i <= cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			result.Final = frame
			result.Elapsed = time.Since(start)
			r.collect(result)
			return result, ctx.Err()
		default:
		}

		next, err := r.Tick(frame)
		if err != nil {
			return result, fmt.Errorf("sim: tick %d: %w", i, err)
		}

		if cfg.ValidateFrames && !ValidFrame(next) {
			result.Errors = append(result.Errors, SimError{Tick: i, Message: "invalid frame (NaN/Inf)"})
			break
		}

		frame = next
		result.TicksRun++

		for _, obs := range r.observers {
			obs.OnTick(i, frame)
		}
		if i%every == 0 {
			r.sample(result, frame, i)
		} else {
			for _, m := range r.metrics {
				m.Observe(frame, i)
			}
		}
	}

	result.Final = frame
	result.Elapsed = time.Since(start)
	r.collect(result)

	r.logger.Debug("run finished",
		"ticks", result.TicksRun, "elapsed", result.Elapsed, "ticks_per_sec", result.TicksPerSecond())
	return result, nil
}

func (r *Runner) sample(result *Result, frame []engine.Particle, tick int) {
	result.Samples = append(result.Samples, tick)
	for _, m := range r.metrics {
		m.Observe(frame, tick)
		result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
	}
}

func (r *Runner) collect(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("sample interval must be non-negative, got %d", cfg.SampleEvery)
	}
	return nil
}

// RunWithCallback steps until cfg.Ticks is reached, the context ends, or
// callback returns false. Ticks <= 0 runs until stopped.
func (r *Runner) RunWithCallback(ctx context.Context, initial []engine.Particle, cfg Config, callback func(tick int, ps []engine.Particle) bool) error {
	frame := initial
	for tick := 0; cfg.Ticks <= 0 || tick <= cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(tick, frame) {
			return nil
		}

		next, err := r.Tick(frame)
		if err != nil {
			return fmt.Errorf("sim: tick %d: %w", tick+1, err)
		}
		if cfg.ValidateFrames && !ValidFrame(next) {
			return SimError{Tick: tick + 1, Message: "invalid frame (NaN/Inf)"}
		}
		frame = next
	}
	return nil
}
