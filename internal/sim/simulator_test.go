package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/particlelife/internal/engine"
)

func newRunner(t *testing.T, seed uint64) (*Runner, []engine.Particle) {
	t.Helper()
	w, err := engine.NewWorld(64, 64, true)
	if err != nil {
		t.Fatal(err)
	}
	m, err := engine.NewTypeModel(3, engine.DefaultParams(), rand.NewSource(seed))
	if err != nil {
		t.Fatal(err)
	}
	e := engine.New(w, engine.WithWorkers(2))
	ps := e.CreateParticles(m, 200, rand.New(rand.NewSource(seed+1)))
	return New(e, m, engine.DefaultParams()), ps
}

type testMetric struct {
	count int
	ticks []int
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(ps []engine.Particle, tick int) {
	t.count++
	t.ticks = append(t.ticks, tick)
}
func (t *testMetric) Value() float64 { return float64(t.count) }
func (t *testMetric) Reset() {
	t.count = 0
	t.ticks = nil
}

func TestRunnerRun(t *testing.T) {
	r, ps := newRunner(t, 1)
	metric := &testMetric{}
	r.AddMetric(metric)

	var observed []int
	r.AddObserver(ObserverFunc(func(tick int, _ []engine.Particle) {
		observed = append(observed, tick)
	}))

	result, err := r.Run(context.Background(), ps, Config{Ticks: 10, ValidateFrames: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.TicksRun != 10 {
		t.Errorf("expected 10 ticks, got %d", result.TicksRun)
	}
	if len(result.Final) != len(ps) {
		t.Errorf("expected %d particles, got %d", len(ps), len(result.Final))
	}
	// initial frame plus one per tick
	if metric.count != 11 {
		t.Errorf("expected 11 observations, got %d", metric.count)
	}
	if len(result.Series["test"]) != 11 || len(result.Samples) != 11 {
		t.Errorf("expected 11 samples, got %d/%d", len(result.Series["test"]), len(result.Samples))
	}
	if result.Metrics["test"] != 11 {
		t.Errorf("final metric value: expected 11, got %f", result.Metrics["test"])
	}
	if len(observed) != 10 || observed[0] != 1 || observed[9] != 10 {
		t.Errorf("observer ticks: %v", observed)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestRunnerSampleEvery(t *testing.T) {
	r, ps := newRunner(t, 2)
	metric := &testMetric{}
	r.AddMetric(metric)

	result, err := r.Run(context.Background(), ps, Config{Ticks: 10, SampleEvery: 5})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 5, 10}
	if len(result.Samples) != len(want) {
		t.Fatalf("expected samples %v, got %v", want, result.Samples)
	}
	for i := range want {
		if result.Samples[i] != want[i] {
			t.Errorf("sample %d: expected tick %d, got %d", i, want[i], result.Samples[i])
		}
	}
	if metric.count != 11 {
		t.Errorf("metrics should still see every tick, got %d", metric.count)
	}
}

func TestRunnerDeterministic(t *testing.T) {
	ra, ps1 := newRunner(t, 3)
	rb, ps2 := newRunner(t, 3)

	a, err := ra.Run(context.Background(), ps1, Config{Ticks: 20})
	if err != nil {
		t.Fatal(err)
	}
	b, err := rb.Run(context.Background(), ps2, Config{Ticks: 20})
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Final {
		if a.Final[i] != b.Final[i] {
			t.Fatalf("particle %d differs: %+v vs %+v", i, a.Final[i], b.Final[i])
		}
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r, ps := newRunner(t, 4)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero ticks", Config{Ticks: 0}},
		{"negative ticks", Config{Ticks: -1}},
		{"negative sample interval", Config{Ticks: 5, SampleEvery: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Run(context.Background(), ps, tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerCancelled(t *testing.T) {
	r, ps := newRunner(t, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Run(ctx, ps, Config{Ticks: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.TicksRun != 0 || len(result.Final) != len(ps) {
		t.Errorf("cancelled run should return the initial frame, got %d ticks", result.TicksRun)
	}
}

func TestRunnerStepError(t *testing.T) {
	r, ps := newRunner(t, 6)
	ps[0].Type = 9

	_, err := r.Run(context.Background(), ps, Config{Ticks: 3})
	if !errors.Is(err, engine.ErrTypeOutOfRange) {
		t.Errorf("expected ErrTypeOutOfRange, got %v", err)
	}
}

func TestRunnerInvalidFrame(t *testing.T) {
	r, ps := newRunner(t, 7)
	ps[0].Vel = r2.Vec{X: math.Inf(1)}

	result, err := r.Run(context.Background(), ps, Config{Ticks: 5, ValidateFrames: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected one error, got %v", result.Errors)
	}
	var simErr SimError
	if !errors.As(result.Errors[0], &simErr) || simErr.Tick != 1 {
		t.Errorf("expected SimError at tick 1, got %v", result.Errors[0])
	}
	if result.TicksRun != 0 {
		t.Errorf("expected no completed ticks, got %d", result.TicksRun)
	}
}

func TestRunWithCallback(t *testing.T) {
	r, ps := newRunner(t, 8)

	calls := 0
	err := r.RunWithCallback(context.Background(), ps, Config{}, func(tick int, frame []engine.Particle) bool {
		calls++
		return tick < 4
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 5 {
		t.Errorf("expected 5 callbacks, got %d", calls)
	}

	calls = 0
	err = r.RunWithCallback(context.Background(), ps, Config{Ticks: 3}, func(int, []engine.Particle) bool {
		calls++
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 4 {
		t.Errorf("expected 4 callbacks for 3 ticks, got %d", calls)
	}
}

func TestSetParams(t *testing.T) {
	r, ps := newRunner(t, 9)
	p := r.Params()
	p.Friction = 2
	r.SetParams(p)
	if _, err := r.Tick(ps); !errors.Is(err, engine.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}
