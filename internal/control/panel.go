package control

import (
	"fmt"
	"math"

	"github.com/san-kum/particlelife/internal/engine"
	"github.com/san-kum/particlelife/internal/sim"
)

const MaxSpeed = 8

type Knob struct {
	Name     string
	Step     float64
	Min, Max float64
	Decimals int
	field    func(*engine.Params) *float64
}

func (k Knob) Format(v float64) string {
	return fmt.Sprintf("%.*f", k.Decimals, v)
}

var knobs = []Knob{
	{"Mean Attraction", 0.005, math.Inf(-1), math.Inf(1), 3, func(p *engine.Params) *float64 { return &p.MeanAttraction }},
	{"Sigma Attraction", 0.005, 0.001, math.Inf(1), 3, func(p *engine.Params) *float64 { return &p.StdAttraction }},
	{"Min Radius Lower", 0.1, 0, math.Inf(1), 1, func(p *engine.Params) *float64 { return &p.MinRadiusLower }},
	{"Min Radius Upper", 0.1, 0, math.Inf(1), 2, func(p *engine.Params) *float64 { return &p.MinRadiusUpper }},
	{"Max Radius Lower", 0.1, 0, math.Inf(1), 1, func(p *engine.Params) *float64 { return &p.MaxRadiusLower }},
	{"Max Radius Upper", 0.1, 0, math.Inf(1), 2, func(p *engine.Params) *float64 { return &p.MaxRadiusUpper }},
	{"Friction", 0.005, 0, 1, 3, func(p *engine.Params) *float64 { return &p.Friction }},
}

// Friction is the index of the friction knob.
const Friction = 6

type Panel struct {
	params   engine.Params
	selected int
	paused   bool
	speed    int
}

func NewPanel(p engine.Params) *Panel {
	return &Panel{params: p, speed: 1}
}

func (p *Panel) Knobs() []Knob         { return knobs }
func (p *Panel) Params() engine.Params { return p.params }
func (p *Panel) Selected() int         { return p.selected }
func (p *Panel) Paused() bool          { return p.paused }
func (p *Panel) Speed() int            { return p.speed }

func (p *Panel) Value(i int) float64 {
	return *knobs[i].field(&p.params)
}

func (p *Panel) Select(i int) {
	if i >= 0 && i < len(knobs) {
		p.selected = i
	}
}

func (p *Panel) Next() { p.selected = (p.selected + 1) % len(knobs) }
func (p *Panel) Prev() { p.selected = (p.selected + len(knobs) - 1) % len(knobs) }

// Adjust moves the selected knob by steps increments, clamped to its range.
func (p *Panel) Adjust(steps int) {
	p.AdjustKnob(p.selected, steps)
}

func (p *Panel) AdjustKnob(i, steps int) {
	k := knobs[i]
	v := k.field(&p.params)
	next := *v + float64(steps)*k.Step
	// snap to the step grid so repeated nudges don't accumulate drift
	next = math.Round(next/k.Step) * k.Step
	*v = math.Max(k.Min, math.Min(k.Max, next))
}

func (p *Panel) TogglePause() { p.paused = !p.paused }

func (p *Panel) Faster() {
	if p.speed < MaxSpeed {
		p.speed++
	}
}

func (p *Panel) Slower() {
	if p.speed > 1 {
		p.speed--
	}
}

// Apply pushes the panel's parameters to r. Friction takes effect on the
// next tick; distribution parameters only matter on Randomize.
func (p *Panel) Apply(r *sim.Runner) {
	r.SetParams(p.params)
}

// Randomize redraws m from the panel's parameters.
func (p *Panel) Randomize(m *engine.TypeModel) error {
	return m.Randomize(p.params)
}
