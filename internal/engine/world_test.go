package engine

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewWorld_Invalid(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
	}{
		{"zero width", 0, 10},
		{"negative height", 10, -1},
		{"NaN", math.NaN(), 10},
		{"Inf", math.Inf(1), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewWorld(tt.w, tt.h, true); !errors.Is(err, ErrInvalidWorld) {
				t.Errorf("NewWorld error = %v, want ErrInvalidWorld", err)
			}
		})
	}
}

func TestWorld_Delta(t *testing.T) {
	torus := World{Width: 100, Height: 50, Wrap: true}
	box := World{Width: 100, Height: 50}

	tests := []struct {
		name  string
		world World
		p, q  r2.Vec
		want  r2.Vec
	}{
		{"wrap across x seam", torus, r2.Vec{X: 1, Y: 10}, r2.Vec{X: 99, Y: 10}, r2.Vec{X: -2, Y: 0}},
		{"wrap across x seam reversed", torus, r2.Vec{X: 99, Y: 10}, r2.Vec{X: 1, Y: 10}, r2.Vec{X: 2, Y: 0}},
		{"wrap across y seam", torus, r2.Vec{X: 5, Y: 48}, r2.Vec{X: 5, Y: 2}, r2.Vec{X: 0, Y: 4}},
		{"no wrap inside half extent", torus, r2.Vec{X: 10, Y: 10}, r2.Vec{X: 40, Y: 30}, r2.Vec{X: 30, Y: 20}},
		{"walls keep raw delta", box, r2.Vec{X: 1, Y: 10}, r2.Vec{X: 99, Y: 10}, r2.Vec{X: 98, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.world.Delta(tt.p, tt.q); got != tt.want {
				t.Errorf("Delta() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWorld_ConfineWrap(t *testing.T) {
	w := World{Width: 100, Height: 50, Wrap: true}
	tests := []struct {
		pos, want r2.Vec
	}{
		{r2.Vec{X: 101, Y: 51}, r2.Vec{X: 1, Y: 1}},
		{r2.Vec{X: -1, Y: -2}, r2.Vec{X: 99, Y: 48}},
		{r2.Vec{X: 100, Y: 50}, r2.Vec{X: 0, Y: 0}},
		{r2.Vec{X: -1e-17, Y: 25}, r2.Vec{X: 0, Y: 25}},
	}
	for _, tt := range tests {
		got, _ := w.Confine(tt.pos, r2.Vec{X: 1, Y: 1})
		if got != tt.want {
			t.Errorf("Confine(%v) = %v, want %v", tt.pos, got, tt.want)
		}
		if got.X < 0 || got.X >= w.Width || got.Y < 0 || got.Y >= w.Height {
			t.Errorf("Confine(%v) = %v escapes the world", tt.pos, got)
		}
	}
}

func TestWorld_ConfineReflect(t *testing.T) {
	w := World{Width: 100, Height: 50}
	const inset = Diameter / 2

	pos, vel := w.Confine(r2.Vec{X: -3, Y: 20}, r2.Vec{X: -2, Y: 1})
	if pos.X != inset || vel.X != 2 || vel.Y != 1 {
		t.Errorf("left wall: pos=%v vel=%v", pos, vel)
	}

	pos, vel = w.Confine(r2.Vec{X: 20, Y: 60}, r2.Vec{X: 1, Y: 3})
	if pos.Y != 50-inset || vel.Y != -3 || vel.X != 1 {
		t.Errorf("top wall: pos=%v vel=%v", pos, vel)
	}

	pos, vel = w.Confine(r2.Vec{X: 20, Y: 20}, r2.Vec{X: 1, Y: 3})
	if pos != (r2.Vec{X: 20, Y: 20}) || vel != (r2.Vec{X: 1, Y: 3}) {
		t.Errorf("interior: pos=%v vel=%v", pos, vel)
	}
}
