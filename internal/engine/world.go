package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// World is the simulated extent and its boundary policy. With Wrap set the
// world is a torus; otherwise it is a box with reflective walls.
type World struct {
	Width  float64
	Height float64
	Wrap   bool
}

// NewWorld validates the extent and returns the world.
func NewWorld(width, height float64, wrap bool) (World, error) {
	w := World{Width: width, Height: height, Wrap: wrap}
	if err := w.Validate(); err != nil {
		return World{}, err
	}
	return w, nil
}

func (w World) Validate() error {
	if !(w.Width > 0) || !(w.Height > 0) || math.IsInf(w.Width, 0) || math.IsInf(w.Height, 0) {
		return fmt.Errorf("%w: %gx%g", ErrInvalidWorld, w.Width, w.Height)
	}
	return nil
}

func (w World) Extent() (width, height float64) { return w.Width, w.Height }

func (w World) Size() r2.Vec { return r2.Vec{X: w.Width, Y: w.Height} }

// Delta returns the displacement from p to q. On a torus each axis is
// replaced by its minimal image.
func (w World) Delta(p, q r2.Vec) r2.Vec {
	d := r2.Sub(q, p)
	if !w.Wrap {
		return d
	}
	d.X = minimalImage(d.X, w.Width)
	d.Y = minimalImage(d.Y, w.Height)
	return d
}

func minimalImage(d, extent float64) float64 {
	if d > extent*0.5 {
		return d - extent
	}
	if d < -extent*0.5 {
		return d + extent
	}
	return d
}

// Confine applies the boundary policy to an integrated position and its
// velocity.
func (w World) Confine(pos, vel r2.Vec) (r2.Vec, r2.Vec) {
	if w.Wrap {
		pos.X = wrapAxis(pos.X, w.Width)
		pos.Y = wrapAxis(pos.Y, w.Height)
		return pos, vel
	}
	pos.X, vel.X = reflectAxis(pos.X, vel.X, w.Width)
	pos.Y, vel.Y = reflectAxis(pos.Y, vel.Y, w.Height)
	return pos, vel
}

func wrapAxis(x, extent float64) float64 {
	x = math.Mod(x, extent)
	if x < 0 {
		x += extent
	}
	// tiny negative remainders round up to exactly extent
	if x >= extent {
		x -= extent
	}
	return x
}

func reflectAxis(x, v, extent float64) (float64, float64) {
	const inset = Diameter / 2
	if x <= inset {
		return inset, -v
	}
	if x >= extent-inset {
		return extent - inset, -v
	}
	return x, v
}
