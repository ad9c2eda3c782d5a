package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/particlelife/internal/engine"
	"github.com/san-kum/particlelife/internal/palette"
)

// Colors converts a palette to raylib colors, one per type.
func Colors(pal *palette.Palette) []rl.Color {
	cs := make([]rl.Color, pal.Len())
	for i := range cs {
		r, g, b, a := pal.RGBA(uint8(i))
		cs[i] = rl.NewColor(r, g, b, a)
	}
	return cs
}

// FitScale is the zoom that fits a w×h world inside a vw×vh viewport with
// a small margin.
func FitScale(w, h float64, vw, vh float32) float32 {
	if w <= 0 || h <= 0 {
		return 1
	}
	const margin = 0.95
	return min(vw/float32(w), vh/float32(h)) * margin
}

func (a *App) drawSim() {
	rl.BeginMode2D(a.Camera)
	w, h := a.exp.World().Extent()
	rl.DrawRectangleLinesEx(rl.NewRectangle(0, 0, float32(w), float32(h)), 1/a.Camera.Zoom, ColBounds)
	a.RenderParticles(a.frame)
	rl.EndMode2D()
}

// RenderParticles draws each particle as a disc of the engine's diameter.
// On a torus particles within a radius of an edge are also drawn on the
// opposite side so clusters look continuous across the seam.
func (a *App) RenderParticles(ps []engine.Particle) {
	world := a.exp.World()
	w, h := world.Extent()
	radius := float32(engine.Diameter / 2)
	for _, p := range ps {
		col := a.colors[int(p.Type)%len(a.colors)]
		x, y := float32(p.Pos.X), float32(p.Pos.Y)
		rl.DrawCircleV(rl.NewVector2(x, y), radius, col)
		if !world.Wrap {
			continue
		}
		for _, g := range ghosts(p.Pos.X, p.Pos.Y, w, h, engine.Diameter/2) {
			rl.DrawCircleV(rl.NewVector2(float32(g[0]), float32(g[1])), radius, col)
		}
	}
}

// ghosts returns the wrapped copies of (x, y) for a disc of radius r that
// overlaps the edges of a w×h torus.
func ghosts(x, y, w, h, r float64) [][2]float64 {
	var dx, dy float64
	switch {
	case x < r:
		dx = w
	case x > w-r:
		dx = -w
	}
	switch {
	case y < r:
		dy = h
	case y > h-r:
		dy = -h
	}

	var out [][2]float64
	if dx != 0 {
		out = append(out, [2]float64{x + dx, y})
	}
	if dy != 0 {
		out = append(out, [2]float64{x, y + dy})
	}
	if dx != 0 && dy != 0 {
		out = append(out, [2]float64{x + dx, y + dy})
	}
	return out
}

func (a *App) DrawTelemetry(x, y, width, height int) {
	if len(a.Telemetry) < 2 {
		return
	}

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal, maxVal = min(minVal, v), max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(x) + float32(i)/float32(maxTelemetry)*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(y+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("E %.2e", a.Telemetry[len(a.Telemetry)-1]), x, y+height+6, 14, ColText)
}
