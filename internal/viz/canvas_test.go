package viz

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/particlelife/internal/engine"
	"github.com/san-kum/particlelife/internal/palette"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0, 3)
	c.Set(1, 3, 3)

	if c.Grid[0][0] != blank|0x1|0x80 {
		t.Errorf("unexpected cell %U", c.Grid[0][0])
	}
	if c.Types[0][0] != 3 {
		t.Errorf("expected type 3, got %d", c.Types[0][0])
	}
	if c.Types[1][1] != -1 {
		t.Error("untouched cell should have no type")
	}

	// out of range writes are ignored
	c.Set(-1, 0, 0)
	c.Set(8, 0, 0)
	c.Set(0, 8, 0)

	c.Clear()
	if c.Grid[0][0] != blank || c.Types[0][0] != -1 {
		t.Error("clear should reset cells")
	}
}

func TestCanvasPlot(t *testing.T) {
	w, err := engine.NewWorld(100, 100, true)
	if err != nil {
		t.Fatal(err)
	}
	c := NewCanvas(10, 5)
	c.Plot([]engine.Particle{
		{Pos: r2.Vec{X: 0, Y: 0}, Type: 1},
		{Pos: r2.Vec{X: 99.9, Y: 99.9}, Type: 2},
	}, w)

	if c.Types[0][0] != 1 {
		t.Errorf("origin should land in the top-left cell, got type %d", c.Types[0][0])
	}
	if c.Types[4][9] != 2 {
		t.Errorf("far corner should land in the bottom-right cell, got type %d", c.Types[4][9])
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Set(0, 0, 0)
	c.Set(2, 0, 0)

	out := c.Render(palette.New(2, 0))
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected one row, got %q", out)
	}
	if !strings.Contains(out, string(rune(blank|0x1))) {
		t.Errorf("lit cell missing from %q", out)
	}
	if c.String() != string([]rune{blank | 0x1, blank | 0x1, blank})+"\n" {
		t.Errorf("unexpected plain rendering %q", c.String())
	}
}
