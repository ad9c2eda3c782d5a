package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/particlelife/internal/engine"
	"github.com/san-kum/particlelife/internal/palette"
)

func TestFrameToSVG(t *testing.T) {
	w, err := engine.NewWorld(50, 40, true)
	if err != nil {
		t.Fatal(err)
	}
	pal := palette.New(2, 0)
	ps := []engine.Particle{
		{Pos: r2.Vec{X: 10, Y: 10}, Type: 0},
		{Pos: r2.Vec{X: 20, Y: 5}, Type: 1},
		{Pos: r2.Vec{X: 30, Y: 35}, Type: 0},
	}

	svg := FrameToSVG(ps, w, pal, 4)

	if !strings.Contains(svg, `width="200" height="160"`) {
		t.Errorf("unexpected dimensions:\n%s", svg)
	}
	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("expected 3 circles, got %d", got)
	}
	if got := strings.Count(svg, "<g fill="); got != 2 {
		t.Errorf("expected one group per type, got %d", got)
	}
	for i := uint8(0); i < 2; i++ {
		if !strings.Contains(svg, pal.Hex(i)) {
			t.Errorf("missing color for type %d", i)
		}
	}
	if !strings.Contains(svg, `<circle cx="80.0" cy="20.0" r="2.0"/>`) {
		t.Errorf("particle 1 not placed at scale:\n%s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("svg not closed")
	}
}

func TestSeriesToSVG(t *testing.T) {
	svg := SeriesToSVG([]int{0, 5, 10}, []float64{1, 3, 2}, 100, 50, "#00ff00")
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("missing stroke color")
	}
	if got := strings.Count(svg, " L"); got != 2 {
		t.Errorf("expected 2 line segments, got %d", got)
	}
	if !strings.Contains(svg, "M0.0,") {
		t.Error("path should start at the left edge")
	}

	if SeriesToSVG([]int{0}, []float64{1}, 100, 50, "#fff") != "" {
		t.Error("single sample should render nothing")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.svg")
	if err := WriteFile(path, "<svg/>"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("read back %q, %v", data, err)
	}
}
