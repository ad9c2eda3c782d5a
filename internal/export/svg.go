package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/particlelife/internal/engine"
	"github.com/san-kum/particlelife/internal/palette"
)

const background = "#0a0a0a"

// FrameToSVG draws every particle as a disc of the engine's diameter,
// scaled by scale pixels per world unit. Particles are grouped per type so
// each type shares one fill.
func FrameToSVG(ps []engine.Particle, w engine.World, pal *palette.Palette, scale float64) string {
	width := w.Width * scale
	height := w.Height * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	byType := make(map[uint8][]engine.Particle)
	var order []uint8
	for _, p := range ps {
		if _, ok := byType[p.Type]; !ok {
			order = append(order, p.Type)
		}
		byType[p.Type] = append(byType[p.Type], p)
	}

	r := engine.Diameter / 2 * scale
	for _, t := range order {
		fmt.Fprintf(&sb, "<g fill=\"%s\">\n", pal.Hex(t))
		for _, p := range byType[t] {
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", p.Pos.X*scale, p.Pos.Y*scale, r)
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws a metric series as a polyline fitted to width×height.
func SeriesToSVG(ticks []int, values []float64, width, height int, strokeColor string) string {
	n := min(len(ticks), len(values))
	if n < 2 {
		return ""
	}

	minX, maxX := float64(ticks[0]), float64(ticks[n-1])
	minY, maxY := values[0], values[0]
	for _, v := range values[:n] {
		minY, maxY = min(minY, v), max(maxY, v)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	for i := 0; i < n; i++ {
		x := (float64(ticks[i]) - minX) / rangeX * float64(width)
		y := float64(height) - (values[i]-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func WriteFile(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
