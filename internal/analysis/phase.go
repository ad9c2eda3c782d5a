package analysis

import (
	"strings"
)

type Point struct{ X, Y float64 }

// Portrait plots one metric against another over a run, e.g. kinetic
// energy against type mixing, to show whether the system settles or
// cycles.
type Portrait struct {
	XName, YName string
	Points       []Point
}

// NewPortrait pairs xs and ys sample by sample, truncating to the shorter.
func NewPortrait(xName string, xs []float64, yName string, ys []float64) *Portrait {
	n := min(len(xs), len(ys))
	p := &Portrait{XName: xName, YName: yName, Points: make([]Point, n)}
	for i := range n {
		p.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return p
}

// ASCII renders the portrait on a width×height character grid. Later
// samples draw over earlier ones; the final sample is marked with '@'.
func (p *Portrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	// pad by 10% so the trajectory doesn't touch the frame
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	cell := func(pt Point) (row, col int) {
		col = int((pt.X - minX) / rangeX * float64(width-1))
		row = height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		return row, col
	}
	for _, pt := range p.Points {
		row, col := cell(pt)
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}
	if row, col := cell(p.Points[len(p.Points)-1]); row >= 0 && row < height && col >= 0 && col < width {
		canvas[row][col] = '@'
	}

	var sb strings.Builder
	sb.WriteString(p.YName)
	sb.WriteRune('\n')
	for _, row := range canvas {
		sb.WriteRune('│')
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	sb.WriteRune('└')
	sb.WriteString(strings.Repeat("─", width))
	sb.WriteRune('\n')
	sb.WriteString(strings.Repeat(" ", max(0, width+1-len(p.XName))))
	sb.WriteString(p.XName)
	sb.WriteRune('\n')
	return sb.String()
}
