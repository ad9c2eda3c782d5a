package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/particlelife/internal/engine"
	"github.com/san-kum/particlelife/internal/palette"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const blank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel buffer. Each character cell also remembers the
// type of the last particle drawn into it, which picks the cell's color.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Types         [][]int16
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Types:  make([][]int16, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Types[i] = make([]int16, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y). The canvas is (Width*2) x (Height*4)
// sub-pixels.
func (c *Canvas) Set(x, y int, t uint8) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Types[row][col] = int16(t)
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Types[i][j] = -1
		}
	}
}

// Plot scales the world onto the canvas and draws one dot per particle.
func (c *Canvas) Plot(ps []engine.Particle, w engine.World) {
	sx := float64(c.Width*2) / w.Width
	sy := float64(c.Height*4) / w.Height
	for _, p := range ps {
		c.Set(int(p.Pos.X*sx), int(p.Pos.Y*sy), p.Type)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws the canvas with each cell colored by its particle type.
// Runs of equally colored cells share one style call.
func (c *Canvas) Render(pal *palette.Palette) string {
	styles := make(map[int16]lipgloss.Style)
	style := func(t int16) lipgloss.Style {
		s, ok := styles[t]
		if !ok {
			s = lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Hex(uint8(t))))
			styles[t] = s
		}
		return s
	}

	var b strings.Builder
	for i, row := range c.Grid {
		types := c.Types[i]
		for j := 0; j < len(row); {
			k := j + 1
			for k < len(row) && types[k] == types[j] {
				k++
			}
			run := string(row[j:k])
			if types[j] < 0 {
				b.WriteString(run)
			} else {
				b.WriteString(style(types[j]).Render(run))
			}
			j = k
		}
		b.WriteByte('\n')
	}
	return b.String()
}
