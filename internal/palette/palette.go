// Package palette assigns each particle type a display color, spaced evenly
// around the HSLuv hue circle so types stay distinguishable at equal
// perceived lightness.
package palette

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	saturation = 1.0
	lightness  = 0.5
)

type Palette struct {
	colors []colorful.Color
	offset float64
}

// New builds a palette for n types. offset rotates the hue circle and is
// taken modulo 1.
func New(n int, offset float64) *Palette {
	if n < 1 {
		n = 1
	}
	offset -= math.Floor(offset)
	p := &Palette{colors: make([]colorful.Color, n), offset: offset}
	for i := range p.colors {
		h := float64(i)/float64(n) + offset
		h -= math.Floor(h)
		p.colors[i] = colorful.HSLuv(h*360, saturation, lightness)
	}
	return p
}

func (p *Palette) Len() int        { return len(p.colors) }
func (p *Palette) Offset() float64 { return p.offset }

// Color returns the color for type t; types past the end cycle.
func (p *Palette) Color(t uint8) colorful.Color {
	return p.colors[int(t)%len(p.colors)]
}

func (p *Palette) Hex(t uint8) string {
	return p.Color(t).Hex()
}

func (p *Palette) RGBA(t uint8) (r, g, b, a uint8) {
	r, g, b = p.Color(t).RGB255()
	return r, g, b, 255
}

// Hexes lists every type's color, in type order.
func (p *Palette) Hexes() []string {
	out := make([]string, len(p.colors))
	for i, c := range p.colors {
		out[i] = c.Hex()
	}
	return out
}

func (p *Palette) String() string {
	return fmt.Sprintf("palette(%d types, offset %.3f)", len(p.colors), p.offset)
}
