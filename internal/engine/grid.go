package engine

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"
)

// GridSize is the number of cells per axis of the neighbor grid.
const GridSize = 32

// Grid buckets one frame of particles into a fixed dim×dim lattice laid
// over the world. Buckets live in one flat arena: particles are sorted by
// cell and starts[c]..starts[c+1] delimits cell c.
//
// Cell lookups wrap modulo dim on both axes whatever the world's boundary
// policy; the grid is an index, not a wall.
type Grid struct {
	dim   int
	scale r2.Vec
	arena *arena
}

type arena struct {
	starts []int
	next   []int
	cells  []int
	items  []Particle
}

var arenaPool = sync.Pool{
	New: func() interface{} { return new(arena) },
}

func (a *arena) reset(cells, n int) {
	a.starts = resize(a.starts, cells+1)
	a.next = resize(a.next, cells)
	a.cells = resize(a.cells, n)
	if cap(a.items) < n {
		a.items = make([]Particle, n)
	}
	a.items = a.items[:n]
	for i := range a.starts {
		a.starts[i] = 0
	}
}

func resize(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	return s[:n]
}

// NewGrid scatters particles into a dim×dim grid spanning the world.
// Particles keep their input order within a cell.
func NewGrid(ps []Particle, w World, dim int) *Grid {
	if dim < 1 {
		dim = 1
	}
	a := arenaPool.Get().(*arena)
	a.reset(dim*dim, len(ps))

	g := &Grid{
		dim:   dim,
		scale: r2.Vec{X: float64(dim) / w.Width, Y: float64(dim) / w.Height},
		arena: a,
	}

	for i, p := range ps {
		c := g.cellOf(p.Pos)
		a.cells[i] = c
		a.starts[c+1]++
	}
	for c := 1; c < len(a.starts); c++ {
		a.starts[c] += a.starts[c-1]
	}
	copy(a.next, a.starts[:dim*dim])
	for i, p := range ps {
		c := a.cells[i]
		a.items[a.next[c]] = p
		a.next[c]++
	}
	return g
}

func (g *Grid) Dim() int { return g.dim }

func (g *Grid) Len() int { return len(g.arena.items) }

// Cell returns the bucket at grid coordinates (cx, cy), wrapped. The slice
// aliases the arena and is only valid until Release.
func (g *Grid) Cell(cx, cy int) []Particle {
	c := wrapIndex(cy, g.dim)*g.dim + wrapIndex(cx, g.dim)
	return g.arena.items[g.arena.starts[c]:g.arena.starts[c+1]]
}

// CellOf returns the grid coordinates of a world position.
func (g *Grid) CellOf(pos r2.Vec) (cx, cy int) {
	return wrapIndex(floorInt(pos.X*g.scale.X), g.dim), wrapIndex(floorInt(pos.Y*g.scale.Y), g.dim)
}

func (g *Grid) cellOf(pos r2.Vec) int {
	cx, cy := g.CellOf(pos)
	return cy*g.dim + cx
}

// Neighbors appends to dst every particle in the cells covering the disc
// of the given radius around pos. The result is a superset of the
// particles within radius; callers must test distances themselves.
func (g *Grid) Neighbors(pos r2.Vec, radius float64, dst []Particle) []Particle {
	x0, x1 := g.span(pos.X, radius, g.scale.X)
	y0, y1 := g.span(pos.Y, radius, g.scale.Y)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dst = append(dst, g.Cell(x, y)...)
		}
	}
	return dst
}

// span returns the inclusive cell range covering [c-r, c+r] on one axis.
// Ranges as wide as the grid collapse to one pass over the axis.
func (g *Grid) span(c, r, scale float64) (lo, hi int) {
	lo = floorInt((c - r) * scale)
	hi = floorInt((c + r) * scale)
	if hi-lo+1 >= g.dim {
		return 0, g.dim - 1
	}
	return lo, hi
}

// Release hands the arena back for reuse. The grid must not be used
// afterwards.
func (g *Grid) Release() {
	if g.arena == nil {
		return
	}
	arenaPool.Put(g.arena)
	g.arena = nil
}

func floorInt(v float64) int {
	return int(math.Floor(v))
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
