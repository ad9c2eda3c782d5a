package engine

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// MaxTypes is the largest number of particle types a model can hold.
const MaxTypes = 256

// TypeModel holds the interaction coefficients for every ordered pair of
// particle types. Attraction is asymmetric; the radii are symmetric.
//
// Matrices are flat row-major buffers indexed by i*n+j.
type TypeModel struct {
	n          int
	attraction []float64
	minRadius  []float64
	maxRadius  []float64
	maxRange   float64
	src        rand.Source
}

// NewTypeModel sizes a model for n types and randomizes it from p. The
// source drives every draw, so equal seeds give equal models.
func NewTypeModel(n int, p Params, src rand.Source) (*TypeModel, error) {
	if n < 1 || n > MaxTypes {
		return nil, fmt.Errorf("%w: got %d", ErrTypeCount, n)
	}
	m := &TypeModel{
		n:          n,
		attraction: make([]float64, n*n),
		minRadius:  make([]float64, n*n),
		maxRadius:  make([]float64, n*n),
		src:        src,
	}
	if err := m.Randomize(p); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *TypeModel) NumTypes() int { return m.n }

// Randomize redraws every coefficient. Invalid distributions are rejected
// before any state changes.
func (m *TypeModel) Randomize(p Params) error {
	if err := p.ValidateDistributions(); err != nil {
		return err
	}

	attraction := distuv.Normal{Mu: p.MeanAttraction, Sigma: p.StdAttraction, Src: m.src}
	minR := distuv.Uniform{Min: p.MinRadiusLower, Max: p.MinRadiusUpper, Src: m.src}
	maxR := distuv.Uniform{Min: p.MaxRadiusLower, Max: p.MaxRadiusUpper, Src: m.src}

	n := m.n
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			ij, ji := i*n+j, j*n+i
			if i == j {
				m.attraction[ij] = math.Abs(attraction.Rand())
				m.minRadius[ij] = Diameter
			} else {
				m.attraction[ij] = attraction.Rand()
				m.minRadius[ij] = math.Max(Diameter, minR.Rand())
			}
			m.maxRadius[ij] = math.Max(maxR.Rand(), m.minRadius[ij])

			m.minRadius[ji] = m.minRadius[ij]
			m.maxRadius[ji] = m.maxRadius[ij]
		}
	}

	m.refreshRange()
	return nil
}

// SetAttraction overrides the coefficient of type i acting toward type j.
func (m *TypeModel) SetAttraction(i, j uint8, a float64) error {
	if err := m.checkPair(i, j); err != nil {
		return err
	}
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return fmt.Errorf("%w: attraction %v", ErrParameterBounds, a)
	}
	m.attraction[int(i)*m.n+int(j)] = a
	return nil
}

// SetRadii overrides the interaction radii of the pair in both directions.
func (m *TypeModel) SetRadii(i, j uint8, minR, maxR float64) error {
	if err := m.checkPair(i, j); err != nil {
		return err
	}
	if !(minR >= Diameter) || !(maxR >= minR) || math.IsInf(maxR, 0) {
		return fmt.Errorf("%w: radii (%g, %g) must satisfy %g <= min <= max", ErrParameterBounds, minR, maxR, Diameter)
	}
	ij, ji := int(i)*m.n+int(j), int(j)*m.n+int(i)
	m.minRadius[ij], m.minRadius[ji] = minR, minR
	m.maxRadius[ij], m.maxRadius[ji] = maxR, maxR
	m.refreshRange()
	return nil
}

func (m *TypeModel) checkPair(i, j uint8) error {
	if int(i) >= m.n || int(j) >= m.n {
		return fmt.Errorf("%w: pair (%d, %d) with %d types", ErrTypeOutOfRange, i, j, m.n)
	}
	return nil
}

func (m *TypeModel) refreshRange() {
	r := 0.0
	for _, v := range m.maxRadius {
		r = math.Max(r, v)
	}
	m.maxRange = r
}

// Attraction returns the coefficient of type i acting toward type j.
func (m *TypeModel) Attraction(i, j uint8) float64 {
	return m.attraction[int(i)*m.n+int(j)]
}

// Radii returns the near and far cutoffs of the pair.
func (m *TypeModel) Radii(i, j uint8) (minR, maxR float64) {
	k := int(i)*m.n + int(j)
	return m.minRadius[k], m.maxRadius[k]
}

// MaxInteractionRadius is the largest far cutoff over all pairs.
func (m *TypeModel) MaxInteractionRadius() float64 { return m.maxRange }

// Matrix returns a copy of the attraction matrix as rows.
func (m *TypeModel) Matrix() [][]float64 {
	rows := make([][]float64, m.n)
	for i := range rows {
		rows[i] = make([]float64, m.n)
		copy(rows[i], m.attraction[i*m.n:(i+1)*m.n])
	}
	return rows
}
