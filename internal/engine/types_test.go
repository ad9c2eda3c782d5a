package engine

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func newTestModel(t *testing.T, n int, seed uint64) *TypeModel {
	t.Helper()
	m, err := NewTypeModel(n, DefaultParams(), rand.NewSource(seed))
	if err != nil {
		t.Fatalf("NewTypeModel: %v", err)
	}
	return m
}

func TestTypeModel_Invariants(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		m := newTestModel(t, 8, seed)
		n := uint8(m.NumTypes())
		for i := uint8(0); i < n; i++ {
			for j := uint8(0); j < n; j++ {
				minIJ, maxIJ := m.Radii(i, j)
				minJI, maxJI := m.Radii(j, i)
				if minIJ != minJI || maxIJ != maxJI {
					t.Fatalf("seed %d: radii (%d,%d)=(%g,%g) but (%d,%d)=(%g,%g)", seed, i, j, minIJ, maxIJ, j, i, minJI, maxJI)
				}
				if minIJ < Diameter {
					t.Errorf("seed %d: minRadius(%d,%d)=%g below diameter", seed, i, j, minIJ)
				}
				if maxIJ < minIJ {
					t.Errorf("seed %d: maxRadius(%d,%d)=%g below minRadius %g", seed, i, j, maxIJ, minIJ)
				}
				if maxIJ > m.MaxInteractionRadius() {
					t.Errorf("seed %d: maxRadius(%d,%d)=%g exceeds MaxInteractionRadius %g", seed, i, j, maxIJ, m.MaxInteractionRadius())
				}
			}
			if a := m.Attraction(i, i); a < 0 {
				t.Errorf("seed %d: self attraction of %d is negative: %g", seed, i, a)
			}
			if minR, _ := m.Radii(i, i); minR != Diameter {
				t.Errorf("seed %d: diagonal minRadius of %d = %g, want %g", seed, i, minR, Diameter)
			}
		}
	}
}

func TestTypeModel_AttractionIsAsymmetric(t *testing.T) {
	m := newTestModel(t, 8, 7)
	for i := uint8(0); i < 8; i++ {
		for j := i + 1; j < 8; j++ {
			if m.Attraction(i, j) != m.Attraction(j, i) {
				return
			}
		}
	}
	t.Error("every off-diagonal attraction pair is symmetric")
}

func TestTypeModel_Deterministic(t *testing.T) {
	a := newTestModel(t, 6, 99)
	b := newTestModel(t, 6, 99)
	for i := uint8(0); i < 6; i++ {
		for j := uint8(0); j < 6; j++ {
			if a.Attraction(i, j) != b.Attraction(i, j) {
				t.Fatalf("attraction (%d,%d) differs between equal seeds", i, j)
			}
			amin, amax := a.Radii(i, j)
			bmin, bmax := b.Radii(i, j)
			if amin != bmin || amax != bmax {
				t.Fatalf("radii (%d,%d) differ between equal seeds", i, j)
			}
		}
	}
}

func TestTypeModel_RandomizeRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Params)
		want   error
	}{
		{"zero std", func(p *Params) { p.StdAttraction = 0 }, ErrInvalidDistribution},
		{"negative std", func(p *Params) { p.StdAttraction = -0.1 }, ErrInvalidDistribution},
		{"NaN mean", func(p *Params) { p.MeanAttraction = math.NaN() }, ErrInvalidDistribution},
		{"inverted min radius", func(p *Params) { p.MinRadiusLower, p.MinRadiusUpper = 5, 2 }, ErrInvertedBounds},
		{"inverted max radius", func(p *Params) { p.MaxRadiusLower, p.MaxRadiusUpper = 40, 10 }, ErrInvertedBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, 4, 3)
			before := m.Matrix()
			beforeRange := m.MaxInteractionRadius()

			p := DefaultParams()
			tt.modify(&p)
			err := m.Randomize(p)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Randomize() error = %v, want %v", err, tt.want)
			}

			after := m.Matrix()
			for i := range before {
				for j := range before[i] {
					if before[i][j] != after[i][j] {
						t.Fatalf("attraction (%d,%d) changed after failed randomize", i, j)
					}
				}
			}
			if m.MaxInteractionRadius() != beforeRange {
				t.Error("max interaction radius changed after failed randomize")
			}
		})
	}
}

func TestTypeModel_EqualBoundsAllowed(t *testing.T) {
	p := DefaultParams()
	p.MinRadiusLower, p.MinRadiusUpper = 4, 4
	p.MaxRadiusLower, p.MaxRadiusUpper = 12, 12

	m, err := NewTypeModel(3, p, rand.NewSource(1))
	if err != nil {
		t.Fatalf("NewTypeModel: %v", err)
	}
	if minR, maxR := m.Radii(0, 1); minR != 4 || maxR != 12 {
		t.Errorf("Radii(0,1) = (%g,%g), want (4,12)", minR, maxR)
	}
	if m.MaxInteractionRadius() != 12 {
		t.Errorf("MaxInteractionRadius() = %g, want 12", m.MaxInteractionRadius())
	}
}

func TestNewTypeModel_TypeCount(t *testing.T) {
	for _, n := range []int{0, -1, MaxTypes + 1} {
		if _, err := NewTypeModel(n, DefaultParams(), rand.NewSource(1)); !errors.Is(err, ErrTypeCount) {
			t.Errorf("NewTypeModel(%d) error = %v, want ErrTypeCount", n, err)
		}
	}
	if _, err := NewTypeModel(MaxTypes, DefaultParams(), rand.NewSource(1)); err != nil {
		t.Errorf("NewTypeModel(%d): %v", MaxTypes, err)
	}
}

func TestTypeModel_SetRadii(t *testing.T) {
	m := newTestModel(t, 3, 1)

	if err := m.SetRadii(0, 2, 2, 50); err != nil {
		t.Fatalf("SetRadii: %v", err)
	}
	if minR, maxR := m.Radii(2, 0); minR != 2 || maxR != 50 {
		t.Errorf("Radii(2,0) = (%g,%g), want mirrored (2,50)", minR, maxR)
	}
	if m.MaxInteractionRadius() != 50 {
		t.Errorf("MaxInteractionRadius() = %g, want 50", m.MaxInteractionRadius())
	}

	bad := []struct{ minR, maxR float64 }{
		{0.5, 3},
		{3, 2},
		{math.NaN(), 3},
		{2, math.Inf(1)},
	}
	for _, b := range bad {
		if err := m.SetRadii(0, 1, b.minR, b.maxR); !errors.Is(err, ErrParameterBounds) {
			t.Errorf("SetRadii(%g,%g) error = %v, want ErrParameterBounds", b.minR, b.maxR, err)
		}
	}
	if err := m.SetRadii(0, 3, 1, 2); !errors.Is(err, ErrTypeOutOfRange) {
		t.Errorf("SetRadii with type 3 error = %v, want ErrTypeOutOfRange", err)
	}
}

func TestTypeModel_SetAttractionOnlyOneDirection(t *testing.T) {
	m := newTestModel(t, 2, 1)
	back := m.Attraction(1, 0)
	if err := m.SetAttraction(0, 1, 0.75); err != nil {
		t.Fatalf("SetAttraction: %v", err)
	}
	if m.Attraction(0, 1) != 0.75 {
		t.Errorf("Attraction(0,1) = %g, want 0.75", m.Attraction(0, 1))
	}
	if m.Attraction(1, 0) != back {
		t.Error("SetAttraction changed the reverse direction")
	}
}
