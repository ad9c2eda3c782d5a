package engine

import (
	"fmt"
	"math"
)

// Params are the physics parameters of a run: the distributions the type
// model is drawn from and the per-tick velocity damping.
type Params struct {
	MeanAttraction float64
	StdAttraction  float64
	MinRadiusLower float64
	MinRadiusUpper float64
	MaxRadiusLower float64
	MaxRadiusUpper float64
	Friction       float64
}

func DefaultParams() Params {
	return Params{
		MeanAttraction: 0.0,
		StdAttraction:  0.04,
		MinRadiusLower: 0.0,
		MinRadiusUpper: 10.0,
		MaxRadiusLower: 10.0,
		MaxRadiusUpper: 40.0,
		Friction:       0.05,
	}
}

// Validate checks both the sampling distributions and the friction.
func (p Params) Validate() error {
	if err := p.ValidateDistributions(); err != nil {
		return err
	}
	return p.ValidateFriction()
}

// ValidateDistributions checks the parameters consumed by Randomize.
func (p Params) ValidateDistributions() error {
	for _, v := range [...]float64{p.MeanAttraction, p.StdAttraction, p.MinRadiusLower, p.MinRadiusUpper, p.MaxRadiusLower, p.MaxRadiusUpper} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value %v", ErrInvalidDistribution, v)
		}
	}
	if p.StdAttraction <= 0 {
		return fmt.Errorf("%w: attraction std must be positive, got %g", ErrInvalidDistribution, p.StdAttraction)
	}
	if p.MinRadiusLower > p.MinRadiusUpper {
		return fmt.Errorf("%w: min radius range [%g, %g]", ErrInvertedBounds, p.MinRadiusLower, p.MinRadiusUpper)
	}
	if p.MaxRadiusLower > p.MaxRadiusUpper {
		return fmt.Errorf("%w: max radius range [%g, %g]", ErrInvertedBounds, p.MaxRadiusLower, p.MaxRadiusUpper)
	}
	return nil
}

// ValidateFriction checks the damping coefficient consumed by Step.
func (p Params) ValidateFriction() error {
	if !(p.Friction >= 0 && p.Friction <= 1) {
		return fmt.Errorf("%w: friction must be in [0, 1], got %g", ErrParameterBounds, p.Friction)
	}
	return nil
}
