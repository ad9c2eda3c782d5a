package engine

import "errors"

// Domain errors for engine operations.
var (
	// ErrInvalidDistribution indicates a non-positive or non-finite standard deviation.
	ErrInvalidDistribution = errors.New("engine: invalid distribution parameters")

	// ErrInvertedBounds indicates a sampling range whose lower bound exceeds its upper bound.
	ErrInvertedBounds = errors.New("engine: lower bound exceeds upper bound")

	// ErrParameterBounds indicates a physics parameter outside its valid range.
	ErrParameterBounds = errors.New("engine: parameter out of valid bounds")

	// ErrTypeCount indicates an unsupported number of particle types.
	ErrTypeCount = errors.New("engine: type count must be between 1 and 256")

	// ErrTypeOutOfRange indicates a particle whose type has no row in the model.
	ErrTypeOutOfRange = errors.New("engine: particle type out of range")

	// ErrInvalidWorld indicates a world with non-positive or non-finite extent.
	ErrInvalidWorld = errors.New("engine: invalid world extent")
)
