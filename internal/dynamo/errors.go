package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a body state with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidConfig indicates a non-positive timestep or iteration count.
	ErrInvalidConfig = errors.New("dynamo: invalid config")

	// ErrNoWorld indicates a simulator built without a world.
	ErrNoWorld = errors.New("dynamo: no world attached")

	// ErrDimensionMismatch indicates stored frame rows whose width differs from
	// the body columns declared in the header.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between frames")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
