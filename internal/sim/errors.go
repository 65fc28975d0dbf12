package sim

import "errors"

// Domain errors for run configuration and execution.
var (
	// ErrInvalidDt indicates a non-positive tick length.
	ErrInvalidDt = errors.New("sim: dt must be positive")

	// ErrInvalidTicks indicates a non-positive tick count.
	ErrInvalidTicks = errors.New("sim: ticks must be positive")

	// ErrEmptyWorld indicates a run over a world with no bodies.
	ErrEmptyWorld = errors.New("sim: world has no bodies")
)
