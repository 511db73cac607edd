package domain

import "errors"

// Error kinds recovered at the simulator boundary. None of these propagate
// past it: every run returns a well-formed outcome whose ErrorMessage carries
// the user-visible text.
var (
	// ErrInvalidYear marks a target year outside [MinTargetYear, MaxTargetYear].
	ErrInvalidYear = errors.New("target year outside prediction window")

	// ErrDegenerateFit marks a regression that cannot be fitted, e.g. fewer
	// distinct x values than the polynomial degree requires.
	ErrDegenerateFit = errors.New("degenerate regression fit")

	// ErrOutOfRange marks a prediction rejected by the plausibility guard.
	ErrOutOfRange = errors.New("prediction outside plausibility envelope")

	// ErrComputationFault marks an unexpected arithmetic fault (NaN or Inf
	// escaping a model).
	ErrComputationFault = errors.New("computation fault")
)
