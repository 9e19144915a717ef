package buddha

import "errors"

// Construction errors returned by New. Callers test them with errors.Is.
var (
	// ErrMaxIterationsTooBig is returned when MaxIterations does not fit
	// into the per-worker point buffer.
	ErrMaxIterationsTooBig = errors.New("buddha: max iterations exceed buffer capacity")

	// ErrMinGreaterThanMax is returned when MinIterations > MaxIterations.
	ErrMinGreaterThanMax = errors.New("buddha: min iterations greater than max iterations")

	// ErrInvalidParams is returned for non-positive sizes, radii or
	// subpixel resolutions.
	ErrInvalidParams = errors.New("buddha: invalid parameters")
)
