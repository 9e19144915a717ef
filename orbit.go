package buddha

// Evaluator runs the escape-time iteration for single sample points.
// An Evaluator is a small value and safe to copy; each worker owns one.
type Evaluator struct {
	mapper    Mapper
	radiusSqr float64
	minIter   int
	maxIter   int
}

// NewEvaluator creates an evaluator for p. The caller must have validated p.
func NewEvaluator(p Params) Evaluator {
	return Evaluator{
		mapper:    NewMapper(p.Width, p.Height(), p.Radius),
		radiusSqr: p.Radius * p.Radius,
		minIter:   p.MinIterations,
		maxIter:   p.MaxIterations,
	}
}

// Evaluate iterates z = z² + c starting at z = c while |z|² < radius² and
// fewer than MaxIterations steps were taken. Every visited point that falls
// inside the image window is appended to dst as a linear pixel index.
//
// It returns the extended slice and the escape time pos, 0 <= pos <= MaxIterations.
// At most pos indices are appended, so a dst with MaxIterations spare
// capacity never reallocates.
func (e *Evaluator) Evaluate(c complex128, dst []int) ([]int, int) {
	size := e.mapper.Size()
	cr, ci := real(c), imag(c)
	zr, zi := cr, ci

	pos := 0
	for zr*zr+zi*zi < e.radiusSqr && pos < e.maxIter {
		if idx := e.mapper.ComplexToIndex(complex(zr, zi)); idx < size {
			dst = append(dst, idx)
		}
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		pos++
	}
	return dst, pos
}

// Retained reports whether an orbit with escape time pos contributes to the
// histogram: it must escape, and not faster than MinIterations.
func (e *Evaluator) Retained(pos int) bool {
	return pos >= e.minIter && pos < e.maxIter
}
