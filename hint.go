package buddha

// InMainBody reports whether c lies in the main cardioid or the period-2
// bulb of the Mandelbrot set. Such points never escape, so the engine skips
// them without iterating.
//
// The cardioid test q(q + (x - 1/4)) <= y²/4 with q = (x - 1/4)² + y² is the
// closed form of |1 - sqrt(1 - 4c)| <= 1. The bulb is the disk of radius 1/4
// centered at -1. Both regions are exact subsets of the set, so a true
// result is never wrong; points outside them are simply iterated.
func InMainBody(c complex128) bool {
	x, y := real(c), imag(c)
	y2 := y * y

	xq := x - 0.25
	q := xq*xq + y2
	if q*(q+xq) <= 0.25*y2 {
		return true
	}

	xb := x + 1
	return xb*xb+y2 <= 0.0625
}
