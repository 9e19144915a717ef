package buddha

import "math"

// Mapper converts between linear pixel indices, pixel coordinates and points
// of the complex plane window [-radius, radius]².
//
// Index layout is row-major: index = y*width + x, with y following the
// imaginary axis.
type Mapper struct {
	width  int
	height int
	radius float64
}

// NewMapper creates a mapper for a width×height image viewing the square
// window of the given radius.
func NewMapper(width, height int, radius float64) Mapper {
	return Mapper{width: width, height: height, radius: radius}
}

// Size returns the number of pixels, which is also the first out-of-range index.
func (m Mapper) Size() int {
	return m.width * m.height
}

// PixelToComplex returns the complex point at the top-left corner of pixel (x, y).
func (m Mapper) PixelToComplex(x, y int) complex128 {
	re := m.radius * (2*float64(x)/float64(m.width) - 1)
	im := m.radius * (2*float64(y)/float64(m.height) - 1)
	return complex(re, im)
}

// ComplexToPixel returns the pixel containing c. The result may lie outside
// the image; use Contains to check.
func (m Mapper) ComplexToPixel(c complex128) (x, y int) {
	fx := (real(c)/m.radius + 1) * float64(m.width) / 2
	fy := (imag(c)/m.radius + 1) * float64(m.height) / 2
	return toPixel(fx), toPixel(fy)
}

// toPixel truncates toward negative infinity so that points just left of
// the window never land in column 0. NaN and huge values map to -1.
func toPixel(f float64) int {
	if !(f >= 0) || f >= math.MaxInt32 {
		return -1
	}
	return int(f)
}

// Contains reports whether (x, y) lies inside the image.
func (m Mapper) Contains(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// ComplexToIndex returns the linear index of the pixel containing c, or
// Size() when c lies outside the window.
func (m Mapper) ComplexToIndex(c complex128) int {
	x, y := m.ComplexToPixel(c)
	if !m.Contains(x, y) {
		return m.Size()
	}
	return y*m.width + x
}

// PixelToIndex flattens (x, y) into a linear index.
func (m Mapper) PixelToIndex(x, y int) int {
	return y*m.width + x
}

// IndexToPixel expands a linear index into (x, y).
func (m Mapper) IndexToPixel(i int) (x, y int) {
	return i % m.width, i / m.width
}

// IndexToComplex returns the complex point of the pixel at linear index i.
func (m Mapper) IndexToComplex(i int) complex128 {
	x, y := m.IndexToPixel(i)
	return m.PixelToComplex(x, y)
}
