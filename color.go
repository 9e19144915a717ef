package buddha

import (
	"image/color"
	"math"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Gray creates an RGB with all channels set to v.
func Gray(v uint8) RGB {
	return RGB{R: v, G: v, B: v}
}

// Color converts RGB to the standard color.Color interface.
func (c RGB) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// IsGray reports whether all channels are equal.
func (c RGB) IsGray() bool {
	return c.R == c.G && c.G == c.B
}

// scale maps a fraction in [0, 1] to a channel value.
func scale(f float64) uint8 {
	return uint8(clamp255(math.Round(f * 255)))
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}
