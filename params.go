package buddha

import (
	"fmt"
	"math"

	"github.com/gogpu/buddha/internal/imageio"
)

// DefaultBufferCapacity is the default number of pending orbit points a
// worker holds before it must flush into the shared density buffer.
const DefaultBufferCapacity = 10 * 1024 * 1024

// MaxWidth is the largest image side. Width*Width never exceeds
// imageio.MaxHistogramCells.
const MaxWidth = 1 << 15

// Params describes a single render. A Params value is immutable once handed
// to New.
type Params struct {
	// Name is the output base name.
	Name string

	// Format is the output format ("png", "jpeg", "bmp", "tiff" or "raw").
	Format string

	// Width is the side length of the square image in pixels.
	Width int

	// Radius defines the complex plane window [-Radius, Radius] on both axes.
	// It is also the escape radius of the iteration.
	Radius float64

	// MaxIterations is the iteration cap. Orbits reaching it are treated
	// as members of the set and discarded.
	MaxIterations int

	// MinIterations discards orbits that escape in fewer steps.
	MinIterations int

	// SubpixelResolution is the side of the supersampling grid per pixel.
	SubpixelResolution int

	// Threads is the number of workers. Zero or negative means GOMAXPROCS.
	Threads int

	// BufferCapacity bounds the per-worker pending point buffer.
	// Zero means DefaultBufferCapacity.
	BufferCapacity int

	// Schema maps counts to colors when the result is rendered.
	// Nil means Grayscale.
	Schema Schema
}

// DefaultParams returns the parameters used for config sections that leave
// keys unset.
func DefaultParams() Params {
	return Params{
		Format:             "png",
		Width:              512,
		Radius:             2,
		MaxIterations:      20,
		MinIterations:      0,
		SubpixelResolution: 1,
		BufferCapacity:     DefaultBufferCapacity,
		Schema:             Grayscale,
	}
}

// Height returns the image height. Images are square.
func (p Params) Height() int {
	return p.Width
}

// Samples returns the number of sample points a full render evaluates.
func (p Params) Samples() uint64 {
	return uint64(p.Width) * uint64(p.Height()) * uint64(p.SubpixelResolution) * uint64(p.SubpixelResolution)
}

// Filename returns the output file name derived from Name and Format.
func (p Params) Filename() (string, error) {
	f, err := imageio.ParseFormat(p.Format)
	if err != nil {
		return "", err
	}
	return p.Name + "." + f.Ext(), nil
}

// Validate reports whether p can be rendered.
func (p Params) Validate() error {
	switch {
	case p.Width <= 0, p.Width > MaxWidth:
		return fmt.Errorf("%w: width %d not in [1, %d]", ErrInvalidParams, p.Width, MaxWidth)
	case !(p.Radius > 0):
		return fmt.Errorf("%w: radius %g", ErrInvalidParams, p.Radius)
	case p.SubpixelResolution <= 0:
		return fmt.Errorf("%w: subpixel resolution %d", ErrInvalidParams, p.SubpixelResolution)
	case p.MaxIterations <= 0:
		return fmt.Errorf("%w: max iterations %d", ErrInvalidParams, p.MaxIterations)
	case p.MinIterations < 0:
		return fmt.Errorf("%w: min iterations %d", ErrInvalidParams, p.MinIterations)
	case p.BufferCapacity < 0:
		return fmt.Errorf("%w: buffer capacity %d", ErrInvalidParams, p.BufferCapacity)
	}

	// The sample count must fit the uint64 progress counter.
	cells := uint64(p.Width) * uint64(p.Width)
	sub := uint64(p.SubpixelResolution)
	if sub > math.MaxUint64/cells/sub {
		return fmt.Errorf("%w: subpixel resolution %d at width %d overflows the sample count",
			ErrInvalidParams, p.SubpixelResolution, p.Width)
	}

	if p.MinIterations > p.MaxIterations {
		return fmt.Errorf("%w: %d > %d", ErrMinGreaterThanMax, p.MinIterations, p.MaxIterations)
	}
	if p.MaxIterations > p.bufferCapacity() {
		return fmt.Errorf("%w: %d > %d", ErrMaxIterationsTooBig, p.MaxIterations, p.bufferCapacity())
	}
	return nil
}

func (p Params) bufferCapacity() int {
	if p.BufferCapacity == 0 {
		return DefaultBufferCapacity
	}
	return p.BufferCapacity
}

func (p Params) schema() Schema {
	if p.Schema == nil {
		return Grayscale
	}
	return p.Schema
}
