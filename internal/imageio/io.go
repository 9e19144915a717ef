package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the output format is not supported.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrCorruptHistogram is returned when a raw histogram cannot be decoded.
	ErrCorruptHistogram = errors.New("imageio: corrupt histogram")
)

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 95

// Encode writes img to w in format f.
func Encode(w io.Writer, f Format, img image.Image) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q is not an image format", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", f, err)
	}
	return nil
}

// Save writes img to path in format f.
func Save(path string, f Format, img image.Image) error {
	if !f.IsImage() {
		return fmt.Errorf("%w: %q is not an image format", ErrUnsupportedFormat, f)
	}
	return create(path, func(w io.Writer) error {
		return Encode(w, f, img)
	})
}

// create opens path for writing, runs write and closes the file, reporting
// the first error.
func create(path string, write func(w io.Writer) error) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}

	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
