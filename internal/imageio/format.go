// Package imageio encodes rendered images and raw histograms to disk.
package imageio

import (
	"fmt"
	"strings"
)

// Format identifies an output encoding.
type Format string

// Supported formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	TIFF Format = "tiff"

	// Raw stores the histogram counts themselves, zstd-compressed,
	// so an image can be recolored without rendering again.
	Raw Format = "raw"
)

// ParseFormat resolves a format name. Matching ignores case and accepts
// the common aliases "jpg" and "tif".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png", "":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tiff", "tif":
		return TIFF, nil
	case "raw":
		return Raw, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	switch f {
	case JPEG:
		return "jpg"
	case Raw:
		return "hist.zst"
	}
	return string(f)
}

// IsImage reports whether f encodes pixels rather than counts.
func (f Format) IsImage() bool {
	return f != Raw
}

// String implements fmt.Stringer.
func (f Format) String() string {
	return string(f)
}
