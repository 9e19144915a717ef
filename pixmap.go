package buddha

import (
	"image"
	"image/color"

	"github.com/gogpu/buddha/internal/imageio"
)

// Pixmap is an opaque RGB pixel buffer produced by Render.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGB format, 3 bytes per pixel
}

// NewPixmap creates a black pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*3),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGB format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel. Out-of-bounds writes are ignored.
func (p *Pixmap) SetPixel(x, y int, c RGB) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 3
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
}

// GetPixel returns the color of a single pixel, or black outside the pixmap.
func (p *Pixmap) GetPixel(x, y int) RGB {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return RGB{}
	}
	i := (y*p.width + x) * 3
	return RGB{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2]}
}

// IsGray reports whether every pixel has equal channels.
func (p *Pixmap) IsGray() bool {
	for i := 0; i < len(p.data); i += 3 {
		if p.data[i] != p.data[i+1] || p.data[i+1] != p.data[i+2] {
			return false
		}
	}
	return true
}

// ToImage converts the pixmap to a standard image. Grayscale pixmaps become
// *image.Gray, everything else *image.RGBA.
func (p *Pixmap) ToImage() image.Image {
	rect := image.Rect(0, 0, p.width, p.height)

	if p.IsGray() {
		img := image.NewGray(rect)
		for i := range img.Pix {
			img.Pix[i] = p.data[i*3]
		}
		return img
	}

	img := image.NewRGBA(rect)
	for i, j := 0, 0; i < len(p.data); i, j = i+3, j+4 {
		img.Pix[j+0] = p.data[i+0]
		img.Pix[j+1] = p.data[i+1]
		img.Pix[j+2] = p.data[i+2]
		img.Pix[j+3] = 255
	}
	return img
}

// Save encodes the pixmap in format ("png", "jpeg", "bmp" or "tiff") to path.
func (p *Pixmap) Save(path, format string) error {
	f, err := imageio.ParseFormat(format)
	if err != nil {
		return err
	}
	return imageio.Save(path, f, p.ToImage())
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	return imageio.Save(path, imageio.PNG, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
