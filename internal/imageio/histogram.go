package imageio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// histogramMagic starts every raw histogram stream.
var histogramMagic = [4]byte{'B', 'H', 'S', '1'}

// MaxHistogramCells is the largest histogram, in cells, that can be
// rendered or decoded.
const MaxHistogramCells = 1 << 30

// EncodeHistogram writes a zstd-compressed raw histogram: the magic, the
// width and height as little-endian uint32, then width*height little-endian
// uint64 counts.
func EncodeHistogram(w io.Writer, width, height int, counts []uint64) error {
	if width <= 0 || height <= 0 || len(counts) != width*height {
		return fmt.Errorf("imageio: histogram size %dx%d does not match %d counts", width, height, len(counts))
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("imageio: zstd writer: %w", err)
	}

	bw := bufio.NewWriter(enc)
	var hdr [12]byte
	copy(hdr[:4], histogramMagic[:])
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(width))
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(height))
	_, _ = bw.Write(hdr[:])

	var cell [8]byte
	for _, v := range counts {
		binary.LittleEndian.PutUint64(cell[:], v)
		_, _ = bw.Write(cell[:])
	}

	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return fmt.Errorf("imageio: write histogram: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("imageio: write histogram: %w", err)
	}
	return nil
}

// DecodeHistogram reads a histogram written by EncodeHistogram.
func DecodeHistogram(r io.Reader) (width, height int, counts []uint64, err error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("imageio: zstd reader: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	var hdr [12]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return 0, 0, nil, fmt.Errorf("%w: header: %w", ErrCorruptHistogram, err)
	}
	if [4]byte(hdr[:4]) != histogramMagic {
		return 0, 0, nil, fmt.Errorf("%w: bad magic %q", ErrCorruptHistogram, hdr[:4])
	}

	width = int(binary.LittleEndian.Uint32(hdr[4:8]))
	height = int(binary.LittleEndian.Uint32(hdr[8:12]))
	if width <= 0 || height <= 0 || width*height > MaxHistogramCells {
		return 0, 0, nil, fmt.Errorf("%w: size %dx%d", ErrCorruptHistogram, width, height)
	}

	counts = make([]uint64, width*height)
	if err := binary.Read(br, binary.LittleEndian, counts); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return 0, 0, nil, fmt.Errorf("%w: counts: %w", ErrCorruptHistogram, err)
	}
	return width, height, counts, nil
}

// SaveHistogram writes a raw histogram to path.
func SaveHistogram(path string, width, height int, counts []uint64) error {
	return create(path, func(w io.Writer) error {
		return EncodeHistogram(w, width, height, counts)
	})
}

// LoadHistogram reads a raw histogram from path.
func LoadHistogram(path string) (width, height int, counts []uint64, err error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return 0, 0, nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeHistogram(f)
}
