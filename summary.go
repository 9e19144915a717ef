package buddha

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// Summary describes a finished render. It is written next to the image so
// the histogram scale can be recovered later.
type Summary struct {
	Name               string  `json:"name"`
	Format             string  `json:"format"`
	Width              int     `json:"width"`
	Height             int     `json:"height"`
	Radius             float64 `json:"radius"`
	MaxIterations      int     `json:"max_iterations"`
	MinIterations      int     `json:"min_iterations"`
	SubpixelResolution int     `json:"subpixel_resolution"`
	Schema             string  `json:"schema"`
	Samples            uint64  `json:"samples"`
	MaxCount           uint64  `json:"max_count"`
	TotalCount         uint64  `json:"total_count"`
	ElapsedMillis      int64   `json:"elapsed_ms"`
}

// Summary returns the summary of r.
func (r *Result) Summary() Summary {
	p := r.Params
	return Summary{
		Name:               p.Name,
		Format:             p.Format,
		Width:              r.Width,
		Height:             r.Height,
		Radius:             p.Radius,
		MaxIterations:      p.MaxIterations,
		MinIterations:      p.MinIterations,
		SubpixelResolution: p.SubpixelResolution,
		Schema:             p.schema().Name(),
		Samples:            r.Samples,
		MaxCount:           r.Max,
		TotalCount:         r.Total,
		ElapsedMillis:      r.Elapsed.Milliseconds(),
	}
}

// WriteSummary encodes s as indented JSON.
func WriteSummary(w io.Writer, s Summary) error {
	data, err := sonic.ConfigStd.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("buddha: encode summary: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("buddha: write summary: %w", err)
	}
	return nil
}

// SaveSummary writes s to path.
func SaveSummary(path string, s Summary) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("buddha: create summary: %w", err)
	}
	if err := WriteSummary(f, s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
