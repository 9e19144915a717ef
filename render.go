package buddha

import (
	"context"

	"github.com/gogpu/buddha/internal/parallel"
)

// renderRows is the number of image rows colored per work range.
const renderRows = 16

// Render colors a finished histogram with schema. A nil schema uses the
// schema res was rendered with.
//
// Render only reads res.Counts, so it must not be called before Run returned.
func Render(res *Result, schema Schema) *Pixmap {
	if schema == nil {
		schema = res.Params.schema()
	}
	pm := NewPixmap(res.Width, res.Height)
	peak := res.Max

	// Rows are disjoint, so workers write the pixmap without locking.
	_ = parallel.ForEach(context.Background(), res.Height, renderRows, 0, func(r parallel.Range) {
		for y := r.From; y < r.To; y++ {
			row := res.Counts[y*res.Width : (y+1)*res.Width]
			for x, count := range row {
				pm.SetPixel(x, y, schema.Color(count, peak))
			}
		}
	})
	return pm
}
