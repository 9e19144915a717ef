package buddha

import "sync"

// DensityBuffer is the shared visit histogram, flattened row-major.
//
// Workers never touch the counts directly. They collect orbit indices in a
// private buffer and hand it to Flush, which applies the whole batch under
// the mutex. Readers must wait until every writer has finished.
type DensityBuffer struct {
	mu     sync.Mutex
	counts []uint64
}

// NewDensityBuffer creates a zeroed histogram with size cells.
func NewDensityBuffer(size int) *DensityBuffer {
	return &DensityBuffer{counts: make([]uint64, size)}
}

// Len returns the number of cells.
func (d *DensityBuffer) Len() int {
	return len(d.counts)
}

// Flush increments the cell of every index in *points and truncates
// *points to length zero so the caller can reuse its storage.
// Indices must be in range.
func (d *DensityBuffer) Flush(points *[]int) {
	pending := *points
	if len(pending) == 0 {
		return
	}

	d.mu.Lock()
	for _, idx := range pending {
		d.counts[idx]++
	}
	d.mu.Unlock()

	*points = pending[:0]
}

// Counts returns the histogram. The slice is shared, not copied; it is
// only safe to read after all writers have returned.
func (d *DensityBuffer) Counts() []uint64 {
	return d.counts
}

// Stats returns the maximum cell value and the sum of all cells.
func (d *DensityBuffer) Stats() (peak, total uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return histogramStats(d.counts)
}

func histogramStats(counts []uint64) (peak, total uint64) {
	for _, v := range counts {
		total += v
		if v > peak {
			peak = v
		}
	}
	return peak, total
}
