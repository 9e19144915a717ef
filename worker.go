package buddha

import (
	"context"
	"sync/atomic"

	"github.com/gogpu/buddha/internal/parallel"
)

// progressBatch is the number of samples a worker processes before it
// publishes its local count to the shared progress counter.
const progressBatch = 10000

// worker owns the private state of one render goroutine. Shared state is
// limited to the range queue, the density buffer and the progress counter,
// each with its own synchronization.
type worker struct {
	id       int
	eval     Evaluator
	mapper   Mapper
	maxIter  int
	sub      int
	subW     float64
	subH     float64
	density  *DensityBuffer
	progress *atomic.Uint64

	// pending holds orbit indices not yet flushed. Its capacity is the
	// configured buffer capacity and never grows.
	pending []int
	// unreported counts samples not yet added to progress.
	unreported uint64
	// samples counts every sample this worker evaluated.
	samples uint64
}

func newWorker(id int, p Params, density *DensityBuffer, progress *atomic.Uint64) *worker {
	return &worker{
		id:       id,
		eval:     NewEvaluator(p),
		mapper:   NewMapper(p.Width, p.Height(), p.Radius),
		maxIter:  p.MaxIterations,
		sub:      p.SubpixelResolution,
		subW:     2 * p.Radius / float64(p.Width),
		subH:     2 * p.Radius / float64(p.Height()),
		density:  density,
		progress: progress,
		pending:  make([]int, 0, p.bufferCapacity()),
	}
}

// run claims ranges until the queue is empty or ctx is cancelled.
func (w *worker) run(ctx context.Context, q *parallel.RangeQueue) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, ok := q.Claim()
		if !ok {
			return nil
		}
		if err := w.process(ctx, r); err != nil {
			return err
		}
	}
}

// process evaluates every pixel of r at every subpixel offset. The subpixel
// grid is the outer loop; cancellation is checked between subpixel passes.
func (w *worker) process(ctx context.Context, r parallel.Range) error {
	defer w.flush()

	for sx := range w.sub {
		for sy := range w.sub {
			if err := ctx.Err(); err != nil {
				return err
			}
			offset := complex(float64(sx)*w.subW, float64(sy)*w.subH)
			for i := r.From; i < r.To; i++ {
				w.sample(w.mapper.IndexToComplex(i) + offset)
			}
		}
	}
	return nil
}

// sample evaluates one point and keeps its orbit if it qualifies.
func (w *worker) sample(c complex128) {
	w.samples++
	w.unreported++
	if w.unreported == progressBatch {
		w.progress.Add(w.unreported)
		w.unreported = 0
	}

	// Make room for one full orbit before evaluating.
	if len(w.pending)+w.maxIter >= cap(w.pending) {
		w.density.Flush(&w.pending)
	}

	if InMainBody(c) {
		return
	}

	n := len(w.pending)
	orbit, pos := w.eval.Evaluate(c, w.pending)
	if w.eval.Retained(pos) {
		w.pending = orbit
	} else {
		w.pending = orbit[:n]
	}
}

// flush publishes pending points and progress.
func (w *worker) flush() {
	w.density.Flush(&w.pending)
	if w.unreported > 0 {
		w.progress.Add(w.unreported)
		w.unreported = 0
	}
}
