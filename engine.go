package buddha

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gogpu/buddha/internal/parallel"
)

// ErrRunning is returned by Run when the engine is already rendering.
var ErrRunning = errors.New("buddha: engine is already running")

// Engine renders the Buddhabrot histogram for one Params record.
//
// An Engine may be run several times, but not concurrently. Progress is
// safe to call from any goroutine while Run is in flight.
type Engine struct {
	params    Params
	logger    *slog.Logger
	batchSize int

	running   atomic.Bool
	processed atomic.Uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for run lifecycle messages.
// By default the package logger (see SetLogger) is used.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithBatchSize sets the number of pixels per claimed work range.
// Zero or negative keeps parallel.DefaultBatchSize.
func WithBatchSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// New validates p and creates an engine for it. Validation failures wrap
// ErrMaxIterationsTooBig, ErrMinGreaterThanMax or ErrInvalidParams.
func New(p Params, opts ...Option) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.BufferCapacity == 0 {
		p.BufferCapacity = DefaultBufferCapacity
	}
	if p.Schema == nil {
		p.Schema = Grayscale
	}

	e := &Engine{
		params:    p,
		batchSize: parallel.DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Params returns the engine's parameters with defaults applied.
func (e *Engine) Params() Params {
	return e.params
}

// Progress returns the number of samples processed so far and the number
// a complete run evaluates.
func (e *Engine) Progress() (done, total uint64) {
	return e.processed.Load(), e.params.Samples()
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return Logger()
}

// Run performs the full parallel computation and blocks until every worker
// has returned. On success the histogram is complete and owned by the
// returned Result.
//
// Cancelling ctx stops workers at the next range claim or subpixel pass;
// Run then returns the context error and no Result.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if !e.running.CompareAndSwap(false, true) {
		return nil, ErrRunning
	}
	defer e.running.Store(false)

	p := e.params
	log := e.log().With("name", p.Name)
	threads := parallel.Workers(p.Threads)
	mapper := NewMapper(p.Width, p.Height(), p.Radius)
	density := NewDensityBuffer(mapper.Size())
	queue := parallel.NewRangeQueue(mapper.Size(), e.batchSize)

	e.processed.Store(0)
	start := time.Now()
	log.Info("render started",
		"width", p.Width,
		"radius", p.Radius,
		"max_iterations", p.MaxIterations,
		"min_iterations", p.MinIterations,
		"subpixel_resolution", p.SubpixelResolution,
		"threads", threads,
		"pixels", queue.Total(),
		"batch", queue.BatchSize())

	err := parallel.Run(ctx, threads, func(ctx context.Context, id int) error {
		w := newWorker(id, p, density, &e.processed)
		err := w.run(ctx, queue)
		log.Debug("worker finished", "worker", id, "samples", w.samples)
		return err
	})
	if err != nil {
		log.Error("render aborted", "err", err, "unclaimed_pixels", queue.Remaining())
		return nil, fmt.Errorf("buddha: render %q: %w", p.Name, err)
	}

	res := &Result{
		Params:  p,
		Width:   p.Width,
		Height:  p.Height(),
		Counts:  density.Counts(),
		Samples: e.processed.Load(),
		Elapsed: time.Since(start),
	}
	res.Max, res.Total = density.Stats()

	log.Info("render finished",
		"elapsed", res.Elapsed.Round(time.Millisecond),
		"max", res.Max,
		"total", res.Total)
	return res, nil
}

// Result is a completed histogram.
type Result struct {
	// Params are the parameters the histogram was rendered with.
	Params Params

	// Width and Height are the histogram dimensions.
	Width  int
	Height int

	// Counts holds Width*Height visit counts, row-major.
	Counts []uint64

	// Max is the largest count; Total is the sum of all counts.
	Max   uint64
	Total uint64

	// Samples is the number of sample points evaluated.
	Samples uint64

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// At returns the count of pixel (x, y), or 0 outside the image.
func (r *Result) At(x, y int) uint64 {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return 0
	}
	return r.Counts[y*r.Width+x]
}
