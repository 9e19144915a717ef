package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers normalizes a requested worker count.
// If n is 0 or negative, GOMAXPROCS is used.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// Run starts a fixed pool of workers goroutines, each running fn with its
// worker id, and waits for all of them to return.
//
// The context passed to fn is cancelled as soon as any worker returns an
// error or the parent context is done. Run returns the first error.
func Run(ctx context.Context, workers int, fn func(ctx context.Context, id int) error) error {
	workers = Workers(workers)

	g, gctx := errgroup.WithContext(ctx)
	for id := range workers {
		g.Go(func() error {
			return fn(gctx, id)
		})
	}
	return g.Wait()
}

// ForEach splits [0, total) into batches and processes them with a pool of
// workers goroutines until the queue is exhausted or ctx is done.
func ForEach(ctx context.Context, total, batch, workers int, fn func(r Range)) error {
	q := NewRangeQueue(total, batch)
	return Run(ctx, workers, func(ctx context.Context, _ int) error {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, ok := q.Claim()
			if !ok {
				return nil
			}
			fn(r)
		}
	})
}
