package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestWorkers(t *testing.T) {
	if got := Workers(4); got != 4 {
		t.Errorf("Workers(4) = %d", got)
	}
	for _, n := range []int{0, -5} {
		if got := Workers(n); got != runtime.GOMAXPROCS(0) {
			t.Errorf("Workers(%d) = %d, want GOMAXPROCS", n, got)
		}
	}
}

func TestRun_AllWorkersStart(t *testing.T) {
	var seen [6]atomic.Bool
	err := Run(context.Background(), len(seen), func(_ context.Context, id int) error {
		seen[id].Store(true)
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for id := range seen {
		if !seen[id].Load() {
			t.Errorf("worker %d never ran", id)
		}
	}
}

func TestRun_ErrorCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), 4, func(ctx context.Context, id int) error {
		if id == 0 {
			return boom
		}
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want %v", err, boom)
	}
}

func TestForEach(t *testing.T) {
	const total = 10000
	var hits [total]atomic.Int32

	err := ForEach(context.Background(), total, 33, 4, func(r Range) {
		for i := r.From; i < r.To; i++ {
			hits[i].Add(1)
		}
	})
	if err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}
	for i := range hits {
		if n := hits[i].Load(); n != 1 {
			t.Fatalf("index %d processed %d times", i, n)
		}
	}
}

func TestForEach_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	err := ForEach(ctx, 1000, 10, 2, func(Range) { calls.Add(1) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ForEach() error = %v, want context.Canceled", err)
	}
	if calls.Load() != 0 {
		t.Errorf("fn called %d times after cancellation", calls.Load())
	}
}
