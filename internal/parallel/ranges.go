// Package parallel provides the work distribution used by the buddha engine.
//
// The linear pixel index space [0, total) is split into fixed-size batches
// that workers claim on demand from a shared RangeQueue. Faster workers
// simply claim more batches, which balances load without per-worker queues.
//
// Thread safety: RangeQueue is safe for concurrent use. Range is a value.
package parallel

import "sync"

// DefaultBatchSize is the number of pixel indices handed out per claim.
const DefaultBatchSize = 1024

// Range is the half-open interval [From, To) of linear pixel indices.
type Range struct {
	From int
	To   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.To - r.From
}

// Contains reports whether i lies within the range.
func (r Range) Contains(i int) bool {
	return i >= r.From && i < r.To
}

// RangeQueue hands out consecutive, disjoint ranges covering [0, total).
// Each range is claimed exactly once.
type RangeQueue struct {
	mu    sync.Mutex
	next  int
	total int
	batch int
}

// NewRangeQueue creates a queue over [0, total) with the given batch size.
// If batch is 0 or negative, DefaultBatchSize is used.
func NewRangeQueue(total, batch int) *RangeQueue {
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	if total < 0 {
		total = 0
	}
	return &RangeQueue{total: total, batch: batch}
}

// Claim returns the next unclaimed range. It returns false once the whole
// index space has been handed out.
func (q *RangeQueue) Claim() (Range, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.next >= q.total {
		return Range{}, false
	}

	r := Range{From: q.next, To: min(q.next+q.batch, q.total)}
	q.next = r.To
	return r, true
}

// Total returns the size of the index space.
func (q *RangeQueue) Total() int {
	return q.total
}

// BatchSize returns the maximum length of a claimed range.
func (q *RangeQueue) BatchSize() int {
	return q.batch
}

// Remaining returns the number of indices not yet claimed.
// This is an approximation when other goroutines are claiming concurrently.
func (q *RangeQueue) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.total - q.next
}
