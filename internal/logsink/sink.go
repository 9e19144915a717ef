// Package logsink queues log records from many goroutines and writes them
// from a single background goroutine, together with periodic progress
// reports for a running render.
//
// Producers never perform I/O: Log and the slog handler only append to an
// in-memory queue under a mutex. The background goroutine wakes on a fixed
// interval, drains the whole queue in FIFO order and writes one line per
// record:
//
//	SEVERITY TIMESTAMP    MESSAGE
//
// Error records go to the error writer, everything else to the output
// writer. Output is best-effort: write errors are ignored and records
// logged after Close are dropped.
package logsink

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeromicro/go-zero/core/threading"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Defaults for Options.
const (
	DefaultInterval      = 50 * time.Millisecond
	DefaultProgressEvery = 10
)

// TimeFormat is the timestamp layout of every line.
const TimeFormat = "2006-01-02 15:04:05.000"

// Record is a queued log entry.
type Record struct {
	Time     time.Time
	Severity Severity
	Message  string
}

// ProgressSource reports how many samples a render has processed out of
// the total it will process.
type ProgressSource interface {
	Progress() (done, total uint64)
}

// Options configures a Sink.
type Options struct {
	// Out receives non-error records. Defaults to os.Stdout.
	Out io.Writer

	// Err receives error records. Defaults to os.Stderr.
	Err io.Writer

	// Interval is the drain period. Defaults to DefaultInterval.
	Interval time.Duration

	// ProgressEvery emits a progress record every N drains while a
	// source is tracked. Defaults to DefaultProgressEvery.
	ProgressEvery int

	// Level is the minimum level accepted by Handler. Defaults to Info.
	Level slog.Leveler
}

// Sink is a queued, asynchronously written log.
//
// Lock discipline: mu guards queue only and is never held during I/O.
type Sink struct {
	out      io.Writer
	errOut   io.Writer
	interval time.Duration
	every    int
	level    slog.Leveler
	printer  *message.Printer

	mu    sync.Mutex
	queue []Record

	source atomic.Pointer[ProgressSource]

	started   atomic.Bool
	closed    atomic.Bool
	closeOnce sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// New creates a sink. Call Start to launch the background writer.
func New(opts Options) *Sink {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}

	return &Sink{
		out:      opts.Out,
		errOut:   opts.Err,
		interval: opts.Interval,
		every:    opts.ProgressEvery,
		level:    opts.Level,
		printer:  message.NewPrinter(language.English),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background writer. It is a no-op if the sink was
// already started or closed.
func (s *Sink) Start() {
	if s.closed.Load() || !s.started.CompareAndSwap(false, true) {
		return
	}
	threading.GoSafe(s.loop)
}

// Close stops the background writer and writes whatever is still queued.
// Close is safe to call multiple times.
func (s *Sink) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		if s.started.Load() {
			close(s.stop)
			<-s.done
			return
		}
		s.drain()
	})
}

// Log queues a record. It never blocks on I/O.
func (s *Sink) Log(sev Severity, msg string) {
	s.push(Record{Time: time.Now(), Severity: sev, Message: msg})
}

// Logf queues a formatted record.
func (s *Sink) Logf(sev Severity, format string, args ...any) {
	s.Log(sev, s.printer.Sprintf(format, args...))
}

func (s *Sink) push(r Record) {
	if s.closed.Load() {
		return
	}
	s.mu.Lock()
	s.queue = append(s.queue, r)
	s.mu.Unlock()
}

// Track sets the source of periodic progress records. Pass nil to stop
// progress reporting.
func (s *Sink) Track(src ProgressSource) {
	if src == nil {
		s.source.Store(nil)
		return
	}
	s.source.Store(&src)
}

// pending returns the number of queued records.
func (s *Sink) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func (s *Sink) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for tick := 1; ; tick++ {
		select {
		case <-s.stop:
			s.drain()
			return
		case <-ticker.C:
			if tick%s.every == 0 {
				s.reportProgress()
			}
			s.drain()
		}
	}
}

// reportProgress queues a notice with the tracked source's completion.
func (s *Sink) reportProgress() {
	p := s.source.Load()
	if p == nil {
		return
	}
	done, total := (*p).Progress()
	s.Log(SeverityNotice, s.FormatProgress(done, total))
}

// FormatProgress renders a progress message such as
// "progress 42.50% (1,700 / 4,000 samples)".
func (s *Sink) FormatProgress(done, total uint64) string {
	var pct float64
	if total > 0 {
		pct = 100 * float64(done) / float64(total)
	}
	return s.printer.Sprintf("progress %.2f%% (%d / %d samples)", pct, done, total)
}

// drain swaps the queue out under the lock and writes it without the lock.
func (s *Sink) drain() {
	s.mu.Lock()
	batch := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, r := range batch {
		w := s.out
		if r.Severity == SeverityError {
			w = s.errOut
		}
		_, _ = io.WriteString(w, FormatRecord(r))
	}
}

// FormatRecord returns the output line for r, including the newline.
func FormatRecord(r Record) string {
	return fmt.Sprintf("%s %s    %s\n", r.Severity, r.Time.Format(TimeFormat), r.Message)
}
