package logsink

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for concurrent writes and reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fixedProgress struct{ done, total uint64 }

func (p fixedProgress) Progress() (uint64, uint64) { return p.done, p.total }

// =============================================================================
// Severity
// =============================================================================

func TestSeverity(t *testing.T) {
	tests := []struct {
		sev   Severity
		name  string
		level slog.Level
	}{
		{SeverityError, "ERROR", slog.LevelError},
		{SeverityWarning, "WARNING", slog.LevelWarn},
		{SeverityNotice, "NOTICE", LevelNotice},
		{SeverityInfo, "INFO", slog.LevelInfo},
		{SeverityDebug, "DEBUG", slog.LevelDebug},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.name {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.sev, got, tt.name)
		}
		if got := tt.sev.Level(); got != tt.level {
			t.Errorf("%s.Level() = %v, want %v", tt.name, got, tt.level)
		}
		if got := SeverityOf(tt.level); got != tt.sev {
			t.Errorf("SeverityOf(%v) = %s, want %s", tt.level, got, tt.name)
		}
		if got, ok := ParseLevel(strings.ToLower(tt.name)); !ok || got != tt.level {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.name, got, ok)
		}
	}

	if got := Severity(42).String(); got != "UNKNOWN" {
		t.Errorf("Severity(42).String() = %q", got)
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Error("ParseLevel(\"loud\") succeeded")
	}
}

// =============================================================================
// Formatting
// =============================================================================

func TestFormatRecord(t *testing.T) {
	r := Record{
		Time:     time.Date(2024, 3, 1, 12, 30, 45, 123_000_000, time.UTC),
		Severity: SeverityWarning,
		Message:  "disk almost full",
	}
	want := "WARNING 2024-03-01 12:30:45.123    disk almost full\n"
	if got := FormatRecord(r); got != want {
		t.Errorf("FormatRecord() = %q, want %q", got, want)
	}
}

func TestFormatProgress(t *testing.T) {
	s := New(Options{})
	tests := []struct {
		done, total uint64
		want        string
	}{
		{1700, 4000, "progress 42.50% (1,700 / 4,000 samples)"},
		{0, 0, "progress 0.00% (0 / 0 samples)"},
		{4194304, 4194304, "progress 100.00% (4,194,304 / 4,194,304 samples)"},
	}
	for _, tt := range tests {
		if got := s.FormatProgress(tt.done, tt.total); got != tt.want {
			t.Errorf("FormatProgress(%d, %d) = %q, want %q", tt.done, tt.total, got, tt.want)
		}
	}
}

// =============================================================================
// Queue
// =============================================================================

func TestSink_CloseWithoutStartDrains(t *testing.T) {
	var out, errOut bytes.Buffer
	s := New(Options{Out: &out, Err: &errOut})

	s.Log(SeverityInfo, "first")
	s.Log(SeverityError, "broken")
	s.Log(SeverityDebug, "second")
	if s.pending() != 3 {
		t.Errorf("pending() = %d, want 3", s.pending())
	}
	s.Close()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("stdout has %d lines, want 2:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "INFO ") || !strings.HasSuffix(lines[0], "    first") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "DEBUG ") || !strings.HasSuffix(lines[1], "    second") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.HasPrefix(errOut.String(), "ERROR ") || !strings.Contains(errOut.String(), "broken") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestSink_FIFO(t *testing.T) {
	var out bytes.Buffer
	s := New(Options{Out: &out, Interval: time.Millisecond})
	s.Start()

	for i := range 500 {
		s.Logf(SeverityInfo, "msg %d", i)
	}
	s.Close()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 500 {
		t.Fatalf("got %d lines, want 500", len(lines))
	}
	for i, line := range lines {
		if want := s.printer.Sprintf("msg %d", i); !strings.HasSuffix(line, "    "+want) {
			t.Fatalf("line %d = %q, want suffix %q", i, line, want)
		}
	}
}

func TestSink_ConcurrentProducers(t *testing.T) {
	var out bytes.Buffer
	s := New(Options{Out: &out, Interval: time.Millisecond})
	s.Start()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				s.Log(SeverityInfo, "tick")
			}
		}()
	}
	wg.Wait()
	s.Close()

	if n := strings.Count(out.String(), "tick\n"); n != 800 {
		t.Errorf("got %d records, want 800", n)
	}
}

func TestSink_CloseIdempotentAndDropsLate(t *testing.T) {
	var out bytes.Buffer
	s := New(Options{Out: &out})
	s.Start()
	s.Close()
	s.Close()

	s.Log(SeverityInfo, "late")
	if s.pending() != 0 {
		t.Errorf("pending() = %d after Close, want 0", s.pending())
	}
	if strings.Contains(out.String(), "late") {
		t.Error("record logged after Close was written")
	}

	s.Start()
	if s.pending() != 0 {
		t.Error("Start after Close accepted records")
	}
}

func TestSink_ReportsProgress(t *testing.T) {
	out := &syncBuffer{}
	s := New(Options{Out: out, Interval: time.Millisecond, ProgressEvery: 2})
	s.Track(fixedProgress{done: 1, total: 4})
	s.Start()
	defer s.Close()

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), "NOTICE") {
		if time.Now().After(deadline) {
			t.Fatal("no progress record within 5s")
		}
		time.Sleep(time.Millisecond)
	}
	if !strings.Contains(out.String(), "progress 25.00% (1 / 4 samples)") {
		t.Errorf("unexpected progress output:\n%s", out.String())
	}
}

func TestSink_TrackNilStopsProgress(t *testing.T) {
	var out bytes.Buffer
	s := New(Options{Out: &out, ProgressEvery: 1})
	s.Track(fixedProgress{done: 1, total: 2})
	s.Track(nil)

	s.reportProgress()
	s.Close()

	if out.Len() != 0 {
		t.Errorf("progress reported without a source: %q", out.String())
	}
}

// =============================================================================
// slog handler
// =============================================================================

func TestHandler(t *testing.T) {
	var out, errOut bytes.Buffer
	s := New(Options{Out: &out, Err: &errOut, Level: LevelNotice})
	logger := s.Logger()

	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled below notice level")
	}
	logger.Info("hidden")
	logger.Log(context.Background(), LevelNotice, "shown", "count", 3)
	logger.With("name", "galaxy").WithGroup("run").Warn("slow", "elapsed", "2 s")
	logger.Error("failed", "err", "no space")
	s.Close()

	got := out.String()
	if strings.Contains(got, "hidden") {
		t.Error("filtered record was written")
	}
	if !strings.Contains(got, "NOTICE ") || !strings.Contains(got, "shown count=3") {
		t.Errorf("notice missing:\n%s", got)
	}
	if !strings.Contains(got, `WARNING `) || !strings.Contains(got, `slow name=galaxy run.elapsed="2 s"`) {
		t.Errorf("warning missing:\n%s", got)
	}
	if !strings.Contains(errOut.String(), `failed err="no space"`) {
		t.Errorf("error missing from error writer:\n%s", errOut.String())
	}
}
