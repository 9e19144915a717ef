package buddha

import (
	"log/slog"
	"sync/atomic"
)

// silent is the package logger until SetLogger installs another one.
var silent = slog.New(slog.DiscardHandler)

// current holds the package logger. SetLogger may swap it while engines run.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger installs l as the logger for engines built without WithLogger.
// A nil l makes buddha quiet again, which is also the initial state.
//
// Engines log at these levels:
//   - [slog.LevelDebug]: samples evaluated by each worker
//   - [slog.LevelInfo]: render start and finish with timings
//   - [slog.LevelError]: renders stopped by cancellation or failure
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger engines use by default.
func Logger() *slog.Logger {
	return current.Load()
}
