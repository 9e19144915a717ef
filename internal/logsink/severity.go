package logsink

import (
	"log/slog"
	"strings"
)

// Severity ranks log records. Lower values are more severe.
type Severity int

// Severities, most severe first.
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNotice
	SeverityInfo
	SeverityDebug
)

// LevelNotice is the slog level between Info and Warn used for notices.
const LevelNotice = slog.Level(2)

var severityNames = [...]string{
	SeverityError:   "ERROR",
	SeverityWarning: "WARNING",
	SeverityNotice:  "NOTICE",
	SeverityInfo:    "INFO",
	SeverityDebug:   "DEBUG",
}

// String returns the upper-case severity name.
func (s Severity) String() string {
	if s < SeverityError || s > SeverityDebug {
		return "UNKNOWN"
	}
	return severityNames[s]
}

// Level returns the slog level for s.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityError:
		return slog.LevelError
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityNotice:
		return LevelNotice
	case SeverityInfo:
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// SeverityOf maps a slog level to the closest severity.
func SeverityOf(l slog.Level) Severity {
	switch {
	case l >= slog.LevelError:
		return SeverityError
	case l >= slog.LevelWarn:
		return SeverityWarning
	case l >= LevelNotice:
		return SeverityNotice
	case l >= slog.LevelInfo:
		return SeverityInfo
	}
	return SeverityDebug
}

// ParseLevel parses a severity or slog level name such as "debug",
// "notice" or "warn".
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return slog.LevelError, true
	case "warning", "warn":
		return slog.LevelWarn, true
	case "notice":
		return LevelNotice, true
	case "info":
		return slog.LevelInfo, true
	case "debug":
		return slog.LevelDebug, true
	}
	return 0, false
}
