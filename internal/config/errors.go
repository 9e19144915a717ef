package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOpen is returned when the config file cannot be opened.
var ErrOpen = errors.New("config: unable to open file")

// ParseError describes a malformed config line.
type ParseError struct {
	// File is the config file name, empty when parsing a reader.
	File string

	// Line is the 1-based line number.
	Line int

	// Column is the 0-based byte offset of the offending character,
	// or -1 when no single character is at fault.
	Column int

	// Text is the offending line.
	Text string

	// Msg describes the problem.
	Msg string
}

// Error renders the message followed by the located line and a caret under
// the offending column:
//
//	Expected ']'
//	demo.ini:3 [section
//	                   ^
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("config: ")
	b.WriteString(e.Msg)
	if e.Text == "" {
		if e.File != "" {
			fmt.Fprintf(&b, " (%s:%d)", e.File, e.Line)
		}
		return b.String()
	}

	loc := e.File
	if loc != "" {
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	} else {
		loc = fmt.Sprintf("line %d", e.Line)
	}
	b.WriteString("\n")
	b.WriteString(loc)
	b.WriteString(" ")
	b.WriteString(e.Text)

	if e.Column >= 0 {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", len(loc)+1+e.Column))
		b.WriteString("^")
	}
	return b.String()
}
