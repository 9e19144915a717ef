// Package config loads render parameters from INI-style files.
//
// A file holds one or more sections; every section describes one render:
//
//	# comment
//	; also a comment
//	[galaxy]
//	name = galaxy
//	format = png
//	width = 1024
//	radius = 2
//	max iterations = 200
//	min iterations = 10
//	subpixel resolution = 2
//	threads = 8
//	schema = sqrt
//
// Keys left out keep the values of buddha.DefaultParams. A section without a
// name key is named after its header. Repeating a header continues the
// same section.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gogpu/buddha"
)

// Load reads and parses the config file at path.
func Load(path string) ([]buddha.Params, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f, path)
}

// Parse reads a config from r. filename is only used in error messages.
// Records are returned in section name order.
func Parse(r io.Reader, filename string) ([]buddha.Params, error) {
	p := parser{
		file:     filename,
		sections: make(map[string]*buddha.Params),
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		p.line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", filename, err)
	}

	return p.records(), nil
}

type parser struct {
	file     string
	line     int
	current  string
	sections map[string]*buddha.Params
}

func (p *parser) errorf(text string, col int, format string, args ...any) error {
	return &ParseError{
		File:   p.file,
		Line:   p.line,
		Column: col,
		Text:   text,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (p *parser) parseLine(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed[0] == '#' || trimmed[0] == ';' {
		return nil
	}

	sep := strings.IndexByte(line, '=')
	if sep < 0 {
		return p.parseHeader(line)
	}

	if p.current == "" {
		return p.errorf(line, 0, "key outside of a section")
	}
	key := strings.Join(strings.Fields(line[:sep]), " ")
	value := strings.TrimSpace(line[sep+1:])
	return p.set(line, sep+1, strings.ToLower(key), value)
}

func (p *parser) parseHeader(line string) error {
	start := len(line) - len(strings.TrimLeft(line, " \t"))
	if line[start] != '[' {
		return p.errorf(line, start, "Expected '['")
	}

	end := len(strings.TrimRight(line, " \t")) - 1
	if end <= start || line[end] != ']' {
		return p.errorf(line, end, "Expected ']'")
	}

	name := strings.TrimSpace(line[start+1 : end])
	if name == "" {
		return p.errorf(line, start+1, "empty section name")
	}

	p.current = name
	if _, ok := p.sections[name]; !ok {
		params := buddha.DefaultParams()
		p.sections[name] = &params
	}
	return nil
}

// set assigns key in the current section. col points at the value.
func (p *parser) set(line string, col int, key, value string) error {
	params := p.sections[p.current]

	var err error
	switch key {
	case "name":
		params.Name = value
	case "format":
		params.Format = value
	case "width":
		params.Width, err = parseInt(value)
	case "radius":
		params.Radius, err = strconv.ParseFloat(value, 64)
	case "max iterations":
		params.MaxIterations, err = parseInt(value)
	case "min iterations":
		params.MinIterations, err = parseInt(value)
	case "subpixel resolution":
		params.SubpixelResolution, err = parseInt(value)
	case "threads":
		params.Threads, err = strconv.Atoi(value)
	case "buffer size":
		params.BufferCapacity, err = parseInt(value)
	case "schema":
		params.Schema, err = buddha.SchemaByName(value)
	default:
		return p.errorf(line, 0, "Unknown key: %s", key)
	}

	if err != nil {
		return p.errorf(line, col+strings.Index(line[col:], value), "Unable to parse %s %q: %v", key, value, err)
	}
	return nil
}

// parseInt accepts non-negative decimal integers.
func parseInt(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (p *parser) records() []buddha.Params {
	names := make([]string, 0, len(p.sections))
	for name := range p.sections {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]buddha.Params, 0, len(names))
	for _, name := range names {
		params := *p.sections[name]
		if params.Name == "" {
			params.Name = name
		}
		out = append(out, params)
	}
	return out
}
