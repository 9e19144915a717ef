package buddha

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Schema maps a histogram count to a color, given the largest count of the
// histogram. The set of schemas is closed: use one of the package values
// or SchemaByName.
type Schema interface {
	// Color returns the color of a cell with count visits. peak is the
	// largest count in the histogram; peak == 0 yields black.
	Color(count, peak uint64) RGB

	// Name returns the name used in config files.
	Name() string
}

type schema struct {
	name  string
	color func(f float64) RGB
}

func (s *schema) Name() string { return s.name }

func (s *schema) Color(count, peak uint64) RGB {
	if peak == 0 || count == 0 {
		return RGB{}
	}
	f := float64(min(count, peak)) / float64(peak)
	return s.color(f)
}

// Available coloring schemas.
var (
	// Grayscale scales counts linearly to gray levels.
	Grayscale Schema = &schema{name: "grayscale", color: func(f float64) RGB {
		return Gray(scale(f))
	}}

	// Sqrt scales the square root of the normalized count to gray levels,
	// lifting faint orbits out of the background.
	Sqrt Schema = &schema{name: "sqrt", color: func(f float64) RGB {
		return Gray(scale(math.Sqrt(f)))
	}}

	// GrayscaleSqrtMixed puts the linear scale in red, the square root
	// scale in blue and their mean in green.
	GrayscaleSqrtMixed Schema = &schema{name: "mixed", color: func(f float64) RGB {
		s := math.Sqrt(f)
		return RGB{R: scale(f), G: scale((f + s) / 2), B: scale(s)}
	}}
)

var schemas = map[string]Schema{
	Grayscale.Name():          Grayscale,
	Sqrt.Name():               Sqrt,
	GrayscaleSqrtMixed.Name(): GrayscaleSqrtMixed,
}

// SchemaByName returns the schema with the given name, case-insensitively.
func SchemaByName(name string) (Schema, error) {
	s, ok := schemas[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("buddha: unknown schema %q (want one of %s)", name, strings.Join(SchemaNames(), ", "))
	}
	return s, nil
}

// SchemaNames returns the names of all schemas in sorted order.
func SchemaNames() []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
