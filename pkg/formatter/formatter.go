// Package formatter turns a token set into platform artifacts: CSS custom
// properties, a XAML resource dictionary, a flat JSON map and a markdown
// report. Every formatter is a pure function of the set it is given.
package formatter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kataras/figma-tokens/pkg/tokens"
)

// Formatter renders a token set in one output format.
type Formatter interface {
	// Name identifies the format, e.g. "css".
	Name() string
	// FileName is the artifact file name, e.g. "design-tokens.css".
	FileName() string
	// Format renders set. Entries the format cannot represent are skipped
	// and reported in Artifact.Skipped rather than failing the artifact.
	Format(set tokens.Set) (*Artifact, error)
}

// Artifact is the output of one formatter.
type Artifact struct {
	Format   string
	FileName string
	Content  string
	Skipped  []*EmitError
}

// EmitError describes a single token a format had to leave out.
type EmitError struct {
	Format string
	Key    string // flattened token name
	Reason string
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("%s: skipped %s: %s", e.Format, e.Key, e.Reason)
}

// All returns one instance of every built-in formatter.
func All() []Formatter {
	return []Formatter{
		CSS{},
		XAML{},
		JSON{},
		Markdown{},
	}
}

// ByName returns the built-in formatters matching names, in the given order.
// An empty list returns All.
func ByName(names ...string) ([]Formatter, error) {
	if len(names) == 0 {
		return All(), nil
	}

	available := make(map[string]Formatter)
	for _, f := range All() {
		available[f.Name()] = f
	}

	out := make([]Formatter, 0, len(names))
	for _, name := range names {
		f, ok := available[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown format %q", name)
		}
		out = append(out, f)
	}

	return out, nil
}

var leadingNumber = regexp.MustCompile(`^\s*[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// parseDimension reads the numeric prefix of a dimension literal such as
// "16px" or "1.5rem", dropping the unit.
func parseDimension(s string) (float64, bool) {
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// typographyFields lists typography properties in output order.
func typographyFields(t tokens.Typography) []struct{ Name, Value string } {
	return []struct{ Name, Value string }{
		{"fontFamily", t.FontFamily},
		{"fontSize", t.FontSize},
		{"fontWeight", t.FontWeight},
		{"lineHeight", t.LineHeight},
	}
}

// nameSet tracks the flattened names written to one artifact. Distinct keys
// can flatten to the same name ("text-primary" and "textPrimary" both become
// color-text-primary); the first one in entry order wins and the others are
// reported as skipped.
type nameSet struct {
	art  *Artifact
	seen map[string]string
}

func newNameSet(art *Artifact) *nameSet {
	return &nameSet{art: art, seen: make(map[string]string)}
}

// claim reports whether name is still free, recording key as its owner.
func (n *nameSet) claim(name, key string) bool {
	if owner, ok := n.seen[name]; ok {
		n.art.Skipped = append(n.art.Skipped, &EmitError{
			Format: n.art.Format,
			Key:    name,
			Reason: fmt.Sprintf("key %q flattens to the same name as %q", key, owner),
		})
		return false
	}
	n.seen[name] = key
	return true
}
