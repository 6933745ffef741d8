// Package codegen generates UI component files from plain-text templates,
// substituting design token values into {{PLACEHOLDER}} markers.
package codegen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/kataras/figma-tokens/pkg/tokens"
)

// TemplateExt is the file extension of component templates.
const TemplateExt = ".template"

// ErrUnsafePath reports a component template or name that resolves outside
// the templates or output directory.
var ErrUnsafePath = errors.New("path escapes its directory")

// Component pairs a template with the component it produces.
type Component struct {
	Template string `yaml:"template"`
	Name     string `yaml:"name"`
}

// Validate reports ErrUnsafePath unless both the template and the name are
// local paths such as "Card" or "forms/Login".
func (c Component) Validate() error {
	if !filepath.IsLocal(filepath.FromSlash(c.Template)) {
		return fmt.Errorf("%w: template %q", ErrUnsafePath, c.Template)
	}
	if !filepath.IsLocal(filepath.FromSlash(c.Name)) {
		return fmt.Errorf("%w: component name %q", ErrUnsafePath, c.Name)
	}
	return nil
}

// Manifest lists the components to generate.
type Manifest struct {
	Extension  string      `yaml:"extension,omitempty"`
	Components []Component `yaml:"components"`
}

// DefaultComponents are the reference components generated when no manifest
// is given.
var DefaultComponents = []Component{
	{Template: "LoginForm", Name: "LoginForm"},
	{Template: "IntakeCard", Name: "IntakeCard"},
	{Template: "AppointmentsList", Name: "AppointmentsList"},
}

// LoadManifest reads a YAML component manifest. Components without a name
// take the template name.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %q: %w", path, err)
	}

	for i, c := range m.Components {
		if c.Template == "" {
			return nil, fmt.Errorf("manifest %q: component %d has no template", path, i)
		}
		if c.Name == "" {
			m.Components[i].Name = c.Template
		}
		if err := m.Components[i].Validate(); err != nil {
			return nil, fmt.Errorf("manifest %q: %w", path, err)
		}
	}

	return &m, nil
}

// Discover returns one component per template file under dir matching the
// doublestar pattern (e.g. "**/*.template"), sorted by template name.
func Discover(dir, pattern string) ([]Component, error) {
	if pattern == "" {
		pattern = "**/*" + TemplateExt
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return nil, fmt.Errorf("discover templates in %q: %w", dir, err)
	}
	sort.Strings(matches)

	var out []Component
	for _, m := range matches {
		if !strings.HasSuffix(m, TemplateExt) {
			continue
		}
		name := strings.TrimSuffix(m, TemplateExt)
		out = append(out, Component{Template: name, Name: filepath.Base(name)})
	}

	return out, nil
}

// placeholderPrefixes maps token categories to their template prefixes.
var placeholderPrefixes = []struct {
	category tokens.Category
	prefix   string
}{
	{tokens.CategoryColor, "COLOR_"},
	{tokens.CategorySpace, "SPACE_"},
	{tokens.CategoryRadius, "RADIUS_"},
	{tokens.CategoryElevation, "ELEVATION_"},
}

// Render substitutes {{COMPONENT_NAME}} and the token placeholders
// {{COLOR_<KEY>}}, {{SPACE_<KEY>}}, {{RADIUS_<KEY>}} and {{ELEVATION_<KEY>}}
// (key upper-cased) in tmpl. Unknown placeholders are left as they are.
func Render(tmpl, componentName string, set tokens.Set) string {
	pairs := []string{"{{COMPONENT_NAME}}", componentName}
	for _, p := range placeholderPrefixes {
		for _, k := range set.Keys(p.category) {
			pairs = append(pairs, "{{"+p.prefix+strings.ToUpper(k)+"}}", set[p.category][k].Value)
		}
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// Logger receives generation progress.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Generator renders templates from TemplatesDir into OutputDir.
type Generator struct {
	TemplatesDir string
	OutputDir    string
	Extension    string // output extension, default ".razor"
	Logger       Logger // nil = silent
}

// Result reports what a Generate call produced.
type Result struct {
	Generated []string // written file paths
	Skipped   []string // templates that were not found
}

// Generate renders each component with the given tokens. Missing templates
// are skipped with a warning; an unsafe component or any other I/O failure
// aborts.
func (g *Generator) Generate(components []Component, set tokens.Set) (*Result, error) {
	ext := g.Extension
	if ext == "" {
		ext = ".razor"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	if err := os.MkdirAll(g.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create components directory %q: %w", g.OutputDir, err)
	}

	result := &Result{}
	for _, c := range components {
		if err := c.Validate(); err != nil {
			return result, err
		}

		path := filepath.Join(g.TemplatesDir, filepath.FromSlash(c.Template)+TemplateExt)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			g.warnf("Template %s not found, skipping...", c.Template)
			result.Skipped = append(result.Skipped, c.Template)
			continue
		}
		if err != nil {
			return result, fmt.Errorf("read template %q: %w", path, err)
		}

		out := filepath.Join(g.OutputDir, filepath.FromSlash(c.Name)+ext)
		if err := os.WriteFile(out, []byte(Render(string(data), c.Name, set)), 0644); err != nil {
			return result, fmt.Errorf("failed to write %q: %w", out, err)
		}

		g.infof("Generated %s%s", c.Name, ext)
		result.Generated = append(result.Generated, out)
	}

	return result, nil
}

func (g *Generator) infof(f string, a ...any) {
	if g.Logger != nil {
		g.Logger.Infof(f, a...)
	}
}

func (g *Generator) warnf(f string, a ...any) {
	if g.Logger != nil {
		g.Logger.Warnf(f, a...)
	}
}
