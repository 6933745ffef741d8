package figmatokens

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kataras/figma-tokens/pkg/figma"
	"github.com/kataras/figma-tokens/pkg/tokens"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const figmaFile = `{
  "name": "Brand",
  "styles": {
    "S:1": {"name": "Primary", "styleType": "FILL"},
    "S:2": {"name": "TextMain", "styleType": "FILL"},
    "S:3": {"name": "Heading", "styleType": "TEXT"}
  },
  "document": {
    "id": "0:0", "name": "Document", "type": "DOCUMENT",
    "children": [
      {"id": "1:1", "name": "Swatch", "type": "RECTANGLE",
       "styles": {"fill": "S:1"},
       "fills": [{"type": "SOLID", "color": {"r": 1, "g": 0, "b": 0, "a": 1}}]},
      {"id": "1:2", "name": "Label", "type": "TEXT",
       "styles": {"fill": "S:2"},
       "fills": [{"type": "SOLID", "color": {"r": 0, "g": 0, "b": 0}}]}
    ]
  }
}`

type testLogger struct {
	infos, warns, errors []string
}

func (l *testLogger) Infof(f string, a ...any)  { l.infos = append(l.infos, fmt.Sprintf(f, a...)) }
func (l *testLogger) Warnf(f string, a ...any)  { l.warns = append(l.warns, fmt.Sprintf(f, a...)) }
func (l *testLogger) Errorf(f string, a ...any) { l.errors = append(l.errors, fmt.Sprintf(f, a...)) }

func figmaServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/KEY123", r.URL.Path)
		w.Write([]byte(figmaFile))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	return Options{
		AccessToken:   "secret",
		FileKey:       "https://www.figma.com/design/KEY123/Brand",
		TokensDir:     filepath.Join(dir, "tokens"),
		ArtifactsDir:  filepath.Join(dir, "dist"),
		TemplatesDir:  filepath.Join(dir, "templates"),
		ComponentsDir: filepath.Join(dir, "components"),
		Now:           func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) },
	}
}

func TestPull(t *testing.T) {
	srv := figmaServer(t)
	opts := testOptions(t)
	opts.Client = figma.NewClient(opts.AccessToken, figma.WithBaseURL(srv.URL))

	res, err := Pull(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "Brand", res.FileName)
	assert.Len(t, res.Files, 1+len(tokens.Categories))
	assert.Equal(t, "#ff0000", res.Tokens[tokens.CategoryColor]["primary"].Value)
	assert.Equal(t, "#000000", res.Tokens[tokens.CategoryColor]["textmain"].Value)

	loaded, err := tokens.Load(opts.TokensPath())
	require.NoError(t, err)
	assert.Equal(t, res.Tokens, loaded)

	data, err := os.ReadFile(opts.TokensPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"_generated": "2024-05-06T07:08:09Z"`)
}

func TestPullRequiresCredentials(t *testing.T) {
	opts := testOptions(t)
	opts.AccessToken = ""
	_, err := Pull(context.Background(), opts)
	assert.ErrorIs(t, err, ErrMissingCredentials)

	opts = testOptions(t)
	opts.FileKey = "https://example.com/not-figma"
	_, err = Pull(context.Background(), opts)
	assert.ErrorContains(t, err, "resolve file key")
}

func saveDefaults(t *testing.T, opts Options) {
	t.Helper()
	_, err := tokens.Save(opts.TokensDir, tokens.Defaults(), opts.Now())
	require.NoError(t, err)
}

func TestBuild(t *testing.T) {
	opts := testOptions(t)
	saveDefaults(t, opts)
	log := &testLogger{}
	opts.Logger = log

	res, err := Build(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, res.Files, 4)
	for _, f := range res.Files {
		assert.FileExists(t, f)
	}
	assert.Equal(t, filepath.Join(opts.ArtifactsDir, "design-tokens.css"), res.Files[0])
	assert.Empty(t, res.Warnings())
	assert.Empty(t, log.warns)

	css, err := os.ReadFile(res.Files[0])
	require.NoError(t, err)
	assert.Contains(t, string(css), "--color-primary: #007AFF;")
}

func TestBuildSelectedFormats(t *testing.T) {
	opts := testOptions(t)
	saveDefaults(t, opts)
	opts.Formats = []string{"xaml"}

	res, err := Build(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(opts.ArtifactsDir, "design-tokens.xaml")}, res.Files)
	assert.NoFileExists(t, filepath.Join(opts.ArtifactsDir, "design-tokens.css"))

	opts.Formats = []string{"scss"}
	_, err = Build(context.Background(), opts)
	assert.Error(t, err)
}

func TestBuildFormatterOptions(t *testing.T) {
	opts := testOptions(t)
	saveDefaults(t, opts)
	opts.Formats = []string{"css", "markdown"}
	opts.CSSSelector = "[data-theme=light]"
	opts.Title = "Brand"

	res, err := Build(context.Background(), opts)
	require.NoError(t, err)

	css, err := os.ReadFile(res.Files[0])
	require.NoError(t, err)
	assert.Contains(t, string(css), "[data-theme=light] {\n")

	md, err := os.ReadFile(res.Files[1])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(md), "# Design Tokens - Brand\n"))
}

func TestBuildFillsMissingDefaults(t *testing.T) {
	opts := testOptions(t)
	partial := tokens.NewSet()
	partial.Put(tokens.CategoryColor, tokens.Color("primary", "#112233"))
	_, err := tokens.Save(opts.TokensDir, partial, opts.Now())
	require.NoError(t, err)
	opts.Formats = []string{"json"}

	res, err := Build(context.Background(), opts)
	require.NoError(t, err)

	data, err := os.ReadFile(res.Files[0])
	require.NoError(t, err)
	var flat map[string]string
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "#112233", flat["color-primary"])
	assert.Equal(t, "#FFFFFF", flat["color-on-primary"])
	assert.Equal(t, "16px", flat["space-md"])
	assert.Equal(t, "24px", flat["typography-body-line-height"])
}

func TestBuildReportsSkippedEntries(t *testing.T) {
	opts := testOptions(t)
	set := tokens.Defaults()
	set.Put(tokens.CategorySpace, tokens.Dimension("auto", tokens.TypeSpacing, "auto"))
	_, err := tokens.Save(opts.TokensDir, set, opts.Now())
	require.NoError(t, err)

	log := &testLogger{}
	opts.Logger = log
	res, err := Build(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, res.Warnings(), 1)
	assert.Equal(t, "SpaceAuto", res.Warnings()[0].Key)
	assert.Len(t, log.warns, 1)
}

func TestMissingTokenFile(t *testing.T) {
	opts := testOptions(t)
	log := &testLogger{}
	opts.Logger = log

	_, err := Build(context.Background(), opts)
	assert.ErrorIs(t, err, ErrMissingInput)

	report, err := Check(opts)
	assert.NoError(t, err)
	assert.Nil(t, report)

	gen, err := Generate(opts)
	assert.NoError(t, err)
	assert.Nil(t, gen)

	assert.Len(t, log.warns, 2)
}

func TestCheck(t *testing.T) {
	opts := testOptions(t)
	set := tokens.Defaults()
	set.Put(tokens.CategoryColor, tokens.Color("textMain", "#000000"))
	_, err := tokens.Save(opts.TokensDir, set, opts.Now())
	require.NoError(t, err)

	log := &testLogger{}
	opts.Logger = log
	report, err := Check(opts)
	require.NoError(t, err)

	// textMain against background and onBackground; black on black fails.
	require.Len(t, report.Results, 2)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "onBackground", report.Failures[0].BackgroundKey)
	assert.Len(t, log.errors, 1)
}

func TestGenerate(t *testing.T) {
	opts := testOptions(t)
	saveDefaults(t, opts)
	require.NoError(t, os.MkdirAll(opts.TemplatesDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(opts.TemplatesDir, "LoginForm.template"), []byte("{{COMPONENT_NAME}}:{{SPACE_MD}}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(opts.TemplatesDir, "Badge.template"), []byte("{{COLOR_SUCCESS}}"), 0644))

	res, err := Generate(opts)
	require.NoError(t, err)
	assert.Len(t, res.Generated, 1)
	assert.Len(t, res.Skipped, 2)

	data, err := os.ReadFile(filepath.Join(opts.ComponentsDir, "LoginForm.razor"))
	require.NoError(t, err)
	assert.Equal(t, "LoginForm:16px", string(data))

	opts.AllTemplates = true
	res, err = Generate(opts)
	require.NoError(t, err)
	assert.Len(t, res.Generated, 2)
	assert.Empty(t, res.Skipped)

	manifest := filepath.Join(t.TempDir(), "components.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("extension: .html\ncomponents:\n  - template: Badge\n    name: StatusBadge\n"), 0644))
	opts.Manifest = manifest
	res, err = Generate(opts)
	require.NoError(t, err)
	require.Len(t, res.Generated, 1)
	assert.Equal(t, filepath.Join(opts.ComponentsDir, "StatusBadge.html"), res.Generated[0])
}

func TestRun(t *testing.T) {
	srv := figmaServer(t)
	opts := testOptions(t)
	opts.Client = figma.NewClient(opts.AccessToken, figma.WithBaseURL(srv.URL))

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.NotNil(t, res.Pull)
	assert.Len(t, res.Build.Files, 4)
	require.NotNil(t, res.Report)
	assert.False(t, res.Report.Passed())

	report, err := os.ReadFile(res.Build.Files[3])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(report), "# Design Tokens - Brand\n"))

	opts.SkipPull = true
	opts.Client = nil
	res, err = Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Nil(t, res.Pull)
	assert.NotNil(t, res.Build)
}

func TestRunStopsOnMissingInput(t *testing.T) {
	opts := testOptions(t)
	opts.SkipPull = true

	res, err := Run(context.Background(), opts)
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.Nil(t, res.Build)
	assert.Nil(t, res.Report)
}

func TestParseList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"css,xaml", []string{"css", "xaml"}},
		{" css , , json ", []string{"css", "json"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseList(tt.in), tt.in)
	}
}
