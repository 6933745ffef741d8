package figmatokens

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/kataras/figma-tokens/pkg/figma"
	"github.com/kataras/figma-tokens/pkg/tokens"
)

// Version is the release of the pipeline and its CLI.
const Version = "0.1.0"

var (
	// ErrMissingInput reports that a stage's input file does not exist. It is
	// fatal for Build; Check and Generate log a warning instead.
	ErrMissingInput = errors.New("missing input")
	// ErrMissingCredentials reports a Pull without an access token or file key.
	ErrMissingCredentials = errors.New("FIGMA_TOKEN and FIGMA_FILE_KEY must be set")
)

// Default directories, relative to the working directory.
const (
	DefaultTokensDir     = "design/tokens"
	DefaultArtifactsDir  = "design/dist"
	DefaultTemplatesDir  = "templates"
	DefaultComponentsDir = "components"
)

// Options configures the pipeline stages.
type Options struct {
	AccessToken string
	FileKey     string // Figma file key or file URL

	TokensDir    string   // where app.tokens.json lives
	ArtifactsDir string   // where emitted style artifacts are written
	Formats      []string // formatter names, empty = all
	Title        string   // markdown report heading; Run uses the Figma file name when empty
	CSSSelector  string   // rule wrapping the CSS properties, default ":root"

	TemplatesDir  string
	ComponentsDir string
	Manifest      string // optional YAML component manifest
	AllTemplates  bool   // generate every template found under TemplatesDir
	Extension     string // component file extension, default ".razor"

	SkipPull bool // Run only: reuse the existing token file

	Client *figma.Client    // nil = figma.NewClient(AccessToken)
	Now    func() time.Time // nil = time.Now
	Logger Logger           // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

func (o *Options) applyDefaults() {
	if o.TokensDir == "" {
		o.TokensDir = DefaultTokensDir
	}
	if o.ArtifactsDir == "" {
		o.ArtifactsDir = DefaultArtifactsDir
	}
	if o.TemplatesDir == "" {
		o.TemplatesDir = DefaultTemplatesDir
	}
	if o.ComponentsDir == "" {
		o.ComponentsDir = DefaultComponentsDir
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// TokensPath returns the path of the normalized token file.
func (o *Options) TokensPath() string {
	dir := o.TokensDir
	if dir == "" {
		dir = DefaultTokensDir
	}
	return filepath.Join(dir, tokens.FileName)
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

// warner adapts the options logger to the extractor's diagnostics sink.
type warner struct{ o *Options }

func (w warner) Warnf(f string, a ...any) { w.o.logWarn(f, a...) }

// ParseList parses a comma-separated flag value such as "css, xaml" into
// its trimmed, non-empty items.
func ParseList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
