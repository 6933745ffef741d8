package figmatokens

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/kataras/figma-tokens/pkg/a11y"
	"github.com/kataras/figma-tokens/pkg/codegen"
	"github.com/kataras/figma-tokens/pkg/extractor"
	"github.com/kataras/figma-tokens/pkg/figma"
	"github.com/kataras/figma-tokens/pkg/formatter"
	"github.com/kataras/figma-tokens/pkg/tokens"
)

// PullResult is the outcome of Pull.
type PullResult struct {
	FileName string     // Figma file name
	Tokens   tokens.Set // the saved, defaulted token set
	Files    []string   // written token files
}

// BuildResult is the outcome of Build.
type BuildResult struct {
	Artifacts []*formatter.Artifact
	Files     []string // written artifact paths, in formatter order
}

// Warnings returns every entry a formatter skipped.
func (r *BuildResult) Warnings() []*formatter.EmitError {
	var out []*formatter.EmitError
	for _, a := range r.Artifacts {
		out = append(out, a.Skipped...)
	}
	return out
}

// Result contains the output of every stage Run executed.
type Result struct {
	Pull   *PullResult // nil when SkipPull
	Build  *BuildResult
	Report *a11y.Report
}

// Pull fetches the Figma file, extracts the defaulted token set and saves it
// to the tokens directory.
func Pull(ctx context.Context, opts Options) (*PullResult, error) {
	opts.applyDefaults()

	if opts.AccessToken == "" || opts.FileKey == "" {
		return nil, ErrMissingCredentials
	}

	fileKey, err := figma.ResolveFileKey(opts.FileKey)
	if err != nil {
		return nil, fmt.Errorf("resolve file key: %w", err)
	}
	opts.logInfo("File key: %s", fileKey)

	client := opts.Client
	if client == nil {
		opts.logInfo("Authenticating with Figma API...")
		client = figma.NewClient(opts.AccessToken)
	}

	opts.logInfo("Fetching Figma file...")
	fileResp, err := client.GetFile(ctx, fileKey)
	if err != nil {
		return nil, fmt.Errorf("fetch file: %w", err)
	}
	opts.logInfo("File: %s", fileResp.Name)

	opts.logInfo("Extracting design tokens...")
	set, err := extractor.Extract(fileResp, extractor.Options{Logger: warner{&opts}})
	if err != nil {
		return nil, fmt.Errorf("extract tokens: %w", err)
	}
	opts.logInfo("Extracted %d color tokens", len(set[tokens.CategoryColor]))

	files, err := tokens.Save(opts.TokensDir, set, opts.Now())
	if err != nil {
		return nil, err
	}
	opts.logInfo("Saved tokens to %s", files[0])

	return &PullResult{FileName: fileResp.Name, Tokens: set, Files: files}, nil
}

// Build loads the token file and emits every selected format concurrently
// into the artifacts directory. A missing token file aborts with
// ErrMissingInput; entries a format cannot represent are logged and skipped.
func Build(ctx context.Context, opts Options) (*BuildResult, error) {
	opts.applyDefaults()

	formatters, err := formatter.ByName(opts.Formats...)
	if err != nil {
		return nil, err
	}
	for i, f := range formatters {
		switch f := f.(type) {
		case formatter.CSS:
			f.Selector = opts.CSSSelector
			formatters[i] = f
		case formatter.Markdown:
			f.Title = opts.Title
			formatters[i] = f
		}
	}

	path := opts.TokensPath()
	set, err := loadSet(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s not found, run pull first", ErrMissingInput, path)
	}
	if err != nil {
		return nil, fmt.Errorf("load tokens: %w", err)
	}

	if err := os.MkdirAll(opts.ArtifactsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artifacts directory %q: %w", opts.ArtifactsDir, err)
	}

	opts.logInfo("Building %d format(s) from %s...", len(formatters), path)

	res := &BuildResult{
		Artifacts: make([]*formatter.Artifact, len(formatters)),
		Files:     make([]string, len(formatters)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range formatters {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			art, err := f.Format(set)
			if err != nil {
				return fmt.Errorf("format %s: %w", f.Name(), err)
			}

			out := filepath.Join(opts.ArtifactsDir, art.FileName)
			if err := os.WriteFile(out, []byte(art.Content), 0644); err != nil {
				return fmt.Errorf("failed to write %q: %w", out, err)
			}

			res.Artifacts[i] = art
			res.Files[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, w := range res.Warnings() {
		opts.logWarn("%v", w)
	}

	for _, f := range res.Files {
		if _, err := os.Stat(f); err != nil {
			return nil, fmt.Errorf("artifact %s missing after build: %w", f, err)
		}
		opts.logInfo("Generated %s", f)
	}

	return res, nil
}

// Check runs the contrast validator over the token file. A missing file is
// logged and yields a nil report; failing pairs are reported, not returned
// as errors.
func Check(opts Options) (*a11y.Report, error) {
	opts.applyDefaults()

	path := opts.TokensPath()
	set, err := loadSet(path)
	if errors.Is(err, fs.ErrNotExist) {
		opts.logWarn("%s not found. Skipping accessibility checks.", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load tokens: %w", err)
	}
	opts.logInfo("Loaded %d color tokens", len(set[tokens.CategoryColor]))

	report := a11y.Check(set)
	if len(report.Results) == 0 {
		opts.logInfo("No text/background color pairs to check.")
		return report, nil
	}

	for _, r := range report.Results {
		opts.logInfo("%s on %s: %.2f:1 (normal %s, large %s)",
			r.ForegroundKey, r.BackgroundKey, r.Ratio, r.NormalCompliance, r.LargeTextCompliance)
	}
	for _, s := range report.Skipped {
		opts.logWarn("Skipped %s: not a hex color", s)
	}
	for _, r := range report.Failures {
		opts.logError("%s on %s fails WCAG contrast (%.2f:1)", r.ForegroundKey, r.BackgroundKey, r.Ratio)
	}

	return report, nil
}

// Generate renders the component templates with the saved tokens. The
// components come from Options.Manifest, every template under TemplatesDir
// when AllTemplates is set, or the reference components otherwise. A missing
// token file is logged and yields a nil result.
func Generate(opts Options) (*codegen.Result, error) {
	opts.applyDefaults()

	path := opts.TokensPath()
	set, err := loadSet(path)
	if errors.Is(err, fs.ErrNotExist) {
		opts.logWarn("%s not found. Skipping component generation.", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load tokens: %w", err)
	}

	components := codegen.DefaultComponents
	ext := opts.Extension
	switch {
	case opts.Manifest != "":
		m, err := codegen.LoadManifest(opts.Manifest)
		if err != nil {
			return nil, err
		}
		components = m.Components
		if ext == "" {
			ext = m.Extension
		}
	case opts.AllTemplates:
		components, err = codegen.Discover(opts.TemplatesDir, "")
		if err != nil {
			return nil, err
		}
		opts.logInfo("Found %d template(s) in %s", len(components), opts.TemplatesDir)
	}

	g := &codegen.Generator{
		TemplatesDir: opts.TemplatesDir,
		OutputDir:    opts.ComponentsDir,
		Extension:    ext,
		Logger:       opts.Logger,
	}
	return g.Generate(components, set)
}

// loadSet reads the token file and adds every default token a hand-edited
// file left out.
func loadSet(path string) (tokens.Set, error) {
	set, err := tokens.Load(path)
	if err != nil {
		return nil, err
	}
	return tokens.FillDefaults(set, tokens.Defaults()), nil
}

// Run executes Pull (unless SkipPull), Build and Check in order.
func Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{}

	if !opts.SkipPull {
		pull, err := Pull(ctx, opts)
		if err != nil {
			return res, fmt.Errorf("pull: %w", err)
		}
		res.Pull = pull
		if opts.Title == "" {
			opts.Title = pull.FileName
		}
	}

	build, err := Build(ctx, opts)
	if err != nil {
		return res, fmt.Errorf("build: %w", err)
	}
	res.Build = build

	report, err := Check(opts)
	if err != nil {
		return res, fmt.Errorf("check: %w", err)
	}
	res.Report = report

	return res, nil
}
