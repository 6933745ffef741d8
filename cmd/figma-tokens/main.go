package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	figmatokens "github.com/kataras/figma-tokens"
	"github.com/kataras/figma-tokens/pkg/a11y"
	"github.com/kataras/figma-tokens/pkg/agent"
	"github.com/kataras/figma-tokens/pkg/tokens"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	errCheckFailed = errors.New("accessibility check failed")
	// errReported is returned when the command already wrote its error.
	errReported = errors.New("error already reported")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

type app struct {
	configFile string
	noColor    bool

	cfg    *config
	logger figmatokens.Logger
}

func (a *app) options() figmatokens.Options {
	return a.cfg.options(a.logger)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "figma-tokens",
		Short:         "Turn Figma styles into design tokens and platform themes",
		Long:          "A tool to pull design tokens from a Figma file, build CSS, XAML, JSON and markdown artifacts from them, check color contrast and generate components",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.noColor {
				color.NoColor = true
			}

			cfg, err := loadConfig(cmd, a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg

			a.logger, err = newLogger(cfg.LogFormat, cmd.ErrOrStderr(), cmd.Name())
			return err
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Config file (default ./figma-tokens.yaml when present)")
	pf.StringP("token", "t", "", "Figma Personal Access Token (env FIGMA_TOKEN)")
	pf.StringP("file-key", "f", "", "Figma file key or URL (env FIGMA_FILE_KEY)")
	pf.String("tokens-dir", figmatokens.DefaultTokensDir, "Directory of app.tokens.json")
	pf.String("artifacts-dir", figmatokens.DefaultArtifactsDir, "Output directory for built artifacts")
	pf.String("templates-dir", figmatokens.DefaultTemplatesDir, "Directory of component templates")
	pf.String("components-dir", figmatokens.DefaultComponentsDir, "Output directory for generated components")
	pf.String("log-format", "text", "Status output format: text or json")
	pf.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newPullCmd(a),
		newBuildCmd(a),
		newCheckCmd(a),
		newGenerateCmd(a),
		newRunCmd(a),
		newOrchestrateCmd(a),
		newAgentCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func header(w io.Writer, title string) {
	cyan := color.New(color.FgCyan)
	cyan.Fprintf(w, "\n%s\n", title)
	cyan.Fprintln(w, "==========================")
}

func newPullCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Fetch the Figma file and save the token file",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.ErrOrStderr()
			header(w, "🎨 Figma Token Pull")

			res, err := figmatokens.Pull(cmd.Context(), a.options())
			if err != nil {
				return err
			}

			printTokenSummary(w, res.Tokens)
			color.New(color.FgGreen).Fprintf(w, "\n✨ Saved %d token file(s) from %q\n\n", len(res.Files), res.FileName)
			return nil
		},
	}
}

func printTokenSummary(w io.Writer, set tokens.Set) {
	color.New(color.FgCyan).Fprintln(w, "\n📊 Token Summary:")
	for _, c := range tokens.Categories {
		fmt.Fprintf(w, "  • %s: %d\n", c, len(set[c]))
	}
}

func newBuildCmd(a *app) *cobra.Command {
	var (
		watch    bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Emit CSS, XAML, JSON and markdown artifacts from the token file",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.ErrOrStderr()
			opts := a.options()

			build := func() error {
				res, err := figmatokens.Build(cmd.Context(), opts)
				if err != nil {
					return err
				}
				color.New(color.FgGreen).Fprintf(w, "✨ Built %d artifact(s) in %s\n", len(res.Files), opts.ArtifactsDir)
				return nil
			}

			if !watch {
				header(w, "🔧 Token Build")
				return build()
			}

			if err := os.MkdirAll(opts.TokensDir, 0755); err != nil {
				return fmt.Errorf("failed to create tokens directory %q: %w", opts.TokensDir, err)
			}
			tw, err := newTokenWatcher(opts.TokensDir, debounce, a.logger)
			if err != nil {
				return err
			}

			if err := build(); err != nil {
				a.logger.Errorf("%v", err)
			}
			a.logger.Infof("Watching %s for changes (Ctrl+C to stop)...", opts.TokensPath())

			return tw.run(cmd.Context(), func() {
				a.logger.Infof("Token file changed, rebuilding...")
				if err := build(); err != nil {
					a.logger.Errorf("%v", err)
				}
			})
		},
	}

	cmd.Flags().String("formats", "", "Comma-separated formats to build: css, xaml, json, markdown (default all)")
	cmd.Flags().String("title", "", "Heading of the markdown report")
	cmd.Flags().String("css-selector", "", `Rule wrapping the CSS properties (default ":root")`)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Rebuild whenever the token file changes")
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "Quiet period before a rebuild in watch mode")

	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	var (
		strict bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check text/background color pairs for WCAG contrast",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.ErrOrStderr()
			header(w, "♿ Accessibility Check")

			report, err := figmatokens.Check(a.options())
			if err != nil {
				return err
			}

			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			}
			printReport(w, report)

			if strict && report != nil && !report.Passed() {
				return errCheckFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any color pair fails")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write the report as JSON to stdout")

	return cmd
}

func printReport(w io.Writer, report *a11y.Report) {
	switch {
	case report == nil:
		fmt.Fprintln(w, "ℹ️  No token file, nothing checked.")
	case report.Passed():
		color.New(color.FgGreen).Fprintf(w, "\n✅ All %d color pair(s) pass WCAG contrast\n\n", len(report.Results))
	default:
		color.New(color.FgRed).Fprintf(w, "\n❌ %d of %d color pair(s) fail WCAG contrast\n\n", len(report.Failures), len(report.Results))
	}
}

func newGenerateCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render component templates with the token values",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.ErrOrStderr()
			header(w, "🔧 Component Generation")

			opts := a.options()
			opts.AllTemplates = all
			res, err := figmatokens.Generate(opts)
			if err != nil {
				return err
			}
			if res == nil {
				fmt.Fprintln(w, "ℹ️  Skipping component generation (no tokens available)")
				return nil
			}

			color.New(color.FgGreen).Fprintf(w, "\n✨ Generated %d component(s) in %s\n\n", len(res.Generated), opts.ComponentsDir)
			return nil
		},
	}

	cmd.Flags().String("manifest", "", "YAML manifest listing the components to generate")
	cmd.Flags().String("ext", "", "Component file extension (default .razor)")
	cmd.Flags().BoolVar(&all, "all", false, "Generate every template found in the templates directory")

	return cmd
}

func newRunCmd(a *app) *cobra.Command {
	var skipPull, strict bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Pull, build and check in one go",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.ErrOrStderr()
			header(w, "🚀 Token Pipeline")

			opts := a.options()
			opts.SkipPull = skipPull
			res, err := figmatokens.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if res.Pull != nil {
				printTokenSummary(w, res.Pull.Tokens)
			}
			color.New(color.FgGreen).Fprintf(w, "✨ Built %d artifact(s) in %s\n", len(res.Build.Files), opts.ArtifactsDir)
			printReport(w, res.Report)

			if strict && res.Report != nil && !res.Report.Passed() {
				return errCheckFailed
			}
			return nil
		},
	}

	cmd.Flags().String("formats", "", "Comma-separated formats to build (default all)")
	cmd.Flags().String("title", "", "Heading of the markdown report (default the Figma file name)")
	cmd.Flags().String("css-selector", "", `Rule wrapping the CSS properties (default ":root")`)
	cmd.Flags().BoolVar(&skipPull, "skip-pull", false, "Reuse the existing token file instead of fetching Figma")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any color pair fails")

	return cmd
}

func newOrchestrateCmd(a *app) *cobra.Command {
	var (
		mode      string
		inProcess bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "orchestrate",
		Short: "Run the planner, tokenizer, codegen, reviewer and integrator agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.ErrOrStderr()
			header(w, "🚀 Multi-agent UI sync")

			opts := a.options()
			runner := &agent.Runner{
				Commands:      a.cfg.Agents,
				Stderr:        w,
				TokensPath:    opts.TokensPath(),
				TemplatesDir:  opts.TemplatesDir,
				ComponentsDir: opts.ComponentsDir,
				Mode:          mode,
				Logger:        a.logger,
			}
			if !inProcess {
				exe, err := os.Executable()
				if err != nil {
					return fmt.Errorf("locate executable: %w", err)
				}
				runner.Command = []string{exe, "agent"}
			}

			res, err := runner.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("orchestration failed: %w", err)
			}

			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			}

			color.New(color.FgGreen).Fprintf(w, "\n✨ Run %s completed\n", res.RunID)
			fmt.Fprintln(w, "\nSummary:")
			for _, s := range res.Steps {
				state := "OK"
				if s.Skipped {
					state = "Skipped"
				}
				fmt.Fprintf(w, "  - %s: %s\n", s.Agent, state)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "AA", "WCAG conformance mode for the reviewer: AA or AAA")
	cmd.Flags().BoolVar(&inProcess, "in-process", false, "Run the built-in agents without spawning processes")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write the run result as JSON to stdout")

	return cmd
}

func newAgentCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "agent <name>",
		Short:     "Serve one agent: read a JSON request on stdin, write the response to stdout",
		Args:      cobra.ExactArgs(1),
		ValidArgs: agent.Names,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := agent.Serve(args[0], cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return errReported
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "figma-tokens version %s\n", figmatokens.Version)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
