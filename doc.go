// Package figmatokens turns the color styles of a Figma file into design
// tokens and platform style artifacts: CSS custom properties, a XAML
// resource dictionary, a flat JSON map and a markdown report. It also checks
// text/background color pairs for WCAG contrast and renders component
// templates with the token values.
//
// The CLI lives in cmd/figma-tokens; this root package exposes the same
// stages as a Go API so that callers can embed the pipeline in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmatokens:
//
//	import "github.com/kataras/figma-tokens" // package figmatokens
//
// # Quick start
//
//	res, err := figmatokens.Run(ctx, figmatokens.Options{
//	    AccessToken: os.Getenv("FIGMA_TOKEN"),
//	    FileKey:     os.Getenv("FIGMA_FILE_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !res.Report.Passed() {
//	    log.Printf("%d color pairs fail contrast", len(res.Report.Failures))
//	}
//
// # Stages
//
// [Pull] fetches the file and writes app.tokens.json (plus one legacy
// file per category) to [Options.TokensDir]. [Build] reads that file and
// emits every format concurrently; it fails with [ErrMissingInput] when the
// file does not exist. [Check] and [Generate] treat a missing file as a
// warning and return a nil result. [Run] chains Pull, Build and Check.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
//
//	type myLogger struct{}
//	func (l *myLogger) Infof(f string, a ...any)  { log.Printf("[INFO]  "+f, a...) }
//	func (l *myLogger) Warnf(f string, a ...any)  { log.Printf("[WARN]  "+f, a...) }
//	func (l *myLogger) Errorf(f string, a ...any) { log.Printf("[ERROR] "+f, a...) }
package figmatokens
