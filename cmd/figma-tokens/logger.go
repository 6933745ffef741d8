package main

import (
	"fmt"
	"io"

	figmatokens "github.com/kataras/figma-tokens"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// newLogger returns the status logger for format "text" (colored lines) or
// "json" (one zerolog event per line).
func newLogger(format string, w io.Writer, component string) (figmatokens.Logger, error) {
	switch format {
	case "", "text":
		return &cliLogger{w: w}, nil
	case "json":
		return &jsonLogger{log: zerolog.New(w).With().Timestamp().Str("component", component).Logger()}, nil
	}
	return nil, fmt.Errorf("unknown log format %q (must be text or json)", format)
}

// cliLogger implements figmatokens.Logger with colored terminal output.
type cliLogger struct {
	w io.Writer
}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(l.w, format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(l.w, "⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(l.w, "✗ "+format+"\n", args...)
}

// jsonLogger implements figmatokens.Logger on top of zerolog.
type jsonLogger struct {
	log zerolog.Logger
}

func (l *jsonLogger) Infof(format string, args ...any)  { l.log.Info().Msgf(format, args...) }
func (l *jsonLogger) Warnf(format string, args ...any)  { l.log.Warn().Msgf(format, args...) }
func (l *jsonLogger) Errorf(format string, args ...any) { l.log.Error().Msgf(format, args...) }
