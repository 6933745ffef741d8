// Package a11y checks the color tokens of a set for WCAG contrast
// compliance. Text and background colors are paired by naming convention.
package a11y

import (
	"strings"

	"github.com/kataras/figma-tokens/pkg/color"
	"github.com/kataras/figma-tokens/pkg/tokens"
)

// Result is the contrast of one foreground/background pair.
type Result struct {
	ForegroundKey       string      `json:"foregroundKey"`
	BackgroundKey       string      `json:"backgroundKey"`
	Foreground          string      `json:"foreground"`
	Background          string      `json:"background"`
	Ratio               float64     `json:"ratio"`
	NormalCompliance    color.Level `json:"normalCompliance"`
	LargeTextCompliance color.Level `json:"largeTextCompliance"`
}

// Failed reports whether the pair fails at both text sizes.
func (r Result) Failed() bool {
	return r.NormalCompliance == color.Fail && r.LargeTextCompliance == color.Fail
}

// Report holds every checked pair in foreground-then-background key order,
// plus the subset that failed.
type Report struct {
	Results  []Result `json:"results"`
	Failures []Result `json:"failures"`
	// Skipped lists pairs whose values could not be parsed as colors.
	Skipped []string `json:"skipped,omitempty"`
}

// Passed reports whether no pair failed.
func (r *Report) Passed() bool {
	return len(r.Failures) == 0
}

// MeetsMode reports whether every pair reaches at least level for normal text.
func (r *Report) MeetsMode(level color.Level) bool {
	for _, res := range r.Results {
		if !res.NormalCompliance.Satisfies(level) {
			return false
		}
	}
	return true
}

// IsForeground reports whether a color key names a text color.
func IsForeground(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "text") || strings.Contains(k, "foreground")
}

// IsBackground reports whether a color key names a background color.
func IsBackground(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "background") || strings.Contains(k, "bg")
}

// Check computes the contrast of every foreground candidate against every
// background candidate in the set's color category. A set without candidates
// on either side yields an empty report.
func Check(set tokens.Set) *Report {
	var fgs, bgs []tokens.Token
	for _, k := range set.Keys(tokens.CategoryColor) {
		tok := set[tokens.CategoryColor][k]
		if IsForeground(k) {
			fgs = append(fgs, tok)
		}
		if IsBackground(k) {
			bgs = append(bgs, tok)
		}
	}

	report := &Report{}
	for _, fg := range fgs {
		for _, bg := range bgs {
			ratio, err := color.ContrastRatio(fg.Value, bg.Value)
			if err != nil {
				report.Skipped = append(report.Skipped, fg.Key+"/"+bg.Key)
				continue
			}

			res := Result{
				ForegroundKey:       fg.Key,
				BackgroundKey:       bg.Key,
				Foreground:          fg.Value,
				Background:          bg.Value,
				Ratio:               ratio,
				NormalCompliance:    color.Classify(ratio, false),
				LargeTextCompliance: color.Classify(ratio, true),
			}
			report.Results = append(report.Results, res)
			if res.Failed() {
				report.Failures = append(report.Failures, res)
			}
		}
	}

	return report
}
