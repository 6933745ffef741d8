package formatter

import (
	"fmt"
	"strings"

	"github.com/kataras/figma-tokens/pkg/tokens"
)

// Markdown renders a human-readable report of the token set: CSS variable
// snippets for colors, spacing, radii and elevation plus a typography table,
// ready to paste into design-system documentation.
type Markdown struct {
	// Title is appended to the document heading, usually the Figma file name.
	Title string
}

// Name implements Formatter.
func (Markdown) Name() string { return "markdown" }

// FileName implements Formatter.
func (Markdown) FileName() string { return "design-tokens.md" }

// Format implements Formatter.
func (f Markdown) Format(set tokens.Set) (*Artifact, error) {
	var sb strings.Builder

	if f.Title != "" {
		sb.WriteString(fmt.Sprintf("# Design Tokens - %s\n\n", f.Title))
	} else {
		sb.WriteString("# Design Tokens\n\n")
	}
	sb.WriteString(fmt.Sprintf("This document lists all %d design tokens of the pipeline run.\n\n", set.Len()))

	sections := []struct {
		category tokens.Category
		title    string
	}{
		{tokens.CategoryColor, "Color Palette"},
		{tokens.CategorySpace, "Spacing"},
		{tokens.CategoryRadius, "Border Radius"},
		{tokens.CategoryElevation, "Elevation"},
	}

	for _, sec := range sections {
		keys := set.Keys(sec.category)
		if len(keys) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("## %s\n\n", sec.title))
		sb.WriteString("```css\n")
		for _, k := range keys {
			tok := set[sec.category][k]
			sb.WriteString(fmt.Sprintf("--%s: %s;\n", tokens.KebabName(sec.category, k), tok.Value))
		}
		sb.WriteString("```\n\n")
	}

	if keys := set.Keys(tokens.CategoryTypography); len(keys) > 0 {
		sb.WriteString("## Typography\n\n")
		sb.WriteString("| Style | Font Family | Size | Weight | Line Height |\n")
		sb.WriteString("|-------|-------------|------|--------|-------------|\n")
		for _, k := range keys {
			t := set[tokens.CategoryTypography][k].Typography
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				k, cell(t.FontFamily), cell(t.FontSize), cell(t.FontWeight), cell(t.LineHeight)))
		}
		sb.WriteString("\n")
	}

	return &Artifact{
		Format:   f.Name(),
		FileName: f.FileName(),
		Content:  sb.String(),
	}, nil
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
