package formatter

import (
	"fmt"
	"strings"

	"github.com/kataras/figma-tokens/pkg/tokens"
)

// CSS renders tokens as custom properties inside a single rule.
// Values are written literally, so dimensions keep their unit.
type CSS struct {
	// Selector wraps the declarations. Defaults to ":root".
	Selector string
}

// Name implements Formatter.
func (CSS) Name() string { return "css" }

// FileName implements Formatter.
func (CSS) FileName() string { return "design-tokens.css" }

// Format implements Formatter.
func (f CSS) Format(set tokens.Set) (*Artifact, error) {
	selector := f.Selector
	if selector == "" {
		selector = ":root"
	}

	art := &Artifact{Format: f.Name(), FileName: f.FileName()}
	seen := newNameSet(art)

	var sb strings.Builder
	sb.WriteString("/**\n * Do not edit directly, this file was auto-generated.\n */\n\n")
	sb.WriteString(selector + " {\n")

	for _, e := range set.Entries() {
		tok := e.Token
		if tok.Type == tokens.TypeTypography {
			for _, field := range typographyFields(tok.Typography) {
				if field.Value == "" {
					continue
				}
				name := tokens.KebabName(e.Category, tok.Key, field.Name)
				if !seen.claim(name, tok.Key) {
					continue
				}
				sb.WriteString(fmt.Sprintf("  --%s: %s;\n", name, field.Value))
			}
			continue
		}

		name := tokens.KebabName(e.Category, tok.Key)
		if tok.Value == "" {
			art.Skipped = append(art.Skipped, &EmitError{Format: f.Name(), Key: name, Reason: "empty value"})
			continue
		}
		if !seen.claim(name, tok.Key) {
			continue
		}
		sb.WriteString(fmt.Sprintf("  --%s: %s;\n", name, tok.Value))
	}

	sb.WriteString("}\n")
	art.Content = sb.String()

	return art, nil
}
