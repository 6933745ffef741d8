package formatter

import (
	"encoding/json"

	"github.com/kataras/figma-tokens/pkg/tokens"
)

// JSON renders a single-level object mapping each flattened token name to
// its literal value. Typography fields flatten to their own names, e.g.
// typography-body-font-size.
type JSON struct{}

// Name implements Formatter.
func (JSON) Name() string { return "json" }

// FileName implements Formatter.
func (JSON) FileName() string { return "design-tokens.json" }

// Format implements Formatter.
func (f JSON) Format(set tokens.Set) (*Artifact, error) {
	art := &Artifact{Format: f.Name(), FileName: f.FileName()}
	seen := newNameSet(art)

	flat := make(map[string]string, set.Len())
	put := func(name, key, value string) {
		if seen.claim(name, key) {
			flat[name] = value
		}
	}
	for _, e := range set.Entries() {
		tok := e.Token
		if tok.Type == tokens.TypeTypography {
			for _, field := range typographyFields(tok.Typography) {
				if field.Value != "" {
					put(tokens.KebabName(e.Category, tok.Key, field.Name), tok.Key, field.Value)
				}
			}
			continue
		}
		put(tokens.KebabName(e.Category, tok.Key), tok.Key, tok.Value)
	}

	data, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		return nil, err
	}

	art.Content = string(data) + "\n"

	return art, nil
}
