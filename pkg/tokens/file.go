package tokens

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileName is the name of the single source-of-truth token file.
const FileName = "app.tokens.json"

const (
	schemaRef     = "./app.tokens.schema.json"
	generatedNote = "AUTO-GENERATED from Figma. Edit /Design/tokens/app.tokens.json only."
)

type document struct {
	Schema     string           `json:"$schema"`
	Comment    string           `json:"_comment"`
	Generated  string           `json:"_generated"`
	Color      map[string]Token `json:"color"`
	Typography map[string]Token `json:"typography"`
	Space      map[string]Token `json:"space"`
	Radius     map[string]Token `json:"radius"`
	Elevation  map[string]Token `json:"elevation"`
}

// Encode renders s as the normalized token file, stamped with generated.
func Encode(s Set, generated time.Time) ([]byte, error) {
	doc := document{
		Schema:     schemaRef,
		Comment:    generatedNote,
		Generated:  generated.UTC().Format(time.RFC3339),
		Color:      leafMap(s[CategoryColor]),
		Typography: leafMap(s[CategoryTypography]),
		Space:      leafMap(s[CategorySpace]),
		Radius:     leafMap(s[CategoryRadius]),
		Elevation:  leafMap(s[CategoryElevation]),
	}
	return json.MarshalIndent(doc, "", "  ")
}

func leafMap(m map[string]Token) map[string]Token {
	if m == nil {
		return map[string]Token{}
	}
	return m
}

// Decode parses a normalized token file. Metadata keys (those starting with
// '$' or '_') and unknown categories are ignored. Leaves without a "type"
// take the category's default type.
func Decode(data []byte) (Set, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}

	s := NewSet()
	for _, c := range Categories {
		body, ok := raw[string(c)]
		if !ok {
			continue
		}

		var leaves map[string]Token
		if err := json.Unmarshal(body, &leaves); err != nil {
			return nil, fmt.Errorf("parse %s tokens: %w", c, err)
		}

		for key, tok := range leaves {
			tok.Key = key
			if tok.Type == "" {
				tok.Type = c.DefaultType()
			}
			s.Put(c, tok)
		}
	}

	return s, nil
}

// Load reads and decodes the token file at path. A missing file yields an
// error satisfying errors.Is(err, fs.ErrNotExist).
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Save writes app.tokens.json into dir along with one legacy <category>.json
// file per category, creating dir if needed. It returns the written paths.
func Save(dir string, s Set, generated time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create tokens directory %q: %w", dir, err)
	}

	data, err := Encode(s, generated)
	if err != nil {
		return nil, fmt.Errorf("encode tokens: %w", err)
	}

	tokenFile := filepath.Join(dir, FileName)
	if err := os.WriteFile(tokenFile, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %q: %w", tokenFile, err)
	}
	written := []string{tokenFile}

	for _, c := range Categories {
		legacy, err := json.MarshalIndent(leafMap(s[c]), "", "  ")
		if err != nil {
			return written, fmt.Errorf("encode %s tokens: %w", c, err)
		}

		path := filepath.Join(dir, string(c)+".json")
		if err := os.WriteFile(path, legacy, 0644); err != nil {
			return written, fmt.Errorf("failed to write %q: %w", path, err)
		}
		written = append(written, path)
	}

	return written, nil
}
