// Package tokens defines the normalized design-token model shared by every
// stage of the pipeline, the built-in defaults and the on-disk token file.
package tokens

import (
	"encoding/json"
	"fmt"
)

// Type is the kind of value a token carries.
type Type string

// Token types, as written in the "type" field of the token file.
const (
	TypeColor        Type = "color"
	TypeSpacing      Type = "spacing"
	TypeBorderRadius Type = "borderRadius"
	TypeShadow       Type = "shadow"
	TypeTypography   Type = "typography"
)

// Typography holds the text style fields of a typography token.
// An empty field means the property is absent, not zero.
type Typography struct {
	FontFamily string `json:"fontFamily,omitempty"`
	FontSize   string `json:"fontSize,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
	LineHeight string `json:"lineHeight,omitempty"`
}

// IsZero reports whether no field is set.
func (t Typography) IsZero() bool {
	return t == Typography{}
}

// Token is a single named design value. Typography tokens carry their
// fields in Typography and leave Value empty; every other type uses Value.
type Token struct {
	Key        string
	Type       Type
	Value      string
	Typography Typography
}

// Color returns a color token.
func Color(key, value string) Token {
	return Token{Key: key, Type: TypeColor, Value: value}
}

// Dimension returns a token of the given dimension-like type.
func Dimension(key string, typ Type, value string) Token {
	return Token{Key: key, Type: typ, Value: value}
}

// Text returns a typography token.
func Text(key string, t Typography) Token {
	return Token{Key: key, Type: TypeTypography, Typography: t}
}

type valueLeaf struct {
	Value string `json:"value"`
	Type  Type   `json:"type"`
}

type typographyLeaf struct {
	Typography
	Type Type `json:"type"`
}

// MarshalJSON writes the token leaf shape used by the token file:
// {"value": ..., "type": ...} or the typography fields plus "type".
func (t Token) MarshalJSON() ([]byte, error) {
	if t.Type == TypeTypography {
		return json.Marshal(typographyLeaf{Typography: t.Typography, Type: t.Type})
	}
	return json.Marshal(valueLeaf{Value: t.Value, Type: t.Type})
}

// UnmarshalJSON reads a token leaf. The key is assigned by the enclosing map.
func (t *Token) UnmarshalJSON(data []byte) error {
	var raw struct {
		Value any  `json:"value"`
		Type  Type `json:"type"`
		Typography
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.Type = raw.Type
	t.Typography = raw.Typography
	switch v := raw.Value.(type) {
	case nil:
		t.Value = ""
	case string:
		t.Value = v
	case float64:
		t.Value = fmt.Sprint(v)
	default:
		return fmt.Errorf("unsupported token value %v", v)
	}

	if t.Type == "" && !raw.Typography.IsZero() {
		t.Type = TypeTypography
	}

	return nil
}
