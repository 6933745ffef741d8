package tokens

import (
	"strings"
	"unicode"
)

// canonicalColors maps lower-cased style names to canonical color keys.
var canonicalColors = map[string]string{
	"primary":       "primary",
	"onprimary":     "onPrimary",
	"on-primary":    "onPrimary",
	"secondary":     "secondary",
	"onsecondary":   "onSecondary",
	"on-secondary":  "onSecondary",
	"surface":       "surface",
	"onsurface":     "onSurface",
	"on-surface":    "onSurface",
	"background":    "background",
	"onbackground":  "onBackground",
	"on-background": "onBackground",
	"success":       "success",
	"warning":       "warning",
	"error":         "error",
	"info":          "info",
}

// CanonicalColorKey lower-cases a style name and maps it to its canonical
// color key. Unknown names are returned lower-cased. Distinct names can fold
// to the same key.
func CanonicalColorKey(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if key, ok := canonicalColors[lower]; ok {
		return key
	}
	return lower
}

// Segments splits a token into its name segments: the category followed by
// the '/'-separated parts of the key, with '.' removed from every part.
func Segments(c Category, key string) []string {
	parts := []string{string(c)}
	for _, p := range strings.Split(key, "/") {
		p = strings.TrimSpace(strings.ReplaceAll(p, ".", ""))
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// KebabName returns the flattened kebab-case name, e.g. color-on-primary.
func KebabName(c Category, key string, suffix ...string) string {
	words := nameWords(append(Segments(c, key), suffix...))
	return strings.Join(words, "-")
}

// PascalName returns the flattened PascalCase name, e.g. ColorOnPrimary.
func PascalName(c Category, key string, suffix ...string) string {
	var sb strings.Builder
	for _, w := range nameWords(append(Segments(c, key), suffix...)) {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		sb.WriteString(string(r))
	}
	return sb.String()
}

// nameWords breaks segments into lower-case words at separators and at
// lower-to-upper case transitions. Characters other than letters and digits
// act as separators.
func nameWords(segments []string) []string {
	var words []string
	for _, seg := range segments {
		var cur []rune
		flush := func() {
			if len(cur) > 0 {
				words = append(words, string(cur))
				cur = cur[:0]
			}
		}

		runes := []rune(seg)
		for i, r := range runes {
			switch {
			case unicode.IsUpper(r):
				if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
					flush()
				}
				cur = append(cur, unicode.ToLower(r))
			case unicode.IsLetter(r) || unicode.IsDigit(r):
				cur = append(cur, r)
			default:
				flush()
			}
		}
		flush()
	}
	return words
}
