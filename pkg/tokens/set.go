package tokens

import "sort"

// Category is a top-level group of the token file.
type Category string

// Token categories.
const (
	CategoryColor      Category = "color"
	CategoryTypography Category = "typography"
	CategorySpace      Category = "space"
	CategoryRadius     Category = "radius"
	CategoryElevation  Category = "elevation"
)

// Categories lists every category in token file order.
var Categories = []Category{
	CategoryColor,
	CategoryTypography,
	CategorySpace,
	CategoryRadius,
	CategoryElevation,
}

// DefaultType returns the token type implied by a category.
func (c Category) DefaultType() Type {
	switch c {
	case CategoryColor:
		return TypeColor
	case CategoryTypography:
		return TypeTypography
	case CategorySpace:
		return TypeSpacing
	case CategoryRadius:
		return TypeBorderRadius
	case CategoryElevation:
		return TypeShadow
	}
	return ""
}

// Set maps a category to its tokens by key. A Set handed to a formatter or
// the validator is treated as read-only; use Clone before changing one.
type Set map[Category]map[string]Token

// NewSet returns a set with an empty map for every category.
func NewSet() Set {
	s := make(Set, len(Categories))
	for _, c := range Categories {
		s[c] = make(map[string]Token)
	}
	return s
}

// Put stores tok under category c, replacing any token with the same key.
func (s Set) Put(c Category, tok Token) {
	m, ok := s[c]
	if !ok {
		m = make(map[string]Token)
		s[c] = m
	}
	s[c][tok.Key] = tok
}

// Get returns the token stored under c and key.
func (s Set) Get(c Category, key string) (Token, bool) {
	tok, ok := s[c][key]
	return tok, ok
}

// Keys returns the sorted keys of category c.
func (s Set) Keys(c Category) []string {
	keys := make([]string, 0, len(s[c]))
	for k := range s[c] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the total number of tokens.
func (s Set) Len() int {
	n := 0
	for _, m := range s {
		n += len(m)
	}
	return n
}

// Clone returns a deep copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for c, m := range s {
		cp := make(map[string]Token, len(m))
		for k, v := range m {
			cp[k] = v
		}
		out[c] = cp
	}
	return out
}

// Entry is a token together with its category.
type Entry struct {
	Category Category
	Token    Token
}

// Entries returns every token, ordered by category (token file order, then
// any unknown categories alphabetically) and then by key.
func (s Set) Entries() []Entry {
	var out []Entry
	for _, c := range s.orderedCategories() {
		for _, k := range s.Keys(c) {
			out = append(out, Entry{Category: c, Token: s[c][k]})
		}
	}
	return out
}

func (s Set) orderedCategories() []Category {
	known := make(map[Category]bool, len(Categories))
	out := make([]Category, 0, len(s))
	for _, c := range Categories {
		known[c] = true
		if _, ok := s[c]; ok {
			out = append(out, c)
		}
	}

	var extra []string
	for c := range s {
		if !known[c] {
			extra = append(extra, string(c))
		}
	}
	sort.Strings(extra)
	for _, c := range extra {
		out = append(out, Category(c))
	}

	return out
}

// FillDefaults returns a new set holding every token of extracted plus any
// default token whose key extracted does not define. Neither input is
// modified.
func FillDefaults(extracted, defaults Set) Set {
	out := extracted.Clone()
	for c, m := range defaults {
		for k, tok := range m {
			if _, ok := out[c][k]; ok {
				continue
			}
			out.Put(c, tok)
		}
	}
	return out
}
