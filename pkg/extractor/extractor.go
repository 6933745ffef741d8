package extractor

import (
	"fmt"
	"sort"

	"github.com/kataras/figma-tokens/pkg/color"
	"github.com/kataras/figma-tokens/pkg/figma"
	"github.com/kataras/figma-tokens/pkg/tokens"
)

// Warner receives non-fatal extraction diagnostics.
type Warner interface {
	Warnf(format string, args ...any)
}

// Options configures an extraction run.
type Options struct {
	Logger Warner // nil = no diagnostics

	// Defaults is merged into the extracted colors. Nil uses tokens.Defaults().
	Defaults tokens.Set
}

// Extract analyzes a Figma file response and returns the complete, defaulted token
// set. Colors come from the file's FILL styles; every canonical color missing from
// the file, and the spacing, radius, elevation and typography scales, are filled
// from the default table. An empty or nil file yields exactly the defaults.
func Extract(fileResp *figma.FileResponse, opts Options) (tokens.Set, error) {
	colors, err := ExtractColors(fileResp, opts.Logger)
	if err != nil {
		return nil, err
	}

	defaults := opts.Defaults
	if defaults == nil {
		defaults = tokens.Defaults()
	}

	return tokens.FillDefaults(colors, defaults), nil
}

// ExtractColors resolves every FILL style of the file to a color token. Styles are
// visited in style-id order. For each one the document tree is searched depth-first
// for the first node that references the style and carries fills; the first SOLID
// paint of that node gives the color. Styles no node references resolve to opaque
// black.
//
// Style names are lower-cased and mapped through the canonical color table, so
// "OnPrimary" and "on-primary" both land on onPrimary. When two styles fold to the
// same key the later one wins and a warning is reported to w.
func ExtractColors(fileResp *figma.FileResponse, w Warner) (tokens.Set, error) {
	set := tokens.NewSet()
	if fileResp == nil {
		return set, nil
	}

	ids := make([]string, 0, len(fileResp.Styles))
	for id, style := range fileResp.Styles {
		if style.StyleType == figma.StyleTypeFill {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	sources := make(map[string]string, len(ids)) // token key -> style name
	for _, id := range ids {
		style := fileResp.Styles[id]

		value := "#000000"
		if node := FindStyledNode(&fileResp.Document, id); node != nil {
			c, ok, err := SolidFillColor(node)
			if err != nil {
				return nil, fmt.Errorf("style %s (%q): %w", id, style.Name, err)
			}
			if ok {
				value = c.Hex()
			}
		}

		key := tokens.CanonicalColorKey(style.Name)
		if prev, seen := sources[key]; seen && w != nil {
			w.Warnf("color styles %q and %q both map to %q, keeping %q", prev, style.Name, key, style.Name)
		}
		sources[key] = style.Name

		set.Put(tokens.CategoryColor, tokens.Color(key, value))
	}

	return set, nil
}

// FindStyledNode walks the tree rooted at root depth-first and returns the first
// node whose fill style is styleID and that has at least one fill.
func FindStyledNode(root *figma.Node, styleID string) *figma.Node {
	if root == nil {
		return nil
	}
	if root.FillStyle() == styleID && len(root.Fills) > 0 {
		return root
	}
	for i := range root.Children {
		if found := FindStyledNode(&root.Children[i], styleID); found != nil {
			return found
		}
	}
	return nil
}

// SolidFillColor converts the first SOLID paint of node to a color. The alpha is
// the paint opacity when set, else the color's own alpha, else 1. The boolean is
// false when the node has no SOLID paint with a color.
func SolidFillColor(node *figma.Node) (color.RGBA, bool, error) {
	for _, fill := range node.Fills {
		if fill.Type != figma.PaintSolid {
			continue
		}
		if fill.Color == nil {
			return color.RGBA{}, false, nil
		}

		alpha := 1.0
		switch {
		case fill.Opacity != nil:
			alpha = *fill.Opacity
		case fill.Color.A != nil:
			alpha = *fill.Color.A
		}

		c, err := color.FromUnit(fill.Color.R, fill.Color.G, fill.Color.B, alpha)
		if err != nil {
			return color.RGBA{}, false, err
		}
		return c, true, nil
	}

	return color.RGBA{}, false, nil
}
