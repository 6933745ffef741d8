package formatter

import (
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/kataras/figma-tokens/pkg/color"
	"github.com/kataras/figma-tokens/pkg/tokens"
)

const xamlHeader = `<ResourceDictionary xmlns="http://schemas.microsoft.com/winfx/2006/xaml/presentation"
                    xmlns:x="http://schemas.microsoft.com/winfx/2006/xaml"
                    xmlns:system="clr-namespace:System;assembly=mscorlib">`

// XAML renders tokens as a WPF/MAUI ResourceDictionary. Colors become Color
// resources in #AARRGGBB order, spacing and radius become Double resources
// with the unit dropped, shadows and anything else become String resources,
// and typography tokens fan out into FontFamily, FontSize, FontWeight and
// LineHeight entries.
type XAML struct{}

// Name implements Formatter.
func (XAML) Name() string { return "xaml" }

// FileName implements Formatter.
func (XAML) FileName() string { return "design-tokens.xaml" }

// Format implements Formatter.
func (f XAML) Format(set tokens.Set) (*Artifact, error) {
	art := &Artifact{Format: f.Name(), FileName: f.FileName()}

	skip := func(key, reason string) {
		art.Skipped = append(art.Skipped, &EmitError{Format: f.Name(), Key: key, Reason: reason})
	}
	seen := newNameSet(art)

	var lines []string
	for _, e := range set.Entries() {
		tok := e.Token
		name := tokens.PascalName(e.Category, tok.Key)
		add := func(element, key, value string) {
			if seen.claim(key, tok.Key) {
				lines = append(lines, resource(element, key, value))
			}
		}

		switch tok.Type {
		case tokens.TypeColor:
			v, err := xamlColor(tok.Value)
			if err != nil {
				skip(name, err.Error())
				continue
			}
			add("Color", name, v)
		case tokens.TypeSpacing, tokens.TypeBorderRadius, "dimension":
			v, ok := parseDimension(tok.Value)
			if !ok {
				skip(name, fmt.Sprintf("%q is not a number", tok.Value))
				continue
			}
			add("system:Double", name, formatNumber(v))
		case tokens.TypeShadow:
			add("system:String", name, tok.Value)
		case tokens.TypeTypography:
			t := tok.Typography
			if t.FontFamily != "" {
				add("system:String", name+"FontFamily", t.FontFamily)
			}
			if t.FontSize != "" {
				if v, ok := parseDimension(t.FontSize); ok {
					add("system:Double", name+"FontSize", formatNumber(v))
				} else {
					skip(name+"FontSize", fmt.Sprintf("%q is not a number", t.FontSize))
				}
			}
			if t.FontWeight != "" {
				add("system:String", name+"FontWeight", t.FontWeight)
			}
			if t.LineHeight != "" {
				if v, ok := parseDimension(t.LineHeight); ok {
					add("system:Double", name+"LineHeight", formatNumber(v))
				} else {
					skip(name+"LineHeight", fmt.Sprintf("%q is not a number", t.LineHeight))
				}
			}
		default:
			add("system:String", name, tok.Value)
		}
	}

	var sb strings.Builder
	sb.WriteString(xamlHeader)
	sb.WriteString("\n")
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("</ResourceDictionary>\n")
	art.Content = sb.String()

	return art, nil
}

// xamlColor rewrites a #rrggbb[aa] value into the form XAML parses, which puts
// the alpha byte first: #AARRGGBB.
func xamlColor(value string) (string, error) {
	c, err := color.ParseHex(value)
	if err != nil {
		return "", err
	}
	if c.A >= 1 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B), nil
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", uint8(math.Round(c.A*255)), c.R, c.G, c.B), nil
}

func resource(element, key, value string) string {
	return fmt.Sprintf(`    <%s x:Key="%s">%s</%s>`, element, escapeXML(key), escapeXML(value), element)
}

func escapeXML(s string) string {
	var sb strings.Builder
	xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
