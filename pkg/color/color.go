// Package color implements the small amount of color math the token pipeline
// needs: hex encoding, sRGB relative luminance and WCAG 2.x contrast ratios.
package color

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidChannel is returned when a channel is outside its valid range.
	ErrInvalidChannel = errors.New("invalid color channel")
	// ErrUnparseableColor is returned when a string is not a #RRGGBB[AA] literal.
	ErrUnparseableColor = errors.New("unparseable color")
)

var hexPattern = regexp.MustCompile(`(?i)^#?([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})?$`)

// RGBA is an 8-bit RGB triple with a separate alpha in the 0-1 range.
type RGBA struct {
	R, G, B uint8
	A       float64
}

// Hex returns the lowercase hex form of c. The alpha byte is only appended
// when the color is translucent.
func (c RGBA) Hex() string {
	s, _ := ToHex(int(c.R), int(c.G), int(c.B), c.A)
	return s
}

// ToHex encodes the given 0-255 channels as a lowercase #rrggbb string, or
// #rrggbbaa when an alpha below 1 is given.
func ToHex(r, g, b int, a ...float64) (string, error) {
	for _, c := range []int{r, g, b} {
		if c < 0 || c > 255 {
			return "", fmt.Errorf("%w: %d not in [0,255]", ErrInvalidChannel, c)
		}
	}

	hex := fmt.Sprintf("#%02x%02x%02x", r, g, b)
	if len(a) == 0 {
		return hex, nil
	}

	alpha := a[0]
	if alpha < 0 || alpha > 1 || math.IsNaN(alpha) {
		return "", fmt.Errorf("%w: alpha %g not in [0,1]", ErrInvalidChannel, alpha)
	}
	if alpha < 1 {
		hex += fmt.Sprintf("%02x", int(math.Round(alpha*255)))
	}

	return hex, nil
}

// FromUnit converts Figma style 0-1 float channels into an RGBA.
func FromUnit(r, g, b, a float64) (RGBA, error) {
	var out [3]uint8
	for i, c := range []float64{r, g, b} {
		v := math.Round(c * 255)
		if v < 0 || v > 255 || math.IsNaN(v) {
			return RGBA{}, fmt.Errorf("%w: %g not in [0,1]", ErrInvalidChannel, c)
		}
		out[i] = uint8(v)
	}
	if a < 0 || a > 1 || math.IsNaN(a) {
		return RGBA{}, fmt.Errorf("%w: alpha %g not in [0,1]", ErrInvalidChannel, a)
	}

	return RGBA{R: out[0], G: out[1], B: out[2], A: a}, nil
}

// ParseHex parses a #RRGGBB or #RRGGBBAA literal. The leading '#' is optional
// and matching is case-insensitive.
func ParseHex(s string) (RGBA, error) {
	m := hexPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return RGBA{}, fmt.Errorf("%w: %q", ErrUnparseableColor, s)
	}

	c := RGBA{
		R: parseByte(m[1]),
		G: parseByte(m[2]),
		B: parseByte(m[3]),
		A: 1,
	}
	if m[4] != "" {
		c.A = float64(parseByte(m[4])) / 255
	}

	return c, nil
}

func parseByte(s string) uint8 {
	v, _ := strconv.ParseUint(s, 16, 8)
	return uint8(v)
}
