package color

import "math"

// Level is a WCAG compliance level.
type Level string

// Compliance levels, strongest first.
const (
	AAA  Level = "AAA"
	AA   Level = "AA"
	Fail Level = "FAIL"
)

// WCAG 2.x contrast thresholds.
const (
	AANormal  = 4.5
	AALarge   = 3.0
	AAANormal = 7.0
	AAALarge  = 4.5
)

// RelativeLuminance returns the WCAG relative luminance of an sRGB color
// given as 0-255 channels.
func RelativeLuminance(r, g, b int) float64 {
	return 0.2126*linear(r) + 0.7152*linear(g) + 0.0722*linear(b)
}

func linear(c int) float64 {
	v := float64(c) / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns the WCAG contrast ratio between two hex colors, in
// the range [1, 21]. Alpha is ignored.
func ContrastRatio(a, b string) (float64, error) {
	ca, err := ParseHex(a)
	if err != nil {
		return 0, err
	}
	cb, err := ParseHex(b)
	if err != nil {
		return 0, err
	}

	la := RelativeLuminance(int(ca.R), int(ca.G), int(ca.B))
	lb := RelativeLuminance(int(cb.R), int(cb.G), int(cb.B))

	lighter, darker := math.Max(la, lb), math.Min(la, lb)
	return (lighter + 0.05) / (darker + 0.05), nil
}

// Classify maps a contrast ratio to a compliance level for normal or large
// text. Thresholds are inclusive.
func Classify(ratio float64, largeText bool) Level {
	aa, aaa := AANormal, AAANormal
	if largeText {
		aa, aaa = AALarge, AAALarge
	}

	switch {
	case ratio >= aaa:
		return AAA
	case ratio >= aa:
		return AA
	default:
		return Fail
	}
}

// Satisfies reports whether l is at least as strong as want.
func (l Level) Satisfies(want Level) bool {
	return rank(l) >= rank(want)
}

func rank(l Level) int {
	switch l {
	case AAA:
		return 2
	case AA:
		return 1
	default:
		return 0
	}
}
