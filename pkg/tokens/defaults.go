package tokens

// ColorKeys lists the canonical color keys that are always present.
var ColorKeys = []string{
	"primary", "onPrimary",
	"secondary", "onSecondary",
	"surface", "onSurface",
	"background", "onBackground",
	"success", "warning", "error", "info",
}

var defaultColors = map[string]string{
	"primary":      "#007AFF",
	"onPrimary":    "#FFFFFF",
	"secondary":    "#5856D6",
	"onSecondary":  "#FFFFFF",
	"surface":      "#FFFFFF",
	"onSurface":    "#000000",
	"background":   "#F2F2F7",
	"onBackground": "#000000",
	"success":      "#34C759",
	"warning":      "#FF9500",
	"error":        "#FF3B30",
	"info":         "#007AFF",
}

var defaultSpace = map[string]string{
	"xs": "4px",
	"sm": "8px",
	"md": "16px",
	"lg": "24px",
	"xl": "32px",
}

var defaultRadius = map[string]string{
	"sm":  "4px",
	"md":  "8px",
	"lg":  "12px",
	"xl":  "16px",
	"2xl": "24px",
}

var defaultElevation = map[string]string{
	"level0": "none",
	"level1": "0 1px 3px rgba(0,0,0,0.12)",
	"level2": "0 4px 6px rgba(0,0,0,0.12)",
	"level3": "0 10px 20px rgba(0,0,0,0.12)",
	"level4": "0 20px 25px rgba(0,0,0,0.15)",
}

var defaultTypography = map[string]Typography{
	"display": {FontFamily: "system-ui", FontSize: "32px", FontWeight: "700", LineHeight: "40px"},
	"title":   {FontFamily: "system-ui", FontSize: "24px", FontWeight: "600", LineHeight: "32px"},
	"body":    {FontFamily: "system-ui", FontSize: "16px", FontWeight: "400", LineHeight: "24px"},
	"caption": {FontFamily: "system-ui", FontSize: "12px", FontWeight: "400", LineHeight: "16px"},
}

// Defaults returns a fresh copy of the built-in token table: the twelve
// canonical colors, five spacing, radius and elevation steps and four
// typography styles.
func Defaults() Set {
	s := NewSet()
	for k, v := range defaultColors {
		s.Put(CategoryColor, Color(k, v))
	}
	for k, v := range defaultSpace {
		s.Put(CategorySpace, Dimension(k, TypeSpacing, v))
	}
	for k, v := range defaultRadius {
		s.Put(CategoryRadius, Dimension(k, TypeBorderRadius, v))
	}
	for k, v := range defaultElevation {
		s.Put(CategoryElevation, Dimension(k, TypeShadow, v))
	}
	for k, v := range defaultTypography {
		s.Put(CategoryTypography, Text(k, v))
	}
	return s
}
