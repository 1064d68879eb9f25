package colors

import "strings"

// nameToHex maps common color names to the hex palette the provider
// accepts for projects.
var nameToHex = map[string]string{
	"red":    "#FF6161",
	"pink":   "#BE3B83",
	"teal":   "#7CEDEB",
	"green":  "#35D870",
	"yellow": "#E6EA49",
	"purple": "#C77B9B",
	"blue":   "#45B7D1",
	"mint":   "#96CEB4",
}

// IsHex reports whether value is a #RRGGBB hex color string.
func IsHex(value string) bool {
	if len(value) != 7 || value[0] != '#' {
		return false
	}
	for _, c := range value[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Normalize maps a user-provided color to a provider-compatible hex
// value. #RRGGBB passes through lowercased, common color names map via
// the palette, and anything else returns "" so the provider default
// applies.
func Normalize(color string) string {
	if color == "" {
		return ""
	}
	lowered := strings.ToLower(strings.TrimSpace(color))
	if IsHex(lowered) {
		return lowered
	}
	return nameToHex[lowered]
}
