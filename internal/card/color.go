package card

import (
	"errors"
	"regexp"
	"strings"
)

// ColorValue is a #RRGGBB hex color chosen for the card front.
type ColorValue string

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ParseColor validates and normalizes a hex color string.
func ParseColor(raw string) (ColorValue, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "#") {
		trimmed = "#" + trimmed
	}
	if !hexColorPattern.MatchString(trimmed) {
		return "", errors.New("card: color must be a #RRGGBB hex value")
	}
	return ColorValue("#" + strings.ToUpper(trimmed[1:])), nil
}

// String returns the color as "#RRGGBB".
func (c ColorValue) String() string { return string(c) }

// HexDigits returns the six hex digits without the leading hash,
// the form used in derived download filenames.
func (c ColorValue) HexDigits() string {
	return strings.TrimPrefix(string(c), "#")
}

// PaletteEntry is one preset color offered on the color step.
type PaletteEntry struct {
	Name  string
	Value ColorValue
}

// Palette returns the preset colors offered by the wizard. A custom hex
// value typed by the user is equally valid; these are just starting points.
func Palette() []PaletteEntry {
	return []PaletteEntry{
		{Name: "Midnight", Value: "#1700FE"},
		{Name: "Ember", Value: "#E2492F"},
		{Name: "Meadow", Value: "#2F9E44"},
		{Name: "Marigold", Value: "#F59F00"},
		{Name: "Orchid", Value: "#9C36B5"},
		{Name: "Tide", Value: "#1098AD"},
		{Name: "Rosewood", Value: "#C2255C"},
		{Name: "Slate", Value: "#495057"},
	}
}
