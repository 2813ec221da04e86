// Package style defines the visual themes used by renderers and the pie
// layout palette.
//
// Two themes are built in ("default" and "dark"); user themes load from
// TOML files and inherit the default for any field left unset. Theme
// selection never affects geometry except for the pie palette pairing,
// which is part of the deterministic layout contract: color i always goes
// to the i-th largest slice.
package style

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Theme holds the colors and font defaults for rendering.
type Theme struct {
	Name       string `toml:"name"`
	Background string `toml:"background"`
	NodeFill   string `toml:"node_fill"`
	NodeStroke string `toml:"node_stroke"`
	TextColor  string `toml:"text_color"`
	EdgeStroke string `toml:"edge_stroke"`
	NoteFill   string `toml:"note_fill"`
	FontFamily string `toml:"font_family"`

	// Palette is the categorical slice palette, cycled by index.
	// PaletteText carries the paired on-slice label colors.
	Palette     []string `toml:"palette"`
	PaletteText []string `toml:"palette_text"`
}

// Default returns the built-in light theme.
func Default() Theme {
	return Theme{
		Name:       "default",
		Background: "#FFFFFF",
		NodeFill:   "#ECECFF",
		NodeStroke: "#9370DB",
		TextColor:  "#333333",
		EdgeStroke: "#333333",
		NoteFill:   "#FFF5AD",
		FontFamily: "Helvetica, Arial, sans-serif",
		Palette: []string{
			"#4E79A7", "#F28E2B", "#E15759", "#76B7B2",
			"#59A14F", "#EDC948", "#B07AA1", "#FF9DA7",
			"#9C755F", "#BAB0AC", "#86BCB6", "#D37295",
		},
		PaletteText: []string{
			"#FFFFFF", "#333333", "#FFFFFF", "#333333",
			"#FFFFFF", "#333333", "#FFFFFF", "#333333",
			"#FFFFFF", "#333333", "#333333", "#FFFFFF",
		},
	}
}

// Dark returns the built-in dark theme.
func Dark() Theme {
	t := Default()
	t.Name = "dark"
	t.Background = "#1E1E2E"
	t.NodeFill = "#313244"
	t.NodeStroke = "#89B4FA"
	t.TextColor = "#CDD6F4"
	t.EdgeStroke = "#A6ADC8"
	t.NoteFill = "#45475A"
	return t
}

// Builtin returns the named built-in theme.
func Builtin(name string) (Theme, bool) {
	switch name {
	case "", "default":
		return Default(), true
	case "dark":
		return Dark(), true
	}
	return Theme{}, false
}

// LoadFile reads a theme from a TOML file. Unset fields inherit from the
// default theme so a user theme only needs to override what it changes.
func LoadFile(path string) (Theme, error) {
	t := Default()
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Theme{}, fmt.Errorf("load theme %s: %w", path, err)
	}
	return t, nil
}

// SliceColor returns the fill for the i-th pie slice, cycling the palette.
func (t Theme) SliceColor(i int) string {
	if len(t.Palette) == 0 {
		return "#888888"
	}
	return t.Palette[i%len(t.Palette)]
}

// SliceTextColor returns the on-slice label color paired with SliceColor.
func (t Theme) SliceTextColor(i int) string {
	if len(t.PaletteText) == 0 {
		return "#FFFFFF"
	}
	return t.PaletteText[i%len(t.PaletteText)]
}
