// Package textmetrics abstracts text measurement for layout.
//
// Layout engines size boxes around label text. Real text metrics live in
// the rendering host (font lookup is platform territory), so the engines
// accept a [Measurer] and fall back to [Default], a display-width heuristic
// that is good enough for monospace-ish box sizing and deterministic across
// platforms.
package textmetrics

import "github.com/mattn/go-runewidth"

// Measurer reports the rendered size of a single line of text at a given
// font size. Implementations must be pure: the same inputs always produce
// the same outputs.
type Measurer interface {
	Measure(text string, fontSize float64) (width, height float64)
}

// CharWidthFactor approximates the advance width of one character cell as
// a fraction of the font size, roughly matching common UI fonts.
const CharWidthFactor = 0.62

// LineHeightFactor approximates line height as a fraction of the font size.
const LineHeightFactor = 1.4

// Heuristic is the built-in Measurer: display width in character cells
// (wide runes count double, via go-runewidth) times a per-cell advance
// derived from the font size.
type Heuristic struct{}

// Measure implements Measurer.
func (Heuristic) Measure(text string, fontSize float64) (width, height float64) {
	cells := runewidth.StringWidth(text)
	return float64(cells) * fontSize * CharWidthFactor, fontSize * LineHeightFactor
}

// Default is the Measurer used when the caller supplies none.
var Default Measurer = Heuristic{}

// Width is a convenience wrapper returning only the measured width using
// the given measurer, or Default when m is nil.
func Width(m Measurer, text string, fontSize float64) float64 {
	if m == nil {
		m = Default
	}
	w, _ := m.Measure(text, fontSize)
	return w
}
