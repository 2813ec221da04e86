package layout

import (
	"fmt"

	"github.com/inklab/merview/pkg/diagram"
	"github.com/inklab/merview/pkg/geometry"
)

// Grid packing constants shared by the class and state engines.
const (
	gridMargin  = 40.0
	gridGapX    = 50.0
	gridGapY    = 50.0
	classCols   = 3
	stateCols   = 4
	memberRowH  = 22.0
	classHeadH  = 34.0
	classPadX   = 14.0
	classMinW   = 150.0
	stateMinW   = 120.0
	stateMinH   = 50.0
	statePadX   = 16.0
	statePadY   = 14.0
	gridFontSz  = 13.0
)

// layoutClassGrid packs class boxes into a fixed three-column grid. Each
// box is sized from its longest member line; each grid row is as tall as
// its tallest class. Relationships draw as straight lines between box
// centers, so no routing geometry is produced here.
func layoutClassGrid(data *diagram.ClassData, opts Options, res *Result) {
	if data == nil || len(data.Classes) == 0 {
		return
	}

	sizes := make([]geometry.Size, len(data.Classes))
	for i, c := range data.Classes {
		sizes[i] = classBoxSize(c, opts)
	}

	packGrid(res, classCols, sizes, func(i int) string { return data.Classes[i].Name }, opts)
}

// layoutStateGrid buckets states into start/regular/end groups and packs
// them into a fixed four-column grid in that order, so entry states occupy
// the first cells and terminal states the last. The `[*]` pseudostate is
// never in the state list and therefore never positioned.
func layoutStateGrid(data *diagram.StateData, opts Options, res *Result) {
	if data == nil || len(data.States) == 0 {
		return
	}

	var ordered []diagram.State
	for _, s := range data.States {
		if s.IsStart && !s.IsEnd {
			ordered = append(ordered, s)
		}
	}
	for _, s := range data.States {
		if !s.IsStart && !s.IsEnd {
			ordered = append(ordered, s)
		}
	}
	for _, s := range data.States {
		if s.IsEnd {
			ordered = append(ordered, s)
		}
	}

	sizes := make([]geometry.Size, len(ordered))
	for i, s := range ordered {
		sizes[i] = stateBoxSize(s, opts)
	}

	packGrid(res, stateCols, sizes, func(i int) string { return ordered[i].ID }, opts)
}

// packGrid places boxes row-major into a fixed-column grid. Row height is
// the tallest box in that row; every box is centered in its cell.
func packGrid(res *Result, cols int, sizes []geometry.Size, id func(int) string, opts Options) {
	colW := make([]float64, cols)
	for i, s := range sizes {
		if c := i % cols; s.Width > colW[c] {
			colW[c] = s.Width
		}
	}

	y := gridMargin
	maxRight := 0.0
	for start := 0; start < len(sizes); start += cols {
		end := start + cols
		if end > len(sizes) {
			end = len(sizes)
		}

		rowH := 0.0
		for i := start; i < end; i++ {
			if sizes[i].Height > rowH {
				rowH = sizes[i].Height
			}
		}

		x := gridMargin
		for i := start; i < end; i++ {
			c := i - start
			res.setBox(id(i), geometry.Rect{
				Center: geometry.Point{X: x + colW[c]/2, Y: y + rowH/2},
				Size:   sizes[i],
			})
			x += colW[c] + gridGapX
		}
		if x-gridGapX > maxRight {
			maxRight = x - gridGapX
		}

		y += rowH + gridGapY
	}

	res.Frame.Width = opts.Size.Width
	if w := maxRight + gridMargin; w > res.Frame.Width {
		res.Frame.Width = w
	}
	if h := y - gridGapY + gridMargin; h > opts.Size.Height {
		res.Frame.Height = h
	}
}

// classBoxSize derives a class box from its widest line of text: the name
// header plus one row per attribute and method.
func classBoxSize(c diagram.Class, opts Options) geometry.Size {
	widest, _ := opts.Measurer.Measure(c.Name, gridFontSz)
	for _, a := range c.Attributes {
		if w, _ := opts.Measurer.Measure(memberText(a.Visibility, attributeText(a)), gridFontSz); w > widest {
			widest = w
		}
	}
	for _, m := range c.Methods {
		if w, _ := opts.Measurer.Measure(memberText(m.Visibility, methodText(m)), gridFontSz); w > widest {
			widest = w
		}
	}

	w := widest + 2*classPadX
	if w < classMinW {
		w = classMinW
	}
	h := classHeadH + memberRowH*float64(len(c.Attributes)+len(c.Methods))
	if h < classHeadH+memberRowH {
		h = classHeadH + memberRowH
	}
	return geometry.Size{Width: w, Height: h}
}

func stateBoxSize(s diagram.State, opts Options) geometry.Size {
	text := s.ID
	if s.Description != "" {
		text = s.Description
	}
	w, h := opts.Measurer.Measure(text, gridFontSz)
	if w += 2 * statePadX; w < stateMinW {
		w = stateMinW
	}
	if h += 2 * statePadY; h < stateMinH {
		h = stateMinH
	}
	return geometry.Size{Width: w, Height: h}
}

// Member display text, shared with the SVG renderer so measured and drawn
// strings match.

func memberText(v diagram.Visibility, rest string) string {
	return visibilitySymbol(v) + rest
}

func attributeText(a diagram.Attribute) string {
	if a.Type == "" {
		return a.Name
	}
	return a.Type + " " + a.Name
}

func methodText(m diagram.Method) string {
	params := ""
	for i, p := range m.Params {
		if i > 0 {
			params += ", "
		}
		params += p
	}
	if m.ReturnType == "" {
		return fmt.Sprintf("%s(%s)", m.Name, params)
	}
	return fmt.Sprintf("%s(%s) %s", m.Name, params, m.ReturnType)
}

func visibilitySymbol(v diagram.Visibility) string {
	switch v {
	case diagram.VisibilityPrivate:
		return "-"
	case diagram.VisibilityProtected:
		return "#"
	case diagram.VisibilityPackage:
		return "~"
	default:
		return "+"
	}
}

// MemberLine formats one class member the way layout measured it.
// Renderers use this to keep box sizing and drawn text consistent.
func MemberLine(v diagram.Visibility, a *diagram.Attribute, m *diagram.Method) string {
	if a != nil {
		return memberText(v, attributeText(*a))
	}
	if m != nil {
		return memberText(v, methodText(*m))
	}
	return ""
}
