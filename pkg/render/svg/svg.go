// Package svg renders positioned diagrams to SVG documents.
//
// The renderer consumes the parsed model plus the layout result and
// routing geometry; it computes no positions of its own. Output is plain
// SVG 1.1 with inline styling from a [style.Theme], suitable for embedding
// or rasterization.
//
// Diagram kinds without a parser (gantt, gitgraph, er, journey) and
// Unknown render as a fallback panel: the raw source text, or an
// "Unsupported diagram type" banner.
package svg

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/inklab/merview/pkg/diagram"
	"github.com/inklab/merview/pkg/geometry"
	"github.com/inklab/merview/pkg/layout"
	"github.com/inklab/merview/pkg/layout/route"
	"github.com/inklab/merview/pkg/style"
)

// Options configures SVG rendering.
type Options struct {
	// Theme selects colors and fonts; the zero value means style.Default.
	Theme style.Theme
}

// Render produces an SVG document for a diagram and its layout result.
// It never fails: unsupported kinds produce the fallback panel.
func Render(d diagram.Diagram, res layout.Result, opts Options) []byte {
	if opts.Theme.Name == "" {
		opts.Theme = style.Default()
	}

	r := &renderer{theme: opts.Theme}
	r.open(res.Frame)

	switch d.Kind {
	case diagram.KindFlowchart:
		r.flowchart(d, res)
	case diagram.KindSequence:
		r.sequence(res.Sequence)
	case diagram.KindClass:
		r.class(d.Class, res)
	case diagram.KindState:
		r.state(d.State, res)
	case diagram.KindPie:
		r.pie(res.Pie)
	case diagram.KindTimeline:
		r.timeline(res.Timeline)
	default:
		r.fallback(d, res.Frame)
	}

	r.close()
	return r.buf.Bytes()
}

type renderer struct {
	buf   bytes.Buffer
	theme style.Theme
}

func (r *renderer) open(frame geometry.Size) {
	fmt.Fprintf(&r.buf,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" font-family="%s">`+"\n",
		frame.Width, frame.Height, frame.Width, frame.Height, escape(r.theme.FontFamily))
	fmt.Fprintf(&r.buf, `<rect width="%.0f" height="%.0f" fill="%s"/>`+"\n",
		frame.Width, frame.Height, r.theme.Background)
}

func (r *renderer) close() {
	r.buf.WriteString("</svg>\n")
}

// =============================================================================
// Flowchart
// =============================================================================

// flowchart draws edges first so nodes paint over the connector ends,
// matching the parse-order render contract.
func (r *renderer) flowchart(d diagram.Diagram, res layout.Result) {
	for _, rt := range route.Edges(d, &res) {
		r.route(rt, edgeLabelFor(d, rt.EdgeID), edgeTypeFor(d, rt.EdgeID))
	}
	for _, n := range d.Nodes {
		box, ok := res.Box(n.ID)
		if !ok {
			continue
		}
		r.nodeShape(n, box)
		r.text(box.Center, n.Label, n.Style.FontSize, r.theme.TextColor, "middle")
	}
}

func edgeLabelFor(d diagram.Diagram, edgeID string) string {
	for _, e := range d.Edges {
		if e.ID == edgeID {
			return e.Label
		}
	}
	return ""
}

func edgeTypeFor(d diagram.Diagram, edgeID string) diagram.EdgeType {
	for _, e := range d.Edges {
		if e.ID == edgeID {
			return e.Type
		}
	}
	return diagram.EdgeArrow
}

func (r *renderer) route(rt route.Route, label string, typ diagram.EdgeType) {
	dash := ""
	switch typ {
	case diagram.EdgeDotted:
		dash = ` stroke-dasharray="3,3"`
	case diagram.EdgeDashed:
		dash = ` stroke-dasharray="6,4"`
	}
	width := 1.5
	if typ == diagram.EdgeDoubleArrow {
		width = 2.5
	}

	if rt.Curved {
		fmt.Fprintf(&r.buf,
			`<path d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" fill="none" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
			rt.From.X, rt.From.Y, rt.C1.X, rt.C1.Y, rt.C2.X, rt.C2.Y, rt.To.X, rt.To.Y,
			r.theme.EdgeStroke, width, dash)
	} else {
		fmt.Fprintf(&r.buf,
			`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
			rt.From.X, rt.From.Y, rt.To.X, rt.To.Y, r.theme.EdgeStroke, width, dash)
	}

	r.polygon(rt.Arrow[:], r.theme.EdgeStroke, "", 0)

	if label != "" {
		r.labelBox(rt.LabelAt, label)
	}
}

// labelBox draws an edge label on a small background plate so it stays
// readable where it crosses the connector.
func (r *renderer) labelBox(at geometry.Point, label string) {
	w := float64(len(label))*7 + 8
	fmt.Fprintf(&r.buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="16" fill="%s" opacity="0.85"/>`+"\n",
		at.X-w/2, at.Y-8, w, r.theme.Background)
	r.text(at, label, 12, r.theme.TextColor, "middle")
}

func (r *renderer) nodeShape(n diagram.Node, box geometry.Rect) {
	fill := n.Style.Fill
	if fill == "" {
		fill = r.theme.NodeFill
	}
	stroke := n.Style.Stroke
	if stroke == "" {
		stroke = r.theme.NodeStroke
	}

	c := box.Center
	halfW, halfH := box.Size.Width/2, box.Size.Height/2

	switch n.Shape {
	case diagram.ShapeCircle:
		fmt.Fprintf(&r.buf, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
			c.X, c.Y, math.Max(halfW, halfH), fill, stroke, n.Style.StrokeWidth)
	case diagram.ShapeDiamond:
		r.polygon([]geometry.Point{
			{X: c.X, Y: c.Y - halfH}, {X: c.X + halfW, Y: c.Y},
			{X: c.X, Y: c.Y + halfH}, {X: c.X - halfW, Y: c.Y},
		}, fill, stroke, n.Style.StrokeWidth)
	case diagram.ShapeHexagon:
		inset := box.Size.Width / 4
		r.polygon([]geometry.Point{
			{X: c.X - halfW + inset, Y: c.Y - halfH}, {X: c.X + halfW - inset, Y: c.Y - halfH},
			{X: c.X + halfW, Y: c.Y}, {X: c.X + halfW - inset, Y: c.Y + halfH},
			{X: c.X - halfW + inset, Y: c.Y + halfH}, {X: c.X - halfW, Y: c.Y},
		}, fill, stroke, n.Style.StrokeWidth)
	case diagram.ShapeRoundedRect:
		r.rect(box, fill, stroke, n.Style.StrokeWidth, 10)
	default:
		r.rect(box, fill, stroke, n.Style.StrokeWidth, 0)
	}
}

// =============================================================================
// Sequence
// =============================================================================

func (r *renderer) sequence(sr *layout.SequenceResult) {
	if sr == nil {
		return
	}

	for p, x := range sr.Lifelines {
		fmt.Fprintf(&r.buf,
			`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1" stroke-dasharray="4,4"/>`+"\n",
			x, sr.LifelineTop, x, sr.LifelineBottom, r.theme.EdgeStroke)
		head := sr.Heads[p]
		r.rect(head, r.theme.NodeFill, r.theme.NodeStroke, 1.5, 4)
		r.text(head.Center, p, 13, r.theme.TextColor, "middle")
	}

	for _, l := range sr.Loops {
		r.rect(l.Box, "none", r.theme.EdgeStroke, 1, 0)
		fmt.Fprintf(&r.buf, `<text x="%.1f" y="%.1f" font-size="11" fill="%s">loop %s</text>`+"\n",
			l.Box.Left()+6, l.Box.Top()+14, r.theme.TextColor, escape(l.Text))
	}

	for _, a := range sr.Activations {
		r.rect(a.Box, r.theme.NodeFill, r.theme.NodeStroke, 1, 0)
	}

	for _, m := range sr.Messages {
		dash := ""
		if m.Type == diagram.MessageSyncResponse || m.Type == diagram.MessageAsyncResponse {
			dash = ` stroke-dasharray="5,3"`
		}
		fmt.Fprintf(&r.buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5"%s/>`+"\n",
			m.FromX, m.Y, m.ToX, m.Y, r.theme.EdgeStroke, dash)

		r.messageEnd(m)
		if m.Text != "" {
			r.text(geometry.Point{X: (m.FromX + m.ToX) / 2, Y: m.Y - 6}, m.Text, 12, r.theme.TextColor, "middle")
		}
	}

	for _, n := range sr.Notes {
		r.rect(n.Box, r.theme.NoteFill, r.theme.EdgeStroke, 1, 2)
		r.text(n.Box.Center, n.Text, 11, r.theme.TextColor, "middle")
	}
}

// messageEnd draws an arrowhead at the target, or an X for lost messages.
func (r *renderer) messageEnd(m layout.MessageLine) {
	dir := 1.0
	if m.ToX < m.FromX {
		dir = -1
	}

	if m.Type == diagram.MessageLost {
		s := 5.0
		x := m.ToX
		fmt.Fprintf(&r.buf,
			`<path d="M %.1f %.1f L %.1f %.1f M %.1f %.1f L %.1f %.1f" stroke="%s" stroke-width="1.5"/>`+"\n",
			x-s, m.Y-s, x+s, m.Y+s, x-s, m.Y+s, x+s, m.Y-s, r.theme.EdgeStroke)
		return
	}

	tip := geometry.Point{X: m.ToX, Y: m.Y}
	r.polygon([]geometry.Point{
		tip,
		{X: m.ToX - 10*dir, Y: m.Y - 4},
		{X: m.ToX - 10*dir, Y: m.Y + 4},
	}, r.theme.EdgeStroke, "", 0)
}

// =============================================================================
// Class
// =============================================================================

func (r *renderer) class(data *diagram.ClassData, res layout.Result) {
	if data == nil {
		return
	}

	for _, rel := range data.Relations {
		fromBox, okF := res.Box(rel.From)
		toBox, okT := res.Box(rel.To)
		if !okF || !okT {
			continue
		}
		r.relation(rel, fromBox.Center, toBox.Center)
	}

	for _, c := range data.Classes {
		box, ok := res.Box(c.Name)
		if !ok {
			continue
		}
		r.classBox(c, box)
	}
}

func (r *renderer) classBox(c diagram.Class, box geometry.Rect) {
	r.rect(box, r.theme.NodeFill, r.theme.NodeStroke, 1.5, 0)

	headBottom := box.Top() + 34
	fmt.Fprintf(&r.buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
		box.Left(), headBottom, box.Right(), headBottom, r.theme.NodeStroke)
	r.text(geometry.Point{X: box.Center.X, Y: box.Top() + 17}, c.Name, 13, r.theme.TextColor, "middle")

	y := headBottom + 16
	for _, a := range c.Attributes {
		line := layout.MemberLine(a.Visibility, &a, nil)
		r.textAt(geometry.Point{X: box.Left() + 10, Y: y}, line, 12, r.theme.TextColor, "start")
		y += 22
	}
	for _, m := range c.Methods {
		line := layout.MemberLine(m.Visibility, nil, &m)
		r.textAt(geometry.Point{X: box.Left() + 10, Y: y}, line, 12, r.theme.TextColor, "start")
		y += 22
	}
}

// relation draws a straight connector between class centers with the
// arrowhead style of its relationship type. Class connectors are never
// curved.
func (r *renderer) relation(rel diagram.Relation, from, to geometry.Point) {
	dash := ""
	if rel.Type == diagram.RelationDependency || rel.Type == diagram.RelationRealization {
		dash = ` stroke-dasharray="5,3"`
	}
	fmt.Fprintf(&r.buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5"%s/>`+"\n",
		from.X, from.Y, to.X, to.Y, r.theme.EdgeStroke, dash)

	dir := to.Sub(from).Normalize()
	perp := dir.Perp()

	switch rel.Type {
	case diagram.RelationInheritance, diagram.RelationRealization:
		// Open triangle at the parent end.
		base := to.Sub(dir.Scale(14))
		r.polygon([]geometry.Point{to, base.Add(perp.Scale(7)), base.Sub(perp.Scale(7))},
			r.theme.Background, r.theme.EdgeStroke, 1.5)
	case diagram.RelationComposition, diagram.RelationAggregation:
		fill := r.theme.EdgeStroke
		if rel.Type == diagram.RelationAggregation {
			fill = r.theme.Background
		}
		mid := to.Sub(dir.Scale(9))
		back := to.Sub(dir.Scale(18))
		r.polygon([]geometry.Point{to, mid.Add(perp.Scale(5)), back, mid.Sub(perp.Scale(5))},
			fill, r.theme.EdgeStroke, 1.5)
	default:
		base := to.Sub(dir.Scale(12))
		r.polygon([]geometry.Point{to, base.Add(perp.Scale(5)), base.Sub(perp.Scale(5))},
			r.theme.EdgeStroke, "", 0)
	}

	if rel.Label != "" {
		r.labelBox(from.Add(to.Sub(from).Scale(0.5)), rel.Label)
	}
}

// =============================================================================
// State
// =============================================================================

func (r *renderer) state(data *diagram.StateData, res layout.Result) {
	if data == nil {
		return
	}

	for _, t := range data.Transitions {
		r.transition(t, res)
	}

	for _, s := range data.States {
		box, ok := res.Box(s.ID)
		if !ok {
			continue
		}
		r.rect(box, r.theme.NodeFill, r.theme.NodeStroke, 1.5, 8)
		label := s.ID
		if s.Description != "" {
			label = s.Description
		}
		r.text(box.Center, label, 13, r.theme.TextColor, "middle")
	}
}

// transition draws one state transition. The `[*]` pseudostate has no box;
// it renders as a filled dot above its successor (start) or a ringed dot
// below its predecessor (end).
func (r *renderer) transition(t diagram.Transition, res layout.Result) {
	const dotGap = 40.0

	switch {
	case t.From == diagram.PseudoStateID:
		box, ok := res.Box(t.To)
		if !ok {
			return
		}
		dot := geometry.Point{X: box.Center.X, Y: box.Top() - dotGap}
		fmt.Fprintf(&r.buf, `<circle cx="%.1f" cy="%.1f" r="6" fill="%s"/>`+"\n", dot.X, dot.Y, r.theme.EdgeStroke)
		r.arrowLine(dot, geometry.Point{X: box.Center.X, Y: box.Top()}, t.Label)
	case t.To == diagram.PseudoStateID:
		box, ok := res.Box(t.From)
		if !ok {
			return
		}
		dot := geometry.Point{X: box.Center.X, Y: box.Bottom() + dotGap}
		fmt.Fprintf(&r.buf, `<circle cx="%.1f" cy="%.1f" r="6" fill="%s"/>`+"\n", dot.X, dot.Y, r.theme.EdgeStroke)
		fmt.Fprintf(&r.buf, `<circle cx="%.1f" cy="%.1f" r="9" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
			dot.X, dot.Y, r.theme.EdgeStroke)
		r.arrowLine(geometry.Point{X: box.Center.X, Y: box.Bottom()}, dot, t.Label)
	default:
		fromBox, okF := res.Box(t.From)
		toBox, okT := res.Box(t.To)
		if !okF || !okT {
			return
		}
		start := route.BoundaryPoint(fromBox, diagram.ShapeRoundedRect, toBox.Center)
		end := route.BoundaryPoint(toBox, diagram.ShapeRoundedRect, fromBox.Center)
		r.arrowLine(start, end, t.Label)
	}
}

func (r *renderer) arrowLine(from, to geometry.Point, label string) {
	fmt.Fprintf(&r.buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5"/>`+"\n",
		from.X, from.Y, to.X, to.Y, r.theme.EdgeStroke)

	dir := to.Sub(from).Normalize()
	base := to.Sub(dir.Scale(10))
	half := dir.Perp().Scale(4)
	r.polygon([]geometry.Point{to, base.Add(half), base.Sub(half)}, r.theme.EdgeStroke, "", 0)

	if label != "" {
		r.labelBox(from.Add(to.Sub(from).Scale(0.5)), label)
	}
}

// =============================================================================
// Pie
// =============================================================================

func (r *renderer) pie(pr *layout.PieResult) {
	if pr == nil {
		return
	}

	if pr.Title != "" {
		r.text(geometry.Point{X: pr.Center.X, Y: 30}, pr.Title, 18, r.theme.TextColor, "middle")
	}

	for _, s := range pr.Slices {
		r.slice(pr.Center, pr.Radius, s)
	}
}

func (r *renderer) slice(center geometry.Point, radius float64, s layout.PieSlice) {
	start := arcPoint(center, radius, s.StartAngle)
	end := arcPoint(center, radius, s.EndAngle)
	largeArc := 0
	if s.EndAngle-s.StartAngle > 180 {
		largeArc = 1
	}

	if s.Fraction >= 1 {
		fmt.Fprintf(&r.buf, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			center.X, center.Y, radius, s.Color, r.theme.Background)
	} else {
		fmt.Fprintf(&r.buf,
			`<path d="M %.1f %.1f L %.1f %.1f A %.1f %.1f 0 %d 1 %.1f %.1f Z" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			center.X, center.Y, start.X, start.Y, radius, radius, largeArc, end.X, end.Y,
			s.Color, r.theme.Background)
	}

	// Percentage label inside the slice, legend label outside.
	mid := (s.StartAngle + s.EndAngle) / 2
	inner := arcPoint(center, radius*0.6, mid)
	r.text(inner, fmt.Sprintf("%.1f%%", s.Fraction*100), 12, s.TextColor, "middle")

	outer := arcPoint(center, radius+24, mid)
	anchor := "start"
	if outer.X < center.X {
		anchor = "end"
	}
	r.textAt(outer, s.Label, 13, r.theme.TextColor, anchor)
}

func arcPoint(center geometry.Point, radius, angleDeg float64) geometry.Point {
	rad := angleDeg * math.Pi / 180
	return geometry.Point{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
}

// =============================================================================
// Timeline
// =============================================================================

func (r *renderer) timeline(tr *layout.TimelineResult) {
	if tr == nil {
		return
	}

	if tr.Title != "" {
		r.text(geometry.Point{X: 0, Y: 30}, tr.Title, 18, r.theme.TextColor, "start")
	}

	if n := len(tr.Columns); n > 0 {
		first := tr.Columns[0].Header
		last := tr.Columns[n-1].Header
		fmt.Fprintf(&r.buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
			first.Left(), tr.AxisY, last.Right(), tr.AxisY, r.theme.EdgeStroke)
	}

	for _, col := range tr.Columns {
		r.rect(col.Header, r.theme.NodeStroke, r.theme.NodeStroke, 1, 4)
		r.text(col.Header.Center, col.Period, 13, r.theme.Background, "middle")

		for _, e := range col.Events {
			// Rule connecting the event stack to its period header.
			fmt.Fprintf(&r.buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
				col.Header.Center.X, col.Header.Bottom(), col.Header.Center.X, e.Box.Top(), r.theme.EdgeStroke)
			r.rect(e.Box, r.theme.NodeFill, r.theme.NodeStroke, 1, 4)
			r.text(e.Box.Center, e.Text, 12, r.theme.TextColor, "middle")
		}
	}
}

// =============================================================================
// Fallback Panel
// =============================================================================

func (r *renderer) fallback(d diagram.Diagram, frame geometry.Size) {
	if d.Kind == diagram.KindUnknown {
		r.text(geometry.Point{X: frame.Width / 2, Y: frame.Height / 2}, "Unsupported diagram type", 16, r.theme.TextColor, "middle")
		return
	}

	// Stub kinds echo their source verbatim.
	y := 40.0
	for _, line := range strings.Split(d.RawText, "\n") {
		r.textAt(geometry.Point{X: 30, Y: y}, line, 13, r.theme.TextColor, "start")
		y += 20
	}
}

// =============================================================================
// Primitives
// =============================================================================

func (r *renderer) rect(box geometry.Rect, fill, stroke string, width, radius float64) {
	rx := ""
	if radius > 0 {
		rx = fmt.Sprintf(` rx="%.0f"`, radius)
	}
	fmt.Fprintf(&r.buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
		box.Left(), box.Top(), box.Size.Width, box.Size.Height, fill, stroke, width, rx)
}

func (r *renderer) polygon(points []geometry.Point, fill, stroke string, width float64) {
	var sb strings.Builder
	for i, p := range points {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", p.X, p.Y)
	}
	if stroke == "" {
		fmt.Fprintf(&r.buf, `<polygon points="%s" fill="%s"/>`+"\n", sb.String(), fill)
		return
	}
	fmt.Fprintf(&r.buf, `<polygon points="%s" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		sb.String(), fill, stroke, width)
}

// text draws vertically centered text at a point.
func (r *renderer) text(at geometry.Point, s string, size float64, color, anchor string) {
	if size <= 0 {
		size = 13
	}
	fmt.Fprintf(&r.buf,
		`<text x="%.1f" y="%.1f" font-size="%.0f" fill="%s" text-anchor="%s" dominant-baseline="central">%s</text>`+"\n",
		at.X, at.Y, size, color, anchor, escape(s))
}

// textAt draws baseline-anchored text (for left-aligned runs of lines).
func (r *renderer) textAt(at geometry.Point, s string, size float64, color, anchor string) {
	fmt.Fprintf(&r.buf, `<text x="%.1f" y="%.1f" font-size="%.0f" fill="%s" text-anchor="%s">%s</text>`+"\n",
		at.X, at.Y, size, color, anchor, escape(s))
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string { return escaper.Replace(s) }
