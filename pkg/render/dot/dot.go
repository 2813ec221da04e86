// Package dot exports graph-shaped diagrams to Graphviz DOT and renders
// the DOT through the embedded Graphviz engine.
//
// DOT export is an alternative to the built-in SVG renderer: it delegates
// positioning to Graphviz instead of the layout package, which can give
// better results for dense flowcharts at the cost of determinism across
// Graphviz versions. Only graph-shaped kinds (flowchart, state, class)
// have a DOT form.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/inklab/merview/pkg/diagram"
	"github.com/inklab/merview/pkg/errors"
)

// ToDOT converts a diagram to Graphviz DOT format. The resulting string
// can be rendered with [RenderSVG].
//
// Kinds without a graph structure return ErrUnsupportedKind.
func ToDOT(d diagram.Diagram) (string, error) {
	switch d.Kind {
	case diagram.KindFlowchart:
		return flowchartDOT(d), nil
	case diagram.KindState:
		return stateDOT(d.State), nil
	case diagram.KindClass:
		return classDOT(d.Class), nil
	default:
		return "", errors.New(errors.ErrCodeUnsupportedKind, "no DOT form for %s diagrams", d.Kind)
	}
}

func flowchartDOT(d diagram.Diagram) string {
	var buf bytes.Buffer
	writeHeader(&buf)

	for _, n := range d.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", n.Label)}
		if s := dotShape(n.Shape); s != "" {
			attrs = append(attrs, "shape="+s)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range d.Edges {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func stateDOT(data *diagram.StateData) string {
	var buf bytes.Buffer
	writeHeader(&buf)

	hasStart := false
	hasEnd := false
	for _, t := range data.Transitions {
		hasStart = hasStart || t.From == diagram.PseudoStateID
		hasEnd = hasEnd || t.To == diagram.PseudoStateID
	}
	if hasStart {
		buf.WriteString("  \"__start\" [shape=point, width=0.2];\n")
	}
	if hasEnd {
		buf.WriteString("  \"__end\" [shape=doublecircle, label=\"\", width=0.15];\n")
	}

	for _, s := range data.States {
		label := s.ID
		if s.Description != "" {
			label = s.Description
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", s.ID, label)
	}

	buf.WriteString("\n")
	for _, t := range data.Transitions {
		from, to := t.From, t.To
		if from == diagram.PseudoStateID {
			from = "__start"
		}
		if to == diagram.PseudoStateID {
			to = "__end"
		}
		if t.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", from, to, t.Label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", from, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func classDOT(data *diagram.ClassData) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, fontsize=12];\n")
	buf.WriteString("\n")

	for _, c := range data.Classes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", c.Name, classRecord(c))
	}

	buf.WriteString("\n")
	for _, r := range data.Relations {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", r.From, r.To, strings.Join(relationAttrs(r), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// classRecord builds a record label with name, attribute and method
// compartments.
func classRecord(c diagram.Class) string {
	parts := []string{c.Name}

	if len(c.Attributes) > 0 {
		lines := make([]string, 0, len(c.Attributes))
		for _, a := range c.Attributes {
			lines = append(lines, memberDOT(a.Visibility, a.Name, a.Type))
		}
		parts = append(parts, strings.Join(lines, "\\l")+"\\l")
	}

	if len(c.Methods) > 0 {
		lines := make([]string, 0, len(c.Methods))
		for _, m := range c.Methods {
			lines = append(lines, memberDOT(m.Visibility, m.Name+"()", m.ReturnType))
		}
		parts = append(parts, strings.Join(lines, "\\l")+"\\l")
	}

	return "{" + strings.Join(parts, "|") + "}"
}

func memberDOT(v diagram.Visibility, name, typ string) string {
	line := visibilitySign(v) + name
	if typ != "" {
		line += " : " + typ
	}
	return line
}

func visibilitySign(v diagram.Visibility) string {
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

func relationAttrs(r diagram.Relation) []string {
	var attrs []string
	switch r.Type {
	case diagram.RelationInheritance:
		attrs = append(attrs, "arrowhead=empty")
	case diagram.RelationRealization:
		attrs = append(attrs, "arrowhead=empty", "style=dashed")
	case diagram.RelationComposition:
		attrs = append(attrs, "arrowhead=diamond")
	case diagram.RelationAggregation:
		attrs = append(attrs, "arrowhead=odiamond")
	case diagram.RelationDependency:
		attrs = append(attrs, "style=dashed")
	}
	if r.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", r.Label))
	}
	return attrs
}

func writeHeader(buf *bytes.Buffer) {
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
}

func dotShape(s diagram.Shape) string {
	switch s {
	case diagram.ShapeDiamond:
		return "diamond"
	case diagram.ShapeCircle:
		return "circle"
	case diagram.ShapeHexagon:
		return "hexagon"
	case diagram.ShapeParallelogram:
		return "parallelogram"
	case diagram.ShapeTrapezoid:
		return "trapezium"
	case diagram.ShapeDatabase:
		return "cylinder"
	default:
		return ""
	}
}

func edgeAttrs(e diagram.Edge) []string {
	var attrs []string
	switch e.Type {
	case diagram.EdgeDotted:
		attrs = append(attrs, "style=dotted")
	case diagram.EdgeDashed:
		attrs = append(attrs, "style=dashed")
	case diagram.EdgeDoubleArrow:
		attrs = append(attrs, "penwidth=2")
	case diagram.EdgeSolid:
		attrs = append(attrs, "arrowhead=none")
	}
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz <svg> tag so the viewBox starts
// at the origin and width/height match it, which makes the output embed
// cleanly alongside the built-in renderer's documents.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
