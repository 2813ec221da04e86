// Package parser translates Mermaid-subset source text into the typed
// diagram model.
//
// Parsing is a best-effort, line-oriented scan: every parser classifies
// lines by prefix and operator, builds its payload from the lines it
// understands, and silently skips anything it does not. Parse never returns
// an error - an unrecognized first line simply yields a diagram of
// KindUnknown carrying the raw text, and malformed lines within a
// recognized diagram contribute nothing.
//
// Parse is a pure function with no shared state; concurrent calls on
// distinct inputs are safe.
package parser

import (
	"strings"

	"github.com/inklab/merview/pkg/diagram"
)

// Parse detects the diagram kind of text and runs the matching specialized
// parser. The returned diagram always retains the raw input, whatever the
// outcome. Calling Parse twice on the same input yields structurally equal
// results.
func Parse(text string) diagram.Diagram {
	d := diagram.Diagram{
		Kind:    diagram.Detect(text),
		RawText: text,
	}

	switch d.Kind {
	case diagram.KindFlowchart:
		d.Nodes, d.Edges = parseFlowchart(text)
	case diagram.KindSequence:
		d.Sequence = parseSequence(text)
	case diagram.KindClass:
		d.Class = parseClass(text)
	case diagram.KindState:
		d.State = parseState(text)
	case diagram.KindPie:
		d.Pie = parsePie(text)
	case diagram.KindTimeline:
		d.Timeline = parseTimeline(text)
	}
	// Stub kinds and Unknown keep only the raw text.

	return d
}

// lines splits a source text into trimmed lines, preserving positions.
// Blank lines come back as empty strings so callers can keep stable line
// indices (the sequence parser uses them for loop bounds).
func lines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = strings.TrimSpace(l)
	}
	return out
}

// isComment reports whether the line is a Mermaid comment (%%).
func isComment(line string) bool {
	return strings.HasPrefix(line, "%%")
}
