package parser

import (
	"regexp"
	"strings"

	"github.com/inklab/merview/pkg/diagram"
)

// inlineEdgeRe matches the inline-labelled edge form `A -- label --> B`.
// It takes precedence over the bare operators so the label text is never
// mistaken for part of a node token.
var inlineEdgeRe = regexp.MustCompile(`^(.+?)\s+--\s+([^-<>]+?)\s+-->\s+(.+)$`)

// edgeOp maps a flowchart operator to the edge type it produces. The table
// is ordered most-specific first so `-.->`and `--->` are never half-matched
// as `-->`.
type edgeOp struct {
	token string
	typ   diagram.EdgeType
}

var edgeOps = []edgeOp{
	{"-.->", diagram.EdgeDotted},
	{"==>", diagram.EdgeDoubleArrow},
	{"--->", diagram.EdgeArrow},
	{"-->", diagram.EdgeArrow},
}

// Accepted-but-ignored Mermaid constructs. Lines starting with these
// prefixes carry styling or grouping information outside the supported
// subset; skipping them is not an error.
var flowchartSkipPrefixes = []string{
	"graph",
	"flowchart",
	"classdef",
	"class ",
	"subgraph",
	"linkstyle",
}

// flowchartState accumulates nodes and edges over the line scan. Node
// registration is first-occurrence-wins; edges are append-only and never
// deduplicated.
type flowchartState struct {
	order []string
	nodes map[string]diagram.Node
	edges []diagram.Edge
	dups  map[string]int
}

// parseFlowchart scans a flowchart/graph source line by line. Lines without
// a recognized edge operator contribute nothing.
func parseFlowchart(text string) ([]diagram.Node, []diagram.Edge) {
	st := &flowchartState{
		nodes: make(map[string]diagram.Node),
		dups:  make(map[string]int),
	}

	for _, line := range lines(text) {
		if line == "" || isComment(line) || skipFlowchartLine(line) {
			continue
		}
		st.scanLine(line)
	}

	nodes := make([]diagram.Node, 0, len(st.order))
	for _, id := range st.order {
		nodes = append(nodes, st.nodes[id])
	}
	return nodes, st.edges
}

func skipFlowchartLine(line string) bool {
	lower := strings.ToLower(line)
	if lower == "end" {
		return true
	}
	for _, p := range flowchartSkipPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// scanLine looks for an edge on the line and registers both endpoints.
// The inline-labelled form is tried first, then the bare operators in
// table order.
func (st *flowchartState) scanLine(line string) {
	if m := inlineEdgeRe.FindStringSubmatch(line); m != nil {
		st.addEdgeLine(m[1], m[3], strings.TrimSpace(m[2]), diagram.EdgeArrow)
		return
	}

	for _, op := range edgeOps {
		if idx := strings.Index(line, op.token); idx >= 0 {
			st.addEdgeLine(line[:idx], line[idx+len(op.token):], "", op.typ)
			return
		}
	}
	// No operator: unrecognized syntax, skip.
}

// addEdgeLine parses the two halves around an operator and appends the
// edge. Only the right half may carry a |label| segment; a label passed in
// explicitly (inline form) wins over a piped one.
func (st *flowchartState) addEdgeLine(left, right, label string, typ diagram.EdgeType) {
	fromID, fromLabel, fromShape := extractNode(left)
	toID, toLabel, toShape, pipeLabel := extractNodeWithEdgeLabel(right)

	if fromID == "" || toID == "" {
		return
	}
	if label == "" {
		label = pipeLabel
	}

	st.addNode(fromID, fromLabel, fromShape)
	st.addNode(toID, toLabel, toShape)

	key := fromID + "\x00" + toID + "\x00" + label + "\x00" + string(typ)
	ordinal := st.dups[key]
	st.dups[key] = ordinal + 1

	st.edges = append(st.edges, diagram.Edge{
		ID:    diagram.EdgeID(fromID, toID, label, typ, ordinal),
		From:  fromID,
		To:    toID,
		Label: label,
		Type:  typ,
		Style: diagram.DefaultEdgeStyle(),
	})
}

// addNode registers a node the first time its ID appears. Later mentions
// never change the label or shape.
func (st *flowchartState) addNode(id, label string, shape diagram.Shape) {
	if _, ok := st.nodes[id]; ok {
		return
	}
	if label == "" {
		label = id
	}
	st.order = append(st.order, id)
	st.nodes[id] = diagram.Node{
		ID:    id,
		Label: label,
		Shape: shape,
		Style: diagram.DefaultNodeStyle(),
	}
}
