// Package diagram defines the in-memory model for parsed Mermaid-subset
// diagrams.
//
// A [Diagram] is the root value produced by parsing. It always retains the
// raw source text, carries the detected [Kind], and holds exactly one
// kind-specific payload:
//
//   - Flowchart diagrams populate Nodes and Edges directly.
//   - Sequence, class, state, pie and timeline diagrams populate the
//     corresponding typed payload pointer (Sequence, Class, State, Pie,
//     Timeline).
//   - Stub kinds (gantt, gitgraph, er, journey) and Unknown carry only the
//     raw text.
//
// Check Kind to determine which payload is populated. The model is a value
// type: once the parser returns it, nothing mutates it. Positions are not
// part of the model - layout produces a separate result keyed by entity ID.
package diagram

// =============================================================================
// Kind - Diagram Type Discriminator
// =============================================================================

// Kind identifies which diagram family a source text belongs to.
type Kind string

// Supported diagram kinds. Kinds with a full parser and layout engine are
// Flowchart through Timeline; the remaining kinds are recognized but only
// echo their raw text.
const (
	KindFlowchart   Kind = "flowchart"
	KindSequence    Kind = "sequence"
	KindClass       Kind = "class"
	KindState       Kind = "state"
	KindPie         Kind = "pie"
	KindTimeline    Kind = "timeline"
	KindGantt       Kind = "gantt"
	KindGitGraph    Kind = "gitgraph"
	KindER          Kind = "er"
	KindUserJourney Kind = "journey"
	KindUnknown     Kind = "unknown"
)

// Supported reports whether the kind has a real parser and layout engine,
// as opposed to the raw-text stub treatment.
func (k Kind) Supported() bool {
	switch k {
	case KindFlowchart, KindSequence, KindClass, KindState, KindPie, KindTimeline:
		return true
	}
	return false
}

// =============================================================================
// Diagram - Root Model
// =============================================================================

// Diagram is the root model for a single parsed source text.
//
// Exactly one payload is populated, selected by Kind. RawText is always the
// original input, preserved verbatim for fallback display of stub and
// unknown kinds.
type Diagram struct {
	Kind    Kind   `json:"kind"`
	RawText string `json:"raw_text"`

	// Flowchart payload.
	Nodes []Node `json:"nodes,omitempty"`
	Edges []Edge `json:"edges,omitempty"`

	// Non-flowchart payloads (nil unless Kind matches).
	Sequence *SequenceData `json:"sequence,omitempty"`
	Class    *ClassData    `json:"class,omitempty"`
	State    *StateData    `json:"state,omitempty"`
	Pie      *PieData      `json:"pie,omitempty"`
	Timeline *TimelineData `json:"timeline,omitempty"`
}

// IsStub reports whether the diagram kind is recognized but parsed only as
// raw text (gantt, gitgraph, er, journey).
func (d *Diagram) IsStub() bool {
	switch d.Kind {
	case KindGantt, KindGitGraph, KindER, KindUserJourney:
		return true
	}
	return false
}

// NodeByID returns the node with the given ID, or nil if absent.
func (d *Diagram) NodeByID(id string) *Node {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}

// =============================================================================
// Node
// =============================================================================

// Shape identifies the outline drawn around a flowchart node.
type Shape string

// Built-in node shapes. Any other value is treated as a custom shape and
// rendered as a rectangle by collaborators that do not recognize it.
const (
	ShapeRectangle     Shape = "rectangle"
	ShapeRoundedRect   Shape = "rounded"
	ShapeCircle        Shape = "circle"
	ShapeDiamond       Shape = "diamond"
	ShapeHexagon       Shape = "hexagon"
	ShapeParallelogram Shape = "parallelogram"
	ShapeTrapezoid     Shape = "trapezoid"
	ShapeDatabase      Shape = "database"
)

// Node is a drawable vertex in a flowchart. ID is the primary key used by
// edge lookups and layout results; Label defaults to ID when the source
// gives no display text.
type Node struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Shape Shape     `json:"shape"`
	Style NodeStyle `json:"style"`
}

// =============================================================================
// Edge
// =============================================================================

// EdgeType identifies the stroke and arrow treatment of a flowchart edge.
type EdgeType string

// Built-in edge types, mapped from the source operators:
// --> is an arrow, -.-> is dotted, ==> is a thick solid stroke.
const (
	EdgeSolid       EdgeType = "solid"
	EdgeDashed      EdgeType = "dashed"
	EdgeDotted      EdgeType = "dotted"
	EdgeArrow       EdgeType = "arrow"
	EdgeDoubleArrow EdgeType = "double_arrow"
)

// Edge is a directed connection between two nodes. From and To always
// reference node IDs present in the same diagram; the parser creates
// default nodes for IDs first seen in an edge. Duplicate edges are legal
// and preserved in first-seen order, which is also the render order.
type Edge struct {
	ID    string    `json:"id"`
	From  string    `json:"from"`
	To    string    `json:"to"`
	Label string    `json:"label,omitempty"`
	Type  EdgeType  `json:"type"`
	Style EdgeStyle `json:"style"`
}

// =============================================================================
// Styles
// =============================================================================

// NodeStyle holds the visual attributes of a node. Zero values mean
// "use the theme default"; DefaultNodeStyle returns the built-in defaults
// the parser assigns.
type NodeStyle struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	TextColor   string  `json:"text_color,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	FontSize    float64 `json:"font_size,omitempty"`
	Bold        bool    `json:"bold,omitempty"`
}

// EdgeStyle holds the visual attributes of an edge stroke and label.
type EdgeStyle struct {
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	FontSize    float64 `json:"font_size,omitempty"`
}

// DefaultNodeStyle returns the style assigned to nodes the source does not
// style explicitly.
func DefaultNodeStyle() NodeStyle {
	return NodeStyle{
		Fill:        "#ECECFF",
		Stroke:      "#9370DB",
		TextColor:   "#333333",
		StrokeWidth: 1.5,
		FontSize:    14,
	}
}

// DefaultEdgeStyle returns the style assigned to unstyled edges.
func DefaultEdgeStyle() EdgeStyle {
	return EdgeStyle{
		Stroke:      "#333333",
		StrokeWidth: 1.5,
		FontSize:    12,
	}
}
