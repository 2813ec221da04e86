package parser

import (
	"reflect"
	"testing"

	"github.com/inklab/merview/pkg/diagram"
)

const flowchartFixture = `graph TD
A[Start] --> B{Is it?}
B -->|Yes| C[OK]
B -->|No| D[End]`

func TestParseFlowchartFixture(t *testing.T) {
	d := Parse(flowchartFixture)

	if d.Kind != diagram.KindFlowchart {
		t.Fatalf("Kind = %q, want %q", d.Kind, diagram.KindFlowchart)
	}
	if len(d.Nodes) != 4 {
		t.Fatalf("len(Nodes) = %d, want 4", len(d.Nodes))
	}
	if len(d.Edges) != 3 {
		t.Fatalf("len(Edges) = %d, want 3", len(d.Edges))
	}

	wantNodes := []struct {
		id    string
		label string
		shape diagram.Shape
	}{
		{"A", "Start", diagram.ShapeRectangle},
		{"B", "Is it?", diagram.ShapeDiamond},
		{"C", "OK", diagram.ShapeRectangle},
		{"D", "End", diagram.ShapeRectangle},
	}
	for i, want := range wantNodes {
		got := d.Nodes[i]
		if got.ID != want.id || got.Label != want.label || got.Shape != want.shape {
			t.Errorf("Nodes[%d] = {%q %q %q}, want {%q %q %q}",
				i, got.ID, got.Label, got.Shape, want.id, want.label, want.shape)
		}
	}

	wantEdges := []struct {
		from, to, label string
	}{
		{"A", "B", ""},
		{"B", "C", "Yes"},
		{"B", "D", "No"},
	}
	for i, want := range wantEdges {
		got := d.Edges[i]
		if got.From != want.from || got.To != want.to || got.Label != want.label {
			t.Errorf("Edges[%d] = {%s->%s %q}, want {%s->%s %q}",
				i, got.From, got.To, got.Label, want.from, want.to, want.label)
		}
		if got.Type != diagram.EdgeArrow {
			t.Errorf("Edges[%d].Type = %q, want %q", i, got.Type, diagram.EdgeArrow)
		}
		if got.ID == "" {
			t.Errorf("Edges[%d].ID is empty", i)
		}
	}
}

func TestParseFlowchartIdempotent(t *testing.T) {
	a := Parse(flowchartFixture)
	b := Parse(flowchartFixture)
	if !reflect.DeepEqual(a, b) {
		t.Error("Parse() twice on the same input should be structurally equal")
	}
}

func TestParseFlowchartEdgeTypes(t *testing.T) {
	tests := []struct {
		name string
		line string
		want diagram.EdgeType
	}{
		{"arrow", "A --> B", diagram.EdgeArrow},
		{"long arrow", "A ---> B", diagram.EdgeArrow},
		{"dotted", "A -.-> B", diagram.EdgeDotted},
		{"double", "A ==> B", diagram.EdgeDoubleArrow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Parse("graph TD\n" + tt.line)
			if len(d.Edges) != 1 {
				t.Fatalf("len(Edges) = %d, want 1", len(d.Edges))
			}
			if d.Edges[0].Type != tt.want {
				t.Errorf("Type = %q, want %q", d.Edges[0].Type, tt.want)
			}
		})
	}
}

func TestParseFlowchartInlineLabel(t *testing.T) {
	d := Parse("graph LR\nA -- label text --> B")
	if len(d.Edges) != 1 {
		t.Fatalf("len(Edges) = %d, want 1", len(d.Edges))
	}
	if d.Edges[0].Label != "label text" {
		t.Errorf("Label = %q, want %q", d.Edges[0].Label, "label text")
	}
}

func TestParseFlowchartShapes(t *testing.T) {
	d := Parse("graph TD\nA(Round) --> B{Choice}\nB --> C[Box]")

	wantShapes := map[string]diagram.Shape{
		"A": diagram.ShapeRoundedRect,
		"B": diagram.ShapeDiamond,
		"C": diagram.ShapeRectangle,
	}
	for id, want := range wantShapes {
		n := d.NodeByID(id)
		if n == nil {
			t.Fatalf("NodeByID(%q) = nil", id)
		}
		if n.Shape != want {
			t.Errorf("node %s shape = %q, want %q", id, n.Shape, want)
		}
	}
}

func TestParseFlowchartFirstLabelWins(t *testing.T) {
	d := Parse("graph TD\nA[First] --> B\nA[Second] --> C")
	n := d.NodeByID("A")
	if n == nil {
		t.Fatal("NodeByID(A) = nil")
	}
	if n.Label != "First" {
		t.Errorf("Label = %q, want %q (first occurrence wins)", n.Label, "First")
	}
}

func TestParseFlowchartBareIDDefaultsLabel(t *testing.T) {
	d := Parse("graph TD\nA --> B")
	for _, id := range []string{"A", "B"} {
		n := d.NodeByID(id)
		if n == nil {
			t.Fatalf("NodeByID(%q) = nil", id)
		}
		if n.Label != id {
			t.Errorf("node %s label = %q, want the ID", id, n.Label)
		}
	}
}

func TestParseFlowchartSkipsNoise(t *testing.T) {
	text := `graph TD
%% a comment
subgraph cluster
A --> B
end
classDef red fill:#f00
linkStyle 0 stroke:#f00
C`
	d := Parse(text)
	if len(d.Edges) != 1 {
		t.Errorf("len(Edges) = %d, want 1", len(d.Edges))
	}
	// The bare line "C" has no operator and contributes nothing.
	if len(d.Nodes) != 2 {
		t.Errorf("len(Nodes) = %d, want 2", len(d.Nodes))
	}
}

func TestParseFlowchartDuplicateEdgesGetDistinctIDs(t *testing.T) {
	d := Parse("graph TD\nA --> B\nA --> B")
	if len(d.Edges) != 2 {
		t.Fatalf("len(Edges) = %d, want 2", len(d.Edges))
	}
	if d.Edges[0].ID == d.Edges[1].ID {
		t.Error("duplicate edges must still get distinct IDs")
	}
}

func TestParseFlowchartQuotedLabel(t *testing.T) {
	d := Parse("graph TD\nA[\"Quoted label\"] --> B")
	n := d.NodeByID("A")
	if n == nil {
		t.Fatal("NodeByID(A) = nil")
	}
	if n.Label != "Quoted label" {
		t.Errorf("Label = %q, want %q", n.Label, "Quoted label")
	}
}

func TestParseFlowchartRawTextPreserved(t *testing.T) {
	d := Parse(flowchartFixture)
	if d.RawText != flowchartFixture {
		t.Error("RawText should preserve the input verbatim")
	}
}
