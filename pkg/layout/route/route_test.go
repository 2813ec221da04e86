package route

import (
	"math"
	"testing"

	"github.com/inklab/merview/pkg/diagram"
	"github.com/inklab/merview/pkg/geometry"
	"github.com/inklab/merview/pkg/layout"
	"github.com/inklab/merview/pkg/parser"
)

func TestEdgesPreserveOrder(t *testing.T) {
	d := parser.Parse("graph TD\nA --> B\nB --> C")
	res := layout.Compute(d, layout.Options{})

	routes := Edges(d, &res)
	if len(routes) != 2 {
		t.Fatalf("len(routes) = %d, want 2", len(routes))
	}
	for i, r := range routes {
		if r.EdgeID != d.Edges[i].ID {
			t.Errorf("routes[%d].EdgeID = %q, want edge order preserved", i, r.EdgeID)
		}
	}
}

func TestEdgesSkipUnpositioned(t *testing.T) {
	d := parser.Parse("graph TD\nA --> B")
	res := layout.Result{Kind: diagram.KindFlowchart}
	if got := Edges(d, &res); len(got) != 0 {
		t.Errorf("len(routes) = %d, want 0 when no boxes exist", len(got))
	}
}

func TestStraightChainRoute(t *testing.T) {
	// A single vertical chain with unshared endpoints routes straight.
	d := parser.Parse("graph TD\nA --> B")
	res := layout.Compute(d, layout.Options{})

	routes := Edges(d, &res)
	if len(routes) != 1 {
		t.Fatalf("len(routes) = %d, want 1", len(routes))
	}
	r := routes[0]
	if r.Curved {
		t.Error("aligned unlabelled edge should route straight")
	}

	a, _ := res.Box("A")
	b, _ := res.Box("B")
	if r.From.Y != a.Bottom() {
		t.Errorf("route starts at %v, want the source bottom face %v", r.From.Y, a.Bottom())
	}
	if r.To.Y != b.Top() {
		t.Errorf("route ends at %v, want the target top face %v", r.To.Y, b.Top())
	}
}

func TestBranchLabelsForceCurves(t *testing.T) {
	d := parser.Parse("graph TD\nB{Is it?} -->|Yes| C\nB -->|No| E")
	res := layout.Compute(d, layout.Options{})

	routes := Edges(d, &res)
	if len(routes) != 2 {
		t.Fatalf("len(routes) = %d, want 2", len(routes))
	}
	for i, r := range routes {
		if !r.Curved {
			t.Errorf("routes[%d] straight, want curved for a yes/no branch", i)
		}
	}

	// Opposite control-point sides keep the two branches apart.
	if controlSide(routes[0])*controlSide(routes[1]) >= 0 {
		t.Error("yes and no branches should bow to opposite sides")
	}
}

// controlSide reports which side of the chord the first control point sits
// on, as the sign of the cross product with the chord direction.
func controlSide(r Route) float64 {
	chord := r.To.Sub(r.From)
	third := r.From.Add(chord.Scale(1.0 / 3))
	off := r.C1.Sub(third)
	return chord.X*off.Y - chord.Y*off.X
}

func TestDiamondSourceCurves(t *testing.T) {
	d := parser.Parse("graph TD\nB{Check} --> C")
	res := layout.Compute(d, layout.Options{})

	routes := Edges(d, &res)
	if len(routes) != 1 {
		t.Fatalf("len(routes) = %d, want 1", len(routes))
	}
	if !routes[0].Curved {
		t.Error("edge leaving a diamond should route curved")
	}
}

func TestSharedEndpointForcesCurve(t *testing.T) {
	d := parser.Parse("graph TD\nA --> C\nB --> C")
	res := layout.Compute(d, layout.Options{})

	for i, r := range Edges(d, &res) {
		if !r.Curved {
			t.Errorf("routes[%d] straight, want curved when edges share a target", i)
		}
	}
}

func TestArrowheadAtTargetEnd(t *testing.T) {
	d := parser.Parse("graph TD\nA --> B")
	res := layout.Compute(d, layout.Options{})

	r := Edges(d, &res)[0]
	if r.Arrow[0] != r.To {
		t.Errorf("arrow tip = %v, want the route end %v", r.Arrow[0], r.To)
	}
	if r.Arrow[1] == r.Arrow[2] {
		t.Error("arrowhead base corners should be distinct")
	}
}

func TestRectBoundaryFaces(t *testing.T) {
	box := geometry.Rect{Center: geometry.Point{X: 100, Y: 100}, Size: geometry.Size{Width: 60, Height: 40}}

	tests := []struct {
		name   string
		target geometry.Point
		want   geometry.Point
	}{
		{"right", geometry.Point{X: 200, Y: 100}, geometry.Point{X: 130, Y: 100}},
		{"left", geometry.Point{X: 0, Y: 100}, geometry.Point{X: 70, Y: 100}},
		{"below", geometry.Point{X: 100, Y: 200}, geometry.Point{X: 100, Y: 120}},
		{"above", geometry.Point{X: 100, Y: 0}, geometry.Point{X: 100, Y: 80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoundaryPoint(box, diagram.ShapeRectangle, tt.target)
			if got != tt.want {
				t.Errorf("BoundaryPoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectBoundaryDegenerate(t *testing.T) {
	box := geometry.Rect{Center: geometry.Point{X: 50, Y: 50}, Size: geometry.Size{Width: 20, Height: 20}}
	if got := BoundaryPoint(box, diagram.ShapeRectangle, box.Center); got != box.Center {
		t.Errorf("BoundaryPoint(center) = %v, want the center itself", got)
	}
}

func TestDiamondBoundaryOnOutline(t *testing.T) {
	box := geometry.Rect{Center: geometry.Point{X: 100, Y: 100}, Size: geometry.Size{Width: 100, Height: 70}}
	got := BoundaryPoint(box, diagram.ShapeDiamond, geometry.Point{X: 100, Y: 300})

	if math.Abs(got.X-100) > 1e-9 || math.Abs(got.Y-135) > 1e-9 {
		t.Errorf("BoundaryPoint() = %v, want the bottom vertex {100 135}", got)
	}
}

func TestCircleBoundaryRadius(t *testing.T) {
	box := geometry.Rect{Center: geometry.Point{X: 100, Y: 100}, Size: geometry.Size{Width: 80, Height: 80}}
	got := BoundaryPoint(box, diagram.ShapeCircle, geometry.Point{X: 300, Y: 100})

	if got != (geometry.Point{X: 140, Y: 100}) {
		t.Errorf("BoundaryPoint() = %v, want {140 100}", got)
	}
}

func TestCurvedLabelAnchorOnCurve(t *testing.T) {
	d := parser.Parse("graph TD\nB{Q} -->|Yes| C")
	res := layout.Compute(d, layout.Options{})

	r := Edges(d, &res)[0]
	want := geometry.CubicPoint(r.From, r.C1, r.C2, r.To, 0.5)
	if r.LabelAt != want {
		t.Errorf("LabelAt = %v, want the curve midpoint %v", r.LabelAt, want)
	}
}
