// Package route computes the drawable geometry of flowchart edges: the
// boundary points where a connector touches each node's outline, the
// straight-or-curved routing decision with cubic control points, and the
// arrowhead triangle.
//
// Routing runs after layout and consumes its box positions; it never
// changes them. Like the rest of the core it is pure and never fails -
// edges whose endpoints were not positioned are skipped.
package route

import (
	"math"
	"strings"

	"github.com/inklab/merview/pkg/diagram"
	"github.com/inklab/merview/pkg/geometry"
	"github.com/inklab/merview/pkg/layout"
)

// Routing tuning constants.
const (
	// straightRatio is the axis-dominance ratio above which two nodes
	// count as aligned (mostly vertical or mostly horizontal).
	straightRatio = 1.5

	curveOffsetFactor  = 0.15 // control point offset as a share of distance
	branchOffsetFactor = 0.25 // larger offset for yes/no branches
	arrowLength        = 12.0
	arrowWidth         = 9.0
)

// Route is the drawable geometry for one edge.
type Route struct {
	EdgeID string         `json:"edge_id"`
	From   geometry.Point `json:"from"`
	To     geometry.Point `json:"to"`
	Curved bool           `json:"curved"`
	C1     geometry.Point `json:"c1,omitempty"`
	C2     geometry.Point `json:"c2,omitempty"`

	// Arrow is the filled arrowhead triangle at the target end, oriented
	// along the final tangent.
	Arrow [3]geometry.Point `json:"arrow"`

	// LabelAt is the suggested anchor for the edge label (midpoint of the
	// rendered path).
	LabelAt geometry.Point `json:"label_at"`
}

// Edges routes every edge of a flowchart against the layout result.
// The slice preserves edge order, so rendering stays deterministic.
func Edges(d diagram.Diagram, res *layout.Result) []Route {
	routes := make([]Route, 0, len(d.Edges))
	for _, e := range d.Edges {
		fromBox, okF := res.Box(e.From)
		toBox, okT := res.Box(e.To)
		if !okF || !okT {
			continue
		}

		fromNode := d.NodeByID(e.From)
		toNode := d.NodeByID(e.To)
		if fromNode == nil || toNode == nil {
			continue
		}

		routes = append(routes, routeEdge(e, *fromNode, *toNode, fromBox, toBox, d.Edges))
	}
	return routes
}

func routeEdge(e diagram.Edge, fromNode, toNode diagram.Node, fromBox, toBox geometry.Rect, all []diagram.Edge) Route {
	start := BoundaryPoint(fromBox, fromNode.Shape, toBox.Center)
	end := BoundaryPoint(toBox, toNode.Shape, fromBox.Center)

	r := Route{EdgeID: e.ID, From: start, To: end}

	if straightAllowed(e, fromNode, fromBox.Center, toBox.Center, all) {
		dir := end.Sub(start).Normalize()
		r.Arrow = arrowhead(end, dir)
		r.LabelAt = start.Add(end.Sub(start).Scale(0.5))
		return r
	}

	r.Curved = true
	r.C1, r.C2 = controlPoints(start, end, e.Label)
	tangent := end.Sub(r.C2).Normalize()
	r.Arrow = arrowhead(end, tangent)
	r.LabelAt = geometry.CubicPoint(start, r.C1, r.C2, end, 0.5)
	return r
}

// straightAllowed applies the routing-mode decision: a straight line needs
// near-axis alignment, no sibling edge sharing an endpoint (overlap risk),
// a label that is not a yes/no branch, and a non-diamond source.
func straightAllowed(e diagram.Edge, fromNode diagram.Node, a, b geometry.Point, all []diagram.Edge) bool {
	if !geometry.IsMostlyVertical(a, b, straightRatio) && !geometry.IsMostlyHorizontal(a, b, straightRatio) {
		return false
	}
	if isBranchLabel(e.Label) {
		return false
	}
	if fromNode.Shape == diagram.ShapeDiamond {
		return false
	}
	for _, other := range all {
		if other.ID == e.ID {
			continue
		}
		if other.From == e.From || other.To == e.To {
			return false
		}
	}
	return true
}

func isBranchLabel(label string) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	return l == "yes" || l == "no"
}

// controlPoints places both cubic control points perpendicular to the
// straight chord. Yes/no branches get a larger offset with opposite signs
// so the two branches separate visually; other curves bow toward the side
// the target lies on.
func controlPoints(start, end geometry.Point, label string) (geometry.Point, geometry.Point) {
	chord := end.Sub(start)
	dist := chord.Length()
	dir := chord.Normalize()
	perp := dir.Perp()

	factor := curveOffsetFactor
	side := 1.0
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "yes":
		factor = branchOffsetFactor
	case "no":
		factor = branchOffsetFactor
		side = -1
	default:
		if end.X < start.X || (end.X == start.X && end.Y < start.Y) {
			side = -1
		}
	}
	offset := perp.Scale(dist * factor * side)

	c1 := start.Add(dir.Scale(dist / 3)).Add(offset)
	c2 := start.Add(dir.Scale(2 * dist / 3)).Add(offset)
	return c1, c2
}

// arrowhead builds the filled triangle at tip, pointing along dir.
func arrowhead(tip geometry.Point, dir geometry.Point) [3]geometry.Point {
	if dir.Length() == 0 {
		dir = geometry.Point{X: 0, Y: 1}
	}
	base := tip.Sub(dir.Scale(arrowLength))
	half := dir.Perp().Scale(arrowWidth / 2)
	return [3]geometry.Point{tip, base.Add(half), base.Sub(half)}
}

// BoundaryPoint returns the point on a node's outline where a connector
// heading toward target should attach.
//
// Rectangles pick the left/right or top/bottom face by comparing the
// direction slope against the box aspect; diamonds and hexagons intersect
// the ray with their polygon; circles and custom shapes use a radius
// derived from the box size (which already scales with the label).
func BoundaryPoint(box geometry.Rect, shape diagram.Shape, target geometry.Point) geometry.Point {
	switch shape {
	case diagram.ShapeDiamond:
		return polygonBoundary(box, target, diamondVertices(box))
	case diagram.ShapeHexagon:
		return polygonBoundary(box, target, hexagonVertices(box))
	case diagram.ShapeCircle:
		return circleBoundary(box, target)
	case diagram.ShapeRectangle, diagram.ShapeRoundedRect,
		diagram.ShapeParallelogram, diagram.ShapeTrapezoid, diagram.ShapeDatabase:
		return rectBoundary(box, target)
	default:
		return circleBoundary(box, target)
	}
}

// rectBoundary intersects the center-to-target ray with the rectangle
// outline using slope comparison.
func rectBoundary(box geometry.Rect, target geometry.Point) geometry.Point {
	c := box.Center
	dx := target.X - c.X
	dy := target.Y - c.Y
	if dx == 0 && dy == 0 {
		return c
	}

	halfW := box.Size.Width / 2
	halfH := box.Size.Height / 2

	// Compare the direction against the box aspect to decide which face
	// the ray exits through.
	if math.Abs(dx)*halfH > math.Abs(dy)*halfW {
		x := halfW
		if dx < 0 {
			x = -halfW
		}
		return geometry.Point{X: c.X + x, Y: c.Y + dy*x/dx}
	}
	y := halfH
	if dy < 0 {
		y = -halfH
	}
	return geometry.Point{X: c.X + dx*y/dy, Y: c.Y + y}
}

func circleBoundary(box geometry.Rect, target geometry.Point) geometry.Point {
	c := box.Center
	r := math.Max(box.Size.Width, box.Size.Height) / 2
	dir := target.Sub(c).Normalize()
	if dir.Length() == 0 {
		return c
	}
	return c.Add(dir.Scale(r))
}

func polygonBoundary(box geometry.Rect, target geometry.Point, polygon []geometry.Point) geometry.Point {
	if p, ok := geometry.RayPolygonIntersection(box.Center, target, polygon); ok {
		return p
	}
	return rectBoundary(box, target)
}

// diamondVertices returns the four corners of the diamond inscribed in the
// box: top, right, bottom, left.
func diamondVertices(box geometry.Rect) []geometry.Point {
	c := box.Center
	halfW := box.Size.Width / 2
	halfH := box.Size.Height / 2
	return []geometry.Point{
		{X: c.X, Y: c.Y - halfH},
		{X: c.X + halfW, Y: c.Y},
		{X: c.X, Y: c.Y + halfH},
		{X: c.X - halfW, Y: c.Y},
	}
}

// hexagonVertices returns six vertices with flat top and bottom edges; the
// pointed sides take a quarter of the width each.
func hexagonVertices(box geometry.Rect) []geometry.Point {
	c := box.Center
	halfW := box.Size.Width / 2
	halfH := box.Size.Height / 2
	inset := box.Size.Width / 4
	return []geometry.Point{
		{X: c.X - halfW + inset, Y: c.Y - halfH},
		{X: c.X + halfW - inset, Y: c.Y - halfH},
		{X: c.X + halfW, Y: c.Y},
		{X: c.X + halfW - inset, Y: c.Y + halfH},
		{X: c.X - halfW + inset, Y: c.Y + halfH},
		{X: c.X - halfW, Y: c.Y},
	}
}
