// Package geometry provides the 2-D primitives shared by layout and
// routing: points, sizes, rectangles, cubic Bézier evaluation and
// ray/polygon intersection.
package geometry

import "math"

// Point is a position in layout space. Y grows downward, matching SVG.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Length returns the Euclidean norm of p treated as a vector.
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// Normalize returns the unit vector in the direction of p, or the zero
// point if p has no length.
func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Perp returns p rotated 90 degrees counterclockwise.
func (p Point) Perp() Point { return Point{-p.Y, p.X} }

// Dist returns the Euclidean distance between p and q.
func Dist(p, q Point) float64 { return p.Sub(q).Length() }

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle described by its center and size.
type Rect struct {
	Center Point `json:"center"`
	Size   Size  `json:"size"`
}

// Left returns the minimum X coordinate.
func (r Rect) Left() float64 { return r.Center.X - r.Size.Width/2 }

// Right returns the maximum X coordinate.
func (r Rect) Right() float64 { return r.Center.X + r.Size.Width/2 }

// Top returns the minimum Y coordinate.
func (r Rect) Top() float64 { return r.Center.Y - r.Size.Height/2 }

// Bottom returns the maximum Y coordinate.
func (r Rect) Bottom() float64 { return r.Center.Y + r.Size.Height/2 }

// Contains reports whether p lies inside or on the boundary of r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// IsMostlyHorizontal reports whether the direction from a to b is dominated
// by its horizontal component by at least the given ratio.
func IsMostlyHorizontal(a, b Point, ratio float64) bool {
	return math.Abs(b.X-a.X) > ratio*math.Abs(b.Y-a.Y)
}

// IsMostlyVertical reports whether the direction from a to b is dominated
// by its vertical component by at least the given ratio.
func IsMostlyVertical(a, b Point, ratio float64) bool {
	return math.Abs(b.Y-a.Y) > ratio*math.Abs(b.X-a.X)
}

// CubicPoint evaluates a cubic Bézier with endpoints p0, p3 and control
// points p1, p2 at parameter t in [0, 1].
func CubicPoint(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return Point{
		X: b0*p0.X + b1*p1.X + b2*p2.X + b3*p3.X,
		Y: b0*p0.Y + b1*p1.Y + b2*p2.Y + b3*p3.Y,
	}
}

// SegmentIntersection returns the intersection point of segments a1-a2 and
// b1-b2, and whether they intersect.
func SegmentIntersection(a1, a2, b1, b2 Point) (Point, bool) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	denom := d1.X*d2.Y - d1.Y*d2.X
	if denom == 0 {
		return Point{}, false
	}
	diff := b1.Sub(a1)
	t := (diff.X*d2.Y - diff.Y*d2.X) / denom
	u := (diff.X*d1.Y - diff.Y*d1.X) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}
	return a1.Add(d1.Scale(t)), true
}

// RayPolygonIntersection casts a ray from origin toward target and returns
// the nearest intersection with the polygon's boundary. The polygon is
// closed implicitly (last vertex connects to the first). When the ray
// misses entirely, origin is returned with ok == false.
func RayPolygonIntersection(origin, target Point, polygon []Point) (Point, bool) {
	if len(polygon) < 2 {
		return origin, false
	}

	// Extend the ray well past the target so boundary hits register as
	// segment intersections.
	dir := target.Sub(origin).Normalize()
	far := origin.Add(dir.Scale(Dist(origin, target) + 1e6))

	best := origin
	bestDist := math.MaxFloat64
	found := false
	for i := range polygon {
		a := polygon[i]
		b := polygon[(i+1)%len(polygon)]
		if p, ok := SegmentIntersection(origin, far, a, b); ok {
			if d := Dist(origin, p); d < bestDist {
				best, bestDist, found = p, d, true
			}
		}
	}
	return best, found
}
