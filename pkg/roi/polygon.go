package roi

import (
	"iter"
	"math"

	"honnef.co/go/curve"
)

// Polygon is a closed area ROI described by a free vertex list. The boundary
// runs through the vertices in order, with the last vertex implicitly
// connected back to the first. The vertex list is not required to be simple;
// the geometry engine validates and repairs self-intersections on conversion.
type Polygon struct {
	points []Point
	plane  Plane
}

// NewPolygon creates a polygon ROI from a vertex list. The slice is copied.
func NewPolygon(points []Point, plane Plane) Polygon {
	return Polygon{points: copyPoints(points), plane: plane}
}

func (p Polygon) Plane() Plane { return p.plane }

func (p Polygon) Bounds() (x, y, w, h float64) { return boundsOf(p.points) }

func (p Polygon) Centroid() Point {
	c, _ := ringCentroid(p.points)
	return c
}

// Area is the absolute shoelace area of the vertex ring.
func (p Polygon) Area() float64 {
	return math.Abs(signedRingArea(p.points))
}

func (p Polygon) IsEmpty() bool { return len(p.points) < 3 }

func (p Polygon) Kind() string { return "polygon" }

func (p Polygon) Contains(x, y float64) bool {
	return ringContains(p.points, x, y)
}

func (p Polygon) PolygonPoints() []Point { return copyPoints(p.points) }

func (p Polygon) PathElements(tolerance float64) iter.Seq[curve.PathElement] {
	return func(yield func(curve.PathElement) bool) {
		ringElements(p.points, yield)
	}
}

func (p Polygon) sealed() {}
