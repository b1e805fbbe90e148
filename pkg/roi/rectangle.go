package roi

import (
	"iter"

	"honnef.co/go/curve"
)

// Rectangle is an axis-aligned rectangular area ROI. Bounds, area and
// centroid are answered analytically; the vertex form is only produced for
// conversion to geometry.
type Rectangle struct {
	x, y, w, h float64
	plane      Plane
}

// NewRectangle creates a rectangle ROI from its top-left corner and size.
func NewRectangle(x, y, w, h float64, plane Plane) Rectangle {
	return Rectangle{x: x, y: y, w: w, h: h, plane: plane}
}

func (r Rectangle) Plane() Plane { return r.plane }

func (r Rectangle) Bounds() (x, y, w, h float64) { return r.x, r.y, r.w, r.h }

func (r Rectangle) Centroid() Point {
	return Point{X: r.x + r.w/2, Y: r.y + r.h/2}
}

func (r Rectangle) Area() float64 { return r.w * r.h }

func (r Rectangle) IsEmpty() bool { return r.w == 0 || r.h == 0 }

func (r Rectangle) Kind() string { return "rectangle" }

func (r Rectangle) Contains(x, y float64) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// PolygonPoints returns the four corners in clockwise order starting at the
// top-left, matching image coordinates where y increases downwards.
func (r Rectangle) PolygonPoints() []Point {
	return []Point{
		{X: r.x, Y: r.y},
		{X: r.x + r.w, Y: r.y},
		{X: r.x + r.w, Y: r.y + r.h},
		{X: r.x, Y: r.y + r.h},
	}
}

func (r Rectangle) PathElements(tolerance float64) iter.Seq[curve.PathElement] {
	return func(yield func(curve.PathElement) bool) {
		ringElements(r.PolygonPoints(), yield)
	}
}

func (r Rectangle) sealed() {}
