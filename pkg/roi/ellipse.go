package roi

import (
	"iter"
	"math"

	"honnef.co/go/curve"

	"github.com/kevinlc123/qupath/internal/flatten"
)

// bezierCircleKappa is the control point distance factor that makes four
// cubic Béziers approximate a circle quadrant.
const bezierCircleKappa = 0.5522847498307936

// Ellipse is an axis-aligned elliptical area ROI, parameterized by its
// bounding box like a rectangle. Bounds, area and centroid are analytic;
// only conversion to geometry flattens the boundary.
type Ellipse struct {
	x, y, w, h float64
	plane      Plane
}

// NewEllipse creates an ellipse ROI inscribed in the given bounding box.
func NewEllipse(x, y, w, h float64, plane Plane) Ellipse {
	return Ellipse{x: x, y: y, w: w, h: h, plane: plane}
}

func (e Ellipse) Plane() Plane { return e.plane }

func (e Ellipse) Bounds() (x, y, w, h float64) { return e.x, e.y, e.w, e.h }

func (e Ellipse) Centroid() Point {
	return Point{X: e.x + e.w/2, Y: e.y + e.h/2}
}

// Area is the analytic ellipse area, π·a·b for semi-axes a and b.
func (e Ellipse) Area() float64 {
	return math.Pi * (e.w / 2) * (e.h / 2)
}

func (e Ellipse) IsEmpty() bool { return e.w == 0 || e.h == 0 }

func (e Ellipse) Kind() string { return "ellipse" }

func (e Ellipse) Contains(x, y float64) bool {
	if e.IsEmpty() {
		return false
	}
	dx := (x - (e.x + e.w/2)) / (e.w / 2)
	dy := (y - (e.y + e.h/2)) / (e.h / 2)
	return dx*dx+dy*dy <= 1
}

// PolygonPoints returns the boundary flattened at DefaultFlatness.
func (e Ellipse) PolygonPoints() []Point {
	rings := flatten.Rings(e.PathElements(DefaultFlatness), DefaultFlatness)
	if len(rings) == 0 {
		return nil
	}
	out := make([]Point, len(rings[0]))
	for i, p := range rings[0] {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return out
}

// PathElements describes the ellipse outline as four cubic Bézier quadrants,
// starting at the rightmost point and winding through the bottom (positive y)
// first, matching image coordinates.
func (e Ellipse) PathElements(tolerance float64) iter.Seq[curve.PathElement] {
	cx, cy := e.x+e.w/2, e.y+e.h/2
	rx, ry := e.w/2, e.h/2
	kx, ky := rx*bezierCircleKappa, ry*bezierCircleKappa

	pt := func(x, y float64) curve.Point { return curve.Point{X: x, Y: y} }
	els := []curve.PathElement{
		{Kind: curve.MoveToKind, P0: pt(cx+rx, cy)},
		{Kind: curve.CubicToKind, P0: pt(cx+rx, cy+ky), P1: pt(cx+kx, cy+ry), P2: pt(cx, cy+ry)},
		{Kind: curve.CubicToKind, P0: pt(cx-kx, cy+ry), P1: pt(cx-rx, cy+ky), P2: pt(cx-rx, cy)},
		{Kind: curve.CubicToKind, P0: pt(cx-rx, cy-ky), P1: pt(cx-kx, cy-ry), P2: pt(cx, cy-ry)},
		{Kind: curve.CubicToKind, P0: pt(cx+kx, cy-ry), P1: pt(cx+rx, cy-ky), P2: pt(cx+rx, cy)},
		{Kind: curve.ClosePathKind},
	}
	return func(yield func(curve.PathElement) bool) {
		for _, el := range els {
			if !yield(el) {
				return
			}
		}
	}
}

func (e Ellipse) sealed() {}
