// Package roi provides the immutable shape model for region-of-interest
// annotations: plane-tagged point sets, polylines and closed areas, together
// with a deterministic total ordering and a GeoJSON round-trip encoding.
//
// Every ROI value is immutable after construction. All derived quantities
// (bounds, area, length, centroid) are pure functions of the geometry and
// plane, so values may be shared freely across goroutines.
package roi

import (
	"iter"

	"honnef.co/go/curve"
)

// DefaultFlatness is the default tolerance used when a curved shape boundary
// is approximated by straight segments: the maximum allowed deviation of the
// polyline from the true curve, in pixel units.
const DefaultFlatness = 0.5

// Point is a 2D coordinate in image pixel space.
type Point struct {
	X float64
	Y float64
}

// ROI is a region of interest tagged to one image plane. It is a closed set
// of variants: Rectangle, Ellipse, Polygon, Composite, LineString and
// PointSet. External packages cannot add implementations.
type ROI interface {
	// Plane returns the image plane this ROI belongs to.
	Plane() Plane

	// Bounds returns the axis-aligned bounding box.
	Bounds() (x, y, w, h float64)

	// Centroid returns the center of mass of the ROI.
	Centroid() Point

	// IsEmpty reports whether the ROI encloses or contains nothing.
	IsEmpty() bool

	// PolygonPoints returns the vertices describing the ROI boundary,
	// flattening curved boundaries at DefaultFlatness. For point sets it
	// returns the points themselves.
	PolygonPoints() []Point

	// Kind names the concrete shape variant, e.g. "rectangle".
	Kind() string

	sealed()
}

// Area is the capability of ROIs that enclose a 2D region.
type Area interface {
	ROI

	// Area returns the enclosed area. Rectangle and Ellipse answer
	// analytically without flattening.
	Area() float64

	// Contains reports whether the point (x, y) lies inside the region.
	Contains(x, y float64) bool

	// PathElements describes the region outline as a path element stream,
	// one move-to ... close subpath per boundary ring. The tolerance is
	// accepted for curve.Shape compatibility; only curved variants use it.
	PathElements(tolerance float64) iter.Seq[curve.PathElement]
}

// Line is the capability of open polyline ROIs.
type Line interface {
	ROI

	// Length returns the total polyline length.
	Length() float64
}

// Points is the capability of point-set ROIs.
type Points interface {
	ROI

	// NumPoints returns the number of points in the set.
	NumPoints() int
}

// boundsOf computes the axis-aligned bounding box of a vertex list.
func boundsOf(pts []Point) (x, y, w, h float64) {
	if len(pts) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX - minX, maxY - minY
}

// signedRingArea is the shoelace formula over consecutive vertices, with the
// ring implicitly closed. The sign encodes the traversal direction.
func signedRingArea(ring []Point) float64 {
	var sum float64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// ringCentroid computes the area-weighted centroid of a ring along with its
// signed area. Degenerate zero-area rings fall back to the vertex mean.
func ringCentroid(ring []Point) (Point, float64) {
	var cx, cy, a float64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		cross := p.X*q.Y - q.X*p.Y
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
		a += cross
	}
	a /= 2
	if a == 0 {
		var sx, sy float64
		for _, p := range ring {
			sx += p.X
			sy += p.Y
		}
		n := float64(len(ring))
		return Point{X: sx / n, Y: sy / n}, 0
	}
	return Point{X: cx / (6 * a), Y: cy / (6 * a)}, a
}

// ringContains is a ray-casting containment test for a single ring. Points
// exactly on the boundary may fall on either side.
func ringContains(ring []Point, x, y float64) bool {
	inside := false
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		if (p.Y > y) != (q.Y > y) &&
			x < (q.X-p.X)*(y-p.Y)/(q.Y-p.Y)+p.X {
			inside = !inside
		}
	}
	return inside
}

// copyPoints defensively copies a vertex list so that constructed ROIs never
// alias caller-owned slices.
func copyPoints(pts []Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}

// ringElements emits one closed subpath for a straight-sided ring.
func ringElements(ring []Point, yield func(curve.PathElement) bool) bool {
	if len(ring) == 0 {
		return true
	}
	if !yield(curve.PathElement{Kind: curve.MoveToKind, P0: curve.Point{X: ring[0].X, Y: ring[0].Y}}) {
		return false
	}
	for _, p := range ring[1:] {
		if !yield(curve.PathElement{Kind: curve.LineToKind, P0: curve.Point{X: p.X, Y: p.Y}}) {
			return false
		}
	}
	return yield(curve.PathElement{Kind: curve.ClosePathKind})
}
