// Package geometry implements the validated planar geometry engine behind
// ROI conversion and boolean combination.
//
// Area ROIs are flattened into vertex rings, classified into outer
// boundaries and holes, validated and, where necessary, repaired into a
// simple polygon-with-holes representation. The same representation backs
// the boolean combination of two ROIs. The engine is purely functional:
// every input is immutable and every output is freshly constructed, so all
// entry points are safe for concurrent use.
package geometry

import (
	"math"

	"github.com/kevinlc123/qupath/pkg/roi"
)

// Ring is one closed loop of vertices. The last vertex implicitly connects
// back to the first; the closing vertex is not stored.
type Ring []roi.Point

// SignedArea is the shoelace formula over the ring. The sign encodes the
// traversal direction.
func (r Ring) SignedArea() float64 {
	var sum float64
	for i, p := range r {
		q := r[(i+1)%len(r)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Area is the absolute enclosed area.
func (r Ring) Area() float64 {
	return math.Abs(r.SignedArea())
}

// Bounds returns the axis-aligned bounding box of the ring.
func (r Ring) Bounds() (x, y, w, h float64) {
	if len(r) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY := r[0].X, r[0].Y
	maxX, maxY := minX, minY
	for _, p := range r[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX - minX, maxY - minY
}

// Contains is a ray-casting containment test.
func (r Ring) Contains(x, y float64) bool {
	inside := false
	for i, p := range r {
		q := r[(i+1)%len(r)]
		if (p.Y > y) != (q.Y > y) &&
			x < (q.X-p.X)*(y-p.Y)/(q.Y-p.Y)+p.X {
			inside = !inside
		}
	}
	return inside
}

// Perimeter is the total boundary length of the ring.
func (r Ring) Perimeter() float64 {
	var sum float64
	for i, p := range r {
		q := r[(i+1)%len(r)]
		sum += math.Hypot(q.X-p.X, q.Y-p.Y)
	}
	return sum
}

// reversed returns a copy of the ring with opposite winding.
func (r Ring) reversed() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// PolygonWithHoles is one outer boundary ring together with the hole rings
// strictly nested inside it. The outer ring winds positively, holes wind
// negatively.
type PolygonWithHoles struct {
	Outer Ring
	Holes []Ring
}

// Area is the outer area minus the hole areas.
func (p PolygonWithHoles) Area() float64 {
	a := p.Outer.Area()
	for _, h := range p.Holes {
		a -= h.Area()
	}
	return a
}

// RingRepair records one self-intersection repair performed by the topology
// builder. Degraded repairs changed the ring area by more than
// RepairAreaTolerance and should be surfaced to the user as a warning.
type RingRepair struct {
	AreaBefore float64
	AreaAfter  float64
	Degraded   bool
}

// GeometryKind tags the variant held by a Geometry.
type GeometryKind int

const (
	KindEmpty GeometryKind = iota
	KindPoints
	KindPath
	KindPolygonal
)

func (k GeometryKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindPoints:
		return "points"
	case KindPath:
		return "path"
	case KindPolygonal:
		return "polygonal"
	}
	return "unknown"
}

// Geometry is the validated internal representation of a converted ROI: a
// point multiset, an open path, or a simple polygon-with-holes set. It is
// never exposed outside the engine except through the ROI conversion
// functions.
type Geometry struct {
	kind    GeometryKind
	points  []roi.Point
	path    []roi.Point
	polys   []PolygonWithHoles
	repairs []RingRepair
}

// EmptyGeometry returns the distinguished empty geometry.
func EmptyGeometry() Geometry {
	return Geometry{kind: KindEmpty}
}

// PointsGeometry wraps an ordered point multiset.
func PointsGeometry(pts []roi.Point) Geometry {
	if len(pts) == 0 {
		return EmptyGeometry()
	}
	return Geometry{kind: KindPoints, points: pts}
}

// PathGeometry wraps an open polyline.
func PathGeometry(pts []roi.Point) Geometry {
	if len(pts) < 2 {
		return EmptyGeometry()
	}
	return Geometry{kind: KindPath, path: pts}
}

// PolygonalGeometry wraps an already-validated polygon-with-holes set.
func PolygonalGeometry(polys []PolygonWithHoles) Geometry {
	if len(polys) == 0 {
		return EmptyGeometry()
	}
	return Geometry{kind: KindPolygonal, polys: polys}
}

// Kind returns the variant tag.
func (g Geometry) Kind() GeometryKind { return g.kind }

// IsEmpty reports whether the geometry is the distinguished empty geometry.
func (g Geometry) IsEmpty() bool { return g.kind == KindEmpty }

// Points returns the point multiset of a points geometry.
func (g Geometry) Points() []roi.Point { return g.points }

// Path returns the vertex list of a path geometry.
func (g Geometry) Path() []roi.Point { return g.path }

// Polygons returns the polygon-with-holes set of a polygonal geometry.
func (g Geometry) Polygons() []PolygonWithHoles { return g.polys }

// Repairs lists the self-intersection repairs applied while building this
// geometry. An empty list means the input rings were already simple.
func (g Geometry) Repairs() []RingRepair { return g.repairs }

// Degraded reports whether any repair drifted the ring area beyond
// RepairAreaTolerance, meaning the geometry is a best-effort approximation.
func (g Geometry) Degraded() bool {
	for _, r := range g.repairs {
		if r.Degraded {
			return true
		}
	}
	return false
}

// Area is the total enclosed area. Non-area geometries enclose nothing.
func (g Geometry) Area() float64 {
	var a float64
	for _, p := range g.polys {
		a += p.Area()
	}
	return a
}

// Length is the path length for path geometries and the total boundary
// perimeter for polygonal geometries.
func (g Geometry) Length() float64 {
	switch g.kind {
	case KindPath:
		var sum float64
		for i := 0; i < len(g.path)-1; i++ {
			p, q := g.path[i], g.path[i+1]
			sum += math.Hypot(q.X-p.X, q.Y-p.Y)
		}
		return sum
	case KindPolygonal:
		var sum float64
		for _, poly := range g.polys {
			sum += poly.Outer.Perimeter()
			for _, h := range poly.Holes {
				sum += h.Perimeter()
			}
		}
		return sum
	}
	return 0
}

// NumRings counts all rings, outer boundaries and holes alike.
func (g Geometry) NumRings() int {
	n := 0
	for _, p := range g.polys {
		n += 1 + len(p.Holes)
	}
	return n
}

// Bounds returns the axis-aligned bounding box over all vertices.
func (g Geometry) Bounds() (x, y, w, h float64) {
	var all Ring
	switch g.kind {
	case KindPoints:
		all = g.points
	case KindPath:
		all = g.path
	case KindPolygonal:
		for _, p := range g.polys {
			all = append(all, p.Outer...)
		}
	}
	return all.Bounds()
}

// Centroid returns the center of mass: the mean point for point geometries,
// the length-weighted midpoint for paths, and the area-weighted centroid
// (holes subtracting) for polygonal geometries.
func (g Geometry) Centroid() roi.Point {
	switch g.kind {
	case KindPoints:
		var sx, sy float64
		for _, p := range g.points {
			sx += p.X
			sy += p.Y
		}
		n := float64(len(g.points))
		return roi.Point{X: sx / n, Y: sy / n}
	case KindPath:
		var sx, sy, sl float64
		for i := 0; i < len(g.path)-1; i++ {
			p, q := g.path[i], g.path[i+1]
			d := math.Hypot(q.X-p.X, q.Y-p.Y)
			sx += (p.X + q.X) / 2 * d
			sy += (p.Y + q.Y) / 2 * d
			sl += d
		}
		if sl == 0 {
			return g.path[0]
		}
		return roi.Point{X: sx / sl, Y: sy / sl}
	case KindPolygonal:
		var sx, sy, sa float64
		add := func(r Ring, sign float64) {
			var cx, cy, a float64
			for i, p := range r {
				q := r[(i+1)%len(r)]
				cross := p.X*q.Y - q.X*p.Y
				cx += (p.X + q.X) * cross
				cy += (p.Y + q.Y) * cross
				a += cross
			}
			a /= 2
			if a == 0 {
				return
			}
			w := sign * math.Abs(a)
			sx += cx / (6 * a) * w
			sy += cy / (6 * a) * w
			sa += w
		}
		for _, poly := range g.polys {
			add(poly.Outer, 1)
			for _, h := range poly.Holes {
				add(h, -1)
			}
		}
		if sa == 0 {
			return roi.Point{}
		}
		return roi.Point{X: sx / sa, Y: sy / sa}
	}
	return roi.Point{}
}

// IsValid reports whether every ring is simple and every hole is nested
// inside its outer ring. Geometries produced by the builder satisfy this
// unless a degraded repair was accepted.
func (g Geometry) IsValid() bool {
	for _, poly := range g.polys {
		if !ringIsSimple(poly.Outer) {
			return false
		}
		for _, h := range poly.Holes {
			if !ringIsSimple(h) {
				return false
			}
			if len(h) > 0 && !poly.Outer.Contains(h[0].X, h[0].Y) {
				return false
			}
		}
	}
	return true
}
