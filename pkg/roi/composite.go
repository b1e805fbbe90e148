package roi

import (
	"iter"
	"math"

	"honnef.co/go/curve"
)

// Composite is an area ROI made of one or more outer boundary rings and zero
// or more hole rings. The geometry engine produces it as the result of a
// boolean combination or of topology repair, and it also serves as the
// explicitly-empty ROI when it carries no rings.
//
// On construction, outer rings are normalized to positive winding and holes
// to negative winding, so that re-converting the composite to geometry
// classifies the rings consistently.
type Composite struct {
	outers [][]Point
	holes  [][]Point
	plane  Plane
}

// NewComposite creates a composite area ROI. Ring slices are copied. Holes
// are expected to be nested inside outer rings; rings with fewer than 3
// vertices are dropped.
func NewComposite(outers, holes [][]Point, plane Plane) Composite {
	return Composite{
		outers: normalizeRings(outers, false),
		holes:  normalizeRings(holes, true),
		plane:  plane,
	}
}

// EmptyROI returns the explicitly-empty area ROI for a plane. Callers must
// test emptiness with IsEmpty rather than comparing against nil.
func EmptyROI(plane Plane) Composite {
	return Composite{plane: plane}
}

// normalizeRings copies rings, discards degenerate ones, and orients them:
// negative winding for holes, positive for outer boundaries.
func normalizeRings(rings [][]Point, hole bool) [][]Point {
	var out [][]Point
	for _, ring := range rings {
		if len(ring) < 3 {
			continue
		}
		r := copyPoints(ring)
		if a := signedRingArea(r); (a < 0) != hole && a != 0 {
			reversePoints(r)
		}
		out = append(out, r)
	}
	return out
}

func reversePoints(pts []Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

func (c Composite) Plane() Plane { return c.plane }

func (c Composite) Bounds() (x, y, w, h float64) {
	var all []Point
	for _, ring := range c.outers {
		all = append(all, ring...)
	}
	return boundsOf(all)
}

// Area is the total outer ring area minus the total hole area.
func (c Composite) Area() float64 {
	var a float64
	for _, ring := range c.outers {
		a += math.Abs(signedRingArea(ring))
	}
	for _, ring := range c.holes {
		a -= math.Abs(signedRingArea(ring))
	}
	return a
}

// Centroid is the area-weighted centroid over outer rings and holes, with
// holes contributing negative weight.
func (c Composite) Centroid() Point {
	var sx, sy, sa float64
	accumulate := func(rings [][]Point, sign float64) {
		for _, ring := range rings {
			ctr, a := ringCentroid(ring)
			w := sign * math.Abs(a)
			sx += ctr.X * w
			sy += ctr.Y * w
			sa += w
		}
	}
	accumulate(c.outers, 1)
	accumulate(c.holes, -1)
	if sa == 0 {
		return Point{}
	}
	return Point{X: sx / sa, Y: sy / sa}
}

func (c Composite) IsEmpty() bool { return len(c.outers) == 0 }

func (c Composite) Kind() string { return "composite" }

func (c Composite) Contains(x, y float64) bool {
	inside := false
	for _, ring := range c.outers {
		if ringContains(ring, x, y) {
			inside = true
			break
		}
	}
	if !inside {
		return false
	}
	for _, ring := range c.holes {
		if ringContains(ring, x, y) {
			return false
		}
	}
	return true
}

// Outers returns copies of the outer boundary rings.
func (c Composite) Outers() [][]Point { return copyRings(c.outers) }

// Holes returns copies of the hole rings.
func (c Composite) Holes() [][]Point { return copyRings(c.holes) }

// PolygonPoints concatenates the vertices of all rings, outer rings first.
func (c Composite) PolygonPoints() []Point {
	var out []Point
	for _, ring := range c.outers {
		out = append(out, ring...)
	}
	for _, ring := range c.holes {
		out = append(out, ring...)
	}
	return out
}

// PathElements emits each ring as its own closed subpath, outer rings first.
// Because outers wind positively and holes negatively, the aggregate signed
// area of the stream keeps the sign of the enclosed region.
func (c Composite) PathElements(tolerance float64) iter.Seq[curve.PathElement] {
	return func(yield func(curve.PathElement) bool) {
		for _, ring := range c.outers {
			if !ringElements(ring, yield) {
				return
			}
		}
		for _, ring := range c.holes {
			if !ringElements(ring, yield) {
				return
			}
		}
	}
}

func copyRings(rings [][]Point) [][]Point {
	if len(rings) == 0 {
		return nil
	}
	out := make([][]Point, len(rings))
	for i, ring := range rings {
		out[i] = copyPoints(ring)
	}
	return out
}

func (c Composite) sealed() {}
