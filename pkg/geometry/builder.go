package geometry

import (
	"log/slog"
	"sort"

	polyclip "github.com/ctessum/polyclip-go"

	"github.com/kevinlc123/qupath/pkg/roi"
)

// BuildPolygonal assembles a valid polygon-with-holes geometry from an
// ordered list of closed rings, typically produced by flattening an area
// ROI. It never fails on degenerate input: empty, zero-area and
// self-intersecting rings are resolved locally, and the distinguished empty
// geometry is a defined result.
//
// Ring classification does not assume a winding convention, because source
// shape descriptions do not orient their subpaths consistently. Instead,
// rings are bucketed by the sign of their own signed area, and the sign of
// the aggregate signed area, accumulated in ring order, decides which
// bucket holds the outer boundaries and which holds the holes.
func BuildPolygonal(rings []Ring, logger *slog.Logger) Geometry {
	if logger == nil {
		logger = slog.Default()
	}

	var positive, negative []Ring
	var repairs []RingRepair
	var areaCached float64

	for _, ring := range rings {
		signed := ring.SignedArea()
		areaCached += signed
		if signed == 0 {
			// Zero area: the ring encloses nothing and is dropped.
			continue
		}

		usable := ring
		if !ringIsSimple(ring) {
			logger.Debug("invalid ring detected, attempting self-snap repair",
				"vertices", len(ring), "area", signed)
			repaired := snapToSelf(ring, sizeBasedSnapTolerance(ring))
			if repaired == nil {
				// Collapsed below a triangle; contributes nothing.
				continue
			}
			rep := RingRepair{
				AreaBefore: ring.Area(),
				AreaAfter:  repaired.Area(),
			}
			if !repairAreaSafe(rep.AreaBefore, rep.AreaAfter) {
				rep.Degraded = true
				logger.Warn("ring repair changed area beyond tolerance, proceeding with best effort",
					"areaBefore", rep.AreaBefore, "areaAfter", rep.AreaAfter)
			}
			repairs = append(repairs, rep)
			usable = repaired
		}

		if signed < 0 {
			negative = append(negative, usable)
		} else {
			positive = append(positive, usable)
		}
	}

	var outerRings, holeRings []Ring
	switch {
	case areaCached < 0:
		outerRings, holeRings = negative, positive
	case areaCached > 0:
		outerRings, holeRings = positive, negative
	default:
		// Exact zero aggregate: the geometry is empty by definition.
		return EmptyGeometry()
	}

	result := unionRings(outerRings)
	if len(holeRings) > 0 {
		result = result.Construct(polyclip.DIFFERENCE, unionRings(holeRings))
	}

	polys := assemblePolygons(result)
	if len(polys) == 0 {
		return EmptyGeometry()
	}
	return Geometry{kind: KindPolygonal, polys: polys, repairs: repairs}
}

// unionRings folds a list of rings into a single polygon via pairwise union.
// Union rather than overlay, because separate annotation subpaths are
// usually disjoint but may overlap.
func unionRings(rings []Ring) polyclip.Polygon {
	var acc polyclip.Polygon
	for _, r := range rings {
		p := polyclip.Polygon{toContour(r)}
		if acc == nil {
			acc = p
			continue
		}
		acc = acc.Construct(polyclip.UNION, p)
	}
	return acc
}

// assemblePolygons turns clipper output contours into the canonical
// polygon-with-holes form: contours are simplified at zero tolerance, then
// nested by containment depth (even depth is an outer boundary, odd depth a
// hole of its nearest enclosing outer).
func assemblePolygons(p polyclip.Polygon) []PolygonWithHoles {
	var rings []Ring
	for _, contour := range p {
		r := simplifyZero(fromContour(contour))
		if r != nil {
			rings = append(rings, r)
		}
	}
	if len(rings) == 0 {
		return nil
	}

	type nested struct {
		ring  Ring
		depth int
		area  float64
	}
	ns := make([]nested, len(rings))
	for i, r := range rings {
		ns[i] = nested{ring: r, area: r.Area()}
		for j, other := range rings {
			if i == j {
				continue
			}
			if other.Contains(r[0].X, r[0].Y) {
				ns[i].depth++
			}
		}
	}

	// Outers before their holes; larger outers first so hole assignment
	// finds the tightest enclosing boundary.
	sort.SliceStable(ns, func(i, j int) bool {
		if ns[i].depth != ns[j].depth {
			return ns[i].depth < ns[j].depth
		}
		return ns[i].area > ns[j].area
	})

	var polys []PolygonWithHoles
	for _, n := range ns {
		if n.depth%2 == 0 {
			outer := n.ring
			if outer.SignedArea() < 0 {
				outer = outer.reversed()
			}
			polys = append(polys, PolygonWithHoles{Outer: outer})
			continue
		}
		hole := n.ring
		if hole.SignedArea() > 0 {
			hole = hole.reversed()
		}
		// Attach to the smallest outer that contains it.
		best := -1
		for i, poly := range polys {
			if poly.Outer.Contains(hole[0].X, hole[0].Y) {
				if best < 0 || polys[i].Outer.Area() < polys[best].Outer.Area() {
					best = i
				}
			}
		}
		if best >= 0 {
			polys[best].Holes = append(polys[best].Holes, hole)
		}
	}
	return polys
}

// simplifyZero coerces a ring into its most canonical form without moving
// any vertex: consecutive duplicates and exactly-collinear midpoints are
// removed. Rings that fall below 3 vertices come back nil.
func simplifyZero(r Ring) Ring {
	r = dedupeRing(r)
	if r == nil {
		return nil
	}
	out := make(Ring, 0, len(r))
	n := len(r)
	for i := 0; i < n; i++ {
		prev := r[(i-1+n)%n]
		next := r[(i+1)%n]
		if orient(prev, r[i], next) == 0 && onSegment(prev, next, r[i]) {
			// Vertex lies exactly on the segment joining its neighbours.
			continue
		}
		out = append(out, r[i])
	}
	if len(out) < 3 {
		return nil
	}
	return out
}

func toContour(r Ring) polyclip.Contour {
	c := make(polyclip.Contour, len(r))
	for i, p := range r {
		c[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return c
}

func fromContour(c polyclip.Contour) Ring {
	r := make(Ring, len(c))
	for i, p := range c {
		r[i] = roi.Point{X: p.X, Y: p.Y}
	}
	return r
}
