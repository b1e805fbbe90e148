package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/kevinlc123/qupath/pkg/roi"
)

// RepairAreaTolerance is the relative area drift accepted after a
// self-intersection repair before the result is flagged as degraded. A
// repair is only safe when it leaves the enclosed area essentially
// unchanged.
const RepairAreaTolerance = 1e-4

// snapPrecisionFactor scales the snap tolerance relative to the ring size.
const snapPrecisionFactor = 1e-9

// sizeBasedSnapTolerance derives a snap distance from the ring's bounding
// box: larger shapes tolerate proportionally larger snaps.
func sizeBasedSnapTolerance(r Ring) float64 {
	_, _, w, h := r.Bounds()
	return math.Min(w, h) * snapPrecisionFactor
}

// snapToSelf nudges near-coincident vertices of a ring onto each other and
// onto nearby edges, removing the small folds and crossings that make a
// ring non-simple. Vertices move by at most tolerance. The input ring is
// not modified. A ring that collapses below 3 distinct vertices comes back
// nil.
func snapToSelf(r Ring, tolerance float64) Ring {
	if tolerance <= 0 || len(r) < 3 {
		return append(Ring(nil), r...)
	}
	tolSq := tolerance * tolerance
	out := make(Ring, len(r))
	copy(out, r)

	// Merge vertex clusters onto their first occurrence.
	for i := 1; i < len(out); i++ {
		for j := 0; j < i; j++ {
			dx, dy := out[i].X-out[j].X, out[i].Y-out[j].Y
			if dx*dx+dy*dy <= tolSq {
				out[i] = out[j]
				break
			}
		}
	}

	// Snap vertices onto non-incident edges passing within tolerance.
	n := len(out)
	for i := 0; i < n; i++ {
		p := out[i]
		for j := 0; j < n; j++ {
			if j == i || (j+1)%n == i {
				continue
			}
			a, b := out[j], out[(j+1)%n]
			if q, distSq := closestOnSegment(p, a, b); distSq > 0 && distSq <= tolSq {
				out[i] = q
				break
			}
		}
	}

	return dedupeRing(out)
}

// dedupeRing drops consecutive duplicate vertices, treating the ring as
// closed. Rings left with fewer than 3 vertices come back nil.
func dedupeRing(r Ring) Ring {
	var out Ring
	for _, p := range r {
		if len(out) > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	if len(out) < 3 {
		return nil
	}
	return out
}

// closestOnSegment returns the point on segment a-b nearest to p and the
// squared distance to it.
func closestOnSegment(p, a, b roi.Point) (roi.Point, float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	segLenSq := dx*dx + dy*dy
	t := 0.0
	if segLenSq > 0 {
		t = ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / segLenSq
		t = math.Max(0, math.Min(1, t))
	}
	q := roi.Point{X: a.X + t*dx, Y: a.Y + t*dy}
	ex, ey := p.X-q.X, p.Y-q.Y
	return q, ex*ex + ey*ey
}

// repairAreaSafe reports whether the enclosed area before and after a
// repair agree within RepairAreaTolerance (relative).
func repairAreaSafe(before, after float64) bool {
	if before == after {
		return true
	}
	return scalar.EqualWithinRel(before, after, RepairAreaTolerance)
}
