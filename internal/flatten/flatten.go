// Package flatten converts path element streams into flat vertex rings.
// Curved segments (quadratic and cubic Béziers) are subdivided until their
// deviation from a straight chord falls below a caller-supplied flatness
// tolerance, matching the behavior of a flattening path iterator.
package flatten

import (
	"iter"
	"math"

	"honnef.co/go/curve"
)

// recursionLimit bounds Bézier subdivision depth. 2^10 segments per curve is
// far below any flatness tolerance this engine is used with.
const recursionLimit = 10

// Rings flattens a path element stream into closed vertex rings, one ring per
// move-to ... close subpath. The last point of each ring implicitly connects
// back to the first; the closing vertex is not repeated. Subpath order is
// preserved. Rings with fewer than 3 distinct vertices are dropped, since
// they enclose no area.
func Rings(path iter.Seq[curve.PathElement], flatness float64) [][]curve.Point {
	var rings [][]curve.Point
	var ring []curve.Point
	var cur curve.Point

	flush := func() {
		if r := normalizeRing(ring); r != nil {
			rings = append(rings, r)
		}
		ring = nil
	}

	for el := range path {
		switch el.Kind {
		case curve.MoveToKind:
			flush()
			ring = append(ring, el.P0)
			cur = el.P0
		case curve.LineToKind:
			ring = append(ring, el.P0)
			cur = el.P0
		case curve.QuadToKind:
			ring = flattenQuad(ring, cur, el.P0, el.P1, flatness, 0)
			cur = el.P1
		case curve.CubicToKind:
			ring = flattenCubic(ring, cur, el.P0, el.P1, el.P2, flatness, 0)
			cur = el.P2
		case curve.ClosePathKind:
			flush()
		}
	}
	flush()
	return rings
}

// normalizeRing removes consecutive duplicate vertices and a trailing vertex
// equal to the first, then rejects rings that cannot enclose area.
func normalizeRing(ring []curve.Point) []curve.Point {
	out := ring[:0:0]
	for _, p := range ring {
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

func flattenQuad(dst []curve.Point, p0, p1, p2 curve.Point, flatness float64, depth int) []curve.Point {
	if depth >= recursionLimit || ptSegDistSq(p1, p0, p2) <= flatness*flatness {
		return append(dst, p2)
	}
	// De Casteljau split at t = 0.5.
	q0 := midpoint(p0, p1)
	q1 := midpoint(p1, p2)
	m := midpoint(q0, q1)
	dst = flattenQuad(dst, p0, q0, m, flatness, depth+1)
	return flattenQuad(dst, m, q1, p2, flatness, depth+1)
}

func flattenCubic(dst []curve.Point, p0, p1, p2, p3 curve.Point, flatness float64, depth int) []curve.Point {
	if depth >= recursionLimit || cubicFlatnessSq(p0, p1, p2, p3) <= flatness*flatness {
		return append(dst, p3)
	}
	q0 := midpoint(p0, p1)
	q1 := midpoint(p1, p2)
	q2 := midpoint(p2, p3)
	r0 := midpoint(q0, q1)
	r1 := midpoint(q1, q2)
	m := midpoint(r0, r1)
	dst = flattenCubic(dst, p0, q0, r0, m, flatness, depth+1)
	return flattenCubic(dst, m, r1, q2, p3, flatness, depth+1)
}

// cubicFlatnessSq is the squared maximum distance of the control points from
// the chord p0-p3.
func cubicFlatnessSq(p0, p1, p2, p3 curve.Point) float64 {
	return math.Max(ptSegDistSq(p1, p0, p3), ptSegDistSq(p2, p0, p3))
}

// ptSegDistSq returns the squared distance from p to the segment a-b.
func ptSegDistSq(p, a, b curve.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	px, py := p.X-a.X, p.Y-a.Y
	segLenSq := dx*dx + dy*dy
	if segLenSq == 0 {
		return px*px + py*py
	}
	t := (px*dx + py*dy) / segLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	ex, ey := px-t*dx, py-t*dy
	return ex*ex + ey*ey
}

func midpoint(a, b curve.Point) curve.Point {
	return curve.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
