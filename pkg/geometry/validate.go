package geometry

import "github.com/kevinlc123/qupath/pkg/roi"

// ringIsSimple reports whether no two non-adjacent edges of the ring touch
// or cross. Adjacent edges share exactly their common vertex. This is the
// validity requirement for a ring to act as a polygon boundary or hole.
func ringIsSimple(r Ring) bool {
	n := len(r)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a, b := r[i], r[(i+1)%n]
		for j := i + 1; j < n; j++ {
			c, d := r[j], r[(j+1)%n]
			adjacent := j == i+1 || (i == 0 && j == n-1)
			if adjacent {
				// Adjacent edges may only meet at the shared vertex;
				// anything more means a spike or a fold-back.
				if collinearOverlap(a, b, c, d) {
					return false
				}
				continue
			}
			if segmentsIntersect(a, b, c, d) {
				return false
			}
		}
	}
	return true
}

// segmentsIntersect reports whether segments a-b and c-d share any point.
func segmentsIntersect(a, b, c, d roi.Point) bool {
	o1 := orient(a, b, c)
	o2 := orient(a, b, d)
	o3 := orient(c, d, a)
	o4 := orient(c, d, b)

	if o1 != o2 && o3 != o4 {
		return true
	}
	// Collinear contact cases.
	if o1 == 0 && onSegment(a, b, c) {
		return true
	}
	if o2 == 0 && onSegment(a, b, d) {
		return true
	}
	if o3 == 0 && onSegment(c, d, a) {
		return true
	}
	if o4 == 0 && onSegment(c, d, b) {
		return true
	}
	return false
}

// collinearOverlap reports whether two segments sharing a vertex are
// collinear and overlap over more than that vertex.
func collinearOverlap(a, b, c, d roi.Point) bool {
	if orient(a, b, c) != 0 || orient(a, b, d) != 0 {
		return false
	}
	// All four points collinear: overlap unless the segments only meet at
	// the single shared endpoint.
	overlap := 0
	for _, p := range []roi.Point{c, d} {
		if p != a && p != b && onSegment(a, b, p) {
			overlap++
		}
	}
	for _, p := range []roi.Point{a, b} {
		if p != c && p != d && onSegment(c, d, p) {
			overlap++
		}
	}
	return overlap > 0
}

// orient returns the sign of the cross product (b-a) × (c-a): positive for a
// counter-clockwise turn, negative for clockwise, zero for collinear.
func orient(a, b, c roi.Point) int {
	v := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// onSegment reports whether collinear point p lies within the bounding box
// of segment a-b.
func onSegment(a, b, p roi.Point) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}
