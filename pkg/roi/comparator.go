package roi

import "cmp"

// Compare imposes a strict total order over ROIs, used wherever deterministic
// iteration order matters (display lists, test fixtures, combination order).
//
// The order compares bounding boxes first (x, then y, then width, then
// height), then planes (z, then t, then channel), and finally breaks ties
// vertex by vertex. Two ROIs with identical bounds, plane and vertices
// compare equal regardless of their concrete variant.
func Compare(a, b ROI) int {
	ax, ay, aw, ah := a.Bounds()
	bx, by, bw, bh := b.Bounds()
	if c := cmp.Compare(ax, bx); c != 0 {
		return c
	}
	if c := cmp.Compare(ay, by); c != 0 {
		return c
	}
	if c := cmp.Compare(aw, bw); c != 0 {
		return c
	}
	if c := cmp.Compare(ah, bh); c != 0 {
		return c
	}

	ap, bp := a.Plane(), b.Plane()
	if c := cmp.Compare(ap.Z, bp.Z); c != 0 {
		return c
	}
	if c := cmp.Compare(ap.T, bp.T); c != 0 {
		return c
	}
	if c := cmp.Compare(ap.C, bp.C); c != 0 {
		return c
	}

	av, bv := a.PolygonPoints(), b.PolygonPoints()
	if c := cmp.Compare(len(av), len(bv)); c != 0 {
		return c
	}
	for i := range av {
		if c := cmp.Compare(av[i].X, bv[i].X); c != 0 {
			return c
		}
		if c := cmp.Compare(av[i].Y, bv[i].Y); c != 0 {
			return c
		}
	}
	return 0
}

// Equal reports whether two ROIs compare equal under Compare.
func Equal(a, b ROI) bool {
	return Compare(a, b) == 0
}
