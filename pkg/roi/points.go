package roi

import "gonum.org/v1/gonum/stat"

// PointSet is an ordered multiset of planar points, as placed by a counting
// tool. Order is preserved through conversion and serialization.
type PointSet struct {
	points []Point
	plane  Plane
}

// NewPointSet creates a point-set ROI. The slice is copied.
func NewPointSet(points []Point, plane Plane) PointSet {
	return PointSet{points: copyPoints(points), plane: plane}
}

func (s PointSet) Plane() Plane { return s.plane }

func (s PointSet) Bounds() (x, y, w, h float64) { return boundsOf(s.points) }

// Centroid is the mean position of the points.
func (s PointSet) Centroid() Point {
	if len(s.points) == 0 {
		return Point{}
	}
	xs := make([]float64, len(s.points))
	ys := make([]float64, len(s.points))
	for i, p := range s.points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}
}

func (s PointSet) IsEmpty() bool { return len(s.points) == 0 }

func (s PointSet) NumPoints() int { return len(s.points) }

func (s PointSet) Kind() string { return "points" }

func (s PointSet) PolygonPoints() []Point { return copyPoints(s.points) }

func (s PointSet) sealed() {}
