package roi

import "math"

// LineString is an open polyline ROI. The two-point line drawn with the line
// tool is the distinguished special case produced by NewLine.
type LineString struct {
	points []Point
	plane  Plane
}

// NewLine creates a two-point line ROI between (x1, y1) and (x2, y2).
func NewLine(x1, y1, x2, y2 float64, plane Plane) LineString {
	return LineString{
		points: []Point{{X: x1, Y: y1}, {X: x2, Y: y2}},
		plane:  plane,
	}
}

// NewPolyline creates an open polyline ROI from a vertex list. The slice is
// copied.
func NewPolyline(points []Point, plane Plane) LineString {
	return LineString{points: copyPoints(points), plane: plane}
}

func (l LineString) Plane() Plane { return l.plane }

func (l LineString) Bounds() (x, y, w, h float64) { return boundsOf(l.points) }

// Centroid is the length-weighted midpoint of the polyline segments.
func (l LineString) Centroid() Point {
	if len(l.points) == 0 {
		return Point{}
	}
	if len(l.points) == 1 {
		return l.points[0]
	}
	var sx, sy, sl float64
	for i := 0; i < len(l.points)-1; i++ {
		p, q := l.points[i], l.points[i+1]
		d := math.Hypot(q.X-p.X, q.Y-p.Y)
		sx += (p.X + q.X) / 2 * d
		sy += (p.Y + q.Y) / 2 * d
		sl += d
	}
	if sl == 0 {
		return l.points[0]
	}
	return Point{X: sx / sl, Y: sy / sl}
}

// Length is the sum of the segment lengths.
func (l LineString) Length() float64 {
	var sum float64
	for i := 0; i < len(l.points)-1; i++ {
		p, q := l.points[i], l.points[i+1]
		sum += math.Hypot(q.X-p.X, q.Y-p.Y)
	}
	return sum
}

func (l LineString) IsEmpty() bool { return len(l.points) < 2 }

func (l LineString) Kind() string {
	if len(l.points) == 2 {
		return "line"
	}
	return "polyline"
}

func (l LineString) PolygonPoints() []Point { return copyPoints(l.points) }

func (l LineString) sealed() {}
