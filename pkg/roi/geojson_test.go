package roi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip pushes a ROI through the GeoJSON encoding and back.
func roundTrip(t *testing.T, r ROI) ROI {
	t.Helper()
	data, err := MarshalGeoJSON(r)
	require.NoError(t, err)
	out, err := UnmarshalGeoJSON(data)
	require.NoError(t, err)
	return out
}

// assertEqualBounds compares bounds and plane with zero tolerance.
func assertEqualBounds(t *testing.T, want, got ROI) {
	t.Helper()
	wx, wy, ww, wh := want.Bounds()
	gx, gy, gw, gh := got.Bounds()
	assert.Equal(t, [4]float64{wx, wy, ww, wh}, [4]float64{gx, gy, gw, gh})
	assert.Equal(t, want.Plane(), got.Plane())
}

func TestLineSerializationDeterminism(t *testing.T) {
	l := NewLine(100, 200, 300, 400, DefaultPlane())
	l2 := roundTrip(t, l)

	assertEqualBounds(t, l, l2)
	assert.Zero(t, Compare(l, l2), "round-tripped line must compare equal")
}

func TestRectangleRoundTrip(t *testing.T) {
	r := NewRectangle(100, 200, 300, 400, PlaneWithChannel(0, 1, 2))
	r2 := roundTrip(t, r)

	require.IsType(t, Rectangle{}, r2)
	assertEqualBounds(t, r, r2)
	assert.Equal(t, r.PolygonPoints(), r2.PolygonPoints())
	assert.Zero(t, Compare(r, r2))
}

func TestEllipseRoundTrip(t *testing.T) {
	e := NewEllipse(100, 200, 300, 400, PlaneWithChannel(0, 1, 2))
	e2 := roundTrip(t, e)

	require.IsType(t, Ellipse{}, e2)
	assertEqualBounds(t, e, e2)
	assert.Equal(t, e.Area(), e2.(Ellipse).Area())
	assert.Zero(t, Compare(e, e2))
}

func TestPolygonRoundTrip(t *testing.T) {
	p := NewPolygon([]Point{{1.0, 10.0}, {2.5, 11.0}, {5.0, 12.0}}, PlaneWithChannel(0, 1, 2))
	p2 := roundTrip(t, p)

	require.IsType(t, Polygon{}, p2)
	assertEqualBounds(t, p, p2)
	assert.Equal(t, p.PolygonPoints(), p2.PolygonPoints())
	assert.Zero(t, Compare(p, p2))
}

func TestPointSetRoundTrip(t *testing.T) {
	// Order is part of the value and must survive.
	s := NewPointSet([]Point{{5, 6}, {1, 2}, {3, 4}}, DefaultPlane())
	s2 := roundTrip(t, s)

	require.IsType(t, PointSet{}, s2)
	assert.Equal(t, s.PolygonPoints(), s2.PolygonPoints())
	assert.Zero(t, Compare(s, s2))

	single := NewPointSet([]Point{{7.25, -3.5}}, DefaultPlane())
	single2 := roundTrip(t, single)
	require.IsType(t, PointSet{}, single2)
	assert.Equal(t, single.PolygonPoints(), single2.PolygonPoints())
}

func TestCompositeRoundTrip(t *testing.T) {
	outer := []Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	hole := []Point{{25, 25}, {75, 25}, {75, 75}, {25, 75}}
	c := NewComposite([][]Point{outer}, [][]Point{hole}, DefaultPlane())
	c2 := roundTrip(t, c)

	require.IsType(t, Composite{}, c2)
	assertEqualBounds(t, c, c2)
	assert.Equal(t, c.PolygonPoints(), c2.PolygonPoints())
	assert.InDelta(t, c.Area(), c2.(Composite).Area(), 0)
}

func TestUnmarshalRejectsUnknownKind(t *testing.T) {
	_, err := UnmarshalGeoJSON([]byte(`{
		"type": "Feature",
		"geometry": {"type": "Point", "coordinates": [1, 2]},
		"properties": {"kind": "blob", "c": -1, "z": 0, "t": 0}
	}`))
	assert.Error(t, err)
}
