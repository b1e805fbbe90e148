package geometry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinlc123/qupath/pkg/roi"
)

func TestDefaultConverterConstructedOnce(t *testing.T) {
	assert.Same(t, DefaultConverter(), DefaultConverter())

	w, h := DefaultConverter().PixelSize()
	assert.Equal(t, 1.0, w)
	assert.Equal(t, 1.0, h)
	assert.Equal(t, roi.DefaultFlatness, DefaultConverter().Flatness())
}

func TestRectangleRoundTripZeroTolerance(t *testing.T) {
	rect := roi.NewRectangle(10, 20, 300, 400, roi.PlaneWithChannel(0, 1, 2))
	conv := DefaultConverter()

	g, err := conv.ROIToGeometry(rect)
	require.NoError(t, err)
	back := conv.GeometryToROI(g, rect.Plane())

	bx, by, bw, bh := back.Bounds()
	assert.Equal(t, [4]float64{10, 20, 300, 400}, [4]float64{bx, by, bw, bh})
	assert.Equal(t, rect.Plane(), back.Plane())
	assert.Zero(t, roi.Compare(rect, back))
}

func TestPolygonRoundTripZeroTolerance(t *testing.T) {
	poly := roi.NewPolygon([]roi.Point{{X: 0, Y: 0}, {X: 40, Y: 5}, {X: 35, Y: 30}, {X: -5, Y: 20}}, roi.DefaultPlane())
	conv := DefaultConverter()

	g, err := conv.ROIToGeometry(poly)
	require.NoError(t, err)
	back := conv.GeometryToROI(g, poly.Plane())

	require.IsType(t, roi.Polygon{}, back)
	assert.InDelta(t, poly.Area(), back.(roi.Polygon).Area(), 1e-9)
	bx, by, bw, bh := back.Bounds()
	px, py, pw, ph := poly.Bounds()
	assert.Equal(t, [4]float64{px, py, pw, ph}, [4]float64{bx, by, bw, bh})
}

func TestEllipseRoundTripWithinFlatness(t *testing.T) {
	ellipse := roi.NewEllipse(50, 0, 500, 300, roi.DefaultPlane())
	conv := DefaultConverter()

	g, err := conv.ROIToGeometry(ellipse)
	require.NoError(t, err)
	back := conv.GeometryToROI(g, ellipse.Plane())

	ex, ey, ew, eh := ellipse.Bounds()
	bx, by, bw, bh := back.Bounds()
	tol := conv.Flatness()
	assert.InDelta(t, ex, bx, tol)
	assert.InDelta(t, ey, by, tol)
	assert.InDelta(t, ew, bw, 2*tol)
	assert.InDelta(t, eh, bh, 2*tol)
	assert.InEpsilon(t, ellipse.Area(), back.(roi.Area).Area(), 0.01)
}

func TestPointSetReversePath(t *testing.T) {
	conv := DefaultConverter()

	single := roi.NewPointSet([]roi.Point{{X: 3, Y: 4}}, roi.DefaultPlane())
	g, err := conv.ROIToGeometry(single)
	require.NoError(t, err)
	assert.Equal(t, KindPoints, g.Kind())
	back := conv.GeometryToROI(g, single.Plane())
	require.IsType(t, roi.PointSet{}, back)
	assert.Equal(t, 1, back.(roi.PointSet).NumPoints())

	multi := roi.NewPointSet([]roi.Point{{X: 9, Y: 9}, {X: 1, Y: 2}, {X: 5, Y: 5}}, roi.DefaultPlane())
	g, err = conv.ROIToGeometry(multi)
	require.NoError(t, err)
	back = conv.GeometryToROI(g, multi.Plane())
	assert.Equal(t, multi.PolygonPoints(), back.PolygonPoints(),
		"point order must be preserved through conversion")
}

func TestLineReversePath(t *testing.T) {
	conv := DefaultConverter()
	line := roi.NewLine(100, 200, 300, 400, roi.DefaultPlane())

	g, err := conv.ROIToGeometry(line)
	require.NoError(t, err)
	assert.Equal(t, KindPath, g.Kind())
	assert.InDelta(t, line.Length(), g.Length(), 0.01)

	back := conv.GeometryToROI(g, line.Plane())
	require.IsType(t, roi.LineString{}, back)
	assert.Zero(t, roi.Compare(line, back))
}

func TestEmptyGeometryMapsToExplicitlyEmptyROI(t *testing.T) {
	conv := DefaultConverter()
	back := conv.GeometryToROI(EmptyGeometry(), roi.DefaultPlane())

	require.NotNil(t, back, "empty geometry maps to an empty ROI, not nil")
	assert.True(t, back.IsEmpty())

	// An empty area ROI converts to the empty geometry.
	g, err := conv.ROIToGeometry(roi.EmptyROI(roi.DefaultPlane()))
	require.NoError(t, err)
	assert.True(t, g.IsEmpty())
}

func TestPixelScaling(t *testing.T) {
	conv := NewConverter(WithPixelSize(2, 3))
	rect := roi.NewRectangle(0, 0, 100, 100, roi.DefaultPlane())

	g, err := conv.ROIToGeometry(rect)
	require.NoError(t, err)
	assert.InDelta(t, 100*2*100*3, g.Area(), 1e-6,
		"geometry lives in scaled coordinate space")

	// Scaling divides back out on the reverse path.
	back := conv.GeometryToROI(g, rect.Plane())
	bx, by, bw, bh := back.Bounds()
	assert.InDelta(t, 0, bx, 1e-9)
	assert.InDelta(t, 0, by, 1e-9)
	assert.InDelta(t, 100, bw, 1e-9)
	assert.InDelta(t, 100, bh, 1e-9)
}

func TestCentroidAgreement(t *testing.T) {
	conv := DefaultConverter()
	rect := roi.NewRectangle(0, 0, 1000, 500, roi.DefaultPlane())

	g, err := conv.ROIToGeometry(rect)
	require.NoError(t, err)
	c := g.Centroid()
	assert.InDelta(t, rect.Centroid().X, c.X, 0.01)
	assert.InDelta(t, rect.Centroid().Y, c.Y, 0.01)
}

// alienROI embeds only the base interface, hiding every capability, which
// makes it structurally unsupported.
type alienROI struct{ roi.ROI }

func TestUnsupportedROIRejected(t *testing.T) {
	base := roi.NewLine(0, 0, 1, 1, roi.DefaultPlane())
	_, err := DefaultConverter().ROIToGeometry(alienROI{base})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedROI))
}
