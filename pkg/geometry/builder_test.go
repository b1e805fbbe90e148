package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinlc123/qupath/pkg/roi"
)

func square(x, y, size float64) Ring {
	return Ring{
		{X: x, Y: y},
		{X: x + size, Y: y},
		{X: x + size, Y: y + size},
		{X: x, Y: y + size},
	}
}

// geometryRings re-extracts the ring list of a polygonal geometry in outer,
// holes order, preserving winding.
func geometryRings(g Geometry) []Ring {
	var rings []Ring
	for _, poly := range g.Polygons() {
		rings = append(rings, poly.Outer)
		rings = append(rings, poly.Holes...)
	}
	return rings
}

func TestRectangleAreaAgreement(t *testing.T) {
	rect := roi.NewRectangle(0, 0, 1000, 1000, roi.DefaultPlane())
	g, err := DefaultConverter().ROIToGeometry(rect)
	require.NoError(t, err)

	assert.InDelta(t, rect.Area(), g.Area(), 0.01)
	assert.True(t, g.IsValid())
	assert.Equal(t, 1, g.NumRings())
}

func TestEllipseAreaAgreement(t *testing.T) {
	ellipse := roi.NewEllipse(50, 0, 500, 300, roi.DefaultPlane())
	g, err := DefaultConverter().ROIToGeometry(ellipse)
	require.NoError(t, err)

	// Flattening makes the area difference relative, not absolute.
	target := math.Pi * 250 * 150
	assert.InEpsilon(t, target, g.Area(), 0.01)
	assert.True(t, g.IsValid())
}

func TestHoleClassificationByAggregateSign(t *testing.T) {
	outer := square(0, 0, 100)            // positive winding
	hole := square(25, 25, 50).reversed() // negative winding

	g := BuildPolygonal([]Ring{outer, hole}, nil)
	require.False(t, g.IsEmpty())
	assert.InDelta(t, 100*100-50*50, g.Area(), 1e-6)
	require.Len(t, g.Polygons(), 1)
	assert.Len(t, g.Polygons()[0].Holes, 1)
}

// TestWindingConventionFlipped feeds the same shape with every ring
// reversed. The aggregate sign heuristic must classify holes identically,
// because the source representation guarantees no orientation convention.
func TestWindingConventionFlipped(t *testing.T) {
	outer := square(0, 0, 100).reversed() // negative winding
	hole := square(25, 25, 50)            // positive winding

	g := BuildPolygonal([]Ring{outer, hole}, nil)
	require.False(t, g.IsEmpty())
	assert.InDelta(t, 100*100-50*50, g.Area(), 1e-6)
	require.Len(t, g.Polygons(), 1)
	assert.Len(t, g.Polygons()[0].Holes, 1)
}

func TestZeroAggregateSignMeansEmpty(t *testing.T) {
	// Two identical rings with opposite winding: the accumulated signed
	// area is exactly zero, which is the defined empty case.
	g := BuildPolygonal([]Ring{square(0, 0, 10), square(0, 0, 10).reversed()}, nil)
	assert.True(t, g.IsEmpty())
}

func TestZeroAreaRingsDropped(t *testing.T) {
	collapsed := Ring{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}
	g := BuildPolygonal([]Ring{square(0, 0, 10), collapsed}, nil)

	require.False(t, g.IsEmpty())
	assert.InDelta(t, 100, g.Area(), 1e-6)
	assert.Equal(t, 1, g.NumRings())
}

func TestDisjointSubpathsUnionNotOverlay(t *testing.T) {
	g := BuildPolygonal([]Ring{square(0, 0, 10), square(100, 100, 10)}, nil)

	require.False(t, g.IsEmpty())
	assert.InDelta(t, 200, g.Area(), 1e-6)
	assert.Len(t, g.Polygons(), 2)
}

func TestIdempotentRebuild(t *testing.T) {
	outer := square(0, 0, 100)
	hole := square(20, 20, 30).reversed()
	g := BuildPolygonal([]Ring{outer, hole}, nil)
	require.False(t, g.IsEmpty())

	g2 := BuildPolygonal(geometryRings(g), nil)
	assert.InDelta(t, g.Area(), g2.Area(), 1e-6)
	assert.Equal(t, g.NumRings(), g2.NumRings())
	assert.Empty(t, g2.Repairs(), "validated output must need no further repair")
}

func TestSelfIntersectingRingRepairReported(t *testing.T) {
	// A crossing boundary with nonzero net area. The builder must not fail:
	// it repairs what the snap tolerance allows, records the repair, and
	// proceeds.
	crossing := Ring{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 60},
		{X: 40, Y: -20}, {X: 0, Y: 60},
	}
	require.False(t, ringIsSimple(crossing))

	g := BuildPolygonal([]Ring{crossing}, nil)
	require.Len(t, g.Repairs(), 1)
	rep := g.Repairs()[0]
	assert.Greater(t, rep.AreaBefore, 0.0)
	assert.False(t, g.IsEmpty())
}

func TestBuildEmptyInput(t *testing.T) {
	assert.True(t, BuildPolygonal(nil, nil).IsEmpty())
	assert.True(t, BuildPolygonal([]Ring{}, nil).IsEmpty())
}

func TestSimplifyZeroRemovesCollinear(t *testing.T) {
	r := Ring{
		{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0},
		{X: 10, Y: 10}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}
	s := simplifyZero(r)
	require.NotNil(t, s)
	assert.Len(t, s, 4)
	assert.InDelta(t, r.Area(), s.Area(), 1e-9, "simplification must not move vertices")
}
