package geometry

import (
	"errors"
	"fmt"

	polyclip "github.com/ctessum/polyclip-go"

	"github.com/kevinlc123/qupath/pkg/roi"
)

// ErrPlaneMismatch marks an attempt to combine two ROIs that live on
// different image planes. The combination engine rejects this before any
// conversion rather than silently picking one plane.
var ErrPlaneMismatch = errors.New("ROIs are on different image planes")

// CombineOp is a boolean set operation between two area ROIs.
type CombineOp int

const (
	// Union keeps the region covered by either ROI.
	Union CombineOp = iota
	// Difference keeps the first ROI's region minus the second's.
	Difference
	// Intersection keeps only the region covered by both ROIs.
	Intersection
)

func (op CombineOp) String() string {
	switch op {
	case Union:
		return "union"
	case Difference:
		return "difference"
	case Intersection:
		return "intersection"
	}
	return fmt.Sprintf("CombineOp(%d)", int(op))
}

func (op CombineOp) clipOp() polyclip.Op {
	switch op {
	case Difference:
		return polyclip.DIFFERENCE
	case Intersection:
		return polyclip.INTERSECTION
	}
	return polyclip.UNION
}

// Combine applies a boolean set operation to two area ROIs on the same
// plane and returns the resulting ROI. An empty result is the
// explicitly-empty ROI, never nil. Plane mismatch and non-area inputs are
// contract violations and are rejected before conversion.
func (c *Converter) Combine(a, b roi.ROI, op CombineOp) (roi.ROI, error) {
	if a.Plane() != b.Plane() {
		return nil, fmt.Errorf("%w: %v vs %v", ErrPlaneMismatch, a.Plane(), b.Plane())
	}
	areaA, ok := a.(roi.Area)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an area ROI", ErrUnsupportedROI, a.Kind())
	}
	areaB, ok := b.(roi.Area)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an area ROI", ErrUnsupportedROI, b.Kind())
	}

	// Plain set algebra for empty operands; no conversion needed.
	switch {
	case areaA.IsEmpty() && areaB.IsEmpty():
		return roi.EmptyROI(a.Plane()), nil
	case areaA.IsEmpty():
		if op == Union {
			return b, nil
		}
		return roi.EmptyROI(a.Plane()), nil
	case areaB.IsEmpty():
		if op == Intersection {
			return roi.EmptyROI(a.Plane()), nil
		}
		return a, nil
	}

	ga := c.areaToGeometry(areaA)
	gb := c.areaToGeometry(areaB)
	result := CombineGeometries(ga, gb, op)
	return c.GeometryToROI(result, a.Plane()), nil
}

// CombineROIs combines two ROIs using the default converter.
func CombineROIs(a, b roi.ROI, op CombineOp) (roi.ROI, error) {
	return DefaultConverter().Combine(a, b, op)
}

// CombineGeometries applies a boolean set operation to two polygonal
// geometries. Empty operands follow plain set algebra; an empty result is
// the distinguished empty geometry.
func CombineGeometries(a, b Geometry, op CombineOp) Geometry {
	switch {
	case a.IsEmpty() && b.IsEmpty():
		return EmptyGeometry()
	case a.IsEmpty():
		if op == Union {
			return b
		}
		return EmptyGeometry()
	case b.IsEmpty():
		if op == Intersection {
			return EmptyGeometry()
		}
		return a
	}

	result := toClipPolygon(a).Construct(op.clipOp(), toClipPolygon(b))
	polys := assemblePolygons(result)
	if len(polys) == 0 {
		return EmptyGeometry()
	}
	return Geometry{kind: KindPolygonal, polys: polys}
}

// toClipPolygon lowers a polygonal geometry into clipper form, one contour
// per ring with holes winding opposite to their outer boundary.
func toClipPolygon(g Geometry) polyclip.Polygon {
	var p polyclip.Polygon
	for _, poly := range g.Polygons() {
		p = append(p, toContour(poly.Outer))
		for _, h := range poly.Holes {
			p = append(p, toContour(h))
		}
	}
	return p
}
