package geometry

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"honnef.co/go/curve"

	"github.com/kevinlc123/qupath/internal/flatten"
	"github.com/kevinlc123/qupath/pkg/roi"
)

// ErrUnsupportedROI marks a structural contract violation: a ROI whose shape
// kind the engine does not recognize was passed in. Geometric degeneracy
// (empty shapes, zero areas, self-intersections) is never reported as an
// error.
var ErrUnsupportedROI = errors.New("unsupported ROI kind")

// Converter holds the configuration for converting between ROIs and
// geometry: pixel scale factors applied to coordinates during conversion,
// and the flattening tolerance for curved boundaries. A Converter is
// immutable after construction and safe for concurrent use.
type Converter struct {
	pixelWidth  float64
	pixelHeight float64
	flatness    float64
	logger      *slog.Logger
}

// Option configures a Converter under construction.
type Option func(*Converter)

// WithPixelSize sets the pixel width and height used to rescale x and y
// coordinates during conversion. The default is 1.0 for both.
func WithPixelSize(pixelWidth, pixelHeight float64) Option {
	return func(c *Converter) {
		c.pixelWidth = pixelWidth
		c.pixelHeight = pixelHeight
	}
}

// WithFlatness sets the maximum deviation allowed when curved boundaries
// are approximated by straight segments. The default is roi.DefaultFlatness.
func WithFlatness(flatness float64) Option {
	return func(c *Converter) {
		c.flatness = flatness
	}
}

// WithLogger sets the logger that receives repair diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// NewConverter creates a converter with the given options.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		pixelWidth:  1,
		pixelHeight: 1,
		flatness:    roi.DefaultFlatness,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = sync.OnceValue(func() *Converter {
	return NewConverter()
})

// DefaultConverter returns the shared converter with default configuration.
// It is constructed at most once and is safe for concurrent use.
func DefaultConverter() *Converter {
	return defaultConverter()
}

// Flatness returns the configured flattening tolerance.
func (c *Converter) Flatness() float64 { return c.flatness }

// PixelSize returns the configured coordinate scale factors.
func (c *Converter) PixelSize() (w, h float64) { return c.pixelWidth, c.pixelHeight }

// ROIToGeometry converts any ROI into its validated geometry form. The only
// error condition is a structurally unsupported ROI; every geometric
// degeneracy maps to a defined geometry, possibly the empty one.
func (c *Converter) ROIToGeometry(r roi.ROI) (Geometry, error) {
	switch v := r.(type) {
	case roi.Points:
		return PointsGeometry(c.scalePoints(v.PolygonPoints())), nil
	case roi.Area:
		return c.areaToGeometry(v), nil
	case roi.Line:
		return PathGeometry(c.scalePoints(v.PolygonPoints())), nil
	}
	return Geometry{}, fmt.Errorf("%w: %q", ErrUnsupportedROI, r.Kind())
}

// areaToGeometry flattens an area ROI into rings and assembles them into a
// polygon-with-holes geometry.
func (c *Converter) areaToGeometry(a roi.Area) Geometry {
	if a.IsEmpty() {
		return EmptyGeometry()
	}
	rings := c.FlattenArea(a)
	return BuildPolygonal(rings, c.logger)
}

// FlattenArea flattens the boundary of an area ROI into closed vertex rings
// at the converter's flatness, with pixel scaling applied. Subpath order is
// preserved.
func (c *Converter) FlattenArea(a roi.Area) []Ring {
	elems := a.PathElements(c.flatness)
	if c.pixelWidth != 1 || c.pixelHeight != 1 {
		elems = scaleElements(elems, c.pixelWidth, c.pixelHeight)
	}
	flat := flatten.Rings(elems, c.flatness)
	rings := make([]Ring, 0, len(flat))
	for _, fr := range flat {
		ring := make(Ring, len(fr))
		for i, p := range fr {
			ring[i] = roi.Point{X: p.X, Y: p.Y}
		}
		rings = append(rings, ring)
	}
	return rings
}

// GeometryToROI converts a geometry back to a ROI on the given plane. The
// empty geometry maps to the explicitly-empty ROI, never nil; callers must
// check emptiness explicitly.
func (c *Converter) GeometryToROI(g Geometry, plane roi.Plane) roi.ROI {
	switch g.Kind() {
	case KindPoints:
		return roi.NewPointSet(c.unscalePoints(g.Points()), plane)
	case KindPath:
		return roi.NewPolyline(c.unscalePoints(g.Path()), plane)
	case KindPolygonal:
		polys := g.Polygons()
		if len(polys) == 1 && len(polys[0].Holes) == 0 {
			return roi.NewPolygon(c.unscalePoints(polys[0].Outer), plane)
		}
		var outers, holes [][]roi.Point
		for _, poly := range polys {
			outers = append(outers, c.unscalePoints(poly.Outer))
			for _, h := range poly.Holes {
				holes = append(holes, c.unscalePoints(h))
			}
		}
		return roi.NewComposite(outers, holes, plane)
	}
	return roi.EmptyROI(plane)
}

func (c *Converter) scalePoints(pts []roi.Point) []roi.Point {
	out := make([]roi.Point, len(pts))
	for i, p := range pts {
		out[i] = roi.Point{X: p.X * c.pixelWidth, Y: p.Y * c.pixelHeight}
	}
	return out
}

func (c *Converter) unscalePoints(pts []roi.Point) []roi.Point {
	out := make([]roi.Point, len(pts))
	for i, p := range pts {
		out[i] = roi.Point{X: p.X / c.pixelWidth, Y: p.Y / c.pixelHeight}
	}
	return out
}

// scaleElements rescales every control point in a path element stream.
func scaleElements(elems iter.Seq[curve.PathElement], sx, sy float64) iter.Seq[curve.PathElement] {
	scale := func(p curve.Point) curve.Point {
		return curve.Point{X: p.X * sx, Y: p.Y * sy}
	}
	return func(yield func(curve.PathElement) bool) {
		for el := range elems {
			el.P0 = scale(el.P0)
			el.P1 = scale(el.P1)
			el.P2 = scale(el.P2)
			if !yield(el) {
				return
			}
		}
	}
}
