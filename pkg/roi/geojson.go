package roi

import (
	"encoding/json"
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// GeoJSON encoding of ROIs.
//
// The feature geometry carries the interoperable flattened form; the feature
// properties carry the exact shape parameters and plane, so shapes with a
// parametric description (rectangle, ellipse, line) survive the round trip
// with zero tolerance rather than within flattening tolerance.

// ToFeature converts a ROI to a GeoJSON feature.
func ToFeature(r ROI) (*geojson.Feature, error) {
	var f *geojson.Feature
	switch v := r.(type) {
	case Rectangle:
		f = geojson.NewFeature(geojson.NewPolygonGeometry([][][]float64{closedRing(v.PolygonPoints())}))
		setRectProperties(f, v.x, v.y, v.w, v.h)
	case Ellipse:
		f = geojson.NewFeature(geojson.NewPolygonGeometry([][][]float64{closedRing(v.PolygonPoints())}))
		setRectProperties(f, v.x, v.y, v.w, v.h)
	case Polygon:
		f = geojson.NewFeature(geojson.NewPolygonGeometry([][][]float64{closedRing(v.points)}))
	case Composite:
		f = geojson.NewFeature(geojson.NewMultiPolygonGeometry(compositePolygons(v)...))
	case LineString:
		f = geojson.NewFeature(geojson.NewLineStringGeometry(coords(v.points)))
	case PointSet:
		if v.NumPoints() == 1 {
			p := v.points[0]
			f = geojson.NewFeature(geojson.NewPointGeometry([]float64{p.X, p.Y}))
		} else {
			f = geojson.NewFeature(geojson.NewMultiPointGeometry(coords(v.points)...))
		}
	default:
		return nil, fmt.Errorf("cannot encode ROI of kind %q", r.Kind())
	}
	f.SetProperty("kind", r.Kind())
	plane := r.Plane()
	f.SetProperty("c", plane.C)
	f.SetProperty("z", plane.Z)
	f.SetProperty("t", plane.T)
	return f, nil
}

// FromFeature reconstructs a ROI from a GeoJSON feature produced by
// ToFeature.
func FromFeature(f *geojson.Feature) (ROI, error) {
	kind, err := f.PropertyString("kind")
	if err != nil {
		return nil, fmt.Errorf("feature has no ROI kind property: %w", err)
	}
	plane, err := planeFromProperties(f)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "rectangle", "ellipse":
		x, y, w, h, err := rectProperties(f)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", kind, err)
		}
		if kind == "rectangle" {
			return NewRectangle(x, y, w, h, plane), nil
		}
		return NewEllipse(x, y, w, h, plane), nil
	case "polygon":
		if f.Geometry == nil || f.Geometry.Type != geojson.GeometryPolygon || len(f.Geometry.Polygon) == 0 {
			return nil, fmt.Errorf("polygon feature carries no polygon geometry")
		}
		return NewPolygon(openRing(f.Geometry.Polygon[0]), plane), nil
	case "composite":
		if f.Geometry == nil || f.Geometry.Type != geojson.GeometryMultiPolygon {
			return nil, fmt.Errorf("composite feature carries no multi-polygon geometry")
		}
		var outers, holes [][]Point
		for _, poly := range f.Geometry.MultiPolygon {
			if len(poly) == 0 {
				continue
			}
			outers = append(outers, openRing(poly[0]))
			for _, hole := range poly[1:] {
				holes = append(holes, openRing(hole))
			}
		}
		return NewComposite(outers, holes, plane), nil
	case "line", "polyline":
		if f.Geometry == nil || f.Geometry.Type != geojson.GeometryLineString {
			return nil, fmt.Errorf("line feature carries no linestring geometry")
		}
		return NewPolyline(points(f.Geometry.LineString), plane), nil
	case "points":
		if f.Geometry == nil {
			return nil, fmt.Errorf("points feature carries no geometry")
		}
		switch f.Geometry.Type {
		case geojson.GeometryPoint:
			return NewPointSet(points([][]float64{f.Geometry.Point}), plane), nil
		case geojson.GeometryMultiPoint:
			return NewPointSet(points(f.Geometry.MultiPoint), plane), nil
		}
		return nil, fmt.Errorf("points feature carries geometry %q", f.Geometry.Type)
	}
	return nil, fmt.Errorf("unknown ROI kind %q", kind)
}

// MarshalGeoJSON encodes a ROI as a GeoJSON feature document.
func MarshalGeoJSON(r ROI) ([]byte, error) {
	f, err := ToFeature(r)
	if err != nil {
		return nil, err
	}
	return json.Marshal(f)
}

// UnmarshalGeoJSON decodes a ROI from a GeoJSON feature document.
func UnmarshalGeoJSON(data []byte) (ROI, error) {
	f, err := geojson.UnmarshalFeature(data)
	if err != nil {
		return nil, fmt.Errorf("decoding feature: %w", err)
	}
	return FromFeature(f)
}

func setRectProperties(f *geojson.Feature, x, y, w, h float64) {
	f.SetProperty("x", x)
	f.SetProperty("y", y)
	f.SetProperty("width", w)
	f.SetProperty("height", h)
}

func rectProperties(f *geojson.Feature) (x, y, w, h float64, err error) {
	if x, err = f.PropertyFloat64("x"); err != nil {
		return
	}
	if y, err = f.PropertyFloat64("y"); err != nil {
		return
	}
	if w, err = f.PropertyFloat64("width"); err != nil {
		return
	}
	h, err = f.PropertyFloat64("height")
	return
}

func planeFromProperties(f *geojson.Feature) (Plane, error) {
	c, err := f.PropertyInt("c")
	if err != nil {
		return Plane{}, fmt.Errorf("feature has no plane: %w", err)
	}
	z, err := f.PropertyInt("z")
	if err != nil {
		return Plane{}, fmt.Errorf("feature has no plane: %w", err)
	}
	t, err := f.PropertyInt("t")
	if err != nil {
		return Plane{}, fmt.Errorf("feature has no plane: %w", err)
	}
	return Plane{C: c, Z: z, T: t}, nil
}

// compositePolygons groups a composite's rings for GeoJSON: one polygon per
// outer ring, with each hole attached to the first outer ring containing its
// leading vertex.
func compositePolygons(c Composite) [][][][]float64 {
	polys := make([][][][]float64, len(c.outers))
	for i, outer := range c.outers {
		polys[i] = [][][]float64{closedRing(outer)}
	}
	for _, hole := range c.holes {
		for i, outer := range c.outers {
			if ringContains(outer, hole[0].X, hole[0].Y) {
				polys[i] = append(polys[i], closedRing(hole))
				break
			}
		}
	}
	return polys
}

// closedRing encodes vertices as a GeoJSON linear ring, repeating the first
// coordinate at the end.
func closedRing(pts []Point) [][]float64 {
	out := coords(pts)
	if len(out) > 0 {
		out = append(out, []float64{pts[0].X, pts[0].Y})
	}
	return out
}

// openRing strips the closing coordinate added by closedRing.
func openRing(ring [][]float64) []Point {
	pts := points(ring)
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return pts
}

func coords(pts []Point) [][]float64 {
	out := make([][]float64, len(pts))
	for i, p := range pts {
		out[i] = []float64{p.X, p.Y}
	}
	return out
}

func points(coords [][]float64) []Point {
	out := make([]Point, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		out = append(out, Point{X: c[0], Y: c[1]})
	}
	return out
}
