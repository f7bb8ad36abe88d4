package reader

import (
	"github.com/geospan/geospan/bbox"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	pkgerrors "github.com/pkg/errors"
)

// geojsonExtractor parses line as a single GeoJSON Feature and computes
// its covering bbox by recursing through the geometry, per spec.md
// §4.1's extractor rules: Point widens to a degenerate bbox; MultiPoint/
// LineString union all vertex bboxes; MultiLineString/Polygon union
// rings' bboxes; MultiPolygon unions polygons' bboxes;
// GeometryCollection unions its members' bboxes.
func geojsonExtractor(line []byte) (bbox.BBox, error) {
	feature, err := geojson.UnmarshalFeature(line)
	if err != nil {
		return bbox.BBox{}, pkgerrors.Wrap(err, "reader: parse GeoJSON feature")
	}
	if feature.Geometry == nil {
		return bbox.BBox{}, pkgerrors.New("reader: GeoJSON feature has no geometry")
	}
	return geojsonBBox(feature.Geometry), nil
}

// geojsonBBox is the bbox-from-geometry recursion: the in-scope
// extractor policy layered over the out-of-scope GeoJSON parser.
func geojsonBBox(geom orb.Geometry) bbox.BBox {
	switch g := geom.(type) {
	case orb.Point:
		return bbox.Point(float32(g.X()), float32(g.Y()))
	case orb.MultiPoint:
		b := bbox.Empty()
		for _, p := range g {
			b.IncludePoint(float32(p.X()), float32(p.Y()))
		}
		return b
	case orb.LineString:
		b := bbox.Empty()
		for _, p := range g {
			b.IncludePoint(float32(p.X()), float32(p.Y()))
		}
		return b
	case orb.MultiLineString:
		b := bbox.Empty()
		for _, ls := range g {
			b.IncludeBBox(geojsonBBox(ls))
		}
		return b
	case orb.Polygon:
		b := bbox.Empty()
		for _, ring := range g {
			b.IncludeBBox(geojsonBBox(orb.LineString(ring)))
		}
		return b
	case orb.MultiPolygon:
		b := bbox.Empty()
		for _, poly := range g {
			b.IncludeBBox(geojsonBBox(poly))
		}
		return b
	case orb.Collection:
		b := bbox.Empty()
		for _, member := range g {
			b.IncludeBBox(geojsonBBox(member))
		}
		return b
	default:
		return bbox.Empty()
	}
}
