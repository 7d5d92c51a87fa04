package geojson

import (
	"github.com/paulmach/orb"

	"github.com/valpere/vectortile/pkg/vectortile"
)

// applyGeometryTransform applies transform to every coordinate of geom,
// preserving its concrete orb type. Adapted from the teacher's
// pkg/mvt/geometry.go, generalized to the same geometry kinds.
func applyGeometryTransform(geom orb.Geometry, transform func(orb.Point) orb.Point) orb.Geometry {
	switch g := geom.(type) {
	case orb.Point:
		return transform(g)
	case orb.MultiPoint:
		result := make(orb.MultiPoint, len(g))
		for i, point := range g {
			result[i] = transform(point)
		}
		return result
	case orb.LineString:
		result := make(orb.LineString, len(g))
		for i, point := range g {
			result[i] = transform(point)
		}
		return result
	case orb.MultiLineString:
		result := make(orb.MultiLineString, len(g))
		for i, ls := range g {
			result[i] = applyGeometryTransform(ls, transform).(orb.LineString)
		}
		return result
	case orb.Ring:
		result := make(orb.Ring, len(g))
		for i, point := range g {
			result[i] = transform(point)
		}
		return result
	case orb.Polygon:
		result := make(orb.Polygon, len(g))
		for i, ring := range g {
			result[i] = applyGeometryTransform(ring, transform).(orb.Ring)
		}
		return result
	case orb.MultiPolygon:
		result := make(orb.MultiPolygon, len(g))
		for i, poly := range g {
			result[i] = applyGeometryTransform(poly, transform).(orb.Polygon)
		}
		return result
	default:
		return geom
	}
}

// geomBuilder implements vectortile.GeometryHandler, accumulating
// tile-local (unprojected) orb.Geometry from decode callbacks. Point
// coordinates are tile-integer units cast to float64; projecting them
// to Web Mercator or WGS84 is the Converter's job.
type geomBuilder struct {
	vectortile.NopGeometryHandler

	points   orb.MultiPoint
	lines    orb.MultiLineString
	curLine  orb.LineString
	polygons orb.MultiPolygon
	curPoly  orb.Polygon
}

func (g *geomBuilder) PointsBegin(count uint32) bool {
	g.points = make(orb.MultiPoint, 0, count)
	return true
}
func (g *geomBuilder) PointsPoint(p vectortile.Point) bool {
	g.points = append(g.points, orb.Point{float64(p.X()), float64(p.Y())})
	return true
}

func (g *geomBuilder) LineStringBegin(count uint32) bool {
	g.curLine = make(orb.LineString, 0, count)
	return true
}
func (g *geomBuilder) LineStringPoint(p vectortile.Point) bool {
	g.curLine = append(g.curLine, orb.Point{float64(p.X()), float64(p.Y())})
	return true
}
func (g *geomBuilder) LineStringEnd() bool {
	g.lines = append(g.lines, g.curLine)
	return true
}

func (g *geomBuilder) RingBegin(count uint32) bool {
	g.curLine = make(orb.LineString, 0, count)
	return true
}
func (g *geomBuilder) RingPoint(p vectortile.Point) bool {
	g.curLine = append(g.curLine, orb.Point{float64(p.X()), float64(p.Y())})
	return true
}
func (g *geomBuilder) RingEnd(role vectortile.RingRole) bool {
	ring := orb.Ring(g.curLine)
	if role == vectortile.RingOuter || len(g.curPoly) == 0 {
		if len(g.curPoly) > 0 {
			g.polygons = append(g.polygons, g.curPoly)
		}
		g.curPoly = orb.Polygon{ring}
	} else {
		g.curPoly = append(g.curPoly, ring)
	}
	return true
}

func (g *geomBuilder) ControlPointsBegin(count uint32) bool {
	g.curLine = make(orb.LineString, 0, count)
	return true
}
func (g *geomBuilder) ControlPointsPoint(p vectortile.Point) bool {
	g.curLine = append(g.curLine, orb.Point{float64(p.X()), float64(p.Y())})
	return true
}
func (g *geomBuilder) ControlPointsEnd() bool {
	// Splines degrade to their control-point linestring; the knot
	// vector has no GeoJSON representation.
	g.lines = append(g.lines, g.curLine)
	return true
}

// result returns the final orb.Geometry for gt, collapsing a
// single-element Multi* down to its singular form the way the
// teacher's decoder.go does.
func (g *geomBuilder) result(gt vectortile.GeomType) orb.Geometry {
	switch gt {
	case vectortile.GeomTypePoint:
		if len(g.points) == 1 {
			return g.points[0]
		}
		return g.points
	case vectortile.GeomTypeLineString, vectortile.GeomTypeSpline:
		if len(g.lines) == 1 {
			return g.lines[0]
		}
		return g.lines
	case vectortile.GeomTypePolygon:
		if len(g.curPoly) > 0 {
			g.polygons = append(g.polygons, g.curPoly)
			g.curPoly = nil
		}
		if len(g.polygons) == 1 {
			return g.polygons[0]
		}
		return g.polygons
	default:
		return nil
	}
}
