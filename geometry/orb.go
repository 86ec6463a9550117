package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
)

// ToOrb converts g to the equivalent orb geometry. orb is planar, so only
// the first two ordinates of each position survive. A LinearRing becomes an
// orb.Ring. Returns nil for a nil geometry.
func ToOrb(g Geometry) orb.Geometry {
	switch v := g.(type) {
	case Point:
		return toOrbPoint(v.pos)
	case MultiPoint:
		return orb.MultiPoint(toOrbPoints(v.points))
	case LineString:
		return orb.LineString(toOrbPoints(v.points))
	case LinearRing:
		return orb.Ring(toOrbPoints(v.line.points))
	case MultiLineString:
		mls := make(orb.MultiLineString, 0, len(v.lines))
		for _, l := range v.lines {
			mls = append(mls, orb.LineString(toOrbPoints(l.points)))
		}
		return mls
	case Polygon:
		return toOrbPolygon(v)
	case MultiPolygon:
		mp := make(orb.MultiPolygon, 0, len(v.polygons))
		for _, p := range v.polygons {
			mp = append(mp, toOrbPolygon(p))
		}
		return mp
	default:
		return nil
	}
}

// FromOrb converts an orb geometry, applying the usual construction rules.
// An orb.Bound becomes a Polygon with one ring. Collections are not
// supported.
func FromOrb(g orb.Geometry) (Geometry, error) {
	switch v := g.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil geometry", ErrInvalidGeometry)
	case orb.Point:
		return checked(NewPoint(v[0], v[1]))
	case orb.MultiPoint:
		return checked(MultiPointFromCoords(fromOrbPoints(v)))
	case orb.LineString:
		return checked(LineStringFromCoords(fromOrbPoints(v)))
	case orb.Ring:
		return checked(LinearRingFromCoords(fromOrbPoints(v)))
	case orb.MultiLineString:
		coords := make([][][]float64, len(v))
		for i, l := range v {
			coords[i] = fromOrbPoints(l)
		}
		return checked(MultiLineStringFromCoords(coords))
	case orb.Polygon:
		return checked(PolygonFromCoords(fromOrbPolygon(v)))
	case orb.MultiPolygon:
		coords := make([][][][]float64, len(v))
		for i, p := range v {
			coords[i] = fromOrbPolygon(p)
		}
		return checked(MultiPolygonFromCoords(coords))
	case orb.Bound:
		return checked(PolygonFromCoords(fromOrbPolygon(v.ToPolygon())))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, g.GeoJSONType())
	}
}

// Bound returns the planar bounding box of g.
func Bound(g Geometry) orb.Bound {
	og := ToOrb(g)
	if og == nil {
		return orb.Bound{}
	}
	return og.Bound()
}

func toOrbPoint(p Position) orb.Point {
	if !p.valid() {
		return orb.Point{}
	}
	return orb.Point{p.values[0], p.values[1]}
}

func toOrbPoints(ps []Position) []orb.Point {
	out := make([]orb.Point, len(ps))
	for i, p := range ps {
		out[i] = toOrbPoint(p)
	}
	return out
}

func toOrbPolygon(p Polygon) orb.Polygon {
	poly := make(orb.Polygon, 0, len(p.rings))
	for _, r := range p.rings {
		poly = append(poly, orb.Ring(toOrbPoints(r.line.points)))
	}
	return poly
}

func fromOrbPoints(ps []orb.Point) [][]float64 {
	out := make([][]float64, len(ps))
	for i, p := range ps {
		out[i] = []float64{p[0], p[1]}
	}
	return out
}

func fromOrbPolygon(p orb.Polygon) [][][]float64 {
	out := make([][][]float64, len(p))
	for i, r := range p {
		out[i] = fromOrbPoints(r)
	}
	return out
}
