package flatgeobuf

import (
	"fmt"

	"github.com/CityofSantaMonica/SODA.NET-sub000/geometry"
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
)

// fgbGeometryType maps a geometry to its FlatGeobuf GeometryType. A
// LinearRing is stored as a single-ring polygon.
func fgbGeometryType(g geometry.Geometry) flattypes.GeometryType {
	if g == nil {
		return flattypes.GeometryTypeUnknown
	}
	switch g.Type() {
	case geometry.TypePoint:
		return flattypes.GeometryTypePoint
	case geometry.TypeMultiPoint:
		return flattypes.GeometryTypeMultiPoint
	case geometry.TypeLineString:
		return flattypes.GeometryTypeLineString
	case geometry.TypeMultiLineString:
		return flattypes.GeometryTypeMultiLineString
	case geometry.TypeLinearRing, geometry.TypePolygon:
		return flattypes.GeometryTypePolygon
	case geometry.TypeMultiPolygon:
		return flattypes.GeometryTypeMultiPolygon
	default:
		return flattypes.GeometryTypeUnknown
	}
}

// geometryToFGB converts a geometry to a FlatGeobuf writer.Geometry. Only
// the first two ordinates of each position are written.
func geometryToFGB(g geometry.Geometry, builder *flatbuffers.Builder) *writer.Geometry {
	if g == nil {
		return nil
	}

	fg := writer.NewGeometry(builder)
	fg.SetType(fgbGeometryType(g))

	switch v := g.(type) {
	case geometry.Point:
		if v.Position().Len() < 2 {
			return nil
		}
		fg.SetXY([]float64{v.X(), v.Y()})

	case geometry.MultiPoint:
		fg.SetXY(positionsToXY(v.Coords()))

	case geometry.LineString:
		fg.SetXY(positionsToXY(v.Coords()))

	case geometry.MultiLineString:
		xy, ends := partsToXYEnds(v.Coords())
		fg.SetXY(xy)
		fg.SetEnds(ends)

	case geometry.LinearRing:
		xy, ends := partsToXYEnds([][][]float64{v.Coords()})
		fg.SetXY(xy)
		fg.SetEnds(ends)

	case geometry.Polygon:
		xy, ends := partsToXYEnds(v.Coords())
		fg.SetXY(xy)
		fg.SetEnds(ends)

	case geometry.MultiPolygon:
		parts := make([]writer.Geometry, 0, v.Len())
		for _, poly := range v.Polygons() {
			pg := writer.NewGeometry(builder)
			pg.SetType(flattypes.GeometryTypePolygon)
			xy, ends := partsToXYEnds(poly.Coords())
			pg.SetXY(xy)
			pg.SetEnds(ends)
			parts = append(parts, *pg)
		}
		fg.SetParts(parts)

	default:
		return nil
	}

	return fg
}

// geometryFromFGB converts a stored FlatGeobuf geometry back, applying the
// geometry construction rules.
func geometryFromFGB(fg *flattypes.Geometry) (geometry.Geometry, error) {
	if fg == nil {
		return nil, ErrNilGeometry
	}

	switch fg.Type() {
	case flattypes.GeometryTypePoint:
		if fg.XyLength() < 2 {
			return nil, fmt.Errorf("%w: point without coordinates", ErrInvalidData)
		}
		return checked(geometry.NewPoint(fg.Xy(0), fg.Xy(1)))

	case flattypes.GeometryTypeMultiPoint:
		return checked(geometry.MultiPointFromCoords(xyToPositions(fg, 0, fg.XyLength()/2)))

	case flattypes.GeometryTypeLineString:
		return checked(geometry.LineStringFromCoords(xyToPositions(fg, 0, fg.XyLength()/2)))

	case flattypes.GeometryTypeMultiLineString:
		return checked(geometry.MultiLineStringFromCoords(xyEndsToParts(fg)))

	case flattypes.GeometryTypePolygon:
		return checked(geometry.PolygonFromCoords(xyEndsToParts(fg)))

	case flattypes.GeometryTypeMultiPolygon:
		partsLen := fg.PartsLength()
		if partsLen == 0 {
			// Some writers store a single polygon without parts.
			return checked(geometry.MultiPolygonFromCoords([][][][]float64{xyEndsToParts(fg)}))
		}
		coords := make([][][][]float64, 0, partsLen)
		for i := 0; i < partsLen; i++ {
			var part flattypes.Geometry
			if fg.Parts(&part, i) {
				coords = append(coords, xyEndsToParts(&part))
			}
		}
		return checked(geometry.MultiPolygonFromCoords(coords))

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, flattypes.EnumNamesGeometryType[fg.Type()])
	}
}

// checked returns nil instead of a zero-value shape when err is set.
func checked(g geometry.Geometry, err error) (geometry.Geometry, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Helper functions for writing

func positionsToXY(coords [][]float64) []float64 {
	xy := make([]float64, 0, len(coords)*2)
	for _, c := range coords {
		xy = append(xy, c[0], c[1])
	}
	return xy
}

// partsToXYEnds flattens rings or lines into one XY array plus the
// cumulative end index of each part.
func partsToXYEnds(parts [][][]float64) ([]float64, []uint32) {
	total := 0
	for _, p := range parts {
		total += len(p)
	}

	xy := make([]float64, 0, total*2)
	ends := make([]uint32, 0, len(parts))

	cumulative := uint32(0)
	for _, p := range parts {
		xy = append(xy, positionsToXY(p)...)
		cumulative += uint32(len(p))
		ends = append(ends, cumulative)
	}

	return xy, ends
}

// Helper functions for reading

// xyToPositions reads positions [start, end) from the XY array.
func xyToPositions(fg *flattypes.Geometry, start, end int) [][]float64 {
	xyLen := fg.XyLength()
	coords := make([][]float64, 0, end-start)
	for j := start; j < end; j++ {
		idx := j * 2
		if idx+1 >= xyLen {
			break
		}
		coords = append(coords, []float64{fg.Xy(idx), fg.Xy(idx + 1)})
	}
	return coords
}

func xyEndsToParts(fg *flattypes.Geometry) [][][]float64 {
	numPoints := fg.XyLength() / 2
	endsLen := fg.EndsLength()
	if numPoints == 0 {
		return nil
	}
	// Without ends all points form a single part.
	if endsLen == 0 {
		return [][][]float64{xyToPositions(fg, 0, numPoints)}
	}

	parts := make([][][]float64, 0, endsLen)
	start := 0
	for i := 0; i < endsLen; i++ {
		end := int(fg.Ends(i))
		parts = append(parts, xyToPositions(fg, start, end))
		start = end
	}
	return parts
}
