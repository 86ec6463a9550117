package column

import (
	"github.com/CityofSantaMonica/SODA.NET-sub000/geometry"
)

// PointColumn is a cell of a point column.
type PointColumn struct {
	point geometry.Point
}

// NewPointColumn builds a point cell from longitude, latitude and any
// further ordinates.
func NewPointColumn(coords ...float64) (PointColumn, error) {
	p, err := geometry.NewPoint(coords...)
	if err != nil {
		return PointColumn{}, err
	}
	return PointColumn{point: p}, nil
}

func (c PointColumn) Kind() Kind                       { return KindPoint }
func (c PointColumn) Geometry() geometry.Geometry      { return c.point }
func (c PointColumn) Point() geometry.Point            { return c.point }
func (c PointColumn) MarshalJSON() ([]byte, error)     { return geometry.Marshal(c.point) }
func (c *PointColumn) UnmarshalJSON(data []byte) error { return c.point.UnmarshalJSON(data) }

// MultiPointColumn is a cell of a multipoint column.
type MultiPointColumn struct {
	points geometry.MultiPoint
}

// NewMultiPointColumn builds a multipoint cell from raw ordinate arrays.
func NewMultiPointColumn(coords [][]float64) (MultiPointColumn, error) {
	mp, err := geometry.MultiPointFromCoords(coords)
	if err != nil {
		return MultiPointColumn{}, err
	}
	return MultiPointColumn{points: mp}, nil
}

func (c MultiPointColumn) Kind() Kind                       { return KindMultiPoint }
func (c MultiPointColumn) Geometry() geometry.Geometry      { return c.points }
func (c MultiPointColumn) MarshalJSON() ([]byte, error)     { return geometry.Marshal(c.points) }
func (c *MultiPointColumn) UnmarshalJSON(data []byte) error { return c.points.UnmarshalJSON(data) }

// LineColumn is a cell of a line column.
type LineColumn struct {
	line geometry.LineString
}

// NewLineColumn builds a line cell from raw ordinate arrays.
func NewLineColumn(coords [][]float64) (LineColumn, error) {
	ls, err := geometry.LineStringFromCoords(coords)
	if err != nil {
		return LineColumn{}, err
	}
	return LineColumn{line: ls}, nil
}

func (c LineColumn) Kind() Kind                       { return KindLine }
func (c LineColumn) Geometry() geometry.Geometry      { return c.line }
func (c LineColumn) MarshalJSON() ([]byte, error)     { return geometry.Marshal(c.line) }
func (c *LineColumn) UnmarshalJSON(data []byte) error { return c.line.UnmarshalJSON(data) }

// MultiLineColumn is a cell of a multiline column.
type MultiLineColumn struct {
	lines geometry.MultiLineString
}

// NewMultiLineColumn builds a multiline cell from raw ordinate arrays.
func NewMultiLineColumn(coords [][][]float64) (MultiLineColumn, error) {
	ml, err := geometry.MultiLineStringFromCoords(coords)
	if err != nil {
		return MultiLineColumn{}, err
	}
	return MultiLineColumn{lines: ml}, nil
}

func (c MultiLineColumn) Kind() Kind                       { return KindMultiLine }
func (c MultiLineColumn) Geometry() geometry.Geometry      { return c.lines }
func (c MultiLineColumn) MarshalJSON() ([]byte, error)     { return geometry.Marshal(c.lines) }
func (c *MultiLineColumn) UnmarshalJSON(data []byte) error { return c.lines.UnmarshalJSON(data) }

// PolygonColumn is a cell of a polygon column.
type PolygonColumn struct {
	polygon geometry.Polygon
}

// NewPolygonColumn builds a polygon cell from raw ordinate arrays. Every
// ring must be closed.
func NewPolygonColumn(coords [][][]float64) (PolygonColumn, error) {
	p, err := geometry.PolygonFromCoords(coords)
	if err != nil {
		return PolygonColumn{}, err
	}
	return PolygonColumn{polygon: p}, nil
}

func (c PolygonColumn) Kind() Kind                       { return KindPolygon }
func (c PolygonColumn) Geometry() geometry.Geometry      { return c.polygon }
func (c PolygonColumn) MarshalJSON() ([]byte, error)     { return geometry.Marshal(c.polygon) }
func (c *PolygonColumn) UnmarshalJSON(data []byte) error { return c.polygon.UnmarshalJSON(data) }

// MultiPolygonColumn is a cell of a multipolygon column.
type MultiPolygonColumn struct {
	polygons geometry.MultiPolygon
}

// NewMultiPolygonColumn builds a multipolygon cell from raw ordinate arrays.
func NewMultiPolygonColumn(coords [][][][]float64) (MultiPolygonColumn, error) {
	mp, err := geometry.MultiPolygonFromCoords(coords)
	if err != nil {
		return MultiPolygonColumn{}, err
	}
	return MultiPolygonColumn{polygons: mp}, nil
}

func (c MultiPolygonColumn) Kind() Kind                       { return KindMultiPolygon }
func (c MultiPolygonColumn) Geometry() geometry.Geometry      { return c.polygons }
func (c MultiPolygonColumn) MarshalJSON() ([]byte, error)     { return geometry.Marshal(c.polygons) }
func (c *MultiPolygonColumn) UnmarshalJSON(data []byte) error { return c.polygons.UnmarshalJSON(data) }
