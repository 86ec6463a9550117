// Package column adapts geometry values to the cell payloads expected by
// Socrata's geometry-typed and location columns when rows are uploaded.
//
// Every geometry façade wraps a validated value from package geometry and
// encodes exactly as the geometry wire codec does, so there is one set of
// shape rules for reading, writing and uploading.
package column

import (
	"errors"
	"fmt"

	"github.com/CityofSantaMonica/SODA.NET-sub000/geometry"
)

// Common errors returned by this package.
var (
	ErrKindMismatch   = errors.New("column: geometry does not match column kind")
	ErrInvalidPayload = errors.New("column: invalid payload")
	ErrUnknownKind    = errors.New("column: unknown column kind")
)

// Kind is a Socrata column data type name.
type Kind string

// Column kinds that carry spatial data.
const (
	KindPoint        Kind = "point"
	KindMultiPoint   Kind = "multipoint"
	KindLine         Kind = "line"
	KindMultiLine    Kind = "multiline"
	KindPolygon      Kind = "polygon"
	KindMultiPolygon Kind = "multipolygon"
	KindLocation     Kind = "location"
)

// Kinds lists every supported kind.
func Kinds() []Kind {
	return []Kind{KindPoint, KindMultiPoint, KindLine, KindMultiLine, KindPolygon, KindMultiPolygon, KindLocation}
}

// ParseKind resolves a data type name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// GeometryType returns the wire type tag a column of this kind carries.
// KindLocation has none.
func (k Kind) GeometryType() (geometry.Type, bool) {
	switch k {
	case KindPoint:
		return geometry.TypePoint, true
	case KindMultiPoint:
		return geometry.TypeMultiPoint, true
	case KindLine:
		return geometry.TypeLineString, true
	case KindMultiLine:
		return geometry.TypeMultiLineString, true
	case KindPolygon:
		return geometry.TypePolygon, true
	case KindMultiPolygon:
		return geometry.TypeMultiPolygon, true
	default:
		return "", false
	}
}

// Column is a geometry cell ready to be encoded into an upload row.
type Column interface {
	Kind() Kind
	Geometry() geometry.Geometry
	MarshalJSON() ([]byte, error)
}

// For returns the façade matching g. A LinearRing is uploaded as a line.
func For(g geometry.Geometry) (Column, error) {
	switch v := g.(type) {
	case geometry.Point:
		return PointColumn{point: v}, nil
	case geometry.MultiPoint:
		return MultiPointColumn{points: v}, nil
	case geometry.LineString:
		return LineColumn{line: v}, nil
	case geometry.LinearRing:
		return LineColumn{line: v.LineString()}, nil
	case geometry.MultiLineString:
		return MultiLineColumn{lines: v}, nil
	case geometry.Polygon:
		return PolygonColumn{polygon: v}, nil
	case geometry.MultiPolygon:
		return MultiPolygonColumn{polygons: v}, nil
	case nil:
		return nil, fmt.Errorf("%w: nil geometry", ErrKindMismatch)
	default:
		return nil, fmt.Errorf("%w: %s", ErrKindMismatch, g.Type())
	}
}

// ForKind returns the façade for g, failing when g cannot be stored in a
// column of kind k.
func ForKind(k Kind, g geometry.Geometry) (Column, error) {
	c, err := For(g)
	if err != nil {
		return nil, err
	}
	if c.Kind() != k {
		return nil, fmt.Errorf("%w: %s column cannot hold %s", ErrKindMismatch, k, g.Type())
	}
	return c, nil
}
