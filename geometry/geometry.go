// Package geometry models the spatial shapes exchanged with the Socrata open
// data platform: points, lines, closed rings, polygons and their multi-part
// forms. Shapes are validated when constructed and are read-only afterwards.
//
// Every shape converts to and from the platform's wire format
//
//	{"type":"Point","coordinates":[10.0,20.0]}
//
// and projects to a WKT-style text form such as "POINT (10 20)".
package geometry

import (
	"errors"
)

// Common errors returned by this package.
var (
	ErrInvalidGeometry = errors.New("geometry: invalid geometry")
	ErrUnsupportedType = errors.New("geometry: unsupported geometry type")
)

// Type is the tag carried in the "type" field of the wire format.
type Type string

// Geometry type tags.
const (
	TypePoint           Type = "Point"
	TypeMultiPoint      Type = "MultiPoint"
	TypeLineString      Type = "LineString"
	TypeLinearRing      Type = "LinearRing"
	TypeMultiLineString Type = "MultiLineString"
	TypePolygon         Type = "Polygon"
	TypeMultiPolygon    Type = "MultiPolygon"
)

// Depth returns how deeply the coordinates of a shape of this type are nested:
// 1 for Point, 2 for MultiPoint/LineString/LinearRing, 3 for
// MultiLineString/Polygon and 4 for MultiPolygon. Unknown types return 0.
func (t Type) Depth() int {
	switch t {
	case TypePoint:
		return 1
	case TypeMultiPoint, TypeLineString, TypeLinearRing:
		return 2
	case TypeMultiLineString, TypePolygon:
		return 3
	case TypeMultiPolygon:
		return 4
	default:
		return 0
	}
}

// Geometry is one of Point, MultiPoint, LineString, LinearRing,
// MultiLineString, Polygon or MultiPolygon. The set is closed.
type Geometry interface {
	Type() Type
	Equal(Geometry) bool
	WKT() string

	tree() node
}

// Equal reports whether a and b have the same type tag and the same nested
// positions. Shapes of different types are never equal.
func Equal(a, b Geometry) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	return a.tree().equal(b.tree())
}

// checked returns nil instead of a zero-value shape when err is set.
func checked(g Geometry, err error) (Geometry, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}

// node is the nested coordinate form shared by the codec and the text
// projection. A leaf holds one position, anything else holds children.
type node struct {
	leaf     bool
	pos      Position
	children []node
}

func leafNode(p Position) node {
	return node{leaf: true, pos: p}
}

func positionsNode(ps []Position) node {
	n := node{children: make([]node, len(ps))}
	for i, p := range ps {
		n.children[i] = leafNode(p)
	}
	return n
}

func (n node) equal(o node) bool {
	if n.leaf != o.leaf {
		return false
	}
	if n.leaf {
		return n.pos.Equal(o.pos)
	}
	if len(n.children) != len(o.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].equal(o.children[i]) {
			return false
		}
	}
	return true
}
