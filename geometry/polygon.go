package geometry

import "fmt"

// Polygon is an ordered list of rings: the exterior boundary first, then any
// holes. Holes are not checked for containment.
type Polygon struct {
	rings []LinearRing
}

// NewPolygon wraps rings into a Polygon.
func NewPolygon(rings ...LinearRing) (Polygon, error) {
	out := make([]LinearRing, len(rings))
	for i, r := range rings {
		if err := validateRing(r.line.points); err != nil {
			return Polygon{}, fmt.Errorf("ring %d: %w", i, err)
		}
		out[i] = r
	}
	return Polygon{rings: out}, nil
}

// PolygonFromCoords builds a Polygon from raw ordinate arrays, validating
// every ring.
func PolygonFromCoords(coords [][][]float64) (Polygon, error) {
	out := make([]LinearRing, len(coords))
	for i, c := range coords {
		r, err := LinearRingFromCoords(c)
		if err != nil {
			return Polygon{}, fmt.Errorf("ring %d: %w", i, err)
		}
		out[i] = r
	}
	return Polygon{rings: out}, nil
}

// Type returns TypePolygon.
func (p Polygon) Type() Type { return TypePolygon }

// Len returns the number of rings.
func (p Polygon) Len() int { return len(p.rings) }

// At returns the i-th ring.
func (p Polygon) At(i int) LinearRing { return p.rings[i] }

// Rings returns the rings in order.
func (p Polygon) Rings() []LinearRing {
	out := make([]LinearRing, len(p.rings))
	copy(out, p.rings)
	return out
}

// Exterior returns the outer ring, if the polygon has one.
func (p Polygon) Exterior() (LinearRing, bool) {
	if len(p.rings) == 0 {
		return LinearRing{}, false
	}
	return p.rings[0], true
}

// Holes returns the interior rings.
func (p Polygon) Holes() []LinearRing {
	if len(p.rings) < 2 {
		return nil
	}
	out := make([]LinearRing, len(p.rings)-1)
	copy(out, p.rings[1:])
	return out
}

// Coords returns a copy of the nested ordinate arrays.
func (p Polygon) Coords() [][][]float64 {
	out := make([][][]float64, len(p.rings))
	for i, r := range p.rings {
		out[i] = r.Coords()
	}
	return out
}

// WithAt returns a copy of p with the i-th ring replaced.
func (p Polygon) WithAt(i int, r LinearRing) (Polygon, error) {
	if i < 0 || i >= len(p.rings) {
		return Polygon{}, fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidGeometry, i, len(p.rings))
	}
	rings := p.Rings()
	rings[i] = r
	return NewPolygon(rings...)
}

// Equal reports whether g is a Polygon with the same positions.
func (p Polygon) Equal(g Geometry) bool { return Equal(p, g) }

// WKT returns the text projection of p.
func (p Polygon) WKT() string { return WKT(p) }

func (p Polygon) tree() node {
	n := node{children: make([]node, len(p.rings))}
	for i, r := range p.rings {
		n.children[i] = r.tree()
	}
	return n
}

// MultiPolygon is an ordered, possibly empty, list of polygons.
type MultiPolygon struct {
	polygons []Polygon
}

// NewMultiPolygon collects polygons into a MultiPolygon.
func NewMultiPolygon(polygons ...Polygon) MultiPolygon {
	out := make([]Polygon, len(polygons))
	copy(out, polygons)
	return MultiPolygon{polygons: out}
}

// MultiPolygonFromCoords builds a MultiPolygon from raw ordinate arrays.
func MultiPolygonFromCoords(coords [][][][]float64) (MultiPolygon, error) {
	out := make([]Polygon, len(coords))
	for i, c := range coords {
		p, err := PolygonFromCoords(c)
		if err != nil {
			return MultiPolygon{}, fmt.Errorf("polygon %d: %w", i, err)
		}
		out[i] = p
	}
	return MultiPolygon{polygons: out}, nil
}

// Type returns TypeMultiPolygon.
func (mp MultiPolygon) Type() Type { return TypeMultiPolygon }

// Len returns the number of polygons.
func (mp MultiPolygon) Len() int { return len(mp.polygons) }

// At returns the i-th polygon.
func (mp MultiPolygon) At(i int) Polygon { return mp.polygons[i] }

// Polygons returns the polygons in order.
func (mp MultiPolygon) Polygons() []Polygon {
	out := make([]Polygon, len(mp.polygons))
	copy(out, mp.polygons)
	return out
}

// Coords returns a copy of the nested ordinate arrays.
func (mp MultiPolygon) Coords() [][][][]float64 {
	out := make([][][][]float64, len(mp.polygons))
	for i, p := range mp.polygons {
		out[i] = p.Coords()
	}
	return out
}

// WithAt returns a copy of mp with the i-th polygon replaced.
func (mp MultiPolygon) WithAt(i int, p Polygon) (MultiPolygon, error) {
	if i < 0 || i >= len(mp.polygons) {
		return MultiPolygon{}, fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidGeometry, i, len(mp.polygons))
	}
	polygons := mp.Polygons()
	polygons[i] = p
	return MultiPolygon{polygons: polygons}, nil
}

// Equal reports whether g is a MultiPolygon with the same positions.
func (mp MultiPolygon) Equal(g Geometry) bool { return Equal(mp, g) }

// WKT returns the text projection of mp.
func (mp MultiPolygon) WKT() string { return WKT(mp) }

func (mp MultiPolygon) tree() node {
	n := node{children: make([]node, len(mp.polygons))}
	for i, p := range mp.polygons {
		n.children[i] = p.tree()
	}
	return n
}
