package geometry

import "fmt"

// Point is a single position.
type Point struct {
	pos Position
}

// NewPoint builds a Point from its ordinates.
func NewPoint(values ...float64) (Point, error) {
	p, err := NewPosition(values...)
	if err != nil {
		return Point{}, err
	}
	return Point{pos: p}, nil
}

// PointFromPosition wraps p in a Point. The zero Position is rejected.
func PointFromPosition(p Position) (Point, error) {
	if err := validatePosition(p.values); err != nil {
		return Point{}, err
	}
	return Point{pos: p}, nil
}

// Type returns TypePoint.
func (p Point) Type() Type { return TypePoint }

// Position returns the wrapped position.
func (p Point) Position() Position { return p.pos }

// X returns the longitude. It panics on a zero Point; use a constructor.
func (p Point) X() float64 { return p.pos.X() }

// Y returns the latitude. It panics on a zero Point.
func (p Point) Y() float64 { return p.pos.Y() }

// Coords returns a copy of the ordinates.
func (p Point) Coords() []float64 { return p.pos.Values() }

// Equal reports whether g is a Point with the same positions.
func (p Point) Equal(g Geometry) bool { return Equal(p, g) }

// WKT returns the text projection of p.
func (p Point) WKT() string { return WKT(p) }

func (p Point) tree() node { return leafNode(p.pos) }

// MultiPoint is an ordered, possibly empty, list of positions.
type MultiPoint struct {
	points []Position
}

// NewMultiPoint collects points into a MultiPoint.
func NewMultiPoint(points ...Point) (MultiPoint, error) {
	ps, err := positionsFromPoints(points)
	if err != nil {
		return MultiPoint{}, err
	}
	return MultiPoint{points: ps}, nil
}

// MultiPointFromCoords builds a MultiPoint from raw ordinate arrays.
func MultiPointFromCoords(coords [][]float64) (MultiPoint, error) {
	ps, err := positionsFromCoords(coords)
	if err != nil {
		return MultiPoint{}, err
	}
	return MultiPoint{points: ps}, nil
}

// Type returns TypeMultiPoint.
func (mp MultiPoint) Type() Type { return TypeMultiPoint }

// Len returns the number of points.
func (mp MultiPoint) Len() int { return len(mp.points) }

// At returns the i-th point.
func (mp MultiPoint) At(i int) Point { return Point{pos: mp.points[i]} }

// Points returns the points in order.
func (mp MultiPoint) Points() []Point {
	out := make([]Point, len(mp.points))
	for i, p := range mp.points {
		out[i] = Point{pos: p}
	}
	return out
}

// Coords returns a copy of the nested ordinate arrays.
func (mp MultiPoint) Coords() [][]float64 { return coordsOf(mp.points) }

// WithAt returns a copy of mp with the i-th point replaced.
func (mp MultiPoint) WithAt(i int, p Point) (MultiPoint, error) {
	if i < 0 || i >= len(mp.points) {
		return MultiPoint{}, fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidGeometry, i, len(mp.points))
	}
	if !p.pos.valid() {
		return MultiPoint{}, fmt.Errorf("%w: empty point", ErrInvalidGeometry)
	}
	ps := make([]Position, len(mp.points))
	copy(ps, mp.points)
	ps[i] = p.pos
	return MultiPoint{points: ps}, nil
}

// Equal reports whether g is a MultiPoint with the same positions.
func (mp MultiPoint) Equal(g Geometry) bool { return Equal(mp, g) }

// WKT returns the text projection of mp.
func (mp MultiPoint) WKT() string { return WKT(mp) }

func (mp MultiPoint) tree() node { return positionsNode(mp.points) }
