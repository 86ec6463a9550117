package geometry

import "fmt"

// LinearRing is a closed LineString: at least four positions, the first
// equal to the last. Rings bound polygons.
type LinearRing struct {
	line LineString
}

// NewLinearRing builds a ring from positions.
func NewLinearRing(points ...Position) (LinearRing, error) {
	ls, err := NewLineString(points...)
	if err != nil {
		return LinearRing{}, err
	}
	return ringFromLine(ls)
}

// LinearRingFromCoords builds a ring from raw ordinate arrays.
func LinearRingFromCoords(coords [][]float64) (LinearRing, error) {
	ls, err := LineStringFromCoords(coords)
	if err != nil {
		return LinearRing{}, err
	}
	return ringFromLine(ls)
}

// LinearRingFromPoints builds a ring from points.
func LinearRingFromPoints(points ...Point) (LinearRing, error) {
	ls, err := LineStringFromPoints(points...)
	if err != nil {
		return LinearRing{}, err
	}
	return ringFromLine(ls)
}

// LinearRingFromLineString checks that ls is closed and returns it as a ring.
func LinearRingFromLineString(ls LineString) (LinearRing, error) {
	if err := validateLine(ls.points); err != nil {
		return LinearRing{}, err
	}
	return ringFromLine(ls)
}

func ringFromLine(ls LineString) (LinearRing, error) {
	if err := validateRing(ls.points); err != nil {
		return LinearRing{}, err
	}
	return LinearRing{line: ls}, nil
}

func validateRing(ps []Position) error {
	if len(ps) < 4 {
		return fmt.Errorf("%w: linear ring needs at least 4 positions, got %d", ErrInvalidGeometry, len(ps))
	}
	if !ps[0].Equal(ps[len(ps)-1]) {
		return fmt.Errorf("%w: linear ring is not closed: first %v, last %v", ErrInvalidGeometry, ps[0], ps[len(ps)-1])
	}
	return nil
}

// Type returns TypeLinearRing.
func (r LinearRing) Type() Type { return TypeLinearRing }

// LineString returns the ring as a plain LineString.
func (r LinearRing) LineString() LineString { return r.line }

// Len returns the number of positions, closing position included.
func (r LinearRing) Len() int { return r.line.Len() }

// At returns the i-th position as a Point.
func (r LinearRing) At(i int) Point { return r.line.At(i) }

// Positions returns the positions in order.
func (r LinearRing) Positions() []Position { return r.line.Positions() }

// Coords returns a copy of the nested ordinate arrays.
func (r LinearRing) Coords() [][]float64 { return r.line.Coords() }

// WithAt returns a copy of r with the i-th position replaced. The result
// must still be closed, so replacing an endpoint alone fails.
func (r LinearRing) WithAt(i int, p Point) (LinearRing, error) {
	ls, err := r.line.WithAt(i, p)
	if err != nil {
		return LinearRing{}, err
	}
	return ringFromLine(ls)
}

// Equal reports whether g is a LinearRing with the same positions.
func (r LinearRing) Equal(g Geometry) bool { return Equal(r, g) }

// WKT returns the text projection of r.
func (r LinearRing) WKT() string { return WKT(r) }

func (r LinearRing) tree() node { return r.line.tree() }
