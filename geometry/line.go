package geometry

import "fmt"

// LineString is an ordered list of two or more positions.
type LineString struct {
	points []Position
}

// NewLineString builds a LineString from positions.
func NewLineString(points ...Position) (LineString, error) {
	if err := validateLine(points); err != nil {
		return LineString{}, err
	}
	ps := make([]Position, len(points))
	copy(ps, points)
	return LineString{points: ps}, nil
}

// LineStringFromCoords builds a LineString from raw ordinate arrays.
func LineStringFromCoords(coords [][]float64) (LineString, error) {
	ps, err := positionsFromCoords(coords)
	if err != nil {
		return LineString{}, err
	}
	if err := validateLine(ps); err != nil {
		return LineString{}, err
	}
	return LineString{points: ps}, nil
}

// LineStringFromPoints builds a LineString from points.
func LineStringFromPoints(points ...Point) (LineString, error) {
	ps, err := positionsFromPoints(points)
	if err != nil {
		return LineString{}, err
	}
	if err := validateLine(ps); err != nil {
		return LineString{}, err
	}
	return LineString{points: ps}, nil
}

func validateLine(ps []Position) error {
	if len(ps) < 2 {
		return fmt.Errorf("%w: line string needs at least 2 positions, got %d", ErrInvalidGeometry, len(ps))
	}
	for i, p := range ps {
		if !p.valid() {
			return fmt.Errorf("position %d: %w: empty position", i, ErrInvalidGeometry)
		}
	}
	return nil
}

// Type returns TypeLineString.
func (ls LineString) Type() Type { return TypeLineString }

// Len returns the number of positions.
func (ls LineString) Len() int { return len(ls.points) }

// At returns the i-th position as a Point.
func (ls LineString) At(i int) Point { return Point{pos: ls.points[i]} }

// Positions returns the positions in order.
func (ls LineString) Positions() []Position {
	ps := make([]Position, len(ls.points))
	copy(ps, ls.points)
	return ps
}

// Coords returns a copy of the nested ordinate arrays.
func (ls LineString) Coords() [][]float64 { return coordsOf(ls.points) }

// WithAt returns a copy of ls with the i-th position replaced.
func (ls LineString) WithAt(i int, p Point) (LineString, error) {
	ps, err := replacePosition(ls.points, i, p)
	if err != nil {
		return LineString{}, err
	}
	return NewLineString(ps...)
}

// Equal reports whether g is a LineString with the same positions.
func (ls LineString) Equal(g Geometry) bool { return Equal(ls, g) }

// WKT returns the text projection of ls.
func (ls LineString) WKT() string { return WKT(ls) }

func (ls LineString) tree() node { return positionsNode(ls.points) }

func replacePosition(points []Position, i int, p Point) ([]Position, error) {
	if i < 0 || i >= len(points) {
		return nil, fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidGeometry, i, len(points))
	}
	ps := make([]Position, len(points))
	copy(ps, points)
	ps[i] = p.pos
	return ps, nil
}

// MultiLineString is an ordered, possibly empty, list of line strings.
type MultiLineString struct {
	lines []LineString
}

// NewMultiLineString collects lines into a MultiLineString.
func NewMultiLineString(lines ...LineString) (MultiLineString, error) {
	out := make([]LineString, len(lines))
	for i, l := range lines {
		if err := validateLine(l.points); err != nil {
			return MultiLineString{}, fmt.Errorf("line %d: %w", i, err)
		}
		out[i] = l
	}
	return MultiLineString{lines: out}, nil
}

// MultiLineStringFromCoords builds a MultiLineString from raw ordinate arrays.
func MultiLineStringFromCoords(coords [][][]float64) (MultiLineString, error) {
	out := make([]LineString, len(coords))
	for i, c := range coords {
		l, err := LineStringFromCoords(c)
		if err != nil {
			return MultiLineString{}, fmt.Errorf("line %d: %w", i, err)
		}
		out[i] = l
	}
	return MultiLineString{lines: out}, nil
}

// Type returns TypeMultiLineString.
func (ml MultiLineString) Type() Type { return TypeMultiLineString }

// Len returns the number of lines.
func (ml MultiLineString) Len() int { return len(ml.lines) }

// At returns the i-th line.
func (ml MultiLineString) At(i int) LineString { return ml.lines[i] }

// Lines returns the lines in order.
func (ml MultiLineString) Lines() []LineString {
	out := make([]LineString, len(ml.lines))
	copy(out, ml.lines)
	return out
}

// Coords returns a copy of the nested ordinate arrays.
func (ml MultiLineString) Coords() [][][]float64 {
	out := make([][][]float64, len(ml.lines))
	for i, l := range ml.lines {
		out[i] = l.Coords()
	}
	return out
}

// WithAt returns a copy of ml with the i-th line replaced.
func (ml MultiLineString) WithAt(i int, l LineString) (MultiLineString, error) {
	if i < 0 || i >= len(ml.lines) {
		return MultiLineString{}, fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidGeometry, i, len(ml.lines))
	}
	lines := ml.Lines()
	lines[i] = l
	return NewMultiLineString(lines...)
}

// Equal reports whether g is a MultiLineString with the same positions.
func (ml MultiLineString) Equal(g Geometry) bool { return Equal(ml, g) }

// WKT returns the text projection of ml.
func (ml MultiLineString) WKT() string { return WKT(ml) }

func (ml MultiLineString) tree() node {
	n := node{children: make([]node, len(ml.lines))}
	for i, l := range ml.lines {
		n.children[i] = l.tree()
	}
	return n
}
