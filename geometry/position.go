package geometry

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Position is an ordered tuple of ordinates: longitude, latitude and any
// further values such as elevation. A valid Position has at least two.
type Position struct {
	values []float64
}

// NewPosition returns a Position holding a copy of values.
func NewPosition(values ...float64) (Position, error) {
	if err := validatePosition(values); err != nil {
		return Position{}, err
	}
	v := make([]float64, len(values))
	copy(v, values)
	return Position{values: v}, nil
}

func validatePosition(values []float64) error {
	if len(values) < 2 {
		return fmt.Errorf("%w: position needs at least 2 ordinates, got %d", ErrInvalidGeometry, len(values))
	}
	return nil
}

func (p Position) valid() bool {
	return len(p.values) >= 2
}

// Len returns the number of ordinates.
func (p Position) Len() int {
	return len(p.values)
}

// At returns the i-th ordinate. It panics if i is outside [0, Len()).
func (p Position) At(i int) float64 {
	return p.values[i]
}

// X returns the first ordinate (longitude). The zero Position has none and
// panics.
func (p Position) X() float64 {
	return p.values[0]
}

// Y returns the second ordinate (latitude).
func (p Position) Y() float64 {
	return p.values[1]
}

// Values returns a copy of the ordinates.
func (p Position) Values() []float64 {
	v := make([]float64, len(p.values))
	copy(v, p.values)
	return v
}

// Equal reports whether both positions hold the same ordinates in order.
func (p Position) Equal(o Position) bool {
	if len(p.values) != len(o.values) {
		return false
	}
	for i, v := range p.values {
		if v != o.values[i] {
			return false
		}
	}
	return true
}

// String returns the ordinates separated by single spaces, e.g. "10 20".
func (p Position) String() string {
	var b strings.Builder
	p.writeText(&b)
	return b.String()
}

func (p Position) writeText(b *strings.Builder) {
	for i, v := range p.values {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
}

// MarshalJSON encodes the position as a bare array of numbers. Whole values
// keep a decimal point: [10.0,20.0].
func (p Position) MarshalJSON() ([]byte, error) {
	return p.appendJSON(nil)
}

// UnmarshalJSON decodes a bare array of at least two numbers.
func (p *Position) UnmarshalJSON(data []byte) error {
	if err := rejectNullOrdinates(data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	if err := validatePosition(values); err != nil {
		return err
	}
	p.values = values
	return nil
}

func (p Position) appendJSON(b []byte) ([]byte, error) {
	if err := validatePosition(p.values); err != nil {
		return b, err
	}
	b = append(b, '[')
	for i, v := range p.values {
		if i > 0 {
			b = append(b, ',')
		}
		var err error
		if b, err = appendWireFloat(b, v); err != nil {
			return b, err
		}
	}
	return append(b, ']'), nil
}

// appendWireFloat formats f the way the platform emits coordinates: plain
// decimal notation that always carries a fractional part.
func appendWireFloat(b []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return b, fmt.Errorf("%w: ordinate %v cannot be encoded", ErrInvalidGeometry, f)
	}
	start := len(b)
	b = strconv.AppendFloat(b, f, 'f', -1, 64)
	if !strings.ContainsRune(string(b[start:]), '.') {
		b = append(b, '.', '0')
	}
	return b, nil
}

func positionsFromCoords(coords [][]float64) ([]Position, error) {
	ps := make([]Position, len(coords))
	for i, c := range coords {
		p, err := NewPosition(c...)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		ps[i] = p
	}
	return ps, nil
}

func positionsFromPoints(points []Point) ([]Position, error) {
	ps := make([]Position, len(points))
	for i, pt := range points {
		if !pt.pos.valid() {
			return nil, fmt.Errorf("point %d: %w: empty point", i, ErrInvalidGeometry)
		}
		ps[i] = pt.pos
	}
	return ps, nil
}

func coordsOf(ps []Position) [][]float64 {
	out := make([][]float64, len(ps))
	for i, p := range ps {
		out[i] = p.Values()
	}
	return out
}
