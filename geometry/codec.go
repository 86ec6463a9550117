package geometry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// wireGeometry is the object form exchanged with the platform.
type wireGeometry struct {
	Type        Type
	Coordinates json.RawMessage
}

// Member names are matched exactly; encoding/json alone would also accept
// "TYPE" or "Coordinates".
func (w *wireGeometry) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	rawType, ok := members["type"]
	if !ok {
		return errors.New(`missing "type" member`)
	}
	var t string
	if err := json.Unmarshal(rawType, &t); err != nil {
		return fmt.Errorf(`"type": %v`, err)
	}
	w.Type = Type(t)
	w.Coordinates = members["coordinates"]
	return nil
}

// Marshal encodes g in the wire format. Coordinates are always written as
// decimals, so 10 is emitted as 10.0.
func Marshal(g Geometry) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil geometry", ErrInvalidGeometry)
	}
	return appendGeometry(make([]byte, 0, 64), g)
}

func appendGeometry(b []byte, g Geometry) ([]byte, error) {
	b = append(b, `{"type":`...)
	b = strconv.AppendQuote(b, string(g.Type()))
	b = append(b, `,"coordinates":`...)

	b, err := appendNode(b, g.tree())
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", g.Type(), err)
	}
	return append(b, '}'), nil
}

func appendNode(b []byte, n node) ([]byte, error) {
	if n.leaf {
		return n.pos.appendJSON(b)
	}

	b = append(b, '[')
	for i, c := range n.children {
		if i > 0 {
			b = append(b, ',')
		}
		var err error
		if b, err = appendNode(b, c); err != nil {
			return b, err
		}
	}
	return append(b, ']'), nil
}

// Unmarshal decodes a wire-format object into the shape named by its "type"
// field. The nesting of "coordinates" must match the type and every
// construction rule applies.
func Unmarshal(data []byte) (Geometry, error) {
	var w wireGeometry
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	return w.decode()
}

func (w wireGeometry) decode() (Geometry, error) {
	raw := bytes.TrimSpace(w.Coordinates)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: %s has no coordinates", ErrInvalidGeometry, w.Type)
	}

	switch w.Type {
	case TypePoint:
		var c []float64
		if err := decodeCoords(raw, w.Type, &c); err != nil {
			return nil, err
		}
		return checked(NewPoint(c...))

	case TypeMultiPoint:
		var c [][]float64
		if err := decodeCoords(raw, w.Type, &c); err != nil {
			return nil, err
		}
		return checked(MultiPointFromCoords(c))

	case TypeLineString:
		var c [][]float64
		if err := decodeCoords(raw, w.Type, &c); err != nil {
			return nil, err
		}
		return checked(LineStringFromCoords(c))

	case TypeLinearRing:
		var c [][]float64
		if err := decodeCoords(raw, w.Type, &c); err != nil {
			return nil, err
		}
		return checked(LinearRingFromCoords(c))

	case TypeMultiLineString:
		var c [][][]float64
		if err := decodeCoords(raw, w.Type, &c); err != nil {
			return nil, err
		}
		return checked(MultiLineStringFromCoords(c))

	case TypePolygon:
		var c [][][]float64
		if err := decodeCoords(raw, w.Type, &c); err != nil {
			return nil, err
		}
		return checked(PolygonFromCoords(c))

	case TypeMultiPolygon:
		var c [][][][]float64
		if err := decodeCoords(raw, w.Type, &c); err != nil {
			return nil, err
		}
		return checked(MultiPolygonFromCoords(c))

	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidGeometry, w.Type)
	}
}

func decodeCoords(raw json.RawMessage, t Type, dst any) error {
	if err := rejectNullOrdinates(raw); err != nil {
		return fmt.Errorf("%w: %s coordinates: %v", ErrInvalidGeometry, t, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s coordinates must be nested %d deep: %v", ErrInvalidGeometry, t, t.Depth(), err)
	}
	return nil
}

// rejectNullOrdinates fails when any element of the nested arrays in raw is
// null. encoding/json leaves a float64 untouched for null, which would read
// [10.0,null] as [10.0,0.0].
func rejectNullOrdinates(raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return walkNulls(v)
}

func walkNulls(v any) error {
	switch v := v.(type) {
	case nil:
		return errors.New("null ordinate")
	case []any:
		for _, c := range v {
			if err := walkNulls(c); err != nil {
				return err
			}
		}
	}
	return nil
}

func unmarshalAs(data []byte, want Type) (Geometry, error) {
	g, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if g.Type() != want {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrInvalidGeometry, want, g.Type())
	}
	return g, nil
}

// Value holds any Geometry so that it can sit in a struct field and be
// encoded or decoded by encoding/json. A nil Geometry encodes as null.
type Value struct {
	Geometry Geometry
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Geometry == nil {
		return []byte("null"), nil
	}
	return Marshal(v.Geometry)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		v.Geometry = nil
		return nil
	}
	g, err := Unmarshal(data)
	if err != nil {
		return err
	}
	v.Geometry = g
	return nil
}

// MarshalJSON encodes p in the wire format.
func (p Point) MarshalJSON() ([]byte, error) { return Marshal(p) }

// UnmarshalJSON decodes a wire object whose type is Point.
func (p *Point) UnmarshalJSON(data []byte) error {
	g, err := unmarshalAs(data, TypePoint)
	if err != nil {
		return err
	}
	*p = g.(Point)
	return nil
}

// MarshalJSON encodes mp in the wire format.
func (mp MultiPoint) MarshalJSON() ([]byte, error) { return Marshal(mp) }

// UnmarshalJSON decodes a wire object whose type is MultiPoint.
func (mp *MultiPoint) UnmarshalJSON(data []byte) error {
	g, err := unmarshalAs(data, TypeMultiPoint)
	if err != nil {
		return err
	}
	*mp = g.(MultiPoint)
	return nil
}

// MarshalJSON encodes ls in the wire format.
func (ls LineString) MarshalJSON() ([]byte, error) { return Marshal(ls) }

// UnmarshalJSON decodes a wire object whose type is LineString.
func (ls *LineString) UnmarshalJSON(data []byte) error {
	g, err := unmarshalAs(data, TypeLineString)
	if err != nil {
		return err
	}
	*ls = g.(LineString)
	return nil
}

// MarshalJSON encodes r in the wire format.
func (r LinearRing) MarshalJSON() ([]byte, error) { return Marshal(r) }

// UnmarshalJSON decodes a wire object whose type is LinearRing.
func (r *LinearRing) UnmarshalJSON(data []byte) error {
	g, err := unmarshalAs(data, TypeLinearRing)
	if err != nil {
		return err
	}
	*r = g.(LinearRing)
	return nil
}

// MarshalJSON encodes ml in the wire format.
func (ml MultiLineString) MarshalJSON() ([]byte, error) { return Marshal(ml) }

// UnmarshalJSON decodes a wire object whose type is MultiLineString.
func (ml *MultiLineString) UnmarshalJSON(data []byte) error {
	g, err := unmarshalAs(data, TypeMultiLineString)
	if err != nil {
		return err
	}
	*ml = g.(MultiLineString)
	return nil
}

// MarshalJSON encodes p in the wire format.
func (p Polygon) MarshalJSON() ([]byte, error) { return Marshal(p) }

// UnmarshalJSON decodes a wire object whose type is Polygon.
func (p *Polygon) UnmarshalJSON(data []byte) error {
	g, err := unmarshalAs(data, TypePolygon)
	if err != nil {
		return err
	}
	*p = g.(Polygon)
	return nil
}

// MarshalJSON encodes mp in the wire format.
func (mp MultiPolygon) MarshalJSON() ([]byte, error) { return Marshal(mp) }

// UnmarshalJSON decodes a wire object whose type is MultiPolygon.
func (mp *MultiPolygon) UnmarshalJSON(data []byte) error {
	g, err := unmarshalAs(data, TypeMultiPolygon)
	if err != nil {
		return err
	}
	*mp = g.(MultiPolygon)
	return nil
}
