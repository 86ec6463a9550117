package geometry

import (
	"errors"
	"testing"
)

func mustRing(t *testing.T, coords [][]float64) LinearRing {
	t.Helper()
	r, err := LinearRingFromCoords(coords)
	if err != nil {
		t.Fatalf("LinearRingFromCoords failed: %v", err)
	}
	return r
}

func TestLineString_MinimumLength(t *testing.T) {
	if _, err := LineStringFromCoords([][]float64{{10, 20}}); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry for one position, got %v", err)
	}
	if _, err := NewLineString(); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry for no positions, got %v", err)
	}

	ls, err := LineStringFromCoords([][]float64{{10, 20}, {30, 40}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ls.Len() != 2 {
		t.Errorf("expected 2 positions, got %d", ls.Len())
	}
}

func TestLinearRing_Closure(t *testing.T) {
	tests := []struct {
		name    string
		coords  [][]float64
		wantErr bool
	}{
		{"three points", [][]float64{{10, 20}, {30, 40}, {50, 20}}, true},
		{"closed", [][]float64{{10, 20}, {30, 40}, {50, 20}, {10, 20}}, false},
		{"not closed", [][]float64{{10, 20}, {30, 40}, {50, 20}, {11, 20}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/coords", func(t *testing.T) {
			_, err := LinearRingFromCoords(tt.coords)
			if tt.wantErr != (err != nil) {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
		})

		t.Run(tt.name+"/points", func(t *testing.T) {
			points := make([]Point, len(tt.coords))
			for i, c := range tt.coords {
				p, err := NewPoint(c...)
				if err != nil {
					t.Fatal(err)
				}
				points[i] = p
			}
			_, err := LinearRingFromPoints(points...)
			if tt.wantErr != (err != nil) {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}

func TestLinearRing_FromLineString(t *testing.T) {
	open, _ := LineStringFromCoords([][]float64{{0, 0}, {1, 0}, {1, 1}})
	if _, err := LinearRingFromLineString(open); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}

	closed, _ := LineStringFromCoords([][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 0}})
	r, err := LinearRingFromLineString(closed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.LineString().Equal(closed) {
		t.Error("expected ring to keep its line")
	}
	if r.Equal(closed) {
		t.Error("ring and line string must not compare equal")
	}
}

func TestLineString_WithAt(t *testing.T) {
	ls, _ := LineStringFromCoords([][]float64{{10, 20}, {30, 40}, {50, 20}})
	p, _ := NewPoint(1, 2)

	updated, err := ls.WithAt(1, p)
	if err != nil {
		t.Fatalf("WithAt failed: %v", err)
	}
	if !updated.At(1).Equal(p) {
		t.Errorf("expected %v at 1, got %v", p, updated.At(1))
	}
	if ls.At(1).X() != 30 {
		t.Error("original line string was modified")
	}

	if _, err := ls.WithAt(3, p); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry for out of range index, got %v", err)
	}
}

func TestLinearRing_WithAt(t *testing.T) {
	r := mustRing(t, [][]float64{{0, 0}, {10, 0}, {10, 10}, {0, 0}})
	p, _ := NewPoint(5, 5)

	if _, err := r.WithAt(1, p); err != nil {
		t.Errorf("replacing an inner position failed: %v", err)
	}
	if _, err := r.WithAt(0, p); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry when opening the ring, got %v", err)
	}
}

func TestPolygon_FromCoords(t *testing.T) {
	poly, err := PolygonFromCoords([][][]float64{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{2, 2}, {8, 2}, {8, 8}, {2, 8}, {2, 2}},
	})
	if err != nil {
		t.Fatalf("PolygonFromCoords failed: %v", err)
	}

	if poly.Len() != 2 {
		t.Fatalf("expected 2 rings, got %d", poly.Len())
	}
	ext, ok := poly.Exterior()
	if !ok || ext.Len() != 5 {
		t.Errorf("unexpected exterior ring %v", ext)
	}
	if holes := poly.Holes(); len(holes) != 1 {
		t.Errorf("expected 1 hole, got %d", len(holes))
	}

	_, err = PolygonFromCoords([][][]float64{{{0, 0}, {10, 0}, {10, 10}, {0, 10}}})
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry for open ring, got %v", err)
	}
}

func TestPolygon_ZeroRingRejected(t *testing.T) {
	if _, err := NewPolygon(LinearRing{}); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
	if _, err := NewMultiPoint(Point{}); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
	if _, err := NewMultiLineString(LineString{}); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestMultiPolygon_EqualAcrossConstructors(t *testing.T) {
	coords := [][][][]float64{
		{{{0, 0}, {5, 0}, {5, 5}, {0, 5}, {0, 0}}},
		{
			{{10, 10}, {15, 10}, {15, 15}, {10, 15}, {10, 10}},
			{{11, 11}, {12, 11}, {12, 12}, {11, 11}},
		},
	}

	fromCoords, err := MultiPolygonFromCoords(coords)
	if err != nil {
		t.Fatalf("MultiPolygonFromCoords failed: %v", err)
	}

	polys := make([]Polygon, 0, len(coords))
	for _, pc := range coords {
		rings := make([]LinearRing, 0, len(pc))
		for _, rc := range pc {
			rings = append(rings, mustRing(t, rc))
		}
		p, err := NewPolygon(rings...)
		if err != nil {
			t.Fatalf("NewPolygon failed: %v", err)
		}
		polys = append(polys, p)
	}
	fromShapes := NewMultiPolygon(polys...)

	if !fromCoords.Equal(fromShapes) {
		t.Error("expected multipolygons built both ways to be equal")
	}
	if !Equal(fromShapes, fromCoords) {
		t.Error("Equal should be symmetric")
	}
}

func TestEqual_DifferentTypes(t *testing.T) {
	coords := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 0}}
	ls, _ := LineStringFromCoords(coords)
	mp, _ := MultiPointFromCoords(coords)
	r := mustRing(t, coords)

	tests := []struct {
		name string
		a, b Geometry
	}{
		{"line vs multipoint", ls, mp},
		{"line vs ring", ls, r},
		{"ring vs multipoint", r, mp},
		{"line vs nil", ls, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Equal(tt.a, tt.b) {
				t.Error("expected shapes to differ")
			}
		})
	}

	if !Equal(nil, nil) {
		t.Error("expected nil geometries to be equal")
	}
}

func TestEqual_Values(t *testing.T) {
	a, _ := LineStringFromCoords([][]float64{{0, 0}, {1, 1}})
	b, _ := LineStringFromCoords([][]float64{{0, 0}, {1, 1}})
	c, _ := LineStringFromCoords([][]float64{{0, 0}, {1, 1, 2}})

	if !a.Equal(b) {
		t.Error("expected equal line strings")
	}
	if a.Equal(c) {
		t.Error("positions with different lengths must not be equal")
	}
}

func TestMultiLineString_Access(t *testing.T) {
	ml, err := MultiLineStringFromCoords([][][]float64{
		{{0, 0}, {1, 1}},
		{{2, 2}, {3, 3}, {4, 4}},
	})
	if err != nil {
		t.Fatalf("MultiLineStringFromCoords failed: %v", err)
	}

	if ml.Len() != 2 || ml.At(1).Len() != 3 {
		t.Fatalf("unexpected structure: %v", ml.Coords())
	}

	short, _ := LineStringFromCoords([][]float64{{9, 9}, {8, 8}})
	updated, err := ml.WithAt(0, short)
	if err != nil {
		t.Fatalf("WithAt failed: %v", err)
	}
	if !updated.At(0).Equal(short) || ml.At(0).Equal(short) {
		t.Error("WithAt must return a new value and leave the original alone")
	}

	if _, err := MultiLineStringFromCoords([][][]float64{{{0, 0}}}); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestMultiPoint_Empty(t *testing.T) {
	mp, err := MultiPointFromCoords(nil)
	if err != nil {
		t.Fatalf("empty multipoint should be valid: %v", err)
	}
	if mp.Len() != 0 {
		t.Errorf("expected no points, got %d", mp.Len())
	}
}

func TestType_Depth(t *testing.T) {
	tests := []struct {
		t     Type
		depth int
	}{
		{TypePoint, 1},
		{TypeMultiPoint, 2},
		{TypeLineString, 2},
		{TypeLinearRing, 2},
		{TypeMultiLineString, 3},
		{TypePolygon, 3},
		{TypeMultiPolygon, 4},
		{Type("Circle"), 0},
	}

	for _, tt := range tests {
		if got := tt.t.Depth(); got != tt.depth {
			t.Errorf("%s: expected depth %d, got %d", tt.t, tt.depth, got)
		}
	}
}
