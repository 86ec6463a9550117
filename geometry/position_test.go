package geometry

import (
	"errors"
	"testing"
)

func TestNewPosition(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantErr bool
	}{
		{"empty", []float64{}, true},
		{"single", []float64{0.1}, true},
		{"two", []float64{10.11, 11.12}, false},
		{"three", []float64{100.0, 111.0, 122.0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPosition(tt.values...)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidGeometry) {
					t.Fatalf("expected ErrInvalidGeometry, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Len() != len(tt.values) {
				t.Errorf("expected %d ordinates, got %d", len(tt.values), p.Len())
			}
			for i, v := range tt.values {
				if p.At(i) != v {
					t.Errorf("ordinate %d: expected %v, got %v", i, v, p.At(i))
				}
			}
		})
	}
}

func TestPosition_CopiesInput(t *testing.T) {
	values := []float64{1, 2}
	p, err := NewPosition(values...)
	if err != nil {
		t.Fatal(err)
	}

	values[0] = 99
	if p.X() != 1 {
		t.Errorf("position changed with its input slice: %v", p)
	}

	out := p.Values()
	out[1] = 99
	if p.Y() != 2 {
		t.Errorf("position changed through Values(): %v", p)
	}
}

func TestPosition_JSON(t *testing.T) {
	p, _ := NewPosition(10, 20.5)

	data, err := p.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(data) != "[10.0,20.5]" {
		t.Errorf("expected [10.0,20.5], got %s", data)
	}

	var back Position
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON failed: %v", err)
	}
	if !back.Equal(p) {
		t.Errorf("expected %v, got %v", p, back)
	}
}

func TestPosition_UnmarshalJSON_Invalid(t *testing.T) {
	for _, input := range []string{`[]`, `[0.1]`, `{"x":1}`, `"10 20"`, `[1,"a"]`, `[10.0,null]`, `[null,null]`, `null`} {
		var p Position
		if err := p.UnmarshalJSON([]byte(input)); !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("%s: expected ErrInvalidGeometry, got %v", input, err)
		}
	}
}

func TestPosition_String(t *testing.T) {
	p, _ := NewPosition(10, 20, 1.5)
	if got := p.String(); got != "10 20 1.5" {
		t.Errorf("expected %q, got %q", "10 20 1.5", got)
	}
}

func TestAppendWireFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10.0"},
		{-3, "-3.0"},
		{0.1, "0.1"},
		{-122.4194155, "-122.4194155"},
		{1e21, "1000000000000000000000.0"},
	}

	for _, tt := range tests {
		got, err := appendWireFloat(nil, tt.in)
		if err != nil {
			t.Fatalf("%v: %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("%v: expected %s, got %s", tt.in, tt.want, got)
		}
	}
}
