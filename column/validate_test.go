package column

import (
	"testing"

	"github.com/CityofSantaMonica/SODA.NET-sub000/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	tests := []struct {
		kind    Kind
		payload string
	}{
		{KindPoint, `{"type":"Point","coordinates":[10.0,20.0]}`},
		{KindMultiPoint, `{"type":"MultiPoint","coordinates":[[10.0,20.0],[30.0,40.0]]}`},
		{KindLine, `{"type":"LineString","coordinates":[[10.0,20.0],[30.0,40.0]]}`},
		{KindMultiLine, `{"type":"MultiLineString","coordinates":[[[10.0,20.0],[30.0,40.0]]]}`},
		{KindPolygon, `{"type":"Polygon","coordinates":[[[10.0,20.0],[30.0,40.0],[50.0,20.0],[10.0,20.0]]]}`},
		{KindMultiPolygon, `{"type":"MultiPolygon","coordinates":[[[[10.0,20.0],[30.0,40.0],[50.0,20.0],[10.0,20.0]]]]}`},
		{KindLocation, `{"latitude":"34.0195","longitude":"-118.4912","human_address":"200 Santa Monica Pier"}`},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.NoError(t, Validate(tt.kind, []byte(tt.payload)))
		})
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		payload string
	}{
		{"wrong type tag", KindPoint, `{"type":"LineString","coordinates":[[10.0,20.0],[30.0,40.0]]}`},
		{"depth mismatch", KindLine, `{"type":"LineString","coordinates":[10.0,20.0]}`},
		{"short position", KindPoint, `{"type":"Point","coordinates":[10.0]}`},
		{"missing coordinates", KindPolygon, `{"type":"Polygon"}`},
		{"open ring", KindPolygon, `{"type":"Polygon","coordinates":[[[10.0,20.0],[30.0,40.0],[50.0,20.0],[11.0,20.0]]]}`},
		{"not json", KindPoint, `{`},
		{"location numbers", KindLocation, `{"latitude":34.0,"longitude":-118.0}`},
		{"location text", KindLocation, `{"latitude":"north","longitude":"west"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.kind, []byte(tt.payload))
			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestValidate_GeometryErrorsStayVisible(t *testing.T) {
	err := Validate(KindPolygon, []byte(`{"type":"Polygon","coordinates":[[[10.0,20.0],[30.0,40.0],[50.0,20.0],[11.0,20.0]]]}`))
	assert.ErrorIs(t, err, geometry.ErrInvalidGeometry)
}

func TestParse_Location(t *testing.T) {
	c, err := Parse(KindLocation, []byte(`{"latitude":"34.0195","longitude":"-118.4912"}`))
	require.NoError(t, err)

	p, ok := c.Geometry().(geometry.Point)
	require.True(t, ok)
	assert.Equal(t, -118.4912, p.X())
	assert.Equal(t, 34.0195, p.Y())
}

func TestSchema_UnknownKind(t *testing.T) {
	_, err := Schema(Kind("circle"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}
