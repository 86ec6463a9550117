package flatgeobuf

import (
	"errors"
	"testing"

	"github.com/CityofSantaMonica/SODA.NET-sub000/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func TestFeature_GeoJSON(t *testing.T) {
	f := Feature{
		Geometry:   mustPoint(t, -118.4912, 34.0195),
		Properties: map[string]interface{}{"name": "pier"},
	}

	gf := f.GeoJSON()
	p, ok := gf.Geometry.(orb.Point)
	if !ok {
		t.Fatalf("expected orb.Point, got %T", gf.Geometry)
	}
	if p != (orb.Point{-118.4912, 34.0195}) {
		t.Errorf("unexpected point %v", p)
	}
	if gf.Properties["name"] != "pier" {
		t.Errorf("expected name 'pier', got %v", gf.Properties["name"])
	}
}

func TestFeatureFromGeoJSON(t *testing.T) {
	gf := geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}})
	gf.Properties["zone"] = "R1"

	f, err := FeatureFromGeoJSON(gf)
	if err != nil {
		t.Fatalf("FeatureFromGeoJSON failed: %v", err)
	}
	if f.Geometry.Type() != geometry.TypePolygon {
		t.Errorf("expected Polygon, got %s", f.Geometry.Type())
	}
	if f.Properties["zone"] != "R1" {
		t.Errorf("expected zone 'R1', got %v", f.Properties["zone"])
	}
}

func TestFeatureFromGeoJSON_Errors(t *testing.T) {
	if _, err := FeatureFromGeoJSON(nil); !errors.Is(err, ErrNilGeometry) {
		t.Errorf("expected ErrNilGeometry, got %v", err)
	}
	if _, err := FeatureFromGeoJSON(&geojson.Feature{}); !errors.Is(err, ErrNilGeometry) {
		t.Errorf("expected ErrNilGeometry, got %v", err)
	}

	open := geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}})
	if _, err := FeatureFromGeoJSON(open); !errors.Is(err, geometry.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry for an open ring, got %v", err)
	}
}
