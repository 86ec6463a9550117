// Package flatgeobuf exports geometry column data to the FlatGeobuf format
// and reads it back. Rows are Features: one geometry plus named property
// values whose column types are inferred when writing.
package flatgeobuf

import (
	"errors"
	"fmt"

	"github.com/CityofSantaMonica/SODA.NET-sub000/geometry"
	"github.com/paulmach/orb/geojson"
)

// Common errors returned by this package.
var (
	ErrNilGeometry     = errors.New("flatgeobuf: nil geometry")
	ErrUnsupportedType = errors.New("flatgeobuf: unsupported geometry type")
	ErrInvalidData     = errors.New("flatgeobuf: invalid data")
	ErrNoIndex         = errors.New("flatgeobuf: file has no spatial index")
)

// CRS represents a coordinate reference system.
type CRS struct {
	Code        int    `json:"code" yaml:"code"`                                   // EPSG code (e.g., 4326 for WGS84)
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`               // CRS name
	Description string `json:"description,omitempty" yaml:"description,omitempty"` // CRS description
	WKT         string `json:"wkt,omitempty" yaml:"wkt,omitempty"`                 // Well-Known Text representation
}

// WGS84 returns the standard WGS84 CRS (EPSG:4326), which is what the
// platform serves geometry columns in.
func WGS84() *CRS {
	return &CRS{
		Code: 4326,
		Name: "WGS 84",
	}
}

// Options configures FlatGeobuf writing.
type Options struct {
	Name         string // Layer name
	Description  string // Layer description
	IncludeIndex bool   // Include spatial index (default: true)
	CRS          *CRS   // Coordinate reference system (optional)
}

// DefaultOptions returns default options for writing FlatGeobuf files.
func DefaultOptions() *Options {
	return &Options{
		IncludeIndex: true,
		CRS:          WGS84(),
	}
}

// ColumnInfo describes a property column in a FlatGeobuf file.
type ColumnInfo struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"` // "Bool", "Int", "Long", "Double", "String", "Json", etc.
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Nullable    bool   `json:"nullable" yaml:"nullable"`
}

// Header contains metadata about a FlatGeobuf file.
type Header struct {
	Name          string       `json:"name" yaml:"name"`
	Description   string       `json:"description,omitempty" yaml:"description,omitempty"`
	GeometryType  string       `json:"geometry_type" yaml:"geometry_type"` // "Point", "Polygon", "Unknown", etc.
	FeaturesCount uint64       `json:"features_count" yaml:"features_count"`
	Envelope      [4]float64   `json:"envelope" yaml:"envelope"` // [minX, minY, maxX, maxY]
	CRS           *CRS         `json:"crs,omitempty" yaml:"crs,omitempty"`
	HasIndex      bool         `json:"has_index" yaml:"has_index"`
	Columns       []ColumnInfo `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// Feature is one exported row.
type Feature struct {
	Geometry   geometry.Geometry
	Properties map[string]interface{}
}

// GeoJSON converts f to an orb GeoJSON feature. Only the first two
// ordinates of each position are kept.
func (f Feature) GeoJSON() *geojson.Feature {
	gf := geojson.NewFeature(geometry.ToOrb(f.Geometry))
	for k, v := range f.Properties {
		gf.Properties[k] = v
	}
	return gf
}

// FeatureFromGeoJSON converts an orb GeoJSON feature, validating its
// geometry.
func FeatureFromGeoJSON(gf *geojson.Feature) (Feature, error) {
	if gf == nil || gf.Geometry == nil {
		return Feature{}, ErrNilGeometry
	}
	g, err := geometry.FromOrb(gf.Geometry)
	if err != nil {
		return Feature{}, fmt.Errorf("feature %v: %w", gf.ID, err)
	}

	f := Feature{Geometry: g}
	if len(gf.Properties) > 0 {
		f.Properties = make(map[string]interface{}, len(gf.Properties))
		for k, v := range gf.Properties {
			f.Properties[k] = v
		}
	}
	return f, nil
}
