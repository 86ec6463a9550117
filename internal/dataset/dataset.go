// Package dataset loads row documents whose geometry cells are in the wire
// format and turns them into FlatGeobuf features.
//
// A dataset is a JSON or YAML document:
//
//	name: parcels
//	kind: polygon
//	rows:
//	  - geometry: {type: Polygon, coordinates: [[[0, 0], [1, 0], [1, 1], [0, 0]]]}
//	    apn: "4293-001-001"
//
// A GeoJSON FeatureCollection is accepted as well.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CityofSantaMonica/SODA.NET-sub000/column"
	"github.com/CityofSantaMonica/SODA.NET-sub000/flatgeobuf"
	"github.com/CityofSantaMonica/SODA.NET-sub000/geometry"
	"github.com/paulmach/orb/geojson"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDataset is returned for documents that cannot be read as a
// dataset.
var ErrInvalidDataset = errors.New("dataset: invalid dataset")

// Format is a dataset document encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatGeoJSON Format = "geojson"
)

// FormatFromPath guesses the format from a file extension. Unknown
// extensions are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".geojson":
		return FormatGeoJSON
	default:
		return FormatJSON
	}
}

// Row is one dataset row keyed by column name.
type Row map[string]interface{}

// Dataset is a named list of rows. Kind, when set, is the column kind every
// geometry cell is validated against.
type Dataset struct {
	Name        string      `json:"name,omitempty" yaml:"name,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        column.Kind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Rows        []Row       `json:"rows" yaml:"rows"`

	// features holds already converted rows for GeoJSON input.
	features []flatgeobuf.Feature
}

// Load reads the dataset at path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, FormatFromPath(path))
}

// Parse decodes a dataset document. A JSON document whose type is
// FeatureCollection is read as GeoJSON.
func Parse(data []byte, format Format) (*Dataset, error) {
	if format == FormatJSON && isFeatureCollection(data) {
		format = FormatGeoJSON
	}

	switch format {
	case FormatGeoJSON:
		return parseGeoJSON(data)

	case FormatYAML:
		var ds Dataset
		if err := yaml.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
		}
		return &ds, nil

	case FormatJSON:
		var ds Dataset
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&ds); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
		}
		return &ds, nil

	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidDataset, format)
	}
}

func isFeatureCollection(data []byte) bool {
	var probe struct {
		Type string `json:"type"`
	}
	return json.Unmarshal(data, &probe) == nil && probe.Type == "FeatureCollection"
}

func parseGeoJSON(data []byte) (*Dataset, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}

	ds := &Dataset{features: make([]flatgeobuf.Feature, 0, len(fc.Features))}
	for i, gf := range fc.Features {
		f, err := flatgeobuf.FeatureFromGeoJSON(gf)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		ds.features = append(ds.features, f)
	}
	return ds, nil
}

// Len returns the number of rows.
func (ds *Dataset) Len() int {
	if ds.features != nil {
		return len(ds.features)
	}
	return len(ds.Rows)
}

// Features converts the rows to features. The cell named geometryField
// holds the shape; every other cell becomes a property. Rows with a missing
// or null geometry cell produce a feature without geometry.
func (ds *Dataset) Features(geometryField string) ([]flatgeobuf.Feature, error) {
	if ds.features != nil {
		return ds.features, nil
	}

	features := make([]flatgeobuf.Feature, 0, len(ds.Rows))
	for i, row := range ds.Rows {
		f := flatgeobuf.Feature{Properties: make(map[string]interface{}, len(row))}
		for name, value := range row {
			if name == geometryField {
				continue
			}
			f.Properties[name] = value
		}

		g, err := ds.cellGeometry(row[geometryField])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		f.Geometry = g
		features = append(features, f)
	}
	return features, nil
}

// cellGeometry decodes one geometry cell, validating it against the
// dataset kind when one is set. Location cells become Points.
func (ds *Dataset) cellGeometry(cell interface{}) (geometry.Geometry, error) {
	if cell == nil {
		return nil, nil
	}

	payload, err := json.Marshal(cell)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}

	if ds.Kind == "" {
		return geometry.Unmarshal(payload)
	}
	col, err := column.Parse(ds.Kind, payload)
	if err != nil {
		return nil, err
	}
	return col.Geometry(), nil
}
