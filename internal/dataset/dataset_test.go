package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/CityofSantaMonica/SODA.NET-sub000/column"
	"github.com/CityofSantaMonica/SODA.NET-sub000/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlDataset = `
name: parcels
kind: polygon
rows:
  - geometry:
      type: Polygon
      coordinates: [[[0, 0], [10, 0], [10, 10], [0, 0]]]
    apn: "4293-001-001"
    acres: 1.5
  - geometry: null
    apn: "4293-001-002"
`

const jsonDataset = `{
  "name": "stops",
  "rows": [
    {"the_geom": {"type": "Point", "coordinates": [-118.4912, 34.0195]}, "stop_id": 7},
    {"the_geom": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}, "stop_id": 8}
  ]
}`

const geoJSONDataset = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 2]}, "properties": {"name": "a"}},
    {"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]}, "properties": {"name": "b"}}
  ]
}`

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("rows.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("rows.YML"))
	assert.Equal(t, FormatGeoJSON, FormatFromPath("rows.geojson"))
	assert.Equal(t, FormatJSON, FormatFromPath("rows.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("rows"))
}

func TestParse_YAML(t *testing.T) {
	ds, err := Parse([]byte(yamlDataset), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "parcels", ds.Name)
	assert.Equal(t, column.KindPolygon, ds.Kind)
	assert.Equal(t, 2, ds.Len())

	features, err := ds.Features("geometry")
	require.NoError(t, err)
	require.Len(t, features, 2)

	assert.Equal(t, "POLYGON ((0 0, 10 0, 10 10, 0 0))", features[0].Geometry.WKT())
	assert.Equal(t, "4293-001-001", features[0].Properties["apn"])
	assert.Equal(t, 1.5, features[0].Properties["acres"])
	assert.NotContains(t, features[0].Properties, "geometry")

	assert.Nil(t, features[1].Geometry)
	assert.Equal(t, "4293-001-002", features[1].Properties["apn"])
}

func TestParse_JSON(t *testing.T) {
	ds, err := Parse([]byte(jsonDataset), FormatJSON)
	require.NoError(t, err)

	features, err := ds.Features("the_geom")
	require.NoError(t, err)
	require.Len(t, features, 2)

	assert.Equal(t, geometry.TypePoint, features[0].Geometry.Type())
	assert.Equal(t, json.Number("7"), features[0].Properties["stop_id"])
	assert.Equal(t, geometry.TypeLineString, features[1].Geometry.Type())
}

func TestParse_GeoJSON(t *testing.T) {
	for _, format := range []Format{FormatGeoJSON, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			ds, err := Parse([]byte(geoJSONDataset), format)
			require.NoError(t, err)
			assert.Equal(t, 2, ds.Len())

			features, err := ds.Features("ignored")
			require.NoError(t, err)
			require.Len(t, features, 2)

			assert.Equal(t, "POINT (1 2)", features[0].Geometry.WKT())
			assert.Equal(t, "a", features[0].Properties["name"])
			assert.Equal(t, geometry.TypePolygon, features[1].Geometry.Type())
		})
	}
}

func TestFeatures_KindMismatch(t *testing.T) {
	ds := &Dataset{
		Kind: column.KindPolygon,
		Rows: []Row{{"geometry": map[string]interface{}{
			"type":        "Point",
			"coordinates": []interface{}{1, 2},
		}}},
	}

	_, err := ds.Features("geometry")
	assert.ErrorIs(t, err, column.ErrInvalidPayload)
}

func TestFeatures_Location(t *testing.T) {
	ds := &Dataset{
		Kind: column.KindLocation,
		Rows: []Row{{"location": map[string]interface{}{
			"latitude":  "34.0195",
			"longitude": "-118.4912",
		}}},
	}

	features, err := ds.Features("location")
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, "POINT (-118.4912 34.0195)", features[0].Geometry.WKT())
}

func TestFeatures_InvalidGeometry(t *testing.T) {
	ds, err := Parse([]byte(`{"rows":[{"geometry":{"type":"LinearRing","coordinates":[[0,0],[1,0],[1,1],[0,1]]}}]}`), FormatJSON)
	require.NoError(t, err)

	_, err = ds.Features("geometry")
	assert.ErrorIs(t, err, geometry.ErrInvalidGeometry)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("rows: [unclosed"), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidDataset)

	_, err = Parse([]byte("{"), FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidDataset)

	_, err = Parse([]byte("{}"), Format("csv"))
	assert.ErrorIs(t, err, ErrInvalidDataset)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parcels.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDataset), 0o600))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "parcels", ds.Name)

	_, err = Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
