package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sodageo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "geometry", cfg.Export.GeometryField)
	assert.True(t, cfg.Export.IncludeIndex)
	assert.Equal(t, 4326, cfg.Export.CRSCode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
export:
  layer_name: parcels
  geometry_field: the_geom
  include_index: false
log:
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "parcels", cfg.Export.LayerName)
	assert.Equal(t, "the_geom", cfg.Export.GeometryField)
	assert.False(t, cfg.Export.IncludeIndex)
	assert.Equal(t, 4326, cfg.Export.CRSCode)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "export:\n  layer_name: parcels\n")
	t.Setenv("SODAGEO_EXPORT_LAYER_NAME", "zoning")
	t.Setenv("SODAGEO_EXPORT_CRS_CODE", "3857")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "zoning", cfg.Export.LayerName)
	assert.Equal(t, 3857, cfg.Export.CRSCode)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, "log:\n  format: xml\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
}

func TestValidate_ReportsEveryField(t *testing.T) {
	cfg := &Config{
		Export: ExportConfig{CRSCode: -1},
		Log:    LogConfig{Level: "loud", Format: "xml"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, field := range []string{"export.geometry_field", "export.crs_code", "log.level", "log.format"} {
		assert.Contains(t, err.Error(), field)
	}
}

// chdir changes the working directory to dir for the duration of the test,
// restoring the previous directory on cleanup (equivalent of Go 1.24 t.Chdir).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
