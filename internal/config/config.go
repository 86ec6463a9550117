// Package config loads sodageo settings from an optional YAML file and
// SODAGEO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides:
// SODAGEO_EXPORT_LAYER_NAME → export.layer_name.
const EnvPrefix = "SODAGEO"

// Config holds all sodageo configuration.
type Config struct {
	Export ExportConfig `mapstructure:"export"`
	Log    LogConfig    `mapstructure:"log"`
}

// ExportConfig holds the FlatGeobuf export defaults.
type ExportConfig struct {
	LayerName     string `mapstructure:"layer_name"`
	Description   string `mapstructure:"description"`
	GeometryField string `mapstructure:"geometry_field"`
	IncludeIndex  bool   `mapstructure:"include_index"`
	CRSCode       int    `mapstructure:"crs_code"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration. When path is empty a sodageo.yaml in the
// working directory or ./configs is used if present; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("export.layer_name", "")
	v.SetDefault("export.description", "")
	v.SetDefault("export.geometry_field", "geometry")
	v.SetDefault("export.include_index", true)
	v.SetDefault("export.crs_code", 4326)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("sodageo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Export.GeometryField == "" {
		errs = append(errs, "export.geometry_field is required")
	}
	if c.Export.CRSCode < 0 {
		errs = append(errs, fmt.Sprintf("export.crs_code must not be negative, got %d", c.Export.CRSCode))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level %q is not a known level", c.Log.Level))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Sprintf("log.format must be console or json, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
