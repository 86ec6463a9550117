package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/CityofSantaMonica/SODA.NET-sub000/flatgeobuf"
	"github.com/CityofSantaMonica/SODA.NET-sub000/geometry"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type inspectCommand struct {
	Input    string `short:"i" long:"input"    required:"true" description:"FlatGeobuf file"`
	Format   string `short:"f" long:"format"   choice:"json" choice:"yaml" default:"json" description:"Output format"`
	Features bool   `long:"features"           description:"Include every feature"`

	app *app
}

type inspectReport struct {
	Header   *flatgeobuf.Header `json:"header" yaml:"header"`
	Features []featureView      `json:"features,omitempty" yaml:"features,omitempty"`
}

// featureView is one feature as printed: the wire geometry for JSON output
// and its text form for both formats.
type featureView struct {
	Geometry   geometry.Value         `json:"geometry" yaml:"-"`
	WKT        string                 `json:"wkt" yaml:"wkt"`
	Properties map[string]interface{} `json:"properties,omitempty" yaml:"properties,omitempty"`
}

func (c *inspectCommand) Execute([]string) error {
	data, err := os.ReadFile(c.Input)
	if err != nil {
		return err
	}
	reader, err := flatgeobuf.NewReaderFromData(data)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Input, err)
	}
	defer func() { _ = reader.Close() }()

	report := inspectReport{Header: reader.Header()}
	if c.Features {
		if !report.Header.HasIndex {
			log.Warn().Str("input", c.Input).Msg("File has no spatial index, features cannot be listed")
		}
		features, err := reader.ReadAll()
		if err != nil {
			return err
		}
		report.Features = make([]featureView, 0, len(features))
		for _, f := range features {
			report.Features = append(report.Features, featureView{
				Geometry:   geometry.Value{Geometry: f.Geometry},
				WKT:        f.Geometry.WKT(),
				Properties: f.Properties,
			})
		}
	}

	switch c.Format {
	case "yaml":
		enc := yaml.NewEncoder(c.app.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(c.app.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
}
