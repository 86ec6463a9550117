package main

import (
	"fmt"
	"os"

	"github.com/CityofSantaMonica/SODA.NET-sub000/flatgeobuf"
	"github.com/CityofSantaMonica/SODA.NET-sub000/internal/dataset"
	"github.com/rs/zerolog/log"
)

type exportCommand struct {
	Input         string `short:"i" long:"input"          required:"true" description:"Dataset file (.json, .yaml, .yml or .geojson)"`
	Output        string `short:"o" long:"output"         required:"true" description:"FlatGeobuf file to write"`
	GeometryField string `short:"g" long:"geometry-field" description:"Row field holding the geometry (default from config)"`
	Name          string `short:"n" long:"name"           description:"Layer name (default dataset name)"`
	NoIndex       bool   `long:"no-index"                 description:"Do not write a spatial index"`
	CRSCode       int    `long:"crs"                      description:"EPSG code of the coordinates (default from config)"`

	app *app
}

// options merges flags over the configured export defaults.
func (c *exportCommand) options(ds *dataset.Dataset) *flatgeobuf.Options {
	cfg := c.app.cfg.Export

	opts := &flatgeobuf.Options{
		Name:         cfg.LayerName,
		Description:  cfg.Description,
		IncludeIndex: cfg.IncludeIndex && !c.NoIndex,
	}
	if ds.Name != "" && opts.Name == "" {
		opts.Name = ds.Name
	}
	if ds.Description != "" && opts.Description == "" {
		opts.Description = ds.Description
	}
	if c.Name != "" {
		opts.Name = c.Name
	}

	code := cfg.CRSCode
	if c.CRSCode > 0 {
		code = c.CRSCode
	}
	switch {
	case code == 4326:
		opts.CRS = flatgeobuf.WGS84()
	case code > 0:
		opts.CRS = &flatgeobuf.CRS{Code: code}
	}
	return opts
}

func (c *exportCommand) Execute([]string) error {
	field := c.GeometryField
	if field == "" {
		field = c.app.cfg.Export.GeometryField
	}

	ds, err := dataset.Load(c.Input)
	if err != nil {
		return err
	}
	features, err := ds.Features(field)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Input, err)
	}

	skipped := 0
	for _, f := range features {
		if f.Geometry == nil {
			skipped++
		}
	}
	if skipped > 0 {
		log.Warn().Int("rows", skipped).Str("field", field).Msg("Rows without geometry are not exported")
	}

	out, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	opts := c.options(ds)
	if err := flatgeobuf.WriteFeatures(out, features, opts); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", c.Output, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	log.Info().
		Str("input", c.Input).
		Str("output", c.Output).
		Str("layer", opts.Name).
		Int("features", len(features)-skipped).
		Bool("index", opts.IncludeIndex).
		Msg("Export finished")
	return nil
}
