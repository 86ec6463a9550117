package flatgeobuf

import (
	"io"

	"github.com/CityofSantaMonica/SODA.NET-sub000/geometry"
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
)

// Write writes geometries to FlatGeobuf format without properties.
func Write(w io.Writer, geometries []geometry.Geometry, opts *Options) error {
	features := make([]Feature, 0, len(geometries))
	for _, g := range geometries {
		features = append(features, Feature{Geometry: g})
	}
	return WriteFeatures(w, features, opts)
}

// WriteFeature writes a single feature to FlatGeobuf format.
func WriteFeature(w io.Writer, f Feature, opts *Options) error {
	return WriteFeatures(w, []Feature{f}, opts)
}

// WriteFeatures writes features to FlatGeobuf format. Features without a
// geometry are skipped. The header geometry type is the features' common
// type, or Unknown when they are mixed.
func WriteFeatures(w io.Writer, features []Feature, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}

	kept := make([]Feature, 0, len(features))
	for _, f := range features {
		if f.Geometry != nil {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return ErrNilGeometry
	}

	geomType := fgbGeometryType(kept[0].Geometry)
	for _, f := range kept[1:] {
		if fgbGeometryType(f.Geometry) != geomType {
			geomType = flattypes.GeometryTypeUnknown
			break
		}
	}

	builder := flatbuffers.NewBuilder(4096)

	header := writer.NewHeader(builder)
	header.SetGeometryType(geomType)
	if opts.Name != "" {
		header.SetName(opts.Name)
	}
	if opts.Description != "" {
		header.SetDescription(opts.Description)
	}

	schema := inferSchema(kept)
	if len(schema) > 0 {
		header.SetColumns(writerColumns(schema, builder))
	}

	if opts.CRS != nil {
		header.SetCrs(buildCRS(opts.CRS, builder))
	}

	gen := &featureGenerator{features: kept, schema: schema}
	fgbWriter := writer.NewWriter(header, opts.IncludeIndex, gen, nil)

	_, err := fgbWriter.Write(w)
	return err
}

func buildCRS(c *CRS, builder *flatbuffers.Builder) *writer.Crs {
	crs := writer.NewCrs(builder)
	crs.SetOrg("EPSG")
	if c.Code > 0 {
		crs.SetCode(int32(c.Code))
	}
	if c.Name != "" {
		crs.SetName(c.Name)
	}
	switch {
	case c.Description != "":
		crs.SetDescription(c.Description)
	case c.WKT != "":
		// the header has no WKT slot of its own
		crs.SetDescription(c.WKT)
	}
	return crs
}

// featureGenerator feeds features to the FlatGeobuf writer one at a time.
type featureGenerator struct {
	features []Feature
	schema   []columnSpec
	index    int
}

func (g *featureGenerator) Generate() *writer.Feature {
	for g.index < len(g.features) {
		f := g.features[g.index]
		g.index++

		builder := flatbuffers.NewBuilder(1024)
		fgbGeom := geometryToFGB(f.Geometry, builder)
		if fgbGeom == nil {
			continue
		}

		feature := writer.NewFeature(builder)
		feature.SetGeometry(fgbGeom)
		if props := encodeProperties(f.Properties, g.schema); len(props) > 0 {
			feature.SetProperties(props)
		}
		return feature
	}
	return nil
}
