package flatgeobuf

import (
	"fmt"

	"github.com/CityofSantaMonica/SODA.NET-sub000/geometry"
	flatgeobuf "github.com/flatgeobuf/flatgeobuf/src/go"
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/paulmach/orb"
)

// Reader provides read access to a FlatGeobuf file.
type Reader struct {
	fgb *flatgeobuf.FlatGeoBuf
}

// NewReader creates a reader from a file path.
// The file is memory-mapped for efficient access.
func NewReader(path string) (*Reader, error) {
	fgb, err := flatgeobuf.New(path)
	if err != nil {
		return nil, err
	}
	return &Reader{fgb: fgb}, nil
}

// NewReaderFromData creates a reader from byte data.
func NewReaderFromData(data []byte) (*Reader, error) {
	fgb, err := flatgeobuf.NewWithData(data)
	if err != nil {
		return nil, err
	}
	return &Reader{fgb: fgb}, nil
}

// Header returns metadata about the FlatGeobuf file.
func (r *Reader) Header() *Header {
	h := r.fgb.Header()
	if h == nil {
		return nil
	}

	header := &Header{
		Name:          string(h.Name()),
		Description:   string(h.Description()),
		GeometryType:  flattypes.EnumNamesGeometryType[h.GeometryType()],
		FeaturesCount: h.FeaturesCount(),
		HasIndex:      h.IndexNodeSize() > 0,
	}

	if h.EnvelopeLength() >= 4 {
		header.Envelope = [4]float64{h.Envelope(0), h.Envelope(1), h.Envelope(2), h.Envelope(3)}
	}

	var crs flattypes.Crs
	if h.Crs(&crs) != nil {
		header.CRS = &CRS{
			Code:        int(crs.Code()),
			Name:        string(crs.Name()),
			Description: string(crs.Description()),
		}
	}

	if n := h.ColumnsLength(); n > 0 {
		header.Columns = make([]ColumnInfo, 0, n)
		for i := 0; i < n; i++ {
			var col flattypes.Column
			if h.Columns(&col, i) {
				header.Columns = append(header.Columns, ColumnInfo{
					Name:        string(col.Name()),
					Type:        flattypes.EnumNamesColumnType[col.Type()],
					Title:       string(col.Title()),
					Description: string(col.Description()),
					Nullable:    col.Nullable(),
				})
			}
		}
	}

	return header
}

// ReadAll reads every feature. Features can only be enumerated through the
// spatial index, so a file without one yields no features.
func (r *Reader) ReadAll() ([]Feature, error) {
	h := r.fgb.Header()
	if h.FeaturesCount() == 0 || h.IndexNodeSize() == 0 || h.EnvelopeLength() < 4 {
		return nil, nil
	}

	found, err := r.fgb.Search(h.Envelope(0), h.Envelope(1), h.Envelope(2), h.Envelope(3))
	if err != nil {
		return nil, err
	}
	return convertFeatures(found, h)
}

// ReadGeometries reads all geometries without properties.
func (r *Reader) ReadGeometries() ([]geometry.Geometry, error) {
	features, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return geometriesOf(features), nil
}

// Search returns the features whose bounding boxes intersect bounds, using
// the built-in index.
func (r *Reader) Search(bounds orb.Bound) ([]Feature, error) {
	h := r.fgb.Header()
	if h.IndexNodeSize() == 0 {
		return nil, ErrNoIndex
	}

	found, err := r.fgb.Search(bounds.Min[0], bounds.Min[1], bounds.Max[0], bounds.Max[1])
	if err != nil {
		return nil, err
	}
	return convertFeatures(found, h)
}

// SearchGeometries performs a spatial query returning only geometries.
func (r *Reader) SearchGeometries(bounds orb.Bound) ([]geometry.Geometry, error) {
	features, err := r.Search(bounds)
	if err != nil {
		return nil, err
	}
	return geometriesOf(features), nil
}

// Close releases the reader. The underlying memory map is released by the
// garbage collector once the reader is unreachable.
func (r *Reader) Close() error {
	r.fgb = nil
	return nil
}

func convertFeatures(found []*flattypes.Feature, header *flattypes.Header) ([]Feature, error) {
	features := make([]Feature, 0, len(found))
	for i, ff := range found {
		if ff == nil {
			continue
		}
		f, err := convertFeature(ff, header)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		features = append(features, f)
	}
	return features, nil
}

// convertFeature converts a FlatGeobuf feature to a Feature.
func convertFeature(ff *flattypes.Feature, header *flattypes.Header) (Feature, error) {
	var geomObj flattypes.Geometry
	fg := ff.Geometry(&geomObj)
	if fg == nil {
		return Feature{}, ErrNilGeometry
	}

	g, err := geometryFromFGB(fg)
	if err != nil {
		return Feature{}, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	f := Feature{Geometry: g}

	if n := ff.PropertiesLength(); n > 0 && header.ColumnsLength() > 0 {
		props := make([]byte, n)
		for i := 0; i < n; i++ {
			props[i] = byte(ff.Properties(i))
		}
		f.Properties = decodeProperties(props, header)
	}
	return f, nil
}

func geometriesOf(features []Feature) []geometry.Geometry {
	geometries := make([]geometry.Geometry, 0, len(features))
	for _, f := range features {
		if f.Geometry != nil {
			geometries = append(geometries, f.Geometry)
		}
	}
	return geometries
}
