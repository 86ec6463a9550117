package column

import (
	"fmt"
	"strconv"

	"github.com/CityofSantaMonica/SODA.NET-sub000/geometry"
)

// LocationColumn is a cell of a legacy location column. The platform stores
// coordinates as decimal strings.
type LocationColumn struct {
	Latitude     string `json:"latitude"`
	Longitude    string `json:"longitude"`
	HumanAddress string `json:"human_address,omitempty"`
}

// LocationFromPoint builds a location cell from the first two ordinates of p.
// A zero Point has no ordinates and is rejected.
func LocationFromPoint(p geometry.Point) (LocationColumn, error) {
	if p.Position().Len() < 2 {
		return LocationColumn{}, fmt.Errorf("%w: empty point", ErrInvalidPayload)
	}
	return LocationColumn{
		Latitude:  strconv.FormatFloat(p.Y(), 'f', -1, 64),
		Longitude: strconv.FormatFloat(p.X(), 'f', -1, 64),
	}, nil
}

func (c LocationColumn) Kind() Kind { return KindLocation }

// Point parses the coordinates into a Point.
func (c LocationColumn) Point() (geometry.Point, error) {
	lat, err := strconv.ParseFloat(c.Latitude, 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("%w: latitude %q: %v", ErrInvalidPayload, c.Latitude, err)
	}
	lon, err := strconv.ParseFloat(c.Longitude, 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("%w: longitude %q: %v", ErrInvalidPayload, c.Longitude, err)
	}
	return geometry.NewPoint(lon, lat)
}
