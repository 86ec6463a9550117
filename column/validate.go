package column

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/CityofSantaMonica/SODA.NET-sub000/geometry"
	"github.com/xeipuuv/gojsonschema"
)

// Schema returns the JSON Schema an upload cell of kind k must satisfy.
func Schema(k Kind) (map[string]interface{}, error) {
	if k == KindLocation {
		return map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"latitude", "longitude"},
			"properties": map[string]interface{}{
				"latitude":      map[string]interface{}{"type": "string", "minLength": 1},
				"longitude":     map[string]interface{}{"type": "string", "minLength": 1},
				"human_address": map[string]interface{}{"type": "string"},
			},
		}, nil
	}

	t, ok := k.GeometryType()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"type", "coordinates"},
		"properties": map[string]interface{}{
			"type":        map[string]interface{}{"enum": []interface{}{string(t)}},
			"coordinates": coordinatesSchema(t.Depth()),
		},
	}, nil
}

func coordinatesSchema(depth int) map[string]interface{} {
	if depth <= 1 {
		return map[string]interface{}{
			"type":     "array",
			"minItems": 2,
			"items":    map[string]interface{}{"type": "number"},
		}
	}
	return map[string]interface{}{
		"type":  "array",
		"items": coordinatesSchema(depth - 1),
	}
}

// Validate checks an upload cell for a column of kind k. The payload must
// match the kind's schema and decode into a valid shape.
func Validate(k Kind, payload []byte) error {
	_, err := Parse(k, payload)
	return err
}

// Parse validates an upload cell and returns it as a Column. Location cells
// are returned as their parsed Point wrapped in a PointColumn.
func Parse(k Kind, payload []byte) (Column, error) {
	schema, err := Schema(k)
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(msgs, "; "))
	}

	if k == KindLocation {
		var loc LocationColumn
		if err := json.Unmarshal(payload, &loc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		p, err := loc.Point()
		if err != nil {
			return nil, err
		}
		return PointColumn{point: p}, nil
	}

	g, err := geometry.Unmarshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return ForKind(k, g)
}
