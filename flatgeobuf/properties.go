package flatgeobuf

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"sort"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
)

// columnSpec is one inferred property column. Its position in the schema
// slice is the column index written before each value.
type columnSpec struct {
	name string
	typ  flattypes.ColumnType
}

// inferSchema collects every property name across features, sorted by name,
// and settles each column on the most general type seen.
func inferSchema(features []Feature) []columnSpec {
	types := make(map[string]flattypes.ColumnType)
	seen := make(map[string]bool)
	for _, f := range features {
		for name, value := range f.Properties {
			seen[name] = true
			if value == nil {
				continue
			}
			inferred := inferColumnType(value)
			if existing, ok := types[name]; ok {
				types[name] = promoteColumnType(existing, inferred)
			} else {
				types[name] = inferred
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	schema := make([]columnSpec, len(names))
	for i, name := range names {
		typ, ok := types[name]
		if !ok {
			// only ever null
			typ = flattypes.ColumnTypeString
		}
		schema[i] = columnSpec{name: name, typ: typ}
	}
	return schema
}

// writerColumns builds the header columns for schema.
func writerColumns(schema []columnSpec, builder *flatbuffers.Builder) []*writer.Column {
	columns := make([]*writer.Column, 0, len(schema))
	for _, spec := range schema {
		col := writer.NewColumn(builder)
		col.SetName(spec.name)
		col.SetTitle(spec.name) // JS readers display the title
		col.SetType(spec.typ)
		col.SetNullable(true)
		columns = append(columns, col)
	}
	return columns
}

// inferColumnType determines the FlatGeobuf column type for a Go value.
func inferColumnType(value interface{}) flattypes.ColumnType {
	switch v := value.(type) {
	case nil:
		return flattypes.ColumnTypeString
	case bool:
		return flattypes.ColumnTypeBool
	case int:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return flattypes.ColumnTypeInt
		}
		return flattypes.ColumnTypeLong
	case int8, int16, int32:
		return flattypes.ColumnTypeInt
	case int64:
		return flattypes.ColumnTypeLong
	case uint8, uint16, uint32:
		return flattypes.ColumnTypeUInt
	case uint, uint64:
		return flattypes.ColumnTypeULong
	case float32:
		return flattypes.ColumnTypeFloat
	case float64:
		return flattypes.ColumnTypeDouble
	case string:
		return flattypes.ColumnTypeString
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return flattypes.ColumnTypeLong
		}
		return flattypes.ColumnTypeDouble
	default:
		return flattypes.ColumnTypeJson
	}
}

var numericRank = map[flattypes.ColumnType]int{
	flattypes.ColumnTypeBool:   0,
	flattypes.ColumnTypeInt:    1,
	flattypes.ColumnTypeUInt:   2,
	flattypes.ColumnTypeLong:   3,
	flattypes.ColumnTypeULong:  4,
	flattypes.ColumnTypeFloat:  5,
	flattypes.ColumnTypeDouble: 6,
}

// promoteColumnType returns the more general type when there's a conflict.
func promoteColumnType(a, b flattypes.ColumnType) flattypes.ColumnType {
	if a == b {
		return a
	}
	if a == flattypes.ColumnTypeJson || b == flattypes.ColumnTypeJson {
		return flattypes.ColumnTypeJson
	}
	if a == flattypes.ColumnTypeString || b == flattypes.ColumnTypeString {
		return flattypes.ColumnTypeString
	}

	rankA, okA := numericRank[a]
	rankB, okB := numericRank[b]
	if okA && okB {
		if rankA > rankB {
			return a
		}
		return b
	}
	return flattypes.ColumnTypeJson
}

// encodeProperties encodes props in FlatGeobuf binary form:
// [uint16 column index][value bytes] for each non-nil value, in schema order.
func encodeProperties(props map[string]interface{}, schema []columnSpec) []byte {
	if len(props) == 0 || len(schema) == 0 {
		return nil
	}

	var buf bytes.Buffer
	index := make([]byte, 2)
	for i, spec := range schema {
		value, ok := props[spec.name]
		if !ok || value == nil {
			continue
		}
		encoded, ok := encodeValue(value, spec.typ)
		if !ok {
			continue
		}
		binary.LittleEndian.PutUint16(index, uint16(i))
		buf.Write(index)
		buf.Write(encoded)
	}
	return buf.Bytes()
}

// encodeValue encodes value as a column of type typ. It reports false when
// the value cannot be represented.
func encodeValue(value interface{}, typ flattypes.ColumnType) ([]byte, bool) {
	switch typ {
	case flattypes.ColumnTypeBool:
		v, ok := value.(bool)
		if !ok {
			return nil, false
		}
		if v {
			return []byte{1}, true
		}
		return []byte{0}, true

	case flattypes.ColumnTypeInt, flattypes.ColumnTypeUInt:
		v, ok := toInt64(value)
		if !ok {
			return nil, false
		}
		return binary.LittleEndian.AppendUint32(nil, uint32(v)), true

	case flattypes.ColumnTypeLong, flattypes.ColumnTypeULong:
		v, ok := toInt64(value)
		if !ok {
			return nil, false
		}
		return binary.LittleEndian.AppendUint64(nil, uint64(v)), true

	case flattypes.ColumnTypeFloat:
		v, ok := toFloat64(value)
		if !ok {
			return nil, false
		}
		return binary.LittleEndian.AppendUint32(nil, math.Float32bits(float32(v))), true

	case flattypes.ColumnTypeDouble:
		v, ok := toFloat64(value)
		if !ok {
			return nil, false
		}
		return binary.LittleEndian.AppendUint64(nil, math.Float64bits(v)), true

	case flattypes.ColumnTypeString, flattypes.ColumnTypeDateTime:
		return append([]byte(toString(value)), 0), true

	case flattypes.ColumnTypeJson:
		b, err := json.Marshal(value)
		if err != nil {
			return nil, false
		}
		return append(b, 0), true

	default:
		return nil, false
	}
}

// decodeProperties decodes FlatGeobuf binary properties using the header's
// column schema. Decoding stops at the first malformed entry.
func decodeProperties(data []byte, header *flattypes.Header) map[string]interface{} {
	if len(data) == 0 || header == nil {
		return nil
	}

	props := make(map[string]interface{})
	offset := 0
	for offset+2 <= len(data) {
		colIndex := int(binary.LittleEndian.Uint16(data[offset : offset+2]))
		offset += 2

		if colIndex >= header.ColumnsLength() {
			break
		}
		var col flattypes.Column
		if !header.Columns(&col, colIndex) {
			break
		}

		value, n := readPropertyValue(data[offset:], col.Type())
		if n == 0 {
			break
		}
		offset += n
		props[string(col.Name())] = value
	}
	return props
}

// readPropertyValue reads one value and returns it with the number of bytes
// consumed; 0 means the data was too short or the type is unknown.
func readPropertyValue(data []byte, typ flattypes.ColumnType) (interface{}, int) {
	need := map[flattypes.ColumnType]int{
		flattypes.ColumnTypeBool:   1,
		flattypes.ColumnTypeByte:   1,
		flattypes.ColumnTypeUByte:  1,
		flattypes.ColumnTypeShort:  2,
		flattypes.ColumnTypeUShort: 2,
		flattypes.ColumnTypeInt:    4,
		flattypes.ColumnTypeUInt:   4,
		flattypes.ColumnTypeFloat:  4,
		flattypes.ColumnTypeLong:   8,
		flattypes.ColumnTypeULong:  8,
		flattypes.ColumnTypeDouble: 8,
	}
	if n, fixed := need[typ]; fixed && len(data) < n {
		return nil, 0
	}

	switch typ {
	case flattypes.ColumnTypeBool:
		return data[0] != 0, 1
	case flattypes.ColumnTypeByte:
		return int8(data[0]), 1
	case flattypes.ColumnTypeUByte:
		return data[0], 1
	case flattypes.ColumnTypeShort:
		return int16(binary.LittleEndian.Uint16(data)), 2
	case flattypes.ColumnTypeUShort:
		return binary.LittleEndian.Uint16(data), 2
	case flattypes.ColumnTypeInt:
		return int32(binary.LittleEndian.Uint32(data)), 4
	case flattypes.ColumnTypeUInt:
		return binary.LittleEndian.Uint32(data), 4
	case flattypes.ColumnTypeLong:
		return int64(binary.LittleEndian.Uint64(data)), 8
	case flattypes.ColumnTypeULong:
		return binary.LittleEndian.Uint64(data), 8
	case flattypes.ColumnTypeFloat:
		return math.Float32frombits(binary.LittleEndian.Uint32(data)), 4
	case flattypes.ColumnTypeDouble:
		return math.Float64frombits(binary.LittleEndian.Uint64(data)), 8

	case flattypes.ColumnTypeString, flattypes.ColumnTypeDateTime:
		s, n := readTerminated(data)
		return string(s), n

	case flattypes.ColumnTypeJson:
		raw, n := readTerminated(data)
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			return string(raw), n
		}
		return v, n

	case flattypes.ColumnTypeBinary:
		if len(data) < 4 {
			return nil, 0
		}
		length := int(binary.LittleEndian.Uint32(data[:4]))
		if len(data) < 4+length {
			return nil, 0
		}
		return data[4 : 4+length], 4 + length

	default:
		return nil, 0
	}
}

// readTerminated returns the bytes before the next NUL and the number of
// bytes consumed including the NUL, if present.
func readTerminated(data []byte) ([]byte, int) {
	i := bytes.IndexByte(data, 0)
	if i == -1 {
		return data, len(data)
	}
	return data[:i], i + 1
}

// Type conversion helpers

func toInt64(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	case int:
		return int64(val), true
	case int8:
		return int64(val), true
	case int16:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case uint:
		return int64(val), true
	case uint8:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint32:
		return int64(val), true
	case uint64:
		return int64(val), true
	case float32:
		return int64(val), true
	case float64:
		return int64(val), true
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, true
		}
		if f, err := val.Float64(); err == nil {
			return int64(f), true
		}
	}
	return 0, false
}

func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float32:
		return float64(val), true
	case float64:
		return val, true
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f, true
		}
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
