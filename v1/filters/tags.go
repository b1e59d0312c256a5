package filters

import (
	"math"

	"github.com/Aleph-Alpha/searchstore/v1/fault"
)

// ValueTag identifies the wire type of a leaf filter value. Exactly one tag
// is attached to every leaf; it selects the value field the serializer emits.
type ValueTag int

const (
	// TagText - a single string value
	TagText ValueTag = iota
	// TagInt - an integral numeric value
	TagInt
	// TagNumber - a numeric value with a fractional component
	TagNumber
	// TagBoolean - a boolean value
	TagBoolean
	// TagTextArray - a list of strings
	TagTextArray
	// TagIntArray - a list of integral numbers
	TagIntArray
	// TagNumberArray - a list of fractional numbers
	TagNumberArray
	// TagBooleanArray - a list of booleans
	TagBooleanArray
	// TagGeoRange - a coordinate pair plus a maximum distance
	TagGeoRange
	// TagNull - the absent value
	TagNull
)

// String returns the canonical tag name.
func (t ValueTag) String() string {
	switch t {
	case TagText:
		return "text"
	case TagInt:
		return "integer"
	case TagNumber:
		return "number"
	case TagBoolean:
		return "boolean"
	case TagTextArray:
		return "textArray"
	case TagIntArray:
		return "intArray"
	case TagNumberArray:
		return "numberArray"
	case TagBooleanArray:
		return "booleanArray"
	case TagGeoRange:
		return "geoRange"
	case TagNull:
		return "null"
	default:
		return "unknown"
	}
}

// valueField returns the value field name the serializer emits for this tag.
// TagNull has no value field; leaves never carry it (see newLeaf).
func (t ValueTag) valueField() string {
	switch t {
	case TagText:
		return "valueText"
	case TagInt:
		return "valueInt"
	case TagNumber:
		return "valueNumber"
	case TagBoolean:
		return "valueBoolean"
	case TagTextArray:
		return "valueTextArray"
	case TagIntArray:
		return "valueIntArray"
	case TagNumberArray:
		return "valueNumberArray"
	case TagBooleanArray:
		return "valueBooleanArray"
	case TagGeoRange:
		return "valueGeoRange"
	default:
		return ""
	}
}

// GeoCoordinates is a WGS84 latitude/longitude pair in degrees.
type GeoCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeoRange describes a circle around a coordinate pair. MaxDistance is in
// meters. Geo values are never inferred from bare slices or maps; this type
// is the only way to produce a geoRange-tagged value.
type GeoRange struct {
	Coordinates GeoCoordinates
	MaxDistance float64
}

// Classify resolves the ValueTag for a raw filter value. The rules are
// checked in order: nil is null, booleans are boolean, integer kinds and
// floats without a fractional component are integer, other finite floats are
// number, strings are text, GeoRange is geoRange, and slices take the tag of
// their element type. NaN or infinite numbers, empty lists, lists of mixed
// or unsupported element types, and any other Go type are serialization
// errors.
func Classify(value any) (ValueTag, error) {
	_, tag, err := normalizeValue(value)
	return tag, err
}

// maxExactIntFloat is the largest magnitude a float64 can hold while still
// representing every integer exactly (2^53). Integral floats beyond it stay
// tagged as number.
const maxExactIntFloat = float64(1 << 53)

// normalizeValue resolves the tag for value and converts it to the canonical
// representation the serializer renders from: int64, float64, string, bool,
// a slice of those, or GeoRange.
func normalizeValue(value any) (any, ValueTag, error) {
	switch v := value.(type) {
	case nil:
		return nil, TagNull, nil
	case bool:
		return v, TagBoolean, nil
	case int:
		return int64(v), TagInt, nil
	case int8:
		return int64(v), TagInt, nil
	case int16:
		return int64(v), TagInt, nil
	case int32:
		return int64(v), TagInt, nil
	case int64:
		return v, TagInt, nil
	case uint8:
		return int64(v), TagInt, nil
	case uint16:
		return int64(v), TagInt, nil
	case uint32:
		return int64(v), TagInt, nil
	case float32:
		return normalizeFloat(float64(v))
	case float64:
		return normalizeFloat(v)
	case string:
		return v, TagText, nil
	case GeoRange:
		if err := validateGeoRange(v); err != nil {
			return nil, 0, err
		}
		return v, TagGeoRange, nil
	case []string:
		if len(v) == 0 {
			return nil, 0, errEmptyList()
		}
		return append([]string(nil), v...), TagTextArray, nil
	case []int:
		if len(v) == 0 {
			return nil, 0, errEmptyList()
		}
		out := make([]int64, len(v))
		for i, n := range v {
			out[i] = int64(n)
		}
		return out, TagIntArray, nil
	case []int64:
		if len(v) == 0 {
			return nil, 0, errEmptyList()
		}
		return append([]int64(nil), v...), TagIntArray, nil
	case []float32:
		if len(v) == 0 {
			return nil, 0, errEmptyList()
		}
		out := make([]float64, len(v))
		for i, n := range v {
			out[i] = float64(n)
		}
		return normalizeFloatList(out)
	case []float64:
		if len(v) == 0 {
			return nil, 0, errEmptyList()
		}
		return normalizeFloatList(append([]float64(nil), v...))
	case []bool:
		if len(v) == 0 {
			return nil, 0, errEmptyList()
		}
		return append([]bool(nil), v...), TagBooleanArray, nil
	case []any:
		return normalizeAnyList(v)
	default:
		return nil, 0, fault.Serializationf("unsupported filter value type %T", value)
	}
}

// normalizeFloat maps integral floats to TagInt and everything else finite
// to TagNumber.
func normalizeFloat(v float64) (any, ValueTag, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, 0, fault.Serializationf("non-finite number %v is not representable", v)
	}
	if v == math.Trunc(v) && math.Abs(v) <= maxExactIntFloat {
		return int64(v), TagInt, nil
	}
	return v, TagNumber, nil
}

// normalizeFloatList keeps typed float slices tagged as numberArray even when
// every element is integral; only the scalar rule promotes integral floats.
func normalizeFloatList(list []float64) (any, ValueTag, error) {
	for _, v := range list {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, 0, fault.Serializationf("non-finite number %v is not representable", v)
		}
	}
	return list, TagNumberArray, nil
}

// normalizeAnyList classifies a []any element by element. All elements must
// resolve to the same scalar class; the one exception is a mix of integer
// and number elements, which widens to numberArray.
func normalizeAnyList(list []any) (any, ValueTag, error) {
	if len(list) == 0 {
		return nil, 0, errEmptyList()
	}
	var sawText, sawInt, sawNumber, sawBool bool
	norm := make([]any, len(list))
	for i, elem := range list {
		value, tag, err := normalizeValue(elem)
		if err != nil {
			return nil, 0, err
		}
		switch tag {
		case TagText:
			sawText = true
		case TagInt:
			sawInt = true
		case TagNumber:
			sawNumber = true
		case TagBoolean:
			sawBool = true
		default:
			return nil, 0, fault.Serializationf("list element of type %T is not supported", elem)
		}
		norm[i] = value
	}
	switch {
	case sawText && !sawInt && !sawNumber && !sawBool:
		out := make([]string, len(norm))
		for i, v := range norm {
			out[i] = v.(string)
		}
		return out, TagTextArray, nil
	case sawBool && !sawText && !sawInt && !sawNumber:
		out := make([]bool, len(norm))
		for i, v := range norm {
			out[i] = v.(bool)
		}
		return out, TagBooleanArray, nil
	case sawNumber && !sawText && !sawBool:
		out := make([]float64, len(norm))
		for i, v := range norm {
			switch n := v.(type) {
			case int64:
				out[i] = float64(n)
			case float64:
				out[i] = n
			}
		}
		return out, TagNumberArray, nil
	case sawInt && !sawText && !sawBool:
		out := make([]int64, len(norm))
		for i, v := range norm {
			out[i] = v.(int64)
		}
		return out, TagIntArray, nil
	default:
		return nil, 0, fault.Serializationf("list mixes incompatible element types")
	}
}

func validateGeoRange(g GeoRange) error {
	for _, v := range []float64{g.Coordinates.Latitude, g.Coordinates.Longitude, g.MaxDistance} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fault.Serializationf("geo range requires finite coordinates and distance")
		}
	}
	return nil
}

func errEmptyList() error {
	return fault.Serializationf("empty list cannot be classified")
}
