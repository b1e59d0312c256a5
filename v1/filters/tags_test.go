package filters

import (
	"testing"
	"time"

	"github.com/Aleph-Alpha/searchstore/v1/fault"
)

func TestClassify_Scalars(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  ValueTag
	}{
		{"nil", nil, TagNull},
		{"bool", true, TagBoolean},
		{"int", 100, TagInt},
		{"int8", int8(-3), TagInt},
		{"int64", int64(1 << 40), TagInt},
		{"uint32", uint32(7), TagInt},
		{"integral float", 3.0, TagInt},
		{"integral float32", float32(12), TagInt},
		{"fractional float", 99.99, TagNumber},
		{"string", "x", TagText},
		{"empty string", "", TagText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(tc.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Classify(%v) = %s, want %s", tc.value, got, tc.want)
			}
		})
	}
}

func TestClassify_Lists(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  ValueTag
	}{
		{"strings", []string{"a", "b"}, TagTextArray},
		{"ints", []int{1, 2}, TagIntArray},
		{"int64s", []int64{1, 2}, TagIntArray},
		{"floats", []float64{1.5, 2.5}, TagNumberArray},
		{"float32s", []float32{1.5}, TagNumberArray},
		{"integral floats stay numberArray", []float64{1, 2, 3}, TagNumberArray},
		{"bools", []bool{true, false}, TagBooleanArray},
		{"any strings", []any{"a", "b"}, TagTextArray},
		{"any ints", []any{1, int64(2)}, TagIntArray},
		{"any bools", []any{true}, TagBooleanArray},
		{"any int and number widen to numberArray", []any{1, 2.5}, TagNumberArray},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(tc.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Classify(%v) = %s, want %s", tc.value, got, tc.want)
			}
		})
	}
}

func TestClassify_GeoRange(t *testing.T) {
	tag, err := Classify(GeoRange{
		Coordinates: GeoCoordinates{Latitude: 52.52, Longitude: 13.405},
		MaxDistance: 2000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag != TagGeoRange {
		t.Errorf("expected geoRange tag, got %s", tag)
	}
}

func TestClassify_Errors(t *testing.T) {
	nan := func() float64 { return 0.0 / zero() }
	inf := func() float64 { return 1.0 / zero() }
	cases := []struct {
		name  string
		value any
	}{
		{"NaN", nan()},
		{"positive infinity", inf()},
		{"negative infinity", -inf()},
		{"empty string list", []string{}},
		{"empty int list", []int{}},
		{"empty any list", []any{}},
		{"mixed list", []any{"a", 1}},
		{"list with nil element", []any{"a", nil}},
		{"nested list", []any{[]string{"a"}}},
		{"list with non-finite element", []float64{1.5, inf()}},
		{"map", map[string]any{"a": 1}},
		{"struct", struct{ X int }{1}},
		{"time", time.Now()},
		{"uint64", uint64(1)},
		{"non-finite geo", GeoRange{MaxDistance: inf()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Classify(tc.value)
			if err == nil {
				t.Fatalf("expected serialization error for %v", tc.value)
			}
			if !fault.IsSerialization(err) {
				t.Errorf("expected serialization error, got %v", err)
			}
		})
	}
}

func TestClassify_IntegralFloatPrecisionBoundary(t *testing.T) {
	tag, err := Classify(float64(1 << 53))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag != TagInt {
		t.Errorf("2^53 should classify as integer, got %s", tag)
	}

	// Beyond 2^53 a float64 no longer represents every integer exactly.
	tag, err = Classify(1e300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag != TagNumber {
		t.Errorf("1e300 should classify as number, got %s", tag)
	}
}

func TestValueTag_String(t *testing.T) {
	cases := map[ValueTag]string{
		TagText:         "text",
		TagInt:          "integer",
		TagNumber:       "number",
		TagBoolean:      "boolean",
		TagTextArray:    "textArray",
		TagIntArray:     "intArray",
		TagNumberArray:  "numberArray",
		TagBooleanArray: "booleanArray",
		TagGeoRange:     "geoRange",
		TagNull:         "null",
	}
	for tag, want := range cases {
		if tag.String() != want {
			t.Errorf("expected %q, got %q", want, tag.String())
		}
	}
}

// zero defeats constant folding so the compiler accepts 0.0/0.0.
func zero() float64 {
	return 0.0
}
