// Package filters builds typed filter trees for the search store's GraphQL
// where-argument and renders them to their canonical wire fragment.
//
// A filter is a tree of Node values: leaves compare one property path
// against one value, and the AllOf, AnyOf, and Negate combinators group
// them. Trees are built bottom-up, never mutated afterwards, and are safe
// to share across goroutines.
//
// # Building filters
//
//	f := filters.AllOf(
//	    filters.Equal([]string{"category"}, "tech"),
//	    filters.GreaterThan([]string{"views"}, 100),
//	)
//	fragment, err := filters.Serialize(f)
//	// {operator:And operands:[{path:["category"] operator:Equal valueText:"tech"},
//	//  {path:["views"] operator:GreaterThan valueInt:100}]}
//
// # Value classification
//
// Every leaf value is classified to exactly one ValueTag, which selects the
// value field on the wire (valueText, valueInt, valueNumber, ...). The rules
// are deterministic; the one that surprises people is that floats without a
// fractional component classify as integer (3.0 renders as valueInt:3), so
// a numeric literal behaves the same whether it arrives as int or float64.
// Typed float slices are exempt and always classify as numberArray.
//
// Unrepresentable values (NaN, infinities, empty or mixed lists, arbitrary
// structs) are rejected at construction. Constructors do not return errors;
// they record the failure inside the node, where Err reports it immediately
// and Serialize returns it instead of output. This keeps deep trees
// composable without error plumbing at every level:
//
//	f := filters.AnyOf(
//	    filters.Like([]string{"title"}, "*intro*"),
//	    filters.ContainsAny([]string{"tags"}, []string{"go", "search"}),
//	)
//	if err := f.Err(); err != nil {
//	    // invalid before anything was rendered or sent
//	}
//
// # Geo filters
//
// Geo ranges are never inferred from bare slices; use the explicit
// constructor:
//
//	filters.WithinGeoRange([]string{"location"},
//	    filters.GeoCoordinates{Latitude: 52.52, Longitude: 13.405}, 2000)
//
// The serialized form is stable across calls and documented on Serialize,
// so rendered fragments are safe to assert against byte for byte.
package filters
