package filters

import (
	"github.com/Aleph-Alpha/searchstore/v1/fault"
)

// Operator enumerates the comparisons a leaf filter can carry.
type Operator int

const (
	// OpEqual - exact match
	OpEqual Operator = iota
	// OpNotEqual - inverse of OpEqual
	OpNotEqual
	// OpLessThan - strictly less than (exclusive)
	OpLessThan
	// OpLessThanOrEqual - less than or equal (inclusive)
	OpLessThanOrEqual
	// OpGreaterThan - strictly greater than (exclusive)
	OpGreaterThan
	// OpGreaterThanOrEqual - greater than or equal (inclusive)
	OpGreaterThanOrEqual
	// OpLike - wildcard pattern match on text properties
	OpLike
	// OpContainsAny - at least one of the given values is present
	OpContainsAny
	// OpContainsAll - every one of the given values is present
	OpContainsAll
	// OpIsNull - property is (or is not) null
	OpIsNull
	// OpWithinGeoRange - geo property lies within a circle
	OpWithinGeoRange
)

// operatorNames is the fixed lookup table to wire operator names.
var operatorNames = map[Operator]string{
	OpEqual:              "Equal",
	OpNotEqual:           "NotEqual",
	OpLessThan:           "LessThan",
	OpLessThanOrEqual:    "LessThanOrEqual",
	OpGreaterThan:        "GreaterThan",
	OpGreaterThanOrEqual: "GreaterThanOrEqual",
	OpLike:               "Like",
	OpContainsAny:        "ContainsAny",
	OpContainsAll:        "ContainsAll",
	OpIsNull:             "IsNull",
	OpWithinGeoRange:     "WithinGeoRange",
}

// String returns the wire spelling of the operator.
func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return "unknown"
}

// Node is the interface all filter tree nodes implement. Trees are built
// bottom-up from the leaf constructors and the combinators and are never
// mutated afterwards, so they are finite, acyclic, and safe to share across
// goroutines.
//
// Constructors never return errors directly. An invalid input is recorded
// inside the returned node, reported by Err, and surfaces again when the
// tree is serialized. A node carrying an error never renders.
type Node interface {
	// IsFilterNode is a marker method to keep the set of node types closed
	IsFilterNode()
	// Err reports the first construction error recorded in this subtree.
	Err() error
}

// ── Leaf ─────────────────────────────────────────────────────────────────────

// Leaf is a single comparison of one property path against one value.
type Leaf struct {
	path     []string
	operator Operator
	value    any
	tag      ValueTag
	err      error
}

func (l *Leaf) IsFilterNode() {}

// Err reports the construction error recorded in this leaf, if any.
func (l *Leaf) Err() error { return l.err }

// Path returns a copy of the property path.
func (l *Leaf) Path() []string { return append([]string(nil), l.path...) }

// Operator returns the comparison operator.
func (l *Leaf) Operator() Operator { return l.operator }

// Tag returns the value tag resolved at construction.
func (l *Leaf) Tag() ValueTag { return l.tag }

func newLeaf(op Operator, path []string, value any) *Leaf {
	leaf := &Leaf{path: append([]string(nil), path...), operator: op}
	if len(path) == 0 {
		leaf.err = fault.Validationf("%s filter requires a non-empty property path", op)
		return leaf
	}
	normalized, tag, err := normalizeValue(value)
	if err != nil {
		leaf.err = err
		return leaf
	}
	if tag == TagNull && op != OpIsNull {
		leaf.err = fault.Validationf("%s filter requires a value, use IsNull to match null properties", op)
		return leaf
	}
	leaf.value = normalized
	leaf.tag = tag
	return leaf
}

// requireArray rejects scalar values on the contains operators.
func requireArray(leaf *Leaf) *Leaf {
	if leaf.err != nil {
		return leaf
	}
	switch leaf.tag {
	case TagTextArray, TagIntArray, TagNumberArray, TagBooleanArray:
		return leaf
	default:
		leaf.err = fault.Validationf("%s filter requires a list value, got %s", leaf.operator, leaf.tag)
		return leaf
	}
}

// Equal matches records whose property at path equals value.
func Equal(path []string, value any) *Leaf {
	return newLeaf(OpEqual, path, value)
}

// NotEqual matches records whose property at path differs from value.
func NotEqual(path []string, value any) *Leaf {
	return newLeaf(OpNotEqual, path, value)
}

// LessThan matches records whose property at path is strictly below value.
func LessThan(path []string, value any) *Leaf {
	return newLeaf(OpLessThan, path, value)
}

// LessThanOrEqual matches records whose property at path is at most value.
func LessThanOrEqual(path []string, value any) *Leaf {
	return newLeaf(OpLessThanOrEqual, path, value)
}

// GreaterThan matches records whose property at path is strictly above value.
func GreaterThan(path []string, value any) *Leaf {
	return newLeaf(OpGreaterThan, path, value)
}

// GreaterThanOrEqual matches records whose property at path is at least value.
func GreaterThanOrEqual(path []string, value any) *Leaf {
	return newLeaf(OpGreaterThanOrEqual, path, value)
}

// Like matches text properties against a wildcard pattern. The pattern
// syntax is caller-supplied and passed through to the service unvalidated.
func Like(path []string, pattern string) *Leaf {
	return newLeaf(OpLike, path, pattern)
}

// ContainsAny matches records whose property at path holds at least one of
// the given values. The value must classify to a list tag.
func ContainsAny(path []string, values any) *Leaf {
	return requireArray(newLeaf(OpContainsAny, path, values))
}

// ContainsAll matches records whose property at path holds every one of the
// given values. The value must classify to a list tag.
func ContainsAll(path []string, values any) *Leaf {
	return requireArray(newLeaf(OpContainsAll, path, values))
}

// IsNull matches records whose property at path is null (flag true) or
// present (flag false).
func IsNull(path []string, flag bool) *Leaf {
	return newLeaf(OpIsNull, path, flag)
}

// WithinGeoRange matches records whose geo property at path lies within
// maxDistance meters of center.
func WithinGeoRange(path []string, center GeoCoordinates, maxDistance float64) *Leaf {
	return newLeaf(OpWithinGeoRange, path, GeoRange{Coordinates: center, MaxDistance: maxDistance})
}

// ── Combinators ──────────────────────────────────────────────────────────────

// AndGroup combines operands so that every one must match.
type AndGroup struct {
	operands []Node
	err      error
}

func (g *AndGroup) IsFilterNode() {}

// Err reports the first construction error in this group or its operands.
func (g *AndGroup) Err() error { return g.err }

// Operands returns a copy of the child nodes in construction order.
func (g *AndGroup) Operands() []Node { return append([]Node(nil), g.operands...) }

// OrGroup combines operands so that at least one must match.
type OrGroup struct {
	operands []Node
	err      error
}

func (g *OrGroup) IsFilterNode() {}

// Err reports the first construction error in this group or its operands.
func (g *OrGroup) Err() error { return g.err }

// Operands returns a copy of the child nodes in construction order.
func (g *OrGroup) Operands() []Node { return append([]Node(nil), g.operands...) }

// NotGroup negates exactly one operand.
type NotGroup struct {
	operand Node
	err     error
}

func (g *NotGroup) IsFilterNode() {}

// Err reports the construction error in this group or its operand.
func (g *NotGroup) Err() error { return g.err }

// Operand returns the negated node.
func (g *NotGroup) Operand() Node { return g.operand }

// AllOf combines the given nodes with And. At least one operand is required.
func AllOf(operands ...Node) *AndGroup {
	return &AndGroup{operands: append([]Node(nil), operands...), err: groupErr(operands)}
}

// AnyOf combines the given nodes with Or. At least one operand is required.
func AnyOf(operands ...Node) *OrGroup {
	return &OrGroup{operands: append([]Node(nil), operands...), err: groupErr(operands)}
}

// Negate inverts the given node.
func Negate(operand Node) *NotGroup {
	if operand == nil {
		return &NotGroup{err: fault.Validationf("negate requires an operand")}
	}
	return &NotGroup{operand: operand, err: operand.Err()}
}

func groupErr(operands []Node) error {
	if len(operands) == 0 {
		return fault.Validationf("combinator requires at least one operand")
	}
	for _, operand := range operands {
		if operand == nil {
			return fault.Validationf("combinator operand must not be nil")
		}
		if err := operand.Err(); err != nil {
			return err
		}
	}
	return nil
}
