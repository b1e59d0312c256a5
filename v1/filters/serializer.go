package filters

import (
	"strconv"
	"strings"

	"github.com/Aleph-Alpha/searchstore/v1/fault"
)

// Serialize renders a filter tree to its canonical wire fragment. The walk
// is depth-first and preserves construction order, so equal trees always
// produce byte-identical fragments. A tree carrying a construction error
// refuses to render and returns that error instead.
//
// Canonical format: object fields are separated by a single space, array
// elements by ", ". Integers render via strconv.FormatInt, floats via
// strconv.FormatFloat(v, 'f', -1, 64) (shortest round-trip decimal form,
// never exponent notation), booleans as true/false. Strings are quoted with
// backslash, quote, and control characters escaped.
func Serialize(node Node) (string, error) {
	if node == nil {
		return "", fault.Validationf("cannot serialize a nil filter")
	}
	if err := node.Err(); err != nil {
		return "", err
	}
	var b strings.Builder
	if err := writeNode(&b, node); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeNode(b *strings.Builder, node Node) error {
	switch n := node.(type) {
	case *Leaf:
		return writeLeaf(b, n)
	case *AndGroup:
		return writeGroup(b, "And", n.operands)
	case *OrGroup:
		return writeGroup(b, "Or", n.operands)
	case *NotGroup:
		return writeGroup(b, "Not", []Node{n.operand})
	default:
		return fault.Serializationf("unknown filter node type %T", node)
	}
}

func writeGroup(b *strings.Builder, operator string, operands []Node) error {
	b.WriteString("{operator:")
	b.WriteString(operator)
	b.WriteString(" operands:[")
	for i, operand := range operands {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := writeNode(b, operand); err != nil {
			return err
		}
	}
	b.WriteString("]}")
	return nil
}

func writeLeaf(b *strings.Builder, leaf *Leaf) error {
	b.WriteString("{path:[")
	for i, segment := range leaf.path {
		if i > 0 {
			b.WriteString(", ")
		}
		writeQuoted(b, segment)
	}
	b.WriteString("] operator:")
	b.WriteString(leaf.operator.String())
	b.WriteByte(' ')
	b.WriteString(leaf.tag.valueField())
	b.WriteByte(':')
	return writeValue(b, leaf.value)
}

func writeValue(b *strings.Builder, value any) error {
	switch v := value.(type) {
	case string:
		writeQuoted(b, v)
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
	case float64:
		b.WriteString(formatFloat(v))
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case []string:
		b.WriteByte('[')
		for i, s := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			writeQuoted(b, s)
		}
		b.WriteByte(']')
	case []int64:
		b.WriteByte('[')
		for i, n := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatInt(n, 10))
		}
		b.WriteByte(']')
	case []float64:
		b.WriteByte('[')
		for i, n := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatFloat(n))
		}
		b.WriteByte(']')
	case []bool:
		b.WriteByte('[')
		for i, f := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatBool(f))
		}
		b.WriteByte(']')
	case GeoRange:
		b.WriteString("{geoCoordinates:{latitude:")
		b.WriteString(formatFloat(v.Coordinates.Latitude))
		b.WriteString(" longitude:")
		b.WriteString(formatFloat(v.Coordinates.Longitude))
		b.WriteString("} distance:{max:")
		b.WriteString(formatFloat(v.MaxDistance))
		b.WriteString("}}")
	default:
		return fault.Serializationf("unsupported filter value type %T", value)
	}
	return nil
}

// formatFloat renders the canonical numeric form: shortest decimal text that
// round-trips, plain notation, no trailing zeros.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// writeQuoted writes a double-quoted string with backslash, quote, newline,
// carriage return, and tab escaped. Other bytes pass through verbatim.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}
