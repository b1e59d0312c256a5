package graphql

import (
	"strconv"
	"strings"

	"github.com/Aleph-Alpha/searchstore/v1/filters"
)

// Render validates the query and produces its canonical GraphQL document:
//
//	{Get{<Collection>(<args>){<fields> _additional{<keys>}}}}
//
// Arguments render in a fixed order (search mode, where, sort, limit,
// offset, after) separated by ", "; the parentheses are omitted entirely
// when there are no arguments. Fields render space-separated in insertion
// order, followed by _additional only when metadata keys were requested.
// Equal queries always render byte-identical documents.
//
// A query with a raw fragment renders {Get{<fragment>}} with the fragment
// inserted verbatim.
func (q Query) Render() (string, error) {
	if err := q.Validate(); err != nil {
		return "", err
	}
	if q.raw != "" {
		return "{Get{" + q.raw + "}}", nil
	}
	var b strings.Builder
	b.WriteString("{Get{")
	b.WriteString(q.collection)
	args, err := q.renderArgs()
	if err != nil {
		return "", err
	}
	if len(args) > 0 {
		b.WriteByte('(')
		b.WriteString(strings.Join(args, ", "))
		b.WriteByte(')')
	}
	b.WriteByte('{')
	b.WriteString(strings.Join(q.fields, " "))
	if q.hasAdditional() {
		b.WriteByte(' ')
		q.writeAdditional(&b)
	}
	b.WriteString("}}}")
	return b.String(), nil
}

// renderArgs assembles the argument list in its fixed order.
func (q Query) renderArgs() ([]string, error) {
	var args []string
	if q.mode != modeNone {
		args = append(args, q.renderMode())
	}
	if q.filter != nil {
		fragment, err := filters.Serialize(q.filter)
		if err != nil {
			return nil, err
		}
		args = append(args, "where:"+fragment)
	}
	if len(q.sort) > 0 {
		args = append(args, renderSort(q.sort))
	}
	if q.limit != nil {
		args = append(args, "limit:"+strconv.Itoa(*q.limit))
	}
	if q.offset != nil {
		args = append(args, "offset:"+strconv.Itoa(*q.offset))
	}
	if q.after != "" {
		args = append(args, "after:"+quote(q.after))
	}
	return args, nil
}

// renderMode renders the active search-mode argument. Sub-fields appear in
// declaration order; optional ones are omitted when unset.
func (q Query) renderMode() string {
	var b strings.Builder
	switch q.mode {
	case modeNearText:
		b.WriteString("nearText:{concepts:")
		writeStringList(&b, q.nearText.Concepts)
		writeOptionalFloat(&b, "certainty", q.nearText.Certainty)
		writeOptionalFloat(&b, "distance", q.nearText.Distance)
		b.WriteByte('}')
	case modeNearVector:
		b.WriteString("nearVector:{vector:")
		writeVector(&b, q.nearVector.Vector)
		writeOptionalFloat(&b, "certainty", q.nearVector.Certainty)
		writeOptionalFloat(&b, "distance", q.nearVector.Distance)
		b.WriteByte('}')
	case modeNearObject:
		b.WriteString("nearObject:{id:")
		b.WriteString(quote(q.nearObject.ID))
		writeOptionalFloat(&b, "certainty", q.nearObject.Certainty)
		writeOptionalFloat(&b, "distance", q.nearObject.Distance)
		b.WriteByte('}')
	case modeBM25:
		b.WriteString("bm25:{query:")
		b.WriteString(quote(q.bm25.Query))
		if len(q.bm25.Properties) > 0 {
			b.WriteString(" properties:")
			writeStringList(&b, q.bm25.Properties)
		}
		b.WriteByte('}')
	case modeHybrid:
		b.WriteString("hybrid:{query:")
		b.WriteString(quote(q.hybrid.Query))
		if len(q.hybrid.Vector) > 0 {
			b.WriteString(" vector:")
			writeVector(&b, q.hybrid.Vector)
		}
		writeOptionalFloat(&b, "alpha", q.hybrid.Alpha)
		if name := q.hybrid.FusionType.String(); name != "" {
			b.WriteString(" fusionType:")
			b.WriteString(name)
		}
		if len(q.hybrid.Properties) > 0 {
			b.WriteString(" properties:")
			writeStringList(&b, q.hybrid.Properties)
		}
		b.WriteByte('}')
	}
	return b.String()
}

func renderSort(sorts []Sort) string {
	var b strings.Builder
	b.WriteString("sort:[")
	for i, s := range sorts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("{path:[")
		for j, segment := range s.Path {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(quote(segment))
		}
		b.WriteString("] order:")
		b.WriteString(s.Order.String())
		b.WriteByte('}')
	}
	b.WriteByte(']')
	return b.String()
}

func (q Query) hasAdditional() bool {
	for _, set := range q.additional {
		if set {
			return true
		}
	}
	return false
}

// writeAdditional renders the requested metadata keys in fixed enum order,
// independent of insertion order.
func (q Query) writeAdditional(b *strings.Builder) {
	b.WriteString("_additional{")
	first := true
	for i := 0; i < additionalCount; i++ {
		if !q.additional[i] {
			continue
		}
		if !first {
			b.WriteByte(' ')
		}
		b.WriteString(Additional(i).String())
		first = false
	}
	b.WriteByte('}')
}

func writeOptionalFloat(b *strings.Builder, name string, value *float64) {
	if value == nil {
		return
	}
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(*value, 'f', -1, 64))
}

func writeStringList(b *strings.Builder, values []string) {
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(v))
	}
	b.WriteByte(']')
}

// writeVector renders embedding elements at float32 precision so each
// element keeps its shortest decimal form.
func writeVector(b *strings.Builder, vector []float32) {
	b.WriteByte('[')
	for i, v := range vector {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
}

// quote returns a double-quoted GraphQL string with backslash, quote, and
// control characters escaped.
func quote(s string) string {
	var b strings.Builder
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
	return b.String()
}
