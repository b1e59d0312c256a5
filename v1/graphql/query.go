package graphql

import (
	"github.com/Aleph-Alpha/searchstore/v1/fault"
	"github.com/Aleph-Alpha/searchstore/v1/filters"
)

// Additional enumerates the metadata keys that can be requested under the
// _additional selection of a query.
type Additional int

const (
	// AdditionalID - the object's UUID
	AdditionalID Additional = iota
	// AdditionalVector - the stored embedding
	AdditionalVector
	// AdditionalDistance - raw distance to the search anchor
	AdditionalDistance
	// AdditionalCertainty - normalized similarity to the search anchor
	AdditionalCertainty
	// AdditionalScore - keyword or hybrid relevance score
	AdditionalScore
	// AdditionalExplainScore - per-part breakdown of the score
	AdditionalExplainScore
	// AdditionalCreationTime - object creation timestamp
	AdditionalCreationTime
	// AdditionalLastUpdateTime - object last-update timestamp
	AdditionalLastUpdateTime
)

const additionalCount = int(AdditionalLastUpdateTime) + 1

// String returns the wire spelling of the metadata key.
func (a Additional) String() string {
	switch a {
	case AdditionalID:
		return "id"
	case AdditionalVector:
		return "vector"
	case AdditionalDistance:
		return "distance"
	case AdditionalCertainty:
		return "certainty"
	case AdditionalScore:
		return "score"
	case AdditionalExplainScore:
		return "explainScore"
	case AdditionalCreationTime:
		return "creationTime"
	case AdditionalLastUpdateTime:
		return "lastUpdateTime"
	default:
		return "unknown"
	}
}

// SortOrder is the direction of one sort clause.
type SortOrder int

const (
	// SortAsc - ascending
	SortAsc SortOrder = iota
	// SortDesc - descending
	SortDesc
)

// String returns the wire spelling of the sort order.
func (o SortOrder) String() string {
	if o == SortDesc {
		return "desc"
	}
	return "asc"
}

// Sort orders results by the property at Path.
type Sort struct {
	Path  []string
	Order SortOrder
}

// FusionType selects how a hybrid search merges its keyword and vector
// rankings. The zero value leaves the choice to the service.
type FusionType int

const (
	// FusionUnset - service default
	FusionUnset FusionType = iota
	// FusionRanked - reciprocal rank fusion
	FusionRanked
	// FusionRelativeScore - normalized relative score fusion
	FusionRelativeScore
)

// String returns the wire spelling of the fusion type, or "" when unset.
func (f FusionType) String() string {
	switch f {
	case FusionRanked:
		return "rankedFusion"
	case FusionRelativeScore:
		return "relativeScoreFusion"
	default:
		return ""
	}
}

// NearText searches by semantic similarity to free-text concepts.
type NearText struct {
	Concepts  []string
	Certainty *float64
	Distance  *float64
}

func (n NearText) clone() NearText {
	n.Concepts = append([]string(nil), n.Concepts...)
	return n
}

// NearVector searches by similarity to a raw embedding.
type NearVector struct {
	Vector    []float32
	Certainty *float64
	Distance  *float64
}

func (n NearVector) clone() NearVector {
	n.Vector = append([]float32(nil), n.Vector...)
	return n
}

// NearObject searches by similarity to an already-stored object.
type NearObject struct {
	ID        string
	Certainty *float64
	Distance  *float64
}

// BM25 searches by keyword relevance. Properties restricts the searched
// fields; empty means all text properties.
type BM25 struct {
	Query      string
	Properties []string
}

func (b BM25) clone() BM25 {
	b.Properties = append([]string(nil), b.Properties...)
	return b
}

// Hybrid combines keyword and vector search in one ranking. Alpha weights
// the vector part (0 pure keyword, 1 pure vector); nil uses the service
// default.
type Hybrid struct {
	Query      string
	Vector     []float32
	Alpha      *float64
	FusionType FusionType
	Properties []string
}

func (h Hybrid) clone() Hybrid {
	h.Vector = append([]float32(nil), h.Vector...)
	h.Properties = append([]string(nil), h.Properties...)
	return h
}

// searchMode tracks which mutually exclusive search argument is active.
type searchMode int

const (
	modeNone searchMode = iota
	modeNearText
	modeNearVector
	modeNearObject
	modeBM25
	modeHybrid
)

func (m searchMode) String() string {
	switch m {
	case modeNearText:
		return "nearText"
	case modeNearVector:
		return "nearVector"
	case modeNearObject:
		return "nearObject"
	case modeBM25:
		return "bm25"
	case modeHybrid:
		return "hybrid"
	default:
		return "none"
	}
}

// Query describes one Get request against a single collection. The zero
// value is not usable; start with NewQuery.
//
// Query is an immutable value: every builder method returns a new Query and
// never modifies its receiver, so partially built queries can be shared and
// branched safely. Invalid inputs are recorded inside the returned value and
// surface through Validate and Render; rendering never produces output for
// an invalid query.
type Query struct {
	collection string
	fields     []string
	filter     filters.Node
	mode       searchMode
	nearText   NearText
	nearVector NearVector
	nearObject NearObject
	bm25       BM25
	hybrid     Hybrid
	limit      *int
	offset     *int
	after      string
	additional [additionalCount]bool
	sort       []Sort
	raw        string
	err        error
}

// NewQuery starts a query against the named collection.
func NewQuery(collection string) Query {
	return Query{collection: collection}
}

// Collection returns the collection this query targets.
func (q Query) Collection() string { return q.collection }

// Err reports the first invalid builder input recorded so far.
func (q Query) Err() error { return q.err }

func (q Query) recordErr(err error) Query {
	if q.err == nil {
		q.err = err
	}
	return q
}

// setMode activates a search mode. A second, different mode is recorded as a
// validation error; re-setting the active mode is allowed and replaces its
// parameters.
func (q Query) setMode(m searchMode) Query {
	if q.mode != modeNone && q.mode != m {
		return q.recordErr(fault.Validationf("search mode already set to %s, cannot set %s", q.mode, m))
	}
	q.mode = m
	return q
}

// WithFields adds properties to the selection set. Repeated calls append in
// order.
func (q Query) WithFields(fields ...string) Query {
	q.fields = append(q.fields[:len(q.fields):len(q.fields)], fields...)
	return q
}

// Where attaches a filter tree. A later call replaces the previous filter.
func (q Query) Where(node filters.Node) Query {
	q.filter = node
	return q
}

// WithNearText activates semantic text search.
func (q Query) WithNearText(params NearText) Query {
	q = q.setMode(modeNearText)
	if q.mode == modeNearText {
		q.nearText = params.clone()
	}
	return q
}

// WithNearVector activates raw vector search.
func (q Query) WithNearVector(params NearVector) Query {
	q = q.setMode(modeNearVector)
	if q.mode == modeNearVector {
		q.nearVector = params.clone()
	}
	return q
}

// WithNearObject activates search by similarity to a stored object.
func (q Query) WithNearObject(params NearObject) Query {
	q = q.setMode(modeNearObject)
	if q.mode == modeNearObject {
		q.nearObject = params
	}
	return q
}

// WithBM25 activates keyword search.
func (q Query) WithBM25(params BM25) Query {
	q = q.setMode(modeBM25)
	if q.mode == modeBM25 {
		q.bm25 = params.clone()
	}
	return q
}

// WithHybrid activates combined keyword and vector search.
func (q Query) WithHybrid(params Hybrid) Query {
	q = q.setMode(modeHybrid)
	if q.mode == modeHybrid {
		q.hybrid = params.clone()
	}
	return q
}

// WithLimit caps the number of returned records. Negative values are
// invalid.
func (q Query) WithLimit(limit int) Query {
	if limit < 0 {
		return q.recordErr(fault.Validationf("limit must be >= 0, got %d", limit))
	}
	q.limit = &limit
	return q
}

// WithOffset skips the first offset records. Negative values are invalid.
func (q Query) WithOffset(offset int) Query {
	if offset < 0 {
		return q.recordErr(fault.Validationf("offset must be >= 0, got %d", offset))
	}
	q.offset = &offset
	return q
}

// WithAfter sets the opaque cursor for cursor-based listing. A query using
// after cannot also use limit or offset.
func (q Query) WithAfter(cursor string) Query {
	q.after = cursor
	return q
}

// WithAdditional requests metadata keys under _additional. Repeated calls
// accumulate; duplicate keys are kept once. Keys always render in a fixed
// order regardless of how they were added.
func (q Query) WithAdditional(keys ...Additional) Query {
	for _, key := range keys {
		if key < 0 || int(key) >= additionalCount {
			return q.recordErr(fault.Validationf("unknown additional metadata key %d", key))
		}
		q.additional[key] = true
	}
	return q
}

// WithSort orders the results. The last call wins entirely; calling with no
// clauses clears the sort.
func (q Query) WithSort(sorts ...Sort) Query {
	cloned := make([]Sort, len(sorts))
	for i, s := range sorts {
		if len(s.Path) == 0 {
			return q.recordErr(fault.Validationf("sort clause requires a non-empty property path"))
		}
		cloned[i] = Sort{Path: append([]string(nil), s.Path...), Order: s.Order}
	}
	q.sort = cloned
	return q
}

// WithRawFragment replaces the entire collection selection inside Get with a
// caller-supplied fragment, rendered verbatim. The escape hatch for query
// shapes the builder cannot express; no validation is applied to the
// fragment or to the rest of the query.
func (q Query) WithRawFragment(fragment string) Query {
	q.raw = fragment
	return q
}

// Validate checks the query without rendering it. The checks run in a fixed
// order: recorded builder errors first, then (unless a raw fragment is set)
// collection, field selection, filter validity, and cursor exclusivity.
func (q Query) Validate() error {
	if q.err != nil {
		return q.err
	}
	if q.raw != "" {
		return nil
	}
	if q.collection == "" {
		return fault.Validationf("collection name must not be empty")
	}
	if len(q.fields) == 0 {
		return fault.Validationf("at least one field must be selected")
	}
	if q.filter != nil {
		if err := q.filter.Err(); err != nil {
			return err
		}
	}
	if q.after != "" && q.limit != nil {
		return fault.Validationf("after cursor cannot be combined with limit")
	}
	if q.after != "" && q.offset != nil {
		return fault.Validationf("after cursor cannot be combined with offset")
	}
	return nil
}
