// Package graphql builds Get query documents for the search store and
// normalizes their raw JSON responses.
//
// The package is the pure middle layer of the client: it turns a typed
// query description into one deterministic GraphQL document string, and a
// raw response body into a list of records. It performs no I/O; sending the
// document is the job of an Executor (see the searchstore package).
//
// # Building a query
//
//	query := graphql.NewQuery("Article").
//	    WithFields("title", "url").
//	    Where(filters.Equal([]string{"status"}, "published")).
//	    WithNearText(graphql.NearText{Concepts: []string{"ai"}}).
//	    WithLimit(5).
//	    WithAdditional(graphql.AdditionalID, graphql.AdditionalDistance)
//
//	document, err := query.Render()
//	// {Get{Article(nearText:{concepts:["ai"]}, where:{path:["status"]
//	//  operator:Equal valueText:"published"}, limit:5)
//	//  {title url _additional{id distance}}}}
//
// Query values are immutable: every builder method returns a new value, so
// a base query can be branched into variants without interference. The five
// search modes (nearText, nearVector, nearObject, bm25, hybrid) are
// mutually exclusive; activating a second, different mode records a
// validation error. All invalid inputs surface through Validate or Render,
// never as output.
//
// Rendering is deterministic. Arguments keep a fixed order, _additional
// keys a fixed enum order, and numbers a canonical decimal form, so equal
// queries produce byte-identical documents. Rendered strings are safe to
// cache, diff, and assert against in tests.
//
// # Normalizing a response
//
//	records, err := graphql.Normalize(raw, "Article")
//
// Normalize returns the collection's record array verbatim. The service's
// errors array always wins over data, reported as *fault.GraphQLError;
// unexpected response shapes are serialization errors.
//
// # Escape hatch
//
// WithRawFragment replaces the entire collection selection with a verbatim
// fragment for query shapes the builder cannot express. Validation is
// skipped; the caller owns the fragment's correctness.
package graphql
