package searchstore

import (
	"context"
	"net/http"
	"time"

	"github.com/Aleph-Alpha/searchstore/v1/graphql"
)

// Executor sends a rendered query document to the search store and
// returns the raw response body. The default implementation is the
// HTTP transport created by NewClient; tests substitute their own.
type Executor interface {
	// Execute posts the document to the GraphQL endpoint. The returned
	// bytes are the unparsed response body of a 2xx answer. opts may
	// be nil.
	Execute(ctx context.Context, document string, opts *RequestOptions) ([]byte, error)
}

// RequestOptions carries per-request settings. They are attached by the
// caller and interpreted only by the transport; a nil options value
// means defaults everywhere.
type RequestOptions struct {
	// CorrelationID is propagated as the X-Correlation-Id header.
	// When empty, the transport generates a UUID per request.
	CorrelationID string

	// Tenant scopes the request to one tenant of a multi-tenant
	// collection.
	Tenant string

	// ConsistencyLevel selects the write/read consistency, e.g. "ONE",
	// "QUORUM" or "ALL".
	ConsistencyLevel string

	// Timeout overrides the client-wide timeout for this request.
	Timeout time.Duration

	// Headers are added verbatim to the outgoing request.
	Headers http.Header
}

// Store describes the full client surface. It is implemented by *Client
// and exists so application code can depend on an interface while this
// package keeps returning the concrete type.
type Store interface {
	// Query renders the query, executes it, and normalizes the response
	// into one record per returned object.
	Query(ctx context.Context, q graphql.Query, opts *RequestOptions, normOpts ...graphql.NormalizeOption) ([]graphql.Record, error)

	// RawQuery executes an already rendered document and returns the
	// raw response body.
	RawQuery(ctx context.Context, document string, opts *RequestOptions) ([]byte, error)

	// EnsureCollection creates the collection if it does not exist yet.
	// Calling it for an existing collection is a no-op.
	EnsureCollection(ctx context.Context, spec CollectionSpec) error

	// GetCollection fetches one collection definition. Returns an error
	// matching ErrNotFound when the collection does not exist.
	GetCollection(ctx context.Context, name string) (*CollectionSpec, error)

	// ListCollections fetches all collection definitions.
	ListCollections(ctx context.Context) ([]CollectionSpec, error)

	// DeleteCollection removes a collection and all its objects.
	DeleteCollection(ctx context.Context, name string) error

	// InsertObject stores a single object. A missing ID is filled with
	// a generated UUID.
	InsertObject(ctx context.Context, obj Object, opts *RequestOptions) error

	// BatchInsert stores objects in chunks with bounded concurrency.
	// The first failing chunk or rejected object aborts the operation.
	BatchInsert(ctx context.Context, objects []Object, opts *RequestOptions) error

	// Ready reports whether the service can accept requests.
	Ready(ctx context.Context) (bool, error)

	// Live reports whether the service process is up.
	Live(ctx context.Context) (bool, error)

	// Close releases client resources.
	Close() error
}
