package searchstore

import (
	"context"
	"net/http"
	"time"

	"github.com/Aleph-Alpha/searchstore/v1/graphql"
	"github.com/Aleph-Alpha/searchstore/v1/observability"
)

// Client is the entrypoint for talking to the search store. It renders
// queries, executes them over the transport, and normalizes responses.
// Alongside the query path it carries the REST plumbing for schema
// management, object ingestion and health checks.
//
// Client implements the Store interface.
type Client struct {
	// cfg stores the configuration for this client, defaults applied
	cfg Config

	// executor runs rendered query documents
	executor Executor

	// httpClient is shared by the REST surface and the transport
	httpClient *http.Client

	// logger is used for structured logging
	logger Logger

	// observer provides optional observability hooks for tracking operations
	observer observability.Observer
}

// NewClient creates and initializes a new search store client.
//
// The configuration is validated and zero values are replaced with
// defaults. No connection is made here; use Ready to probe the service
// or let the fx lifecycle do it on startup.
//
// Example:
//
//	client, err := searchstore.NewClient(searchstore.FromEndpoint("http://localhost:8080"))
//	if err != nil {
//		return err
//	}
//	defer client.Close()
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.applyDefaults()

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
	}

	c := &Client{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
	c.executor = newHTTPExecutor(cfg, httpClient)

	if c.logger != nil {
		c.logger.Info("search store client initialized", nil, map[string]interface{}{
			"base_url": cfg.BaseURL,
		})
	}

	return c, nil
}

// WithObserver sets the observer for this client and returns the client
// for method chaining.
//
// Example:
//
//	client := client.WithObserver(myObserver).WithLogger(myLogger)
func (c *Client) WithObserver(observer observability.Observer) *Client {
	c.observer = observer
	return c
}

// WithLogger sets the logger for this client and returns the client for
// method chaining.
//
// Example:
//
//	client := client.WithObserver(myObserver).WithLogger(myLogger)
func (c *Client) WithLogger(logger Logger) *Client {
	c.logger = logger
	if e, ok := c.executor.(*httpExecutor); ok {
		e.logger = logger
	}
	return c
}

// WithExecutor replaces the transport. Intended for tests and for
// callers that layer their own middleware around the default executor.
func (c *Client) WithExecutor(executor Executor) *Client {
	c.executor = executor
	return c
}

// Query renders the query document, executes it, and normalizes the
// response into one record per returned object.
//
// Builder errors surface here before anything is sent: an invalid
// query never reaches the service. Service-reported errors come back
// as a graphql error, response shape surprises as a serialization
// error, and delivery failures as a transport error.
//
// Example:
//
//	q := graphql.NewQuery("Article").
//	    WithFields("title", "url").
//	    WithNearText(graphql.NearText{Concepts: []string{"ai"}}).
//	    WithLimit(10)
//
//	records, err := client.Query(ctx, q, nil)
func (c *Client) Query(ctx context.Context, q graphql.Query, opts *RequestOptions, normOpts ...graphql.NormalizeOption) ([]graphql.Record, error) {
	start := time.Now()

	records, err := c.runQuery(ctx, q, opts, normOpts...)

	c.observeOperation("query", q.Collection(), tenantOf(opts), time.Since(start), err, 0, map[string]interface{}{
		"records": len(records),
	})

	return records, err
}

func (c *Client) runQuery(ctx context.Context, q graphql.Query, opts *RequestOptions, normOpts ...graphql.NormalizeOption) ([]graphql.Record, error) {
	document, err := q.Render()
	if err != nil {
		return nil, err
	}

	raw, err := c.executor.Execute(ctx, document, opts)
	if err != nil {
		return nil, err
	}

	records, err := graphql.Normalize(raw, q.Collection(), normOpts...)
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Debug("query completed", nil, map[string]interface{}{
			"collection": q.Collection(),
			"records":    len(records),
		})
	}

	return records, nil
}

// RawQuery executes an already rendered document and returns the raw
// response body. It is the escape hatch for query shapes the builder
// does not cover; the caller interprets the bytes.
func (c *Client) RawQuery(ctx context.Context, document string, opts *RequestOptions) ([]byte, error) {
	start := time.Now()

	raw, err := c.executor.Execute(ctx, document, opts)

	c.observeOperation("raw_query", "", tenantOf(opts), time.Since(start), err, int64(len(raw)), nil)

	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Close releases client resources. The underlying HTTP client keeps no
// persistent state beyond idle connections, which are closed here.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()

	if c.logger != nil {
		c.logger.Info("search store client closed", nil, nil)
	}
	return nil
}

// tenantOf extracts the tenant from request options for observability.
func tenantOf(opts *RequestOptions) string {
	if opts == nil {
		return ""
	}
	return opts.Tenant
}
