package searchstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Aleph-Alpha/searchstore/v1/fault"
	"github.com/Aleph-Alpha/searchstore/v1/observability"
)

// maxErrorBodyBytes caps how much of a failed response body is carried
// into error messages.
const maxErrorBodyBytes = 512

// observeOperation notifies the observer about an operation if one is
// configured. This is used internally to track client operations for
// metrics and tracing.
//
// Notes:
//   - resource: the collection being operated on, when known
//   - subResource: additional context like a tenant name
func (c *Client) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component:   "searchstore",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}

// doJSON sends an HTTP request to a REST path of the search store.
// It marshals the given body as JSON, attaches the required headers,
// maps HTTP error codes onto the error taxonomy, and optionally decodes
// the response JSON into out.
func (c *Client) doJSON(ctx context.Context, method, path string, params url.Values, body any, out any) error {
	requestURL := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fault.Serializationf("encode request: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return &fault.TransportError{Err: fmt.Errorf("build request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &fault.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s: %s", ErrNotFound, path, compactBody(respBody))
	}

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return &fault.TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("%s %s: %s", method, path, compactBody(respBody))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fault.Serializationf("decode response: %v", err)
		}
	}

	return nil
}

// compactBody trims and truncates a response body for inclusion in an
// error message.
func compactBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBodyBytes {
		s = s[:maxErrorBodyBytes] + "..."
	}
	if s == "" {
		return "(empty body)"
	}
	return s
}

// writeParams collects the tenant and consistency settings of a request
// into URL query parameters understood by the REST surface.
func writeParams(opts *RequestOptions) url.Values {
	params := url.Values{}
	if opts == nil {
		return params
	}
	if opts.Tenant != "" {
		params.Set("tenant", opts.Tenant)
	}
	if opts.ConsistencyLevel != "" {
		params.Set("consistency_level", opts.ConsistencyLevel)
	}
	return params
}
