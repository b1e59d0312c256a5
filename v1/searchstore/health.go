package searchstore

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Aleph-Alpha/searchstore/v1/fault"
)

const (
	readyPath = "/v1/.well-known/ready"
	livePath  = "/v1/.well-known/live"
)

// Ready reports whether the service can accept requests. A false result
// without an error means the service answered but is not ready yet; the
// error is non-nil only when no answer was received at all.
func (c *Client) Ready(ctx context.Context) (bool, error) {
	return c.probe(ctx, "ready", readyPath)
}

// Live reports whether the service process is up. Orchestrators use
// this to distinguish a starting service from a dead one.
func (c *Client) Live(ctx context.Context) (bool, error) {
	return c.probe(ctx, "live", livePath)
}

func (c *Client) probe(ctx context.Context, operation, path string) (bool, error) {
	start := time.Now()

	err := c.doJSON(ctx, http.MethodGet, path, nil, nil, nil)

	c.observeOperation(operation, "", "", time.Since(start), err, 0, nil)

	if err == nil {
		return true, nil
	}

	// Any HTTP answer, including 404 and 503, means the service spoke
	// to us; it is just not (yet) in the probed state.
	if IsNotFound(err) {
		return false, nil
	}
	var tErr *fault.TransportError
	if errors.As(err, &tErr) && tErr.StatusCode != 0 {
		return false, nil
	}

	return false, err
}
