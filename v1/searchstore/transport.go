package searchstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/searchstore/v1/fault"
)

const (
	graphqlPath = "/v1/graphql"

	// instrumentationName identifies this package in emitted spans.
	instrumentationName = "github.com/Aleph-Alpha/searchstore/v1/searchstore"
)

// graphqlRequest is the wire envelope for a query document.
type graphqlRequest struct {
	Query string `json:"query"`
}

// httpExecutor is the default Executor. It posts query documents to the
// GraphQL endpoint and guards each call with bounded retries and an
// optional circuit breaker. Server errors and network failures are
// retried with exponential backoff; client errors fail immediately.
type httpExecutor struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     Logger

	maxRetries   int
	retryInitial time.Duration
	retryMax     time.Duration

	breaker *gobreaker.CircuitBreaker
}

func newHTTPExecutor(cfg Config, httpClient *http.Client) *httpExecutor {
	e := &httpExecutor{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		httpClient:   httpClient,
		logger:       cfg.Logger,
		maxRetries:   cfg.MaxRetries,
		retryInitial: cfg.RetryInitialInterval,
		retryMax:     cfg.RetryMaxInterval,
	}

	if cfg.Breaker.Enabled {
		e.breaker = gobreaker.NewCircuitBreaker(newBreakerSettings(cfg.Breaker, cfg.Logger))
	}

	return e
}

// newBreakerSettings translates BreakerConfig into gobreaker settings.
// State changes are logged so operators can see when the transport
// starts shedding requests.
func newBreakerSettings(cfg BreakerConfig, logger Logger) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "searchstore",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= cfg.ReadyToTripRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger != nil {
				logger.Warn("circuit breaker state changed", nil, map[string]interface{}{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				})
			}
		},
	}
}

// Execute implements Executor.
func (e *httpExecutor) Execute(ctx context.Context, document string, opts *RequestOptions) ([]byte, error) {
	if opts != nil && opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	correlationID := ""
	if opts != nil {
		correlationID = opts.CorrelationID
	}
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	payload, err := json.Marshal(graphqlRequest{Query: document})
	if err != nil {
		return nil, fault.Serializationf("encode query request: %v", err)
	}

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "searchstore.execute",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("correlation.id", correlationID),
			attribute.Int("request.bytes", len(payload)),
		),
	)
	defer span.End()

	if e.logger != nil {
		e.logger.Debug("executing query document", nil, map[string]interface{}{
			"correlation_id": correlationID,
			"request_bytes":  len(payload),
		})
	}

	body, err := e.executeGuarded(ctx, e.queryURL(opts), payload, correlationID, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("response.bytes", len(body)))
	return body, nil
}

// executeGuarded routes the call through the circuit breaker when one
// is configured. A rejected call is reported as a transport error with
// the breaker error kept as the cause.
func (e *httpExecutor) executeGuarded(ctx context.Context, requestURL string, payload []byte, correlationID string, opts *RequestOptions) ([]byte, error) {
	if e.breaker == nil {
		return e.executeWithRetry(ctx, requestURL, payload, correlationID, opts)
	}

	out, err := e.breaker.Execute(func() (interface{}, error) {
		return e.executeWithRetry(ctx, requestURL, payload, correlationID, opts)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &fault.TransportError{Err: err}
		}
		return nil, err
	}

	return out.([]byte), nil
}

// executeWithRetry retries the request with exponential backoff.
// Only retryable failures are attempted again; everything else is
// returned immediately as a permanent error.
func (e *httpExecutor) executeWithRetry(ctx context.Context, requestURL string, payload []byte, correlationID string, opts *RequestOptions) ([]byte, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = e.retryInitial
	bo.MaxInterval = e.retryMax
	bo.MaxElapsedTime = 0 // bounded by the retry count, not wall clock

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(e.maxRetries)), ctx)

	var body []byte
	attempt := 0
	operation := func() error {
		attempt++

		var err error
		body, err = e.doRequest(ctx, requestURL, payload, correlationID, opts)
		if err == nil {
			return nil
		}

		if !isRetryable(err) {
			return backoff.Permanent(err)
		}

		if e.logger != nil {
			e.logger.Warn("retrying query request", err, map[string]interface{}{
				"correlation_id": correlationID,
				"attempt":        attempt,
			})
		}
		return err
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

// doRequest performs a single HTTP POST and maps failures onto the
// transport error type.
func (e *httpExecutor) doRequest(ctx context.Context, requestURL string, payload []byte, correlationID string, opts *RequestOptions) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &fault.TransportError{Err: fmt.Errorf("build request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Correlation-Id", correlationID)
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}
	if opts != nil {
		for key, values := range opts.Headers {
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, &fault.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &fault.TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode >= 300 {
		return nil, &fault.TransportError{StatusCode: resp.StatusCode, Err: errors.New(compactBody(body))}
	}

	return body, nil
}

// queryURL builds the GraphQL endpoint URL with the per-request tenant
// and consistency parameters.
func (e *httpExecutor) queryURL(opts *RequestOptions) string {
	u := e.baseURL + graphqlPath
	if params := writeParams(opts); len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// isRetryable reports whether a failed request may be attempted again.
// Network failures and server errors are retryable; client errors mean
// the request itself is wrong and will not improve on retry.
func isRetryable(err error) bool {
	var tErr *fault.TransportError
	if !errors.As(err, &tErr) {
		return false
	}
	if tErr.StatusCode == 0 {
		// No HTTP response at all, the connection failed.
		return true
	}
	return tErr.StatusCode >= 500 || tErr.StatusCode == http.StatusTooManyRequests
}
