package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	traceSpan "go.opentelemetry.io/otel/trace"
)

// StartSpan creates a new span with the given name and returns an
// updated context containing the span, along with the span itself.
//
// The created span becomes a child of any span present in the provided
// context; otherwise a new root span is created. The returned span must
// be ended when the operation completes.
//
// Example:
//
//	func (c *Client) Query(ctx context.Context, q graphql.Query) ([]graphql.Record, error) {
//	    ctx, span := c.tracer.StartSpan(ctx, "searchstore.query")
//	    defer span.End()
//	    ...
//	}
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span) {
	tracer := t.tracer.Tracer("")
	ctx, span := tracer.Start(ctx, name)
	return ctx, span
}

// RecordErrorOnSpan records an error on a span and sets its status to
// error, marking the span as a failed operation for trace backends.
//
// Example:
//
//	records, err := c.runQuery(ctx, document)
//	if err != nil {
//	    c.tracer.RecordErrorOnSpan(span, err)
//	    return nil, err
//	}
func (t *Tracer) RecordErrorOnSpan(span traceSpan.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetAttributes adds one or more attributes to a span. Values can be
// strings, ints, int64s, float64s, or booleans; other types are
// converted to strings using fmt.Sprint.
//
// Example:
//
//	t.SetAttributes(span, map[string]interface{}{
//	    "collection": "Article",
//	    "limit":      10,
//	})
func (t *Tracer) SetAttributes(span traceSpan.Span, attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}

	attributes := make([]attribute.KeyValue, 0, len(attrs))

	for k, v := range attrs {
		switch val := v.(type) {
		case string:
			attributes = append(attributes, attribute.String(k, val))
		case int:
			attributes = append(attributes, attribute.Int(k, val))
		case int64:
			attributes = append(attributes, attribute.Int64(k, val))
		case float64:
			attributes = append(attributes, attribute.Float64(k, val))
		case bool:
			attributes = append(attributes, attribute.Bool(k, val))
		default:
			// For unsupported types, convert to string
			attributes = append(attributes, attribute.String(k, fmt.Sprint(val)))
		}
	}

	span.SetAttributes(attributes...)
}

// GetCarrier extracts the current trace context from a context object
// and returns it as a map that can be transmitted across service
// boundaries. The map contains W3C Trace Context headers, typically
// "traceparent" and, if present, "tracestate".
//
// Example:
//
//	traceHeaders := t.GetCarrier(ctx)
//	for key, value := range traceHeaders {
//	    req.Header.Set(key, value)
//	}
func (t *Tracer) GetCarrier(ctx context.Context) map[string]string {
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	carrier := propagation.MapCarrier{}
	propagator.Inject(ctx, carrier)
	return carrier
}

// SetCarrierOnContext extracts trace information from a carrier map and
// injects it into a context. This is the complement to GetCarrier and
// is typically used when receiving requests or messages from other
// services that include trace headers, so spans created locally join
// the upstream trace.
func (t *Tracer) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	return propagator.Extract(ctx, propagation.MapCarrier(carrier))
}
