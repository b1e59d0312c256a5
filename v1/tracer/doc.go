// Package tracer provides distributed tracing functionality using
// OpenTelemetry.
//
// The package offers a simplified interface for creating and managing
// trace spans without exposing the full OpenTelemetry API surface. It
// covers span creation, error recording, span attributes, and trace
// context propagation across service boundaries.
//
// Basic usage:
//
//	import (
//		"context"
//
//		"github.com/Aleph-Alpha/searchstore/v1/logger"
//		"github.com/Aleph-Alpha/searchstore/v1/tracer"
//	)
//
//	log := logger.NewLoggerClient(logger.DefaultConfig())
//
//	tracerClient := tracer.NewClient(tracer.Config{
//		ServiceName:  "searchstore",
//		AppEnv:       "development",
//		EnableExport: false,
//	}, log)
//
//	ctx, span := tracerClient.StartSpan(context.Background(), "searchstore.query")
//	defer span.End()
//
//	tracerClient.SetAttributes(span, map[string]interface{}{
//		"collection": "Article",
//	})
//
// When export is enabled, spans are shipped via OTLP HTTP to the
// endpoint configured through the standard OTEL_EXPORTER_OTLP_*
// environment variables.
//
// For applications using Uber's fx, FXModule wires the tracer into the
// dependency graph and flushes pending spans on shutdown.
package tracer
