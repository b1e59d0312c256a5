package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusObserver is an Observer that translates operation outcomes
// into Prometheus metrics and exposes them over HTTP.
//
// It owns an isolated registry so that multiple observers can coexist
// in one process without metric name collisions.
type PrometheusObserver struct {
	// Server is the HTTP server exposing the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry all metrics are registered in.
	Registry *prometheus.Registry

	// Core operation metrics
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	payloadBytes      *prometheus.CounterVec
}

// NewPrometheusObserver initializes a PrometheusObserver with its own
// registry and an HTTP server serving the metrics endpoint.
//
// Every metric carries a constant service="<cfg.ServiceName>" label so
// dashboards can aggregate across services. Operation metrics are
// labelled by component and operation; the counter additionally carries
// a status label that is "success" or "error".
//
// Example:
//
//	cfg := observability.Config{
//	    Address:     ":9090",
//	    ServiceName: "searchstore",
//	}
//	obs := observability.NewPrometheusObserver(cfg)
//	go obs.Server.ListenAndServe()
//
// Metrics are then available at http://localhost:9090/metrics.
func NewPrometheusObserver(cfg Config) *PrometheusObserver {
	// An isolated registry avoids collisions when several components
	// run in the same process.
	registry := prometheus.NewRegistry()

	// All metrics emitted through this observer automatically include
	// the label service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	o := &PrometheusObserver{
		Registry: registry,
	}

	o.operationsTotal = createCounterVec("operations_total", "Total number of observed operations", []string{"component", "operation", "status"})
	o.operationDuration = createHistogramVec("operation_duration_seconds", "Duration of observed operations in seconds", []string{"component", "operation"}, prometheus.DefBuckets)
	o.payloadBytes = createCounterVec("operation_payload_bytes_total", "Cumulative payload size of observed operations in bytes", []string{"component", "operation"})

	wrappedRegistry.MustRegister(
		o.operationsTotal,
		o.operationDuration,
		o.payloadBytes,
	)

	// Standard collectors give runtime visibility:
	//   - GoCollector: memory usage, goroutines, GC stats
	//   - ProcessCollector: CPU, file descriptors, memory stats
	//   - BuildInfoCollector: binary version/build info
	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	o.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	return o
}

// ObserveOperation implements Observer. It increments the operation
// counter, records the duration and, when the context reports a payload
// size, adds it to the payload counter.
func (o *PrometheusObserver) ObserveOperation(ctx OperationContext) {
	status := "success"
	if ctx.Error != nil {
		status = "error"
	}

	o.operationsTotal.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
	o.operationDuration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())

	if ctx.Size > 0 {
		o.payloadBytes.WithLabelValues(ctx.Component, ctx.Operation).Add(float64(ctx.Size))
	}
}
