// Package observability defines the operation observer contract shared
// by the searchstore client packages and ships a Prometheus-backed
// implementation of it.
//
// Instrumented components report each finished operation as an
// OperationContext: which component ran what operation against which
// resource, how long it took, whether it failed, and how large the
// payload was. Anything that implements Observer can receive these
// reports; NoopObserver is the default when observability is not
// wired up.
//
// # Direct Usage (Without FX)
//
//	cfg := observability.Config{
//	    Address:                 ":9090",
//	    ServiceName:             "searchstore",
//	    EnableDefaultCollectors: true,
//	}
//
//	obs := observability.NewPrometheusObserver(cfg)
//	go obs.Server.ListenAndServe()
//
//	store := searchstore.NewClient(storeCfg).WithObserver(obs)
//
// The observer exposes three operation metrics, each carrying a
// constant service label:
//
//	operations_total{component,operation,status}
//	operation_duration_seconds{component,operation}
//	operation_payload_bytes_total{component,operation}
//
// # FX Module Integration
//
// For applications using Uber's fx, FXModule provides the observer and
// manages the metrics server lifecycle:
//
//	app := fx.New(
//	    logger.FXModule,
//	    observability.FXModule,
//	    fx.Provide(func() observability.Config {
//	        return observability.DefaultConfig()
//	    }),
//	)
//	app.Run()
//
// # Custom Metrics
//
// Applications can register additional metrics on the observer's
// registry through CreateCounter, CreateHistogram and CreateGauge, or
// by calling Registry.MustRegister directly.
//
// # Thread Safety
//
// All Observer implementations in this package are safe for concurrent
// use by multiple goroutines.
package observability
