package observability

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/searchstore/v1/logger"
)

// FXModule defines the Fx module for the observability package.
// It provides the Prometheus observer to the dependency injection
// container and manages the lifecycle of its metrics HTTP server.
//
// The module:
//  1. Provides NewPrometheusObserver so other components can depend on
//     *PrometheusObserver or wire it as an Observer.
//  2. Invokes RegisterObserverLifecycle to start and gracefully stop
//     the metrics server.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    observability.FXModule,
//	    fx.Provide(func() observability.Config {
//	        return observability.DefaultConfig()
//	    }),
//	    // other modules...
//	)
//
// A Config instance must be available in the container; a logger.Logger
// is required for startup and shutdown logs.
var FXModule = fx.Module("observability",
	fx.Provide(
		NewPrometheusObserver,
		func(o *PrometheusObserver) Observer { return o },
	),
	fx.Invoke(RegisterObserverLifecycle),
)

// RegisterObserverLifecycle manages the startup and shutdown of the
// Prometheus metrics HTTP server.
//
// OnStart launches the server in a background goroutine; OnStop shuts
// it down gracefully. This keeps metrics scrapable for the lifetime of
// the application without blocking startup.
func RegisterObserverLifecycle(lc fx.Lifecycle, o *PrometheusObserver, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
					"address": o.Server.Addr,
				})

				if err := o.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("Error starting Prometheus metrics server", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Prometheus metrics server", nil, nil)
			return o.Server.Shutdown(ctx)
		},
	})
}
