package searchstore

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/searchstore/v1/fault"
	"github.com/Aleph-Alpha/searchstore/v1/observability"
)

// FXModule is an fx.Module that provides and configures the search
// store client. It registers the client with the Fx dependency
// injection framework, making it available to other components both as
// *Client and behind the Store interface.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    searchstore.FXModule,
//	    fx.Provide(func() searchstore.Config {
//	        return searchstore.FromEndpoint("http://localhost:8080")
//	    }),
//	    // other modules...
//	)
var FXModule = fx.Module("searchstore",
	fx.Provide(
		NewClientWithDI,
		func(c *Client) Store { return c },
	),
	fx.Invoke(RegisterSearchStoreLifecycle),
)

// Params groups the dependencies needed to create a search store client
type Params struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a new search store client using dependency
// injection. Dependencies are provided automatically via the Params
// struct; the logger and observer are optional and wired in when
// available in the container.
func NewClientWithDI(params Params) (*Client, error) {
	// Inject the logger into the config if provided
	if params.Logger != nil {
		params.Config.Logger = params.Logger
	}

	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}

	if params.Observer != nil {
		client = client.WithObserver(params.Observer)
	}

	return client, nil
}

// LifecycleParams groups the dependencies for lifecycle management
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *Client
}

// RegisterSearchStoreLifecycle registers the client with the fx
// lifecycle system.
//
// On application start the service readiness endpoint is probed so a
// misconfigured base URL fails the startup instead of the first query.
// On stop, idle connections are released.
func RegisterSearchStoreLifecycle(params LifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ready, err := params.Client.Ready(ctx)
			if err != nil {
				return err
			}
			if !ready {
				return &fault.TransportError{Err: fmt.Errorf("service at %s is not ready", params.Client.cfg.BaseURL)}
			}

			if params.Client.logger != nil {
				params.Client.logger.Info("search store client started and healthy", nil, nil)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return params.Client.Close()
		},
	})
}
