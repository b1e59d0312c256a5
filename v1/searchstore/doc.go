// Package searchstore is the client for the search store's GraphQL
// query surface and its REST management endpoints.
//
// The query path composes three collaborators: the graphql package
// renders a Query into its canonical document, the transport posts it
// to the service, and the response is normalized into records. The
// package also carries the supporting plumbing a deployment needs:
// schema management, object ingestion, and health probes.
//
// # Querying
//
//	cfg := searchstore.FromEndpoint("http://localhost:8080").
//	    WithAPIKey(os.Getenv("SEARCHSTORE_API_KEY"))
//
//	client, err := searchstore.NewClient(cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	q := graphql.NewQuery("Article").
//	    WithFields("title", "url").
//	    WithNearText(graphql.NearText{Concepts: []string{"vector databases"}}).
//	    WithLimit(10).
//	    WithAdditional(graphql.AdditionalID, graphql.AdditionalDistance)
//
//	records, err := client.Query(ctx, q, nil)
//
// Query validation happens before anything is sent: a query carrying a
// recorded builder error never reaches the service. Failures are
// classified by the fault package; use fault.IsValidation,
// fault.IsGraphQL and friends to branch on the category.
//
// # Transport behavior
//
// The default transport retries server errors and network failures
// with exponential backoff and never retries client errors. A circuit
// breaker sheds requests after sustained failure. Every request carries
// an X-Correlation-Id header, generated per request unless provided in
// RequestOptions, and an OpenTelemetry client span.
//
// # Management surface
//
//	err = client.EnsureCollection(ctx, searchstore.CollectionSpec{
//	    Class: "Article",
//	    Properties: []searchstore.PropertySpec{
//	        {Name: "title", DataType: []string{"text"}},
//	        {Name: "views", DataType: []string{"int"}},
//	    },
//	})
//
//	err = client.BatchInsert(ctx, objects, nil)
//
// BatchInsert splits large sets into chunks and runs a bounded number
// of chunk requests concurrently; the first failure aborts the rest.
//
// # FX Module Integration
//
// FXModule provides the client to an fx application, probes readiness
// on startup, and closes the client on shutdown:
//
//	app := fx.New(
//	    logger.FXModule,
//	    searchstore.FXModule,
//	    fx.Provide(func() searchstore.Config {
//	        cfg, err := searchstore.LoadConfig()
//	        if err != nil {
//	            panic(err)
//	        }
//	        return cfg
//	    }),
//	)
//	app.Run()
//
// # Thread Safety
//
// The client is safe for concurrent use. Queries are value types;
// sharing a prefix between goroutines is safe because deriving a new
// query never mutates the one it was derived from.
package searchstore
