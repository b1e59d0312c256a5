// Package logger provides structured logging for the searchstore client.
//
// The package wraps Uber's Zap with the logging conventions shared by all
// searchstore components: JSON output to stderr, ISO8601 timestamps, service
// and pid stamped onto every entry, and a uniform method signature that
// takes the message, an optional error, and optional structured field maps.
//
// # Direct usage
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "indexer",
//	})
//
//	log.Info("query executed", nil, map[string]interface{}{
//	    "collection": "Article",
//	    "records":    42,
//	})
//
//	if err != nil {
//	    log.Error("query failed", err, map[string]interface{}{
//	        "collection": "Article",
//	    })
//	}
//
// # FX module integration
//
// Applications built on Uber's fx include the module and supply a Config:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(func() logger.Config { return logger.DefaultConfig() }),
//	)
//
// The module registers an OnStop hook that flushes buffered entries on
// shutdown.
//
// Components that only need a logging contract should declare their own
// minimal interface and accept this type through it; see the searchstore
// package for the pattern.
package logger
