package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *LoggerClient and Logger from a logger.Config.
//
//	app := fx.New(
//	    config.FXModule, // or fx.Provide(func() logger.Config { ... })
//	    logger.FXModule,
//	    mongo.FXModule,
//	    listing.FXModule,
//	)
//
// The mongo, metrics, tracer and listing modules pick the Logger up as an
// optional dependency.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
		func(client *LoggerClient) Logger { return client },
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle flushes buffered entries when the application stops.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *LoggerClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync on stderr fails on most platforms.
			_ = client.Zap.Sync()
			return nil
		},
	})
}
