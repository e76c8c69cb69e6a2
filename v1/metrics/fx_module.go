package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/querypipe/v1/logger"
	"github.com/Aleph-Alpha/querypipe/v1/observability"
)

// FXModule provides *Metrics, MetricsCollector and observability.Observer
// from a metrics.Config and serves the registry for the lifetime of the app.
// The mongo and listing modules take the Observer as an optional dependency,
// so adding this module is all it takes to get operation metrics:
//
//	app := fx.New(
//	    config.FXModule,
//	    logger.FXModule,
//	    metrics.FXModule,
//	    mongo.FXModule,
//	    listing.FXModule,
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *Metrics) MetricsCollector { return m },
		func(m *Metrics) observability.Observer { return m },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// MetricsLifecycleParams groups the dependencies needed for lifecycle management
type MetricsLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Logger    logger.Logger `optional:"true"`
}

// RegisterMetricsLifecycle serves the registry in the background on start and
// shuts the server down on stop.
func RegisterMetricsLifecycle(params MetricsLifecycleParams) {
	m, log := params.Metrics, params.Logger
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if log != nil {
					log.Info("metrics server listening", nil, map[string]interface{}{
						"address": m.Server.Addr,
					})
				}
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) && log != nil {
					log.Error("metrics server failed", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if log != nil {
				log.Info("metrics server stopping", nil)
			}
			return m.Server.Shutdown(ctx)
		},
	})
}
