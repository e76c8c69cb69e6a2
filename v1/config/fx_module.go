package config

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/querypipe/v1/listing"
	"github.com/Aleph-Alpha/querypipe/v1/logger"
	"github.com/Aleph-Alpha/querypipe/v1/metrics"
	"github.com/Aleph-Alpha/querypipe/v1/mongo"
	"github.com/Aleph-Alpha/querypipe/v1/tracer"
)

// FXModule loads the aggregate Config with DefaultPrefix and provides each
// section to the component modules.
//
// Usage:
//
//	app := fx.New(
//	    config.FXModule,
//	    logger.FXModule,
//	    mongo.FXModule,
//	    listing.FXModule,
//	)
var FXModule = fx.Module("config",
	fx.Provide(
		func() (Config, error) { return LoadConfig(DefaultPrefix) },
		Sections,
	),
)

// SectionsResult exposes the per-component configs to fx.
type SectionsResult struct {
	fx.Out

	Logger  logger.Config
	Metrics metrics.Config
	Tracer  tracer.Config
	Mongo   mongo.Config
	Listing listing.Config
}

// Sections splits the aggregate Config into component configs.
func Sections(cfg Config) SectionsResult {
	return SectionsResult{
		Logger:  cfg.Logger,
		Metrics: cfg.Metrics,
		Tracer:  cfg.Tracer,
		Mongo:   cfg.Mongo,
		Listing: cfg.Listing,
	}
}
