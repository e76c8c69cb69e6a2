package listing

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/querypipe/v1/logger"
	qpmongo "github.com/Aleph-Alpha/querypipe/v1/mongo"
	"github.com/Aleph-Alpha/querypipe/v1/observability"
	"github.com/Aleph-Alpha/querypipe/v1/tracer"
)

// FXModule provides the listing *Service.
//
// The service runs against an Aggregator when one is provided and otherwise
// against the *mongo.MongoClient from the mongo module. The logger, tracer and
// observer are picked up when their modules are present.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    mongo.FXModule,
//	    listing.FXModule,
//	    fx.Provide(
//	        func() mongo.Config { return mongoCfg },
//	        func() listing.Config { return listing.Config{TenantField: "storeId"} },
//	    ),
//	)
var FXModule = fx.Module("listing",
	fx.Provide(
		NewServiceWithDI,
	),
)

// ServiceParams groups the dependencies needed to create a Service
type ServiceParams struct {
	fx.In

	Config     Config
	Aggregator Aggregator             `optional:"true"`
	Mongo      *qpmongo.MongoClient   `optional:"true"`
	Logger     logger.Logger          `optional:"true"`
	Tracer     *tracer.Tracer         `optional:"true"`
	Observer   observability.Observer `optional:"true"`
}

// NewServiceWithDI creates a Service from injected dependencies.
func NewServiceWithDI(params ServiceParams) (*Service, error) {
	agg := params.Aggregator
	if agg == nil && params.Mongo != nil {
		agg = params.Mongo
	}

	svc, err := NewService(agg, params.Config)
	if err != nil {
		return nil, err
	}

	if params.Logger != nil {
		svc.WithLogger(params.Logger)
	}
	if params.Tracer != nil {
		svc.WithTracer(params.Tracer)
	}
	if params.Observer != nil {
		svc.WithObserver(params.Observer)
	}
	return svc, nil
}
