package mongo

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/querypipe/v1/logger"
	"github.com/Aleph-Alpha/querypipe/v1/observability"
)

// FXModule is an fx.Module that provides and configures the MongoDB client.
//
// The module:
// 1. Provides the *MongoClient built from Config
// 2. Invokes the lifecycle registration to ping on start and disconnect on stop
//
// Usage:
//
//	app := fx.New(
//	    mongo.FXModule,
//	    fx.Provide(func() mongo.Config { return loadMongoConfig() }),
//	)
var FXModule = fx.Module("mongo",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterMongoLifecycle),
)

// MongoParams groups the dependencies needed to create a MongoDB client
type MongoParams struct {
	fx.In

	Config   Config
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a MongoDB client from injected dependencies.
// The optional logger replaces Config.Logger and the optional observer is
// attached with WithObserver.
func NewClientWithDI(params MongoParams) (*MongoClient, error) {
	if params.Logger != nil {
		params.Config.Logger = params.Logger
	}

	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Observer != nil {
		client.WithObserver(params.Observer)
	}
	return client, nil
}

// MongoLifecycleParams groups the dependencies needed for lifecycle management
type MongoLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *MongoClient
}

// RegisterMongoLifecycle pings the server on application start and disconnects
// on application stop.
func RegisterMongoLifecycle(params MongoLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := params.Client.Ping(ctx); err != nil {
				params.Client.logWarn("Failed to ping MongoDB on startup", err)
				return err
			}
			params.Client.logInfo("MongoDB client started and healthy")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Client.logInfo("Shutting down MongoDB client")
			return params.Client.Close()
		},
	})
}

func (m *MongoClient) logInfo(msg string) {
	if m.logger != nil {
		m.logger.Info(msg, nil)
		return
	}
	log.Println("INFO: " + msg)
}

func (m *MongoClient) logWarn(msg string, err error) {
	if m.logger != nil {
		m.logger.Warn(msg, err)
		return
	}
	log.Printf("WARN: %s: %v", msg, err)
}
