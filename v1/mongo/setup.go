package mongo

import (
	"context"
	"fmt"
	"log"
	"sync"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/Aleph-Alpha/querypipe/v1/observability"
)

// MongoClient wraps the official driver client and binds it to one database.
// It is safe for concurrent use.
//
// MongoClient implements the Client interface.
type MongoClient struct {
	client *mongo.Client
	db     *mongo.Database

	cfg Config

	// logger is used for structured logging
	logger Logger

	// observer provides optional observability hooks for tracking operations
	observer observability.Observer

	closeOnce sync.Once
	closeErr  error
}

// NewClient creates a MongoDB client with the provided configuration.
// The driver connects lazily, so NewClient does not fail when the server is
// unreachable; use Ping to check connectivity.
//
// Example:
//
//	client, err := mongo.NewClient(mongo.Config{
//		URI:      "mongodb://localhost:27017",
//		Database: "orders",
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
func NewClient(cfg Config) (*MongoClient, error) {
	cfg = cfg.withDefaults()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize)
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	m := &MongoClient{
		client: client,
		db:     client.Database(cfg.Database),
		cfg:    cfg,
		logger: cfg.Logger,
	}

	if m.logger != nil {
		m.logger.Info("MongoDB client initialized", nil, map[string]interface{}{
			"database": cfg.Database,
		})
	} else {
		log.Println("INFO: MongoDB client initialized")
	}
	return m, nil
}

// WithObserver sets the observer that is notified after every engine call.
// Returns the client for chaining.
func (m *MongoClient) WithObserver(observer observability.Observer) *MongoClient {
	m.observer = observer
	return m
}

// WithLogger replaces the logger. Returns the client for chaining.
func (m *MongoClient) WithLogger(logger Logger) *MongoClient {
	m.logger = logger
	return m
}

// Ping checks that the primary is reachable.
func (m *MongoClient) Ping(ctx context.Context) error {
	if m.client == nil {
		return ErrNotConnected
	}
	return m.client.Ping(ctx, readpref.Primary())
}

// Database returns the database the client is bound to.
func (m *MongoClient) Database() *mongo.Database {
	return m.db
}

// Client returns the underlying driver client.
func (m *MongoClient) Client() *mongo.Client {
	return m.client
}

// Close disconnects from the server. Calling Close more than once is safe;
// later calls return the result of the first.
func (m *MongoClient) Close() error {
	m.closeOnce.Do(func() {
		if m.client == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.DisconnectTimeout)
		defer cancel()
		m.closeErr = m.client.Disconnect(ctx)
	})
	return m.closeErr
}
