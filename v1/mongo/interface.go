package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Client runs aggregation pipelines against a single database.
//
// This interface is implemented by the concrete *MongoClient type.
type Client interface {
	// Aggregate runs pipeline against collection and decodes every result document.
	Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error)

	// Count runs pipeline followed by a $count stage. A pipeline that yields
	// no documents counts as zero.
	Count(ctx context.Context, collection string, pipeline mongo.Pipeline) (int64, error)

	Ping(ctx context.Context) error
	Database() *mongo.Database
	Client() *mongo.Client
	Close() error
}

var _ Client = (*MongoClient)(nil)
