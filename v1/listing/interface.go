package listing

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.opentelemetry.io/otel/trace"
)

// Aggregator executes pipelines. It is implemented by *mongo.MongoClient from
// the mongo package of this module.
//
//go:generate mockgen -source=interface.go -destination=mock_aggregator.go -package=listing Aggregator
type Aggregator interface {
	// Aggregate runs the stages against collection and returns the documents in order.
	Aggregate(ctx context.Context, collection string, stages mongo.Pipeline) ([]bson.M, error)

	// Count runs the count-only variant of the stages. No documents count as zero.
	Count(ctx context.Context, collection string, stages mongo.Pipeline) (int64, error)
}

// Logger is the subset of the logger package used here.
type Logger interface {
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Tracer is the subset of the tracer package used here.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
	SetAttributes(span trace.Span, attrs map[string]interface{})
}

// collectionCounter binds an Aggregator to one collection so it can resolve
// percent-of-result filters.
type collectionCounter struct {
	agg        Aggregator
	collection string
}

func (c collectionCounter) Count(ctx context.Context, stages mongo.Pipeline) (int64, error) {
	return c.agg.Count(ctx, c.collection, stages)
}
