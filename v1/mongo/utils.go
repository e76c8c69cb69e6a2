package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// countField names the output of the $count stage appended by Count.
const countField = "count"

// Aggregate runs pipeline against collection and returns every result document.
// Driver errors are returned as-is.
func (m *MongoClient) Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error) {
	start := time.Now()

	docs, err := m.aggregate(ctx, collection, pipeline)
	m.observeOperation("aggregate", collection, "", time.Since(start), err, int64(len(docs)), map[string]interface{}{
		"stages": len(pipeline),
	})
	return docs, err
}

// Count runs pipeline followed by {$count: "count"} and returns the count.
// A pipeline that produces no documents yields zero.
func (m *MongoClient) Count(ctx context.Context, collection string, pipeline mongo.Pipeline) (int64, error) {
	start := time.Now()

	counting := make(mongo.Pipeline, 0, len(pipeline)+1)
	counting = append(counting, pipeline...)
	counting = append(counting, bson.D{{Key: "$count", Value: countField}})

	docs, err := m.aggregate(ctx, collection, counting)
	var total int64
	if err == nil && len(docs) > 0 {
		total = toInt64(docs[0][countField])
	}

	m.observeOperation("count", collection, "", time.Since(start), err, total, map[string]interface{}{
		"stages": len(pipeline),
	})
	return total, err
}

func (m *MongoClient) aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, ErrEmptyCollection
	}
	if m.db == nil {
		return nil, ErrNotConnected
	}

	opts := options.Aggregate()
	if m.cfg.AllowDiskUse {
		opts.SetAllowDiskUse(true)
	}

	cursor, err := m.db.Collection(collection).Aggregate(ctx, pipeline, opts)
	if err != nil {
		return nil, err
	}

	docs := make([]bson.M, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// toInt64 normalises the numeric types $count may produce.
func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
