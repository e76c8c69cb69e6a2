package listing

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Aleph-Alpha/querypipe/v1/pipeline"
	"github.com/Aleph-Alpha/querypipe/v1/querystring"
)

// FetchItemByID returns the first document of collection whose identifier
// matches id as a string id, a numeric id or an ObjectID _id.
//
// When id is blank the request's id parameter is used. If both are blank no
// query is run. A missing document is reported as found == false, never as an error.
func (s *Service) FetchItemByID(ctx context.Context, collection, id string, req *querystring.Request, opts Options) (bson.M, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" && req != nil {
		id = strings.TrimSpace(req.ID)
	}
	if id == "" {
		return nil, false, nil
	}

	stages := pipeline.Concat(
		s.tenantStages(opts),
		mongo.Pipeline{pipeline.Match(pipeline.IdentifierMatch(id))},
	)
	return s.fetchItem(ctx, collection, "id", stages)
}

// FetchItemByField returns the first document of collection where field equals
// value, after running the extra stages. A missing document is reported as
// found == false, never as an error. A blank field is not found without a query.
func (s *Service) FetchItemByField(ctx context.Context, collection, field string, value any, extra mongo.Pipeline, opts Options) (bson.M, bool, error) {
	if strings.TrimSpace(field) == "" {
		return nil, false, nil
	}

	stages := pipeline.Concat(
		s.tenantStages(opts),
		mongo.Pipeline{pipeline.Match(bson.D{{Key: field, Value: value}})},
		extra,
	)
	return s.fetchItem(ctx, collection, field, stages)
}

func (s *Service) fetchItem(ctx context.Context, collection, field string, stages mongo.Pipeline) (bson.M, bool, error) {
	start := time.Now()
	ctx, end := s.span(ctx, "listing.fetch_item", map[string]interface{}{
		"collection": collection,
		"field":      field,
	})

	docs, err := s.agg.Aggregate(ctx, collection, pipeline.Concat(stages, mongo.Pipeline{pipeline.Limit(1)}))

	end(err)
	if err != nil {
		s.logError(ctx, "item lookup failed", err, map[string]interface{}{
			"collection": collection,
			"field":      field,
		})
	}
	s.observeOperation("fetch_item", collection, field, time.Since(start), err, int64(len(docs)), nil)

	if err != nil || len(docs) == 0 {
		return nil, false, err
	}
	return docs[0], true, nil
}
