package listing

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Aleph-Alpha/querypipe/v1/pipeline"
	"github.com/Aleph-Alpha/querypipe/v1/querystring"
)

// FetchList returns one page of collection.
//
// The pipeline is assembled in this order:
//
//	prefix
//	tenant $match (when Config.TenantField and opts.TenantValue are set)
//	compiled filters, with percent-of-result truncation resolved by counting
//	  ── total is counted here; CountOnly requests return now ──
//	$sort (unless the stages above already sort)
//	suffix
//	$skip / $limit (unless Export)
//
// Engine errors are returned unmodified.
func (s *Service) FetchList(ctx context.Context, collection string, prefix, suffix mongo.Pipeline, opts Options) (*Result, error) {
	start := time.Now()
	req := s.normalize(opts.Request)

	ctx, end := s.span(ctx, "listing.fetch_list", map[string]interface{}{
		"collection": collection,
		"page":       req.Page,
		"limit":      req.Limit,
		"filters":    len(req.Filters),
		"export":     req.Export,
		"count_only": req.CountOnly,
	})

	result, err := s.fetchList(ctx, collection, prefix, suffix, req, s.tenantStages(opts))

	end(err)
	s.finish(ctx, "fetch_list", collection, "", start, err, result)
	return result, err
}

func (s *Service) fetchList(ctx context.Context, collection string, prefix, suffix mongo.Pipeline, req querystring.Request, tenant mongo.Pipeline) (*Result, error) {
	base := pipeline.Concat(prefix, tenant)

	filters, err := pipeline.CompileWithPercent(ctx, collectionCounter{agg: s.agg, collection: collection}, base, req.Filters)
	if err != nil {
		return nil, err
	}
	filtered := pipeline.Concat(base, filters)

	total, err := s.agg.Count(ctx, collection, filtered)
	if err != nil {
		return nil, err
	}

	result := emptyResult(req.Page)
	result.Total = total
	if req.CountOnly {
		return result, nil
	}

	var sortStages mongo.Pipeline
	if !pipeline.HasStage(filtered, pipeline.StageSort) {
		sortStages = mongo.Pipeline{s.sortStage(req)}
	}

	stages := pipeline.Concat(filtered, sortStages, suffix, pageStages(req))
	s.logDebug(ctx, "running list pipeline", map[string]interface{}{
		"collection": collection,
		"stages":     len(stages),
		"total":      total,
	})

	items, err := s.agg.Aggregate(ctx, collection, stages)
	if err != nil {
		return nil, err
	}
	if items != nil {
		result.Items = items
	}
	return result, nil
}

// FetchUnifiedList returns one page over several collections.
//
// The first source is the base. Every source is shaped as
//
//	prefix, tenant $match, filters, $addFields{<SourceField>: name}, suffix
//
// and every source after the base is attached to the base pipeline with
// $unionWith. The filter stages are compiled once, with percent-of-result
// resolved against the base, and shared verbatim by all sources. Total,
// sorting and paging then apply to the combined stream as in FetchList; the
// sort is always added after the unions.
//
// An empty source list returns an empty result without contacting the engine.
func (s *Service) FetchUnifiedList(ctx context.Context, sources []Source, opts Options) (*Result, error) {
	req := s.normalize(opts.Request)
	if len(sources) == 0 {
		return emptyResult(req.Page), nil
	}

	start := time.Now()
	base := sources[0]

	ctx, end := s.span(ctx, "listing.fetch_unified_list", map[string]interface{}{
		"collection": base.Collection,
		"sources":    len(sources),
		"page":       req.Page,
		"limit":      req.Limit,
		"filters":    len(req.Filters),
		"export":     req.Export,
		"count_only": req.CountOnly,
	})

	result, err := s.fetchUnifiedList(ctx, sources, req, s.tenantStages(opts))

	end(err)
	s.finish(ctx, "fetch_unified_list", base.Collection, base.tag(), start, err, result)
	return result, err
}

func (s *Service) fetchUnifiedList(ctx context.Context, sources []Source, req querystring.Request, tenant mongo.Pipeline) (*Result, error) {
	base := sources[0]

	filters, err := pipeline.CompileWithPercent(ctx,
		collectionCounter{agg: s.agg, collection: base.Collection},
		pipeline.Concat(base.Prefix, tenant),
		req.Filters,
	)
	if err != nil {
		return nil, err
	}

	shape := func(src Source) mongo.Pipeline {
		tag := mongo.Pipeline{pipeline.AddFields(bson.D{{Key: s.cfg.SourceField, Value: src.tag()}})}
		return pipeline.Concat(src.Prefix, tenant, filters, tag, src.Suffix)
	}

	unified := shape(base)
	for _, src := range sources[1:] {
		unified = append(unified, pipeline.UnionWith(src.Collection, shape(src)))
	}

	total, err := s.agg.Count(ctx, base.Collection, unified)
	if err != nil {
		return nil, err
	}

	result := emptyResult(req.Page)
	result.Total = total
	if req.CountOnly {
		return result, nil
	}

	stages := pipeline.Concat(unified, mongo.Pipeline{s.sortStage(req)}, pageStages(req))
	s.logDebug(ctx, "running unified pipeline", map[string]interface{}{
		"collection": base.Collection,
		"sources":    len(sources),
		"stages":     len(stages),
		"total":      total,
	})

	items, err := s.agg.Aggregate(ctx, base.Collection, stages)
	if err != nil {
		return nil, err
	}
	if items != nil {
		result.Items = items
	}
	return result, nil
}

// finish reports a completed list call to the logger and the observer.
func (s *Service) finish(ctx context.Context, operation, collection, source string, start time.Time, err error, result *Result) {
	var size int64
	metadata := map[string]interface{}{}
	if result != nil {
		size = int64(len(result.Items))
		metadata["total"] = result.Total
		metadata["page"] = result.Page
	}

	if err != nil {
		s.logError(ctx, "listing failed", err, map[string]interface{}{
			"operation":  operation,
			"collection": collection,
		})
	}
	s.observeOperation(operation, collection, source, time.Since(start), err, size, metadata)
}
