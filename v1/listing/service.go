package listing

import (
	"context"
	"math"
	"net/url"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Aleph-Alpha/querypipe/v1/observability"
	"github.com/Aleph-Alpha/querypipe/v1/pipeline"
	"github.com/Aleph-Alpha/querypipe/v1/querystring"
)

// Service turns list requests into aggregation pipelines and runs them.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	agg Aggregator
	cfg Config

	logger   Logger
	tracer   Tracer
	observer observability.Observer
}

// NewService creates a Service. Zero fields of cfg are filled with defaults
// before validation.
//
// Example:
//
//	svc, err := listing.NewService(mongoClient, listing.Config{
//		TenantField: "storeId",
//	})
func NewService(agg Aggregator, cfg Config) (*Service, error) {
	if agg == nil {
		return nil, ErrNilAggregator
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Service{agg: agg, cfg: cfg}, nil
}

// WithLogger sets the logger. Returns the service for chaining.
func (s *Service) WithLogger(logger Logger) *Service {
	s.logger = logger
	return s
}

// WithTracer sets the tracer used to open one span per call. Returns the service for chaining.
func (s *Service) WithTracer(tracer Tracer) *Service {
	s.tracer = tracer
	return s
}

// WithObserver sets the observer notified after every call. Returns the service for chaining.
func (s *Service) WithObserver(observer observability.Observer) *Service {
	s.observer = observer
	return s
}

// Config returns the effective configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// ParseRequest reads a list request from query values with page sizes capped
// at Config.MaxLimit.
func (s *Service) ParseRequest(values url.Values) querystring.Request {
	return querystring.ParseRequest(values, s.cfg.MaxLimit)
}

// normalize clamps page and limit and fills the sort from the configured defaults.
func (s *Service) normalize(req querystring.Request) querystring.Request {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit <= 0 || req.Limit > s.cfg.MaxLimit {
		req.Limit = s.cfg.MaxLimit
	}
	if req.SortField == "" {
		req.SortField = s.cfg.DefaultSortField
		if req.SortDirection == "" {
			req.SortDirection = s.cfg.DefaultSortDirection
		}
	}
	return req
}

// sortStage resolves the $sort stage for a normalized request. An unknown
// direction falls back to the configured default.
func (s *Service) sortStage(req querystring.Request) bson.D {
	direction, ok := querystring.Direction(req.SortDirection)
	if !ok {
		direction, _ = querystring.Direction(s.cfg.DefaultSortDirection)
	}
	return pipeline.Sort(req.SortField, direction, bson.E{Key: tieBreakerField, Value: direction})
}

// tenantStages returns the tenant $match, or nothing when tenant scoping is off.
func (s *Service) tenantStages(opts Options) mongo.Pipeline {
	if s.cfg.TenantField == "" || opts.TenantValue == nil {
		return nil
	}
	if v, ok := opts.TenantValue.(string); ok && v == "" {
		return nil
	}
	return mongo.Pipeline{pipeline.Match(bson.D{{Key: s.cfg.TenantField, Value: opts.TenantValue}})}
}

// pageStages returns $skip and $limit for the requested page, or nothing for exports.
// An offset beyond int64 saturates at math.MaxInt64, so such pages come back empty.
func pageStages(req querystring.Request) mongo.Pipeline {
	if req.Export || req.Limit <= 0 {
		return nil
	}
	var stages mongo.Pipeline
	if skip := pageOffset(req.Page, req.Limit); skip > 0 {
		stages = append(stages, pipeline.Skip(skip))
	}
	return append(stages, pipeline.Limit(int64(req.Limit)))
}

func pageOffset(page, limit int) int64 {
	if page <= 1 || limit <= 0 {
		return 0
	}
	pages := int64(page - 1)
	if pages > math.MaxInt64/int64(limit) {
		return math.MaxInt64
	}
	return pages * int64(limit)
}

// span opens a span when a tracer is configured. The returned function records
// err on the span and ends it.
func (s *Service) span(ctx context.Context, name string, attrs map[string]interface{}) (context.Context, func(err error)) {
	if s.tracer == nil {
		return ctx, func(error) {}
	}
	ctx, span := s.tracer.StartSpan(ctx, name)
	s.tracer.SetAttributes(span, attrs)
	return ctx, func(err error) {
		s.tracer.RecordErrorOnSpan(span, err)
		span.End()
	}
}

func (s *Service) logDebug(ctx context.Context, msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.DebugWithContext(ctx, msg, nil, fields)
	}
}

func (s *Service) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.ErrorWithContext(ctx, msg, err, fields)
	}
}
