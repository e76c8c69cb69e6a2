package pipeline

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Aleph-Alpha/querypipe/v1/filter"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const dateLayout = "2006-01-02"

// Counter executes the count-only variant of a pipeline.
// It is used to resolve percent-of-result truncation mid-pipeline.
type Counter interface {
	Count(ctx context.Context, p mongo.Pipeline) (int64, error)
}

// Compile turns descriptors into $match stages, one per valid descriptor, in order.
// Descriptors that are malformed or whose (type, operator) pair is not supported
// are dropped without error. PercentOfResult is ignored; use CompileWithPercent.
func Compile(descriptors []filter.Descriptor) mongo.Pipeline {
	stages := make(mongo.Pipeline, 0, len(descriptors))
	for _, d := range descriptors {
		if stage, ok := compileStage(d); ok {
			stages = append(stages, stage)
		}
	}
	return stages
}

// CompileWithPercent compiles like Compile and additionally resolves PercentOfResult.
//
// After each compiled descriptor carrying a percentage p, the pipeline built so far
// (base followed by the stages compiled up to that point) is counted. For p >= 0 the
// first ceil(total*p/100) documents are kept; for p < 0 the last floor(total*|p|/100).
// A zero count appends nothing. Only the new stages are returned; base is not modified.
//
// Each percentage costs one extra round-trip through counter. Count errors are
// returned unmodified.
func CompileWithPercent(ctx context.Context, counter Counter, base mongo.Pipeline, descriptors []filter.Descriptor) (mongo.Pipeline, error) {
	stages := make(mongo.Pipeline, 0, len(descriptors))
	for _, d := range descriptors {
		stage, ok := compileStage(d)
		if !ok {
			continue
		}
		stages = append(stages, stage)

		if d.PercentOfResult == nil {
			continue
		}

		total, err := counter.Count(ctx, Concat(base, stages))
		if err != nil {
			return nil, err
		}
		stages = append(stages, Truncate(total, *d.PercentOfResult)...)
	}
	return stages, nil
}

// Truncate returns the stages keeping percent of total documents.
//
//	percent >= 0: $limit ceil(total*percent/100)
//	percent <  0: $skip total-keep, $limit keep   with keep = floor(total*|percent|/100)
//
// percent is clamped to [-100, 100], so keep never exceeds total. A keep of
// zero is expressed as $skip total, since MongoDB does not accept $limit 0.
// A NaN percent appends nothing.
func Truncate(total int64, percent float64) mongo.Pipeline {
	if total <= 0 || math.IsNaN(percent) {
		return nil
	}
	percent = max(-100, min(percent, 100))

	var keep int64
	if percent >= 0 {
		keep = int64(math.Ceil(float64(total) * percent / 100))
	} else {
		keep = int64(math.Floor(float64(total) * -percent / 100))
	}
	keep = min(keep, total)

	if keep <= 0 {
		return mongo.Pipeline{Skip(total)}
	}
	if percent >= 0 {
		return mongo.Pipeline{Limit(keep)}
	}
	return mongo.Pipeline{Skip(total - keep), Limit(keep)}
}

func compileStage(d filter.Descriptor) (bson.D, bool) {
	if !d.Valid() {
		return nil, false
	}

	var (
		query bson.D
		ok    bool
	)
	switch d.Type {
	case filter.TypeString:
		query, ok = stringQuery(d)
	case filter.TypeArray:
		query, ok = arrayQuery(d)
	case filter.TypeAmount:
		query, ok = amountQuery(d)
	case filter.TypeDate:
		query, ok = dateQuery(d)
	}
	if !ok {
		return nil, false
	}
	return Match(query), true
}

func stringQuery(d filter.Descriptor) (bson.D, bool) {
	switch d.Operator {
	case filter.OpEqual:
		if isIdentifierField(d.Field) {
			return IdentifierMatch(d.Value), true
		}
		return field(d.Field, exactRegex(d.Value)), true
	case filter.OpNotEqual:
		if isIdentifierField(d.Field) {
			return identifierMismatch(d.Value), true
		}
		return field(d.Field, bson.D{{Key: "$not", Value: exactRegex(d.Value)}}), true
	case filter.OpHas:
		// The value is used as a regular expression verbatim.
		return field(d.Field, bson.Regex{Pattern: d.Value, Options: "i"}), true
	case filter.OpNotHas:
		return field(d.Field, bson.D{{Key: "$not", Value: bson.Regex{Pattern: d.Value, Options: "i"}}}), true
	case filter.OpAny:
		return field(d.Field, bson.D{{Key: "$in", Value: splitList(d.Value)}}), true
	case filter.OpNone:
		return field(d.Field, bson.D{{Key: "$nin", Value: splitList(d.Value)}}), true
	}
	return nil, false
}

func arrayQuery(d filter.Descriptor) (bson.D, bool) {
	switch d.Operator {
	case filter.OpEqual:
		return field(d.Field, promoteObjectID(d.Value)), true
	case filter.OpNotEqual:
		return field(d.Field, bson.D{{Key: "$ne", Value: promoteObjectID(d.Value)}}), true
	case filter.OpAny:
		return field(d.Field, bson.D{{Key: "$in", Value: splitList(d.Value)}}), true
	case filter.OpNone:
		return field(d.Field, bson.D{{Key: "$nin", Value: splitList(d.Value)}}), true
	}
	return nil, false
}

func amountQuery(d filter.Descriptor) (bson.D, bool) {
	if d.Operator == filter.OpRange {
		bounds := bson.D{}
		if d.Range.From != "" {
			from, err := strconv.ParseFloat(d.Range.From, 64)
			if err != nil {
				return nil, false
			}
			bounds = append(bounds, bson.E{Key: "$gte", Value: from})
		}
		if d.Range.To != "" {
			to, err := strconv.ParseFloat(d.Range.To, 64)
			if err != nil {
				return nil, false
			}
			bounds = append(bounds, bson.E{Key: "$lte", Value: to})
		}
		return field(d.Field, bounds), true
	}

	v, err := strconv.ParseFloat(d.Value, 64)
	if err != nil {
		return nil, false
	}
	switch d.Operator {
	case filter.OpEqual:
		return field(d.Field, v), true
	case filter.OpNotEqual:
		return field(d.Field, bson.D{{Key: "$ne", Value: v}}), true
	case filter.OpLess:
		return field(d.Field, bson.D{{Key: "$lt", Value: v}}), true
	case filter.OpGreater:
		return field(d.Field, bson.D{{Key: "$gt", Value: v}}), true
	}
	return nil, false
}

// dateQuery compares against whole UTC days. "before" excludes the given day
// and so does "after".
func dateQuery(d filter.Descriptor) (bson.D, bool) {
	if d.Operator == filter.OpRange {
		bounds := bson.D{}
		if d.Range.From != "" {
			from, ok := dayStart(d.Range.From)
			if !ok {
				return nil, false
			}
			bounds = append(bounds, bson.E{Key: "$gte", Value: from})
		}
		if d.Range.To != "" {
			to, ok := dayEnd(d.Range.To)
			if !ok {
				return nil, false
			}
			bounds = append(bounds, bson.E{Key: "$lte", Value: to})
		}
		return field(d.Field, bounds), true
	}

	start, ok := dayStart(d.Value)
	if !ok {
		return nil, false
	}
	end, _ := dayEnd(d.Value)

	switch d.Operator {
	case filter.OpEqual:
		return field(d.Field, bson.D{{Key: "$gte", Value: start}, {Key: "$lte", Value: end}}), true
	case filter.OpBefore:
		return field(d.Field, bson.D{{Key: "$lt", Value: start}}), true
	case filter.OpAfter:
		return field(d.Field, bson.D{{Key: "$gt", Value: end}}), true
	}
	return nil, false
}

func field(name string, value any) bson.D {
	return bson.D{{Key: name, Value: value}}
}

func exactRegex(value string) bson.Regex {
	return bson.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

// splitList splits a comma separated list, promoting 24-hex elements to ObjectIDs.
func splitList(value string) bson.A {
	parts := strings.Split(value, ",")
	out := make(bson.A, 0, len(parts))
	for _, p := range parts {
		out = append(out, promoteObjectID(strings.TrimSpace(p)))
	}
	return out
}

func dayStart(value string) (time.Time, bool) {
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// dayEnd is the last millisecond of the day; BSON dates carry millisecond precision.
func dayEnd(value string) (time.Time, bool) {
	t, ok := dayStart(value)
	if !ok {
		return time.Time{}, false
	}
	return t.Add(24*time.Hour - time.Millisecond), true
}
