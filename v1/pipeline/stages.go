package pipeline

import (
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Stage operators emitted by this package.
const (
	StageMatch     = "$match"
	StageSort      = "$sort"
	StageSkip      = "$skip"
	StageLimit     = "$limit"
	StageAddFields = "$addFields"
	StageUnionWith = "$unionWith"
	StageCount     = "$count"
)

// Match wraps a query document in a $match stage.
func Match(query bson.D) bson.D {
	return bson.D{{Key: StageMatch, Value: query}}
}

// Sort builds a $sort stage. direction is 1 or -1.
// Additional keys may be given as tie-breakers.
func Sort(field string, direction int, tieBreakers ...bson.E) bson.D {
	keys := bson.D{{Key: field, Value: direction}}
	for _, tb := range tieBreakers {
		if tb.Key == field {
			continue
		}
		keys = append(keys, tb)
	}
	return bson.D{{Key: StageSort, Value: keys}}
}

// Skip builds a $skip stage.
func Skip(n int64) bson.D {
	return bson.D{{Key: StageSkip, Value: n}}
}

// Limit builds a $limit stage. MongoDB rejects a limit of zero, callers must not pass it.
func Limit(n int64) bson.D {
	return bson.D{{Key: StageLimit, Value: n}}
}

// AddFields builds an $addFields stage.
func AddFields(fields bson.D) bson.D {
	return bson.D{{Key: StageAddFields, Value: fields}}
}

// UnionWith builds a $unionWith stage running sub against collection.
func UnionWith(collection string, sub mongo.Pipeline) bson.D {
	return bson.D{{Key: StageUnionWith, Value: bson.D{
		{Key: "coll", Value: collection},
		{Key: "pipeline", Value: sub},
	}}}
}

// Count builds a $count stage writing the count into field.
func Count(field string) bson.D {
	return bson.D{{Key: StageCount, Value: field}}
}

// HasStage reports whether any top-level stage of p uses operator.
// Sub-pipelines inside $unionWith are not inspected.
func HasStage(p mongo.Pipeline, operator string) bool {
	for _, stage := range p {
		for _, e := range stage {
			if e.Key == operator {
				return true
			}
		}
	}
	return false
}

// Concat returns a new pipeline holding all stages of the given pipelines in order.
// The inputs are never modified or aliased.
func Concat(pipelines ...mongo.Pipeline) mongo.Pipeline {
	n := 0
	for _, p := range pipelines {
		n += len(p)
	}
	out := make(mongo.Pipeline, 0, n)
	for _, p := range pipelines {
		out = append(out, p...)
	}
	return out
}
