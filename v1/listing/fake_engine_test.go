package listing

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// fakeEngine is an in-memory Aggregator. It understands the stages this
// package emits: $match (equality, $or, $in, $ne and numeric comparisons),
// $addFields, $unionWith, $sort, $skip, $limit and $count.
type fakeEngine struct {
	mu          sync.Mutex
	collections map[string][]bson.M

	aggregateCalls int
	countCalls     int
	pipelines      []mongo.Pipeline
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{collections: map[string][]bson.M{}}
}

func (f *fakeEngine) insert(collection string, docs ...bson.M) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collections[collection] = append(f.collections[collection], docs...)
}

func (f *fakeEngine) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.aggregateCalls + f.countCalls
}

func (f *fakeEngine) Aggregate(ctx context.Context, collection string, stages mongo.Pipeline) ([]bson.M, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aggregateCalls++
	f.pipelines = append(f.pipelines, stages)
	return f.run(collection, stages)
}

func (f *fakeEngine) Count(ctx context.Context, collection string, stages mongo.Pipeline) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countCalls++
	f.pipelines = append(f.pipelines, stages)

	docs, err := f.run(collection, append(append(mongo.Pipeline{}, stages...), bson.D{{Key: "$count", Value: "n"}}))
	if err != nil || len(docs) == 0 {
		return 0, err
	}
	return docs[0]["n"].(int64), nil
}

func (f *fakeEngine) run(collection string, stages mongo.Pipeline) ([]bson.M, error) {
	docs := make([]bson.M, 0, len(f.collections[collection]))
	for _, d := range f.collections[collection] {
		docs = append(docs, copyDoc(d))
	}

	for _, stage := range stages {
		if len(stage) != 1 {
			return nil, fmt.Errorf("fake: stage must have exactly one operator, got %v", stage)
		}
		op, arg := stage[0].Key, stage[0].Value

		switch op {
		case "$match":
			query := arg.(bson.D)
			kept := docs[:0]
			for _, d := range docs {
				if matches(d, query) {
					kept = append(kept, d)
				}
			}
			docs = kept
		case "$addFields":
			for _, d := range docs {
				for _, e := range arg.(bson.D) {
					d[e.Key] = e.Value
				}
			}
		case "$unionWith":
			spec := arg.(bson.D)
			var coll string
			var sub mongo.Pipeline
			for _, e := range spec {
				switch e.Key {
				case "coll":
					coll = e.Value.(string)
				case "pipeline":
					sub = e.Value.(mongo.Pipeline)
				}
			}
			more, err := f.run(coll, sub)
			if err != nil {
				return nil, err
			}
			docs = append(docs, more...)
		case "$sort":
			keys := arg.(bson.D)
			sort.SliceStable(docs, func(i, j int) bool {
				for _, k := range keys {
					c := compare(docs[i][k.Key], docs[j][k.Key])
					if c == 0 {
						continue
					}
					if k.Value.(int) < 0 {
						return c > 0
					}
					return c < 0
				}
				return false
			})
		case "$skip":
			n := int(arg.(int64))
			if n > len(docs) {
				n = len(docs)
			}
			docs = docs[n:]
		case "$limit":
			n := int(arg.(int64))
			if n <= 0 {
				return nil, fmt.Errorf("fake: the limit must be positive")
			}
			if n < len(docs) {
				docs = docs[:n]
			}
		case "$count":
			if len(docs) == 0 {
				return []bson.M{}, nil
			}
			docs = []bson.M{{arg.(string): int64(len(docs))}}
		default:
			return nil, fmt.Errorf("fake: unsupported stage %s", op)
		}
	}
	return docs, nil
}

func matches(doc bson.M, query bson.D) bool {
	for _, e := range query {
		switch e.Key {
		case "$or":
			ok := false
			for _, branch := range e.Value.(bson.A) {
				if matches(doc, branch.(bson.D)) {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		default:
			if !matchValue(doc[e.Key], e.Value) {
				return false
			}
		}
	}
	return true
}

func matchValue(actual, cond any) bool {
	ops, isOps := cond.(bson.D)
	if !isOps || len(ops) == 0 || ops[0].Key[0] != '$' {
		return equal(actual, cond)
	}
	for _, op := range ops {
		switch op.Key {
		case "$in":
			found := false
			for _, v := range op.Value.(bson.A) {
				if equal(actual, v) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case "$ne":
			if equal(actual, op.Value) {
				return false
			}
		case "$gt":
			if actual == nil || compare(actual, op.Value) <= 0 {
				return false
			}
		case "$gte":
			if actual == nil || compare(actual, op.Value) < 0 {
				return false
			}
		case "$lt":
			if actual == nil || compare(actual, op.Value) >= 0 {
				return false
			}
		case "$lte":
			if actual == nil || compare(actual, op.Value) > 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func equal(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func compare(a, b any) int {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case bson.ObjectID:
		if bv, ok := b.(bson.ObjectID); ok {
			return bytes.Compare(av[:], bv[:])
		}
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func copyDoc(d bson.M) bson.M {
	out := make(bson.M, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
