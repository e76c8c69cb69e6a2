package pipeline

import (
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	// IDField holds identifiers stored as plain strings or numbers.
	IDField = "id"
	// ObjectIDField is the native MongoDB primary key.
	ObjectIDField = "_id"
)

// IdentifierMatch matches a document by id regardless of how the collection stores it.
// The query ORs up to three representations:
//
//	{id: "<id>"}              string id field
//	{id: <number>}            numeric id field, when id parses as a number
//	{_id: ObjectID("<id>")}   object id, when id is 24 hex characters
func IdentifierMatch(id string) bson.D {
	return bson.D{{Key: "$or", Value: identifierBranches(id)}}
}

// identifierMismatch is the negation of IdentifierMatch.
func identifierMismatch(id string) bson.D {
	return bson.D{{Key: "$nor", Value: identifierBranches(id)}}
}

func identifierBranches(id string) bson.A {
	branches := bson.A{bson.D{{Key: IDField, Value: id}}}
	if n, ok := toNumber(id); ok {
		branches = append(branches, bson.D{{Key: IDField, Value: n}})
	}
	if oid, err := bson.ObjectIDFromHex(id); err == nil {
		branches = append(branches, bson.D{{Key: ObjectIDField, Value: oid}})
	}
	return branches
}

func isIdentifierField(field string) bool {
	return field == IDField || field == ObjectIDField
}

// toNumber coerces s to int64 when it is integral, otherwise to float64.
func toNumber(s string) (any, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f, true
	}
	return nil, false
}

// promoteObjectID returns an ObjectID for 24-hex values and s unchanged otherwise.
func promoteObjectID(s string) any {
	if len(s) != 24 {
		return s
	}
	if oid, err := bson.ObjectIDFromHex(s); err == nil {
		return oid
	}
	return s
}
