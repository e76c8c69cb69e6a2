package listing

import (
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Aleph-Alpha/querypipe/v1/querystring"
)

// Options carries the per-call inputs of the fetchers.
type Options struct {
	// Request is the parsed list request, usually from querystring.ParseRequest.
	Request querystring.Request

	// TenantValue scopes every query to Config.TenantField. A nil value or an
	// empty string disables tenant scoping for the call.
	TenantValue any
}

// Source is one collection taking part in a unified listing.
type Source struct {
	// Name is written to Config.SourceField on every document of this source.
	// The collection name is used when empty.
	Name       string
	Collection string

	// Prefix runs before the shared tenant and filter stages.
	Prefix mongo.Pipeline
	// Suffix runs after the source tag is added.
	Suffix mongo.Pipeline
}

func (s Source) tag() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Collection
}

// Result is one page of a listing.
type Result struct {
	Page int `json:"page"`

	// Total is the filtered count before pagination.
	Total int64 `json:"total"`

	// Items is never nil; it is empty for count-only requests.
	Items []bson.M `json:"items"`
}

// Pagination describes the page position of a Result.
type Pagination struct {
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
	NextPage    *int `json:"nextPage"`
	PrevPage    *int `json:"prevPage"`
}

// Pagination derives page navigation for the given page size. A limit of zero
// or less means everything is on one page.
func (r *Result) Pagination(limit int) Pagination {
	p := Pagination{Limit: limit}

	switch {
	case r.Total <= 0:
		p.TotalPages = 0
	case limit <= 0:
		p.TotalPages = 1
	default:
		p.TotalPages = int((r.Total + int64(limit) - 1) / int64(limit))
	}

	if r.Page < p.TotalPages {
		next := r.Page + 1
		p.HasNextPage = true
		p.NextPage = &next
	}
	if r.Page > 1 {
		prev := r.Page - 1
		p.HasPrevPage = true
		p.PrevPage = &prev
	}
	return p
}

func emptyResult(page int) *Result {
	return &Result{Page: page, Items: []bson.M{}}
}
