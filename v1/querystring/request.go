package querystring

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Aleph-Alpha/querypipe/v1/filter"
)

// Query parameter names.
const (
	ParamPage      = "page"
	ParamLimit     = "limit"
	ParamSort      = "sort"
	ParamFilter    = "filter"
	ParamID        = "id"
	ParamExport    = "export"
	ParamCountOnly = "countResultOnly"
)

// DefaultMaxLimit is the page size cap listing.Config falls back to.
const DefaultMaxLimit = 250

const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// Request is the list request carried by a URL query string.
type Request struct {
	// Page is 1-indexed and never below 1.
	Page int
	// Limit is the page size. Zero means the consumer's maximum.
	Limit int

	SortField     string
	SortDirection string

	Filters []filter.Descriptor
	// RawFilters are the filter parameters as received, including the ones
	// that will not compile.
	RawFilters []string

	// ID is the identifier for point lookups.
	ID string

	// Export disables pagination.
	Export bool
	// CountOnly skips the data query.
	CountOnly bool
}

// ParseRequest reads a Request from query values. It never fails: unparseable
// values fall back to their defaults and page is clamped to 1.
//
// With maxLimit > 0 the limit defaults to maxLimit and is capped at it. With
// maxLimit <= 0 the limit is left uncapped, and 0 when absent, for the
// consumer to resolve; listing.Service does so against its own Config.MaxLimit.
func ParseRequest(values url.Values, maxLimit int) Request {
	req := Request{
		Page:       1,
		Limit:      max(maxLimit, 0),
		Filters:    filter.ParseMany(values[ParamFilter]),
		RawFilters: values[ParamFilter],
		ID:         strings.TrimSpace(values.Get(ParamID)),
		Export:     parseBool(values.Get(ParamExport)),
		CountOnly:  parseBool(values.Get(ParamCountOnly)),
	}

	if page, err := strconv.Atoi(values.Get(ParamPage)); err == nil && page > 1 {
		req.Page = page
	}
	if limit, err := strconv.Atoi(values.Get(ParamLimit)); err == nil && limit > 0 {
		req.Limit = limit
		if maxLimit > 0 {
			req.Limit = min(limit, maxLimit)
		}
	}

	if sort := values.Get(ParamSort); sort != "" {
		field, direction, _ := strings.Cut(sort, "|")
		req.SortField = strings.TrimSpace(field)
		req.SortDirection = strings.ToLower(strings.TrimSpace(direction))
	}

	return req
}

// ParseRequestURL parses rawURL and reads its query string with ParseRequest.
func ParseRequestURL(rawURL string, maxLimit int) (Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Request{}, err
	}
	return ParseRequest(u.Query(), maxLimit), nil
}

// ExtractFiltersFromURL returns the parsed filter parameters of rawURL.
func ExtractFiltersFromURL(rawURL string) ([]filter.Descriptor, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return filter.ParseMany(u.Query()[ParamFilter]), nil
}

// Direction converts a sort direction to the MongoDB sort value.
// ok is false for anything that is not a recognised direction.
func Direction(direction string) (value int, ok bool) {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case SortAscending, "ascending", "1":
		return 1, true
	case SortDescending, "descending", "-1":
		return -1, true
	}
	return 0, false
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
