package querystring

import (
	"net/url"
	"strconv"
)

// BuildQueryURL writes req onto the query string of base. Parameters already present
// on base are kept unless req sets them. Filters are written in their full form so
// that the receiving side does not depend on inference. RawFilters are written
// verbatim when Filters is empty.
//
//	BuildQueryURL("https://api.example.com/orders", Request{
//	    Page:    2,
//	    Limit:   20,
//	    Filters: filter.ParseMany([]string{"status|open"}),
//	})
//	// https://api.example.com/orders?filter=status%7Cstring%7Chas%7Copen&limit=20&page=2
func BuildQueryURL(base string, req Request) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}

	q := u.Query()
	if req.Page > 0 {
		q.Set(ParamPage, strconv.Itoa(req.Page))
	}
	if req.Limit > 0 {
		q.Set(ParamLimit, strconv.Itoa(req.Limit))
	}
	if req.SortField != "" {
		sort := req.SortField
		if req.SortDirection != "" {
			sort += "|" + req.SortDirection
		}
		q.Set(ParamSort, sort)
	}
	switch {
	case len(req.Filters) > 0:
		q.Del(ParamFilter)
		for _, d := range req.Filters {
			q.Add(ParamFilter, d.String())
		}
	case len(req.RawFilters) > 0:
		q[ParamFilter] = append([]string(nil), req.RawFilters...)
	}
	if req.ID != "" {
		q.Set(ParamID, req.ID)
	}
	if req.Export {
		q.Set(ParamExport, "true")
	}
	if req.CountOnly {
		q.Set(ParamCountOnly, "true")
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}
