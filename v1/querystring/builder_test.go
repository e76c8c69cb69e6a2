package querystring

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/querypipe/v1/filter"
)

func TestBuildQueryURL(t *testing.T) {
	req := Request{
		Page:          2,
		Limit:         20,
		SortField:     "amount",
		SortDirection: SortAscending,
		Filters:       filter.ParseMany([]string{"status|open"}),
		Export:        true,
	}

	got, err := BuildQueryURL("https://api.example.com/orders?tenant=acme", req)
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "/orders", u.Path)
	assert.Equal(t, "acme", q.Get("tenant"))
	assert.Equal(t, "2", q.Get(ParamPage))
	assert.Equal(t, "20", q.Get(ParamLimit))
	assert.Equal(t, "amount|asc", q.Get(ParamSort))
	assert.Equal(t, []string{"status|string|has|open"}, q[ParamFilter])
	assert.Equal(t, "true", q.Get(ParamExport))
	assert.False(t, q.Has(ParamCountOnly))
	assert.False(t, q.Has(ParamID))
}

func TestBuildQueryURLReplacesFilters(t *testing.T) {
	req := Request{Filters: filter.ParseMany([]string{"price|amount|gt|10"})}

	got, err := BuildQueryURL("/orders?filter=status%7Cclosed", req)
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, []string{"price|amount|gt|10"}, u.Query()[ParamFilter])
}

func TestBuildQueryURLRawFilters(t *testing.T) {
	got, err := BuildQueryURL("/orders", Request{RawFilters: []string{"status|open", "broken"}})
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, []string{"status|open", "broken"}, u.Query()[ParamFilter])
}

func TestBuildQueryURLRoundTrip(t *testing.T) {
	in := Request{
		Page:          4,
		Limit:         15,
		SortField:     "createdAt",
		SortDirection: SortDescending,
		Filters: filter.ParseMany([]string{
			"createdAt|2024-01-01~2024-02-01",
			"tags|red,blue",
			"total|amount|range|10~|25",
		}),
		ID:        "abc",
		CountOnly: true,
	}

	raw, err := BuildQueryURL("/orders", in)
	require.NoError(t, err)

	out, err := ParseRequestURL(raw, 100)
	require.NoError(t, err)

	assert.Equal(t, in.Page, out.Page)
	assert.Equal(t, in.Limit, out.Limit)
	assert.Equal(t, in.SortField, out.SortField)
	assert.Equal(t, in.SortDirection, out.SortDirection)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.CountOnly, out.CountOnly)
	assert.Equal(t, in.Filters, out.Filters)
}

func TestBuildQueryURLInvalidBase(t *testing.T) {
	_, err := BuildQueryURL("%zz", Request{Page: 1})
	assert.Error(t, err)
}
