package listing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/querypipe/v1/filter"
	"github.com/Aleph-Alpha/querypipe/v1/pipeline"
	"github.com/Aleph-Alpha/querypipe/v1/querystring"
)

func seedSources(f *fakeEngine) {
	f.insert("orders",
		bson.M{"seq": 1, "tenant": "acme", "status": "open"},
		bson.M{"seq": 3, "tenant": "acme", "status": "open"},
		bson.M{"seq": 5, "tenant": "acme", "status": "closed"},
		bson.M{"seq": 7, "tenant": "globex", "status": "open"},
	)
	f.insert("refunds",
		bson.M{"seq": 2, "tenant": "acme", "status": "open"},
		bson.M{"seq": 4, "tenant": "acme", "status": "closed"},
		bson.M{"seq": 6, "tenant": "globex", "status": "open"},
	)
}

var unifiedSources = []Source{
	{Name: "order", Collection: "orders"},
	{Name: "refund", Collection: "refunds"},
}

func TestFetchUnifiedListTagsSources(t *testing.T) {
	f := newFakeEngine()
	seedSources(f)
	svc := newTestService(t, f, Config{})

	res, err := svc.FetchUnifiedList(context.Background(), unifiedSources, acme(querystring.Request{
		SortField: "seq", SortDirection: "asc",
	}))
	require.NoError(t, err)

	assert.Equal(t, int64(5), res.Total)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, seqs(res.Items))

	want := map[int]string{1: "order", 2: "refund", 3: "order", 4: "refund", 5: "order"}
	for _, it := range res.Items {
		assert.Equal(t, want[it["seq"].(int)], it[DefaultSourceField])
	}
	assert.Equal(t, 2, f.calls())
}

func TestFetchUnifiedListTotalIsSumOfSources(t *testing.T) {
	f := newFakeEngine()
	seedSources(f)
	svc := newTestService(t, f, Config{SourceField: "origin"})

	opts := acme(querystring.Request{
		Filters: filter.ParseMany([]string{"status|array|eq|open"}),
	})

	var sum int64
	for _, src := range unifiedSources {
		res, err := svc.FetchList(context.Background(), src.Collection, nil, nil, opts)
		require.NoError(t, err)
		sum += res.Total
	}

	res, err := svc.FetchUnifiedList(context.Background(), unifiedSources, opts)
	require.NoError(t, err)
	assert.Equal(t, sum, res.Total)
	assert.Equal(t, int64(3), res.Total)
	for _, it := range res.Items {
		assert.Contains(t, []string{"order", "refund"}, it["origin"])
	}
}

func TestFetchUnifiedListPaginates(t *testing.T) {
	f := newFakeEngine()
	seedSources(f)
	svc := newTestService(t, f, Config{})

	res, err := svc.FetchUnifiedList(context.Background(), unifiedSources, acme(querystring.Request{
		Page: 2, Limit: 2, SortField: "seq", SortDirection: "desc",
	}))
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Total)
	assert.Equal(t, []int{3, 2}, seqs(res.Items))
}

func TestFetchUnifiedListCountOnly(t *testing.T) {
	f := newFakeEngine()
	seedSources(f)
	svc := newTestService(t, f, Config{})

	res, err := svc.FetchUnifiedList(context.Background(), unifiedSources, acme(querystring.Request{CountOnly: true}))
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Total)
	assert.Empty(t, res.Items)
	assert.Equal(t, 1, f.calls())
}

func TestFetchUnifiedListEmptySources(t *testing.T) {
	ctrl := gomock.NewController(t)
	agg := NewMockAggregator(ctrl)
	svc := newTestService(t, agg, Config{})

	res, err := svc.FetchUnifiedList(context.Background(), nil, acme(querystring.Request{Page: 3}))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Page)
	assert.Zero(t, res.Total)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestFetchUnifiedListPipelineShape(t *testing.T) {
	ctrl := gomock.NewController(t)
	agg := NewMockAggregator(ctrl)
	svc := newTestService(t, agg, Config{})

	refundsPrefix := mongo.Pipeline{pipeline.Match(bson.D{{Key: "approved", Value: true}})}
	sources := []Source{
		{Name: "order", Collection: "orders"},
		{Collection: "refunds", Prefix: refundsPrefix},
	}

	var counted mongo.Pipeline
	agg.EXPECT().Count(gomock.Any(), "orders", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, stages mongo.Pipeline) (int64, error) {
			counted = stages
			return 0, nil
		})

	_, err := svc.FetchUnifiedList(context.Background(), sources, acme(querystring.Request{
		CountOnly: true,
		Filters:   filter.ParseMany([]string{"status|array|eq|open"}),
	}))
	require.NoError(t, err)

	tenant := pipeline.Match(bson.D{{Key: "tenant", Value: "acme"}})
	status := pipeline.Match(bson.D{{Key: "status", Value: "open"}})

	assert.Equal(t, mongo.Pipeline{
		tenant,
		status,
		pipeline.AddFields(bson.D{{Key: "source", Value: "order"}}),
		pipeline.UnionWith("refunds", mongo.Pipeline{
			refundsPrefix[0],
			tenant,
			status,
			// unnamed sources are tagged with their collection
			pipeline.AddFields(bson.D{{Key: "source", Value: "refunds"}}),
		}),
	}, counted)
}

func TestFetchUnifiedListPercentResolvedAgainstBase(t *testing.T) {
	ctrl := gomock.NewController(t)
	agg := NewMockAggregator(ctrl)
	svc := newTestService(t, agg, Config{})

	status := pipeline.Match(bson.D{{Key: "status", Value: "open"}})
	tenant := pipeline.Match(bson.D{{Key: "tenant", Value: "acme"}})

	var counted mongo.Pipeline
	gomock.InOrder(
		agg.EXPECT().Count(gomock.Any(), "orders", mongo.Pipeline{tenant, status}).Return(int64(100), nil),
		agg.EXPECT().Count(gomock.Any(), "orders", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, stages mongo.Pipeline) (int64, error) {
				counted = stages
				return 20, nil
			}),
	)

	res, err := svc.FetchUnifiedList(context.Background(), unifiedSources, acme(querystring.Request{
		CountOnly: true,
		Filters:   filter.ParseMany([]string{"status|array|eq|open|10"}),
	}))
	require.NoError(t, err)
	assert.Equal(t, int64(20), res.Total)

	// The truncation counted against the base is copied verbatim into every
	// union branch, whatever the size of that branch's collection.
	sharedLimit := pipeline.Limit(10)
	wantRefunds := mongo.Pipeline{
		tenant, status, sharedLimit,
		pipeline.AddFields(bson.D{{Key: DefaultSourceField, Value: "refund"}}),
	}
	want := mongo.Pipeline{
		tenant, status, sharedLimit,
		pipeline.AddFields(bson.D{{Key: DefaultSourceField, Value: "order"}}),
		pipeline.UnionWith("refunds", wantRefunds),
	}
	assert.Equal(t, want, counted)

	union := counted[len(counted)-1]
	sub := union[0].Value.(bson.D)[1].Value.(mongo.Pipeline)
	assert.Equal(t, wantRefunds, sub)
	assert.False(t, pipeline.HasStage(sub, pipeline.StageSkip))
}
