package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestEmptyCollectionIsRejected(t *testing.T) {
	obs := &TestObserver{}
	m := (&MongoClient{}).WithObserver(obs)

	_, err := m.Aggregate(context.Background(), " ", mongo.Pipeline{})
	assert.True(t, IsEmptyCollectionError(err))

	total, err := m.Count(context.Background(), "", mongo.Pipeline{})
	assert.True(t, IsEmptyCollectionError(err))
	assert.Zero(t, total)

	ops := obs.GetOperations()
	require.Len(t, ops, 2)
	assert.Equal(t, "aggregate", ops[0].Operation)
	assert.Equal(t, "count", ops[1].Operation)
	assert.ErrorIs(t, ops[1].Error, ErrEmptyCollection)
}

func TestNotConnected(t *testing.T) {
	m := &MongoClient{}

	_, err := m.Aggregate(context.Background(), "orders", nil)
	assert.True(t, IsNotConnectedError(err))
	assert.True(t, IsNotConnectedError(m.Ping(context.Background())))
	assert.NoError(t, m.Close())
}

func TestToInt64(t *testing.T) {
	assert.Equal(t, int64(7), toInt64(int32(7)))
	assert.Equal(t, int64(7), toInt64(int64(7)))
	assert.Equal(t, int64(7), toInt64(7))
	assert.Equal(t, int64(7), toInt64(7.0))
	assert.Equal(t, int64(0), toInt64("7"))
	assert.Equal(t, int64(0), toInt64(nil))
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	assert.Equal(t, DefaultURI, cfg.URI)
	assert.Equal(t, DefaultDatabase, cfg.Database)
	assert.Equal(t, DefaultConnectTimeout, cfg.ConnectTimeout)
	assert.Equal(t, DefaultServerSelectionTimeout, cfg.ServerSelectionTimeout)
	assert.Equal(t, uint64(DefaultMaxPoolSize), cfg.MaxPoolSize)
	assert.Equal(t, DefaultDisconnectTimeout, cfg.DisconnectTimeout)
	assert.False(t, cfg.AllowDiskUse)

	custom := Config{URI: "mongodb://db:27017", Database: "orders", MaxPoolSize: 5}.withDefaults()
	assert.Equal(t, "mongodb://db:27017", custom.URI)
	assert.Equal(t, "orders", custom.Database)
	assert.Equal(t, uint64(5), custom.MaxPoolSize)
}

func TestNewClientDoesNotRequireServer(t *testing.T) {
	client, err := NewClient(Config{Database: "orders"})
	require.NoError(t, err)

	assert.Equal(t, "orders", client.Database().Name())
	assert.NotNil(t, client.Client())
	assert.NoError(t, client.Close())
	assert.NoError(t, client.Close())
}

func TestNewClientRejectsInvalidURI(t *testing.T) {
	_, err := NewClient(Config{URI: "postgres://localhost"})
	assert.Error(t, err)
}
