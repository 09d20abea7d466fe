package store

import (
	"context"
	"strings"
	"testing"

	"github.com/avvvet/card-catalog/internal/catalogsvc/models"
	mongodb "github.com/avvvet/card-catalog/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mongoctr "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func startMongo(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("mongo container skipped in short mode")
	}

	ctx := context.Background()
	ctr, err := mongoctr.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := ctr.Terminate(context.Background()); err != nil {
			t.Logf("terminate mongo container: %s", err)
		}
	})

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	mdb, err := mongodb.ConnectToDB(strings.TrimSuffix(uri, "/") + "/catalog_test")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mongodb.Disconnect(mdb); err != nil {
			t.Logf("disconnect mongo: %s", err)
		}
	})
	return mdb
}

func resetMongo(t *testing.T, mdb *mongo.Database) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, mdb.Collection(cardsCollection).Drop(ctx))
	require.NoError(t, mdb.Collection(countersCollection).Drop(ctx))
}

func TestMongoCardStore(t *testing.T) {
	mdb := startMongo(t)

	runCardStoreTests(t, func(t *testing.T) CardStore {
		resetMongo(t, mdb)
		return NewMongoCardStore(mdb)
	})

	t.Run("ids come from the counter document", func(t *testing.T) {
		resetMongo(t, mdb)
		s := NewMongoCardStore(mdb)
		ctx := context.Background()

		for i := 1; i <= 3; i++ {
			c, err := s.Create(ctx, models.Card{Name: "x"})
			require.NoError(t, err)
			assert.Equal(t, int64(i), c.ID)
		}

		var c counter
		err := mdb.Collection(countersCollection).FindOne(ctx, bson.M{"_id": cardsCollection}).Decode(&c)
		require.NoError(t, err)
		assert.Equal(t, int64(3), c.Seq)
	})

	t.Run("ids keep growing across store instances", func(t *testing.T) {
		resetMongo(t, mdb)
		ctx := context.Background()

		first, err := NewMongoCardStore(mdb).Create(ctx, models.Card{Name: "a"})
		require.NoError(t, err)
		second, err := NewMongoCardStore(mdb).Create(ctx, models.Card{Name: "b"})
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)
	})
}
