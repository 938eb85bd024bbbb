// Package storetest holds the behaviour every store.Store backend must share.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mobilebazar/internal/models"
	"mobilebazar/internal/store"
)

// Run exercises a backend. newStore must return an empty store for every call.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("InsertThenFindOne", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		res, err := s.InsertOne(ctx, models.ProductsCollection, models.Document{
			"_id":   "client-chosen",
			"name":  "Pixel 8",
			"price": 699.0,
		})
		require.NoError(t, err)
		assert.True(t, res.Acknowledged)
		id, ok := res.InsertedID.(primitive.ObjectID)
		require.True(t, ok, "inserted id should be an ObjectID, got %T", res.InsertedID)

		doc, err := s.FindOne(ctx, models.ProductsCollection, store.ByID(id))
		require.NoError(t, err)
		assert.Equal(t, id, doc["_id"])
		assert.Equal(t, "Pixel 8", doc["name"])
		assert.EqualValues(t, 699.0, doc["price"])
	})

	t.Run("FindOneMissing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.FindOne(context.Background(), models.ProductsCollection, store.ByID(primitive.NewObjectID()))
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("FindByEmailKeepsInsertionOrder", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for _, item := range []string{"phone", "case", "charger"} {
			email := "a@x.com"
			if item == "case" {
				email = "b@x.com"
			}
			_, err := s.InsertOne(ctx, models.OrdersCollection, models.Document{"email": email, "item": item})
			require.NoError(t, err)
		}

		docs, err := s.Find(ctx, models.OrdersCollection, bson.M{"email": "a@x.com"})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "phone", docs[0]["item"])
		assert.Equal(t, "charger", docs[1]["item"])

		all, err := s.Find(ctx, models.OrdersCollection, bson.M{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		none, err := s.Find(ctx, models.ReviewCollection, nil)
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("UpdateSetsOnlyGivenFields", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		ins, err := s.InsertOne(ctx, models.OrdersCollection, models.Document{"email": "a@x.com", "item": "phone", "status": "pending"})
		require.NoError(t, err)
		id := ins.InsertedID.(primitive.ObjectID)

		res, err := s.UpdateOne(ctx, models.OrdersCollection, store.ByID(id), bson.M{"status": "shipped"}, store.UpdateOptions{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.MatchedCount)
		assert.EqualValues(t, 1, res.ModifiedCount)

		doc, err := s.FindOne(ctx, models.OrdersCollection, store.ByID(id))
		require.NoError(t, err)
		assert.Equal(t, "shipped", doc["status"])
		assert.Equal(t, "phone", doc["item"])
		assert.Equal(t, "a@x.com", doc["email"])

		res, err = s.UpdateOne(ctx, models.OrdersCollection, store.ByID(id), bson.M{"status": "shipped"}, store.UpdateOptions{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.MatchedCount)
		assert.EqualValues(t, 0, res.ModifiedCount)
	})

	t.Run("UpdateMissingWithoutUpsert", func(t *testing.T) {
		s := newStore(t)
		res, err := s.UpdateOne(context.Background(), models.UsersCollection, bson.M{"email": "ghost@x.com"}, bson.M{"role": "admin"}, store.UpdateOptions{})
		require.NoError(t, err)
		assert.EqualValues(t, 0, res.MatchedCount)
		assert.EqualValues(t, 0, res.UpsertedCount)

		_, err = s.FindOne(context.Background(), models.UsersCollection, bson.M{"email": "ghost@x.com"})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("UpsertByEmailKeepsID", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		filter := bson.M{"email": "a@x.com"}

		first, err := s.UpdateOne(ctx, models.UsersCollection, filter, bson.M{"email": "a@x.com", "displayName": "A"}, store.UpdateOptions{Upsert: true})
		require.NoError(t, err)
		assert.EqualValues(t, 0, first.MatchedCount)
		assert.EqualValues(t, 1, first.UpsertedCount)
		require.NotNil(t, first.UpsertedID)

		second, err := s.UpdateOne(ctx, models.UsersCollection, filter, bson.M{"email": "a@x.com", "displayName": "Alice"}, store.UpdateOptions{Upsert: true})
		require.NoError(t, err)
		assert.EqualValues(t, 1, second.MatchedCount)
		assert.EqualValues(t, 0, second.UpsertedCount)

		users, err := s.Find(ctx, models.UsersCollection, filter)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, first.UpsertedID, users[0]["_id"])
		assert.Equal(t, "Alice", users[0]["displayName"])
	})

	t.Run("DeleteOne", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		ins, err := s.InsertOne(ctx, models.ProductsCollection, models.Document{"name": "Galaxy"})
		require.NoError(t, err)
		id := ins.InsertedID.(primitive.ObjectID)

		res, err := s.DeleteOne(ctx, models.ProductsCollection, store.ByID(id))
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.DeletedCount)

		res, err = s.DeleteOne(ctx, models.ProductsCollection, store.ByID(id))
		require.NoError(t, err)
		assert.EqualValues(t, 0, res.DeletedCount)

		_, err = s.FindOne(ctx, models.ProductsCollection, store.ByID(id))
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("CollectionsAreIsolated", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		ins, err := s.InsertOne(ctx, models.ProductsCollection, models.Document{"name": "Galaxy"})
		require.NoError(t, err)

		_, err = s.FindOne(ctx, models.OrdersCollection, store.ByID(ins.InsertedID.(primitive.ObjectID)))
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("Ping", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Ping(context.Background()))
	})
}
