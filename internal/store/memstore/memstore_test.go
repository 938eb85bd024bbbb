package memstore_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"mobilebazar/internal/models"
	"mobilebazar/internal/store"
	"mobilebazar/internal/store/memstore"
	"mobilebazar/internal/store/storetest"
)

func TestMemStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return memstore.New()
	})
}

func TestMemStore_FiltersOnAnyField(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	_, err := s.InsertOne(ctx, models.ReviewCollection, models.Document{"rating": 5, "text": "great"})
	require.NoError(t, err)
	_, err = s.InsertOne(ctx, models.ReviewCollection, models.Document{"rating": 2, "text": "meh"})
	require.NoError(t, err)

	docs, err := s.Find(ctx, models.ReviewCollection, bson.M{"rating": 5})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "great", docs[0]["text"])
}

func TestMemStore_ReadsAreCopies(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	res, err := s.InsertOne(ctx, models.ProductsCollection, models.Document{"name": "Nokia"})
	require.NoError(t, err)

	doc, err := s.FindOne(ctx, models.ProductsCollection, bson.M{"_id": res.InsertedID})
	require.NoError(t, err)
	doc["name"] = "changed"

	again, err := s.FindOne(ctx, models.ProductsCollection, bson.M{"_id": res.InsertedID})
	require.NoError(t, err)
	assert.Equal(t, "Nokia", again["name"])
}

func TestMemStore_ConcurrentInserts(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.InsertOne(ctx, models.OrdersCollection, models.Document{"email": "a@x.com"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	docs, err := s.Find(ctx, models.OrdersCollection, bson.M{"email": "a@x.com"})
	require.NoError(t, err)
	assert.Len(t, docs, 50)
}
