package memstore

import (
	"context"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mobilebazar/internal/models"
	"mobilebazar/internal/store"
)

type collection struct {
	order []primitive.ObjectID
	docs  map[primitive.ObjectID]models.Document
}

// Store is an in-memory implementation of store.Store.
// Documents are kept in insertion order and copied on every read and write.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		collections: make(map[string]*collection),
	}
}

func (s *Store) coll(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{docs: make(map[primitive.ObjectID]models.Document)}
		s.collections[name] = c
	}
	return c
}

// Find returns every document matching filter.
func (s *Store) Find(_ context.Context, name string, filter bson.M) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Document, 0)
	c, ok := s.collections[name]
	if !ok {
		return out, nil
	}
	for _, id := range c.order {
		if doc := c.docs[id]; matches(doc, filter) {
			out = append(out, clone(doc))
		}
	}
	return out, nil
}

// FindOne returns the first document matching filter.
func (s *Store) FindOne(_ context.Context, name string, filter bson.M) (models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[name]
	if !ok {
		return nil, store.ErrNotFound
	}
	if _, doc, found := c.first(filter); found {
		return clone(doc), nil
	}
	return nil, store.ErrNotFound
}

// InsertOne stores doc under a freshly generated id.
func (s *Store) InsertOne(_ context.Context, name string, doc models.Document) (*store.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := primitive.NewObjectID()
	s.coll(name).put(id, models.WithoutID(doc))
	return &store.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// UpdateOne sets the fields of set on the first document matching filter.
func (s *Store) UpdateOne(_ context.Context, name string, filter, set bson.M, opts store.UpdateOptions) (*store.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(name)
	id, doc, found := c.first(filter)
	if !found {
		if !opts.Upsert {
			return &store.UpdateResult{Acknowledged: true}, nil
		}
		created := models.Document{}
		for k, v := range filter {
			created[k] = v
		}
		for k, v := range set {
			created[k] = v
		}
		id, ok := created[models.IDField].(primitive.ObjectID)
		if !ok {
			id = primitive.NewObjectID()
		}
		c.put(id, models.WithoutID(created))
		return &store.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: id}, nil
	}

	updated := clone(doc)
	changed := false
	for k, v := range set {
		if k == models.IDField {
			continue
		}
		if old, ok := updated[k]; !ok || !reflect.DeepEqual(old, v) {
			changed = true
		}
		updated[k] = v
	}
	res := &store.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if changed {
		c.docs[id] = updated
		res.ModifiedCount = 1
	}
	return res, nil
}

// DeleteOne removes the first document matching filter.
func (s *Store) DeleteOne(_ context.Context, name string, filter bson.M) (*store.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		return &store.DeleteResult{Acknowledged: true}, nil
	}
	id, _, found := c.first(filter)
	if !found {
		return &store.DeleteResult{Acknowledged: true}, nil
	}
	delete(c.docs, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return &store.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op; the data lives as long as the Store.
func (s *Store) Close(context.Context) error { return nil }

func (c *collection) put(id primitive.ObjectID, doc models.Document) {
	doc[models.IDField] = id
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = doc
}

func (c *collection) first(filter bson.M) (primitive.ObjectID, models.Document, bool) {
	for _, id := range c.order {
		if doc := c.docs[id]; matches(doc, filter) {
			return id, doc, true
		}
	}
	return primitive.NilObjectID, nil, false
}

func matches(doc models.Document, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func clone(doc models.Document) models.Document {
	out := make(models.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
