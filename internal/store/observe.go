package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"mobilebazar/internal/models"
)

// Observer receives one report per store call.
type Observer interface {
	ObserveStoreOp(collection, op string, took time.Duration, err error)
}

// Observe wraps s so that every call is reported to o.
func Observe(s Store, o Observer) Store {
	if o == nil {
		return s
	}
	return &observed{next: s, obs: o}
}

type observed struct {
	next Store
	obs  Observer
}

func (s *observed) report(collection, op string, start time.Time, err error) {
	s.obs.ObserveStoreOp(collection, op, time.Since(start), err)
}

func (s *observed) Find(ctx context.Context, collection string, filter bson.M) (docs []models.Document, err error) {
	defer func(start time.Time) { s.report(collection, "find", start, err) }(time.Now())
	return s.next.Find(ctx, collection, filter)
}

func (s *observed) FindOne(ctx context.Context, collection string, filter bson.M) (doc models.Document, err error) {
	defer func(start time.Time) { s.report(collection, "find_one", start, err) }(time.Now())
	return s.next.FindOne(ctx, collection, filter)
}

func (s *observed) InsertOne(ctx context.Context, collection string, doc models.Document) (res *InsertResult, err error) {
	defer func(start time.Time) { s.report(collection, "insert_one", start, err) }(time.Now())
	return s.next.InsertOne(ctx, collection, doc)
}

func (s *observed) UpdateOne(ctx context.Context, collection string, filter, set bson.M, opts UpdateOptions) (res *UpdateResult, err error) {
	defer func(start time.Time) { s.report(collection, "update_one", start, err) }(time.Now())
	return s.next.UpdateOne(ctx, collection, filter, set, opts)
}

func (s *observed) DeleteOne(ctx context.Context, collection string, filter bson.M) (res *DeleteResult, err error) {
	defer func(start time.Time) { s.report(collection, "delete_one", start, err) }(time.Now())
	return s.next.DeleteOne(ctx, collection, filter)
}

func (s *observed) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *observed) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}
