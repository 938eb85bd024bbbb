package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"mobilebazar/internal/models"
	"mobilebazar/internal/store"
)

// Config holds MongoDB connection details.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// Store is a store.Store backed by a MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to MongoDB and verifies the connection with a ping.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongodb uri is empty")
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

func (s *Store) Find(ctx context.Context, collection string, filter bson.M) ([]models.Document, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, orEmpty(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to find in %s: %w", collection, err)
	}
	docs := make([]models.Document, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to read %s cursor: %w", collection, err)
	}
	return docs, nil
}

func (s *Store) FindOne(ctx context.Context, collection string, filter bson.M) (models.Document, error) {
	var doc models.Document
	err := s.db.Collection(collection).FindOne(ctx, orEmpty(filter)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find one in %s: %w", collection, err)
	}
	return doc, nil
}

func (s *Store) InsertOne(ctx context.Context, collection string, doc models.Document) (*store.InsertResult, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, models.WithoutID(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return &store.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

func (s *Store) UpdateOne(ctx context.Context, collection string, filter, set bson.M, opts store.UpdateOptions) (*store.UpdateResult, error) {
	update := bson.M{"$set": models.WithoutID(set)}
	res, err := s.db.Collection(collection).UpdateOne(ctx, orEmpty(filter), update, options.Update().SetUpsert(opts.Upsert))
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", collection, err)
	}
	return &store.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (s *Store) DeleteOne(ctx context.Context, collection string, filter bson.M) (*store.DeleteResult, error) {
	res, err := s.db.Collection(collection).DeleteOne(ctx, orEmpty(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to delete from %s: %w", collection, err)
	}
	return &store.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongodb: %w", err)
	}
	return nil
}

// DropDatabase removes the whole database. Used by tests against throwaway databases.
func (s *Store) DropDatabase(ctx context.Context) error {
	return s.db.Drop(ctx)
}

func orEmpty(filter bson.M) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return filter
}
