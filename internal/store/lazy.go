package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"mobilebazar/internal/models"
)

// OpenFunc establishes a connection to a backend.
type OpenFunc func(ctx context.Context) (Store, error)

// Lazy is a process-wide store handle connected by its first caller.
// Concurrent callers wait for the same attempt; a failed attempt is retried by the next caller.
type Lazy struct {
	open OpenFunc

	mu    sync.Mutex
	store Store
}

// NewLazy returns a Lazy that connects with open on first use.
func NewLazy(open OpenFunc) *Lazy {
	return &Lazy{open: open}
}

// Connect forces initialization. It is idempotent.
func (l *Lazy) Connect(ctx context.Context) (Store, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.store != nil {
		return l.store, nil
	}
	s, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	l.store = s
	return s, nil
}

// Connected reports whether a connection has been established.
func (l *Lazy) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store != nil
}

func (l *Lazy) Find(ctx context.Context, collection string, filter bson.M) ([]models.Document, error) {
	s, err := l.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return s.Find(ctx, collection, filter)
}

func (l *Lazy) FindOne(ctx context.Context, collection string, filter bson.M) (models.Document, error) {
	s, err := l.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return s.FindOne(ctx, collection, filter)
}

func (l *Lazy) InsertOne(ctx context.Context, collection string, doc models.Document) (*InsertResult, error) {
	s, err := l.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return s.InsertOne(ctx, collection, doc)
}

func (l *Lazy) UpdateOne(ctx context.Context, collection string, filter, set bson.M, opts UpdateOptions) (*UpdateResult, error) {
	s, err := l.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return s.UpdateOne(ctx, collection, filter, set, opts)
}

func (l *Lazy) DeleteOne(ctx context.Context, collection string, filter bson.M) (*DeleteResult, error) {
	s, err := l.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return s.DeleteOne(ctx, collection, filter)
}

func (l *Lazy) Ping(ctx context.Context) error {
	s, err := l.Connect(ctx)
	if err != nil {
		return err
	}
	return s.Ping(ctx)
}

// Close releases the underlying connection if one was made.
// Later calls reconnect.
func (l *Lazy) Close(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.store == nil {
		return nil
	}
	err := l.store.Close(ctx)
	l.store = nil
	return err
}
