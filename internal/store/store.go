package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mobilebazar/internal/models"
)

var (
	// ErrNotFound is returned when a read finds nothing or a targeted write matches nothing.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID is returned for identifiers that are not 24-char hex ObjectIDs.
	ErrInvalidID = errors.New("invalid document id")
	// ErrUnsupportedFilter is returned by backends that cannot evaluate a filter key.
	ErrUnsupportedFilter = errors.New("unsupported filter")
)

// Store is the set of document operations the gateway relies on.
// Filters are equality matches on top-level fields.
type Store interface {
	Find(ctx context.Context, collection string, filter bson.M) ([]models.Document, error)
	FindOne(ctx context.Context, collection string, filter bson.M) (models.Document, error)
	InsertOne(ctx context.Context, collection string, doc models.Document) (*InsertResult, error)
	// UpdateOne applies set as a $set patch to the first document matching filter.
	UpdateOne(ctx context.Context, collection string, filter, set bson.M, opts UpdateOptions) (*UpdateResult, error)
	DeleteOne(ctx context.Context, collection string, filter bson.M) (*DeleteResult, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// UpdateOptions tunes UpdateOne.
type UpdateOptions struct {
	Upsert bool
}

// InsertResult acknowledges an insert.
type InsertResult struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   any  `json:"insertedId"`
}

// UpdateResult acknowledges an update or upsert.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    any   `json:"upsertedId"`
}

// DeleteResult acknowledges a delete.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// ParseID converts a hex string into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}

// ByID builds the filter selecting a single document by its identifier.
func ByID(id primitive.ObjectID) bson.M {
	return bson.M{models.IDField: id}
}
