package repositories

import (
	"context"

	"mobilebazar/internal/models"
	"mobilebazar/internal/store"
)

// ReviewRepository defines the interface for review data access.
// Reviews cannot be changed or removed once written.
type ReviewRepository interface {
	GetAll(ctx context.Context) ([]models.Document, error)
	Create(ctx context.Context, review models.Document) (*store.InsertResult, error)
}
