package repositories

import (
	"context"

	"mobilebazar/internal/models"
	"mobilebazar/internal/store"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Document, error)
	GetByID(ctx context.Context, id string) (models.Document, error)
	Create(ctx context.Context, product models.Document) (*store.InsertResult, error)
	Update(ctx context.Context, id string, patch models.Document) (*store.UpdateResult, error)
	Delete(ctx context.Context, id string) (*store.DeleteResult, error)
}
