package repositories

import (
	"context"

	"mobilebazar/internal/models"
	"mobilebazar/internal/store"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Document, error)
	GetByEmail(ctx context.Context, email string) ([]models.Document, error)
	Create(ctx context.Context, order models.Document) (*store.InsertResult, error)
	UpdateStatus(ctx context.Context, id string, status string) (*store.UpdateResult, error)
	Delete(ctx context.Context, id string) (*store.DeleteResult, error)
}
