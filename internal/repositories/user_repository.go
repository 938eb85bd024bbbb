package repositories

import (
	"context"

	"mobilebazar/internal/models"
	"mobilebazar/internal/store"
)

// UserRepository defines the interface for user data access.
// Users are addressed by email, never by their generated id.
type UserRepository interface {
	Create(ctx context.Context, user models.Document) (*store.InsertResult, error)
	GetByEmail(ctx context.Context, email string) (models.Document, error)
	Upsert(ctx context.Context, email string, user models.Document) (*store.UpdateResult, error)
	SetRole(ctx context.Context, email string, role string) (*store.UpdateResult, error)
}
