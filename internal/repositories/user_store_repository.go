package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"mobilebazar/internal/models"
	"mobilebazar/internal/store"
)

// StoreUserRepository is a document store implementation of UserRepository.
type StoreUserRepository struct {
	store store.Store
}

// NewStoreUserRepository creates a new instance of StoreUserRepository.
func NewStoreUserRepository(s store.Store) *StoreUserRepository {
	return &StoreUserRepository{
		store: s,
	}
}

// Create inserts a new user.
func (r *StoreUserRepository) Create(ctx context.Context, user models.Document) (*store.InsertResult, error) {
	res, err := r.store.InsertOne(ctx, models.UsersCollection, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return res, nil
}

// GetByEmail retrieves a user by their email.
func (r *StoreUserRepository) GetByEmail(ctx context.Context, email string) (models.Document, error) {
	user, err := r.store.FindOne(ctx, models.UsersCollection, bson.M{"email": email})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, err)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return user, nil
}

// Upsert replaces the fields of the user with the given email, creating the user if needed.
func (r *StoreUserRepository) Upsert(ctx context.Context, email string, user models.Document) (*store.UpdateResult, error) {
	res, err := r.store.UpdateOne(ctx, models.UsersCollection, bson.M{"email": email}, models.WithoutID(user), store.UpdateOptions{Upsert: true})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user %s: %w", email, err)
	}
	return res, nil
}

// SetRole sets the role of an existing user.
func (r *StoreUserRepository) SetRole(ctx context.Context, email string, role string) (*store.UpdateResult, error) {
	res, err := r.store.UpdateOne(ctx, models.UsersCollection, bson.M{"email": email}, bson.M{"role": role}, store.UpdateOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to set role of user %s: %w", email, err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("user with email %s not found: %w", email, store.ErrNotFound)
	}
	return res, nil
}
