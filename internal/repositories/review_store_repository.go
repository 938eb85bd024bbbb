package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"mobilebazar/internal/models"
	"mobilebazar/internal/store"
)

// StoreReviewRepository is a document store implementation of ReviewRepository.
type StoreReviewRepository struct {
	store store.Store
}

func NewStoreReviewRepository(s store.Store) *StoreReviewRepository {
	return &StoreReviewRepository{store: s}
}

func (r *StoreReviewRepository) GetAll(ctx context.Context) ([]models.Document, error) {
	reviews, err := r.store.Find(ctx, models.ReviewCollection, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all reviews: %w", err)
	}
	return reviews, nil
}

func (r *StoreReviewRepository) Create(ctx context.Context, review models.Document) (*store.InsertResult, error) {
	res, err := r.store.InsertOne(ctx, models.ReviewCollection, review)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return res, nil
}
