package services

import (
	"context"

	"mobilebazar/internal/models"
	"mobilebazar/internal/repositories"
	"mobilebazar/internal/store"
)

// ReviewService handles reviews. Reviews are append-only.
type ReviewService struct {
	repo   repositories.ReviewRepository
	events events
}

func NewReviewService(repo repositories.ReviewRepository, pub EventPublisher) *ReviewService {
	return &ReviewService{
		repo:   repo,
		events: newEvents(pub),
	}
}

func (s *ReviewService) GetAllReviews(ctx context.Context) ([]models.Document, error) {
	return s.repo.GetAll(ctx)
}

func (s *ReviewService) CreateReview(ctx context.Context, review models.Document) (*store.InsertResult, error) {
	if review == nil {
		return nil, invalidField("body", "must be a JSON object")
	}
	res, err := s.repo.Create(ctx, review)
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, Event{
		Type:       EventReviewCreated,
		Collection: models.ReviewCollection,
		ID:         idString(res.InsertedID),
	})
	return res, nil
}
