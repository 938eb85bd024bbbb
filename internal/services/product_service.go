package services

import (
	"context"

	"mobilebazar/internal/models"
	"mobilebazar/internal/repositories"
	"mobilebazar/internal/store"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events events
}

// NewProductService creates a new ProductService. pub may be nil.
func NewProductService(repo repositories.ProductRepository, pub EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: newEvents(pub),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Document, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (models.Document, error) {
	if id == "" {
		return nil, invalidField("id", "is required")
	}
	return s.repo.GetByID(ctx, id)
}

// CreateProduct stores product as sent by the client.
func (s *ProductService) CreateProduct(ctx context.Context, product models.Document) (*store.InsertResult, error) {
	if product == nil {
		return nil, invalidField("body", "must be a JSON object")
	}
	res, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, Event{
		Type:       EventProductCreated,
		Collection: models.ProductsCollection,
		ID:         idString(res.InsertedID),
	})
	return res, nil
}

// UpdateProduct replaces the product fields present in body on the product named by body["id"].
func (s *ProductService) UpdateProduct(ctx context.Context, body models.Document) (*store.UpdateResult, error) {
	id, err := requireString(body, "id")
	if err != nil {
		return nil, err
	}
	patch := models.ProductPatch(body)
	if len(patch) == 0 {
		return nil, invalidField("body", "must set at least one of name, img, description, price")
	}
	res, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, Event{
		Type:       EventProductUpdated,
		Collection: models.ProductsCollection,
		ID:         id,
	})
	return res, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*store.DeleteResult, error) {
	if id == "" {
		return nil, invalidField("id", "is required")
	}
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, Event{
		Type:       EventProductDeleted,
		Collection: models.ProductsCollection,
		ID:         id,
	})
	return res, nil
}
