package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"mobilebazar/internal/models"
	"mobilebazar/internal/store"
)

// StoreProductRepository is a document store implementation of ProductRepository.
type StoreProductRepository struct {
	store store.Store
}

// NewStoreProductRepository creates a new instance of StoreProductRepository.
func NewStoreProductRepository(s store.Store) *StoreProductRepository {
	return &StoreProductRepository{
		store: s,
	}
}

// GetAll retrieves all products.
func (r *StoreProductRepository) GetAll(ctx context.Context) ([]models.Document, error) {
	products, err := r.store.Find(ctx, models.ProductsCollection, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *StoreProductRepository) GetByID(ctx context.Context, id string) (models.Document, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return nil, err
	}
	product, err := r.store.FindOne(ctx, models.ProductsCollection, store.ByID(oid))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("product with ID %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return product, nil
}

// Create inserts a new product.
func (r *StoreProductRepository) Create(ctx context.Context, product models.Document) (*store.InsertResult, error) {
	res, err := r.store.InsertOne(ctx, models.ProductsCollection, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return res, nil
}

// Update sets the fields of patch on an existing product.
func (r *StoreProductRepository) Update(ctx context.Context, id string, patch models.Document) (*store.UpdateResult, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.store.UpdateOne(ctx, models.ProductsCollection, store.ByID(oid), patch, store.UpdateOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("product with ID %s not found for update: %w", id, store.ErrNotFound)
	}
	return res, nil
}

// Delete deletes a product by its ID.
func (r *StoreProductRepository) Delete(ctx context.Context, id string) (*store.DeleteResult, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.store.DeleteOne(ctx, models.ProductsCollection, store.ByID(oid))
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return nil, fmt.Errorf("product with ID %s not found for deletion: %w", id, store.ErrNotFound)
	}
	return res, nil
}
