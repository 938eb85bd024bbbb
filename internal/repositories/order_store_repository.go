package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"mobilebazar/internal/models"
	"mobilebazar/internal/store"
)

// StoreOrderRepository is a document store implementation of OrderRepository.
type StoreOrderRepository struct {
	store store.Store
}

// NewStoreOrderRepository creates a new instance of StoreOrderRepository.
func NewStoreOrderRepository(s store.Store) *StoreOrderRepository {
	return &StoreOrderRepository{
		store: s,
	}
}

// GetAll returns all orders.
func (r *StoreOrderRepository) GetAll(ctx context.Context) ([]models.Document, error) {
	orders, err := r.store.Find(ctx, models.OrdersCollection, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByEmail returns the orders placed with the given email.
func (r *StoreOrderRepository) GetByEmail(ctx context.Context, email string) ([]models.Document, error) {
	orders, err := r.store.Find(ctx, models.OrdersCollection, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for %s: %w", email, err)
	}
	return orders, nil
}

// Create adds a new order.
func (r *StoreOrderRepository) Create(ctx context.Context, order models.Document) (*store.InsertResult, error) {
	res, err := r.store.InsertOne(ctx, models.OrdersCollection, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return res, nil
}

// UpdateStatus updates only the status of an order.
func (r *StoreOrderRepository) UpdateStatus(ctx context.Context, id string, status string) (*store.UpdateResult, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.store.UpdateOne(ctx, models.OrdersCollection, store.ByID(oid), bson.M{"status": status}, store.UpdateOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to update status of order %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("order with ID %s not found for status update: %w", id, store.ErrNotFound)
	}
	return res, nil
}

// Delete removes an order by its ID.
func (r *StoreOrderRepository) Delete(ctx context.Context, id string) (*store.DeleteResult, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.store.DeleteOne(ctx, models.OrdersCollection, store.ByID(oid))
	if err != nil {
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return nil, fmt.Errorf("order with ID %s not found for deletion: %w", id, store.ErrNotFound)
	}
	return res, nil
}
