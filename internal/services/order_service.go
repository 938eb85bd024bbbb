package services

import (
	"context"

	"mobilebazar/internal/models"
	"mobilebazar/internal/repositories"
	"mobilebazar/internal/store"
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	events    events
}

// NewOrderService creates a new OrderService. pub may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, pub EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		events:    newEvents(pub),
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Document, error) {
	return s.orderRepo.GetAll(ctx)
}

// GetOrdersByEmail retrieves the orders of one customer. An empty email is rejected
// rather than answered with an empty list.
func (s *OrderService) GetOrdersByEmail(ctx context.Context, email string) ([]models.Document, error) {
	if err := validate.Var(email, "required"); err != nil {
		return nil, invalidField("email", "is required")
	}
	return s.orderRepo.GetByEmail(ctx, email)
}

// CreateOrder stores the order payload as sent by the client.
func (s *OrderService) CreateOrder(ctx context.Context, order models.Document) (*store.InsertResult, error) {
	if order == nil {
		return nil, invalidField("body", "must be a JSON object")
	}
	res, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, Event{
		Type:       EventOrderCreated,
		Collection: models.OrdersCollection,
		ID:         idString(res.InsertedID),
		Email:      models.StringField(order, "email"),
	})
	return res, nil
}

// UpdateOrderStatus sets the status of an existing order and leaves every other field alone.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, req models.UpdateOrderStatusRequest) (*models.UpdateOrderStatusResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	res, err := s.orderRepo.UpdateStatus(ctx, req.ID, req.Status)
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, Event{
		Type:       EventOrderStatusUpdated,
		Collection: models.OrdersCollection,
		ID:         req.ID,
		Status:     req.Status,
	})
	return &models.UpdateOrderStatusResponse{Updated: res.MatchedCount > 0}, nil
}

// DeleteOrder deletes an order by its ID.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) (*store.DeleteResult, error) {
	if id == "" {
		return nil, invalidField("id", "is required")
	}
	res, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, Event{
		Type:       EventOrderDeleted,
		Collection: models.OrdersCollection,
		ID:         id,
	})
	return res, nil
}
