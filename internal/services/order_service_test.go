package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mobilebazar/internal/models"
	"mobilebazar/internal/services"
	"mobilebazar/internal/store"
)

func TestOrderService_GetOrdersByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("requires email", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		service := services.NewOrderService(mockRepo, nil)

		orders, err := service.GetOrdersByEmail(ctx, "")
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Nil(t, orders)
		mockRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("returns empty list", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		service := services.NewOrderService(mockRepo, nil)

		mockRepo.On("GetByEmail", ctx, "a@x.com").Return([]models.Document{}, nil).Once()
		orders, err := service.GetOrdersByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
		mockRepo.AssertExpectations(t)
	})
}

func TestOrderService_CreateOrderPublishesEvent(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	pub := new(MockPublisher)
	service := services.NewOrderService(mockRepo, pub)
	ctx := context.Background()

	order := models.Document{"email": "a@x.com", "item": "phone"}
	id := primitive.NewObjectID()

	mockRepo.On("Create", ctx, order).Return(&store.InsertResult{Acknowledged: true, InsertedID: id}, nil).Once()
	pub.On("PublishEvent", ctx, id.Hex(), mock.MatchedBy(func(ev services.Event) bool {
		return ev.Type == services.EventOrderCreated && ev.Email == "a@x.com" && ev.ID == id.Hex() && !ev.OccurredAt.IsZero()
	})).Return(nil).Once()

	res, err := service.CreateOrder(ctx, order)
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	mockRepo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestOrderService_PublishFailureDoesNotFailWrite(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	pub := new(MockPublisher)
	service := services.NewOrderService(mockRepo, pub)
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	mockRepo.On("Delete", ctx, id).Return(&store.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil).Once()
	pub.On("PublishEvent", ctx, id, mock.Anything).Return(errors.New("broker down")).Once()

	res, err := service.DeleteOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)
	pub.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	tests := []struct {
		name    string
		req     models.UpdateOrderStatusRequest
		field   string
		callsDB bool
	}{
		{name: "missing id", req: models.UpdateOrderStatusRequest{Status: "shipped"}, field: "id"},
		{name: "missing status", req: models.UpdateOrderStatusRequest{ID: id}, field: "status"},
		{name: "valid", req: models.UpdateOrderStatusRequest{ID: id, Status: "shipped"}, callsDB: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockOrderRepository)
			service := services.NewOrderService(mockRepo, nil)

			if tt.callsDB {
				mockRepo.On("UpdateStatus", ctx, tt.req.ID, tt.req.Status).
					Return(&store.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil).Once()
			}

			res, err := service.UpdateOrderStatus(ctx, tt.req)
			if !tt.callsDB {
				var verr *services.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, tt.field)
				mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.True(t, res.Updated)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_UpdateOrderStatusNotFound(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	mockRepo.On("UpdateStatus", ctx, id, "shipped").Return(nil, store.ErrNotFound).Once()
	res, err := service.UpdateOrderStatus(ctx, models.UpdateOrderStatusRequest{ID: id, Status: "shipped"})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Nil(t, res)
}
