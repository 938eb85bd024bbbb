package handlers

import (
	"github.com/gofiber/fiber/v2"

	"mobilebazar/internal/models"
	"mobilebazar/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/orders", h.HandleGetOrders)
	router.Get("/ordersData", h.HandleGetOrdersByEmail)
	router.Post("/orders", h.HandleCreateOrder)
	router.Delete("/orders/:id", h.HandleDeleteOrder)
	router.Put("/updateOrderStatus", h.HandleUpdateOrderStatus)
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// HandleGetOrdersByEmail retrieves the orders of the customer in the email query parameter.
func (h *OrderHandler) HandleGetOrdersByEmail(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersByEmail(c.UserContext(), c.Query("email"))
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// HandleCreateOrder creates a new order from the request body.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var order models.Document
	if err := parseBody(c, &order); err != nil {
		return err
	}
	res, err := h.service.CreateOrder(c.UserContext(), order)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleDeleteOrder removes one order.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	res, err := h.service.DeleteOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// HandleUpdateOrderStatus updates the status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req models.UpdateOrderStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.service.UpdateOrderStatus(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(res)
}
