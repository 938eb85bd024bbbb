package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"mobilebazar/internal/models"
	"mobilebazar/internal/services"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the user routes. /users/admin is registered for PUT only,
// so it never shadows the admin check.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/users/:email", h.HandleAdminCheck)
	router.Post("/users", h.HandleCreateUser)
	router.Put("/users", h.HandleUpsertUser)
	router.Put("/users/admin", h.HandleMakeAdmin)
}

// HandleAdminCheck answers {"admin": bool} and never fails.
func (h *UserHandler) HandleAdminCheck(c *fiber.Ctx) error {
	email := c.Params("email")
	if unescaped, err := url.PathUnescape(email); err == nil {
		email = unescaped
	}
	return c.JSON(models.AdminStatus{Admin: h.service.IsAdmin(c.UserContext(), email)})
}

// HandleCreateUser inserts a new user.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var user models.Document
	if err := parseBody(c, &user); err != nil {
		return err
	}
	res, err := h.service.CreateUser(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleUpsertUser creates or updates the user with the body's email.
func (h *UserHandler) HandleUpsertUser(c *fiber.Ctx) error {
	var user models.Document
	if err := parseBody(c, &user); err != nil {
		return err
	}
	res, err := h.service.UpsertUser(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// HandleMakeAdmin grants the admin role. It performs no caller authorization.
func (h *UserHandler) HandleMakeAdmin(c *fiber.Ctx) error {
	var req models.MakeAdminRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.service.MakeAdmin(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(res)
}
