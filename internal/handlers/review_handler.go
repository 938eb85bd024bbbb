package handlers

import (
	"github.com/gofiber/fiber/v2"

	"mobilebazar/internal/models"
	"mobilebazar/internal/services"
)

// ReviewHandler serves the customer review endpoints.
type ReviewHandler struct {
	service *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

// RegisterRoutes mounts the review routes on router.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/review", h.HandleGetReviews)
	router.Post("/review", h.HandleCreateReview)
}

// HandleGetReviews lists every review.
func (h *ReviewHandler) HandleGetReviews(c *fiber.Ctx) error {
	reviews, err := h.service.GetAllReviews(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

// HandleCreateReview stores the review as sent.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var review models.Document
	if err := parseBody(c, &review); err != nil {
		return err
	}
	res, err := h.service.CreateReview(c.UserContext(), review)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
