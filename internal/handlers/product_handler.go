package handlers

import (
	"github.com/gofiber/fiber/v2"

	"mobilebazar/internal/models"
	"mobilebazar/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleGetProducts)
	router.Get("/products/:id", h.HandleGetProductByID)
	router.Post("/products", h.HandleCreateProduct)
	router.Delete("/products/:id", h.HandleDeleteProduct)
	router.Put("/updateProduct", h.HandleUpdateProduct)
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleGetProductByID returns one product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleCreateProduct stores the request body as a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Document
	if err := parseBody(c, &product); err != nil {
		return err
	}
	res, err := h.service.CreateProduct(c.UserContext(), product)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleUpdateProduct replaces the fields sent in the body of the product named by its id.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var body models.Document
	if err := parseBody(c, &body); err != nil {
		return err
	}
	res, err := h.service.UpdateProduct(c.UserContext(), body)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// HandleDeleteProduct removes one product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	res, err := h.service.DeleteProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(res)
}
