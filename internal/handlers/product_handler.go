package handlers

import (
	"teslo/internal/middleware"
	"teslo/internal/models"
	"teslo/internal/problem"
	"teslo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service     *services.ProductService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, authService *services.AuthService) *ProductHandler {
	return &ProductHandler{
		service:     service,
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the product routes. Reads are public; creating
// needs a user and changing or deleting needs an admin.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:term", h.HandleGetProduct)
	productRoutes.Post("/", middleware.Auth(h.authService), h.HandleCreateProduct)
	productRoutes.Patch("/:id", middleware.Auth(h.authService, models.RoleAdmin), h.HandleUpdateProduct)
	productRoutes.Delete("/:id", middleware.Auth(h.authService, models.RoleAdmin), h.HandleDeleteProduct)
}

// HandleGetProducts lists products, paginated by ?limit and ?offset.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	var page services.Pagination
	if err := c.QueryParser(&page); err != nil {
		return problem.Write(c, fiber.StatusBadRequest, "limit and offset must be integers")
	}
	if ok, err := validate(c, h.validate, &page); !ok {
		return err
	}

	products, err := h.service.FindAll(c.UserContext(), page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a product by id, title or slug.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.FindOnePlain(c.UserContext(), c.Params("term"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product owned by the caller.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input services.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(c, err)
	}
	if ok, err := validate(c, h.validate, &input); !ok {
		return err
	}

	product, err := h.service.Create(c.UserContext(), input, middleware.CurrentUser(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update, replacing the images when
// the body carries an images array.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return problem.Write(c, fiber.StatusBadRequest, "Validation failed (uuid is expected)")
	}

	var input services.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(c, err)
	}
	if ok, err := validate(c, h.validate, &input); !ok {
		return err
	}

	product, err := h.service.Update(c.UserContext(), id, input, middleware.CurrentUser(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product and its images.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return problem.Write(c, fiber.StatusBadRequest, "Validation failed (uuid is expected)")
	}

	if err := h.service.Remove(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func productID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
