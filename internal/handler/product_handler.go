package handler

import (
	"go-retail-analytics/internal/middleware"
	"go-retail-analytics/internal/model"
	"go-retail-analytics/internal/repository"
	"go-retail-analytics/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	catalogService service.CatalogService
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// GetProducts lists the catalog with optional filters
// GET /api/products?category=&gender=&size=&active=&search=&sortBy=
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Category: model.Category(c.Query("category")),
		Gender:   model.Gender(c.Query("gender")),
		Size:     model.Size(c.Query("size")),
		Search:   c.Query("search"),
		SortBy:   c.Query("sortBy"),
	}

	switch c.Query("active") {
	case "":
	case "true":
		active := true
		filter.Active = &active
	case "false":
		active := false
		filter.Active = &active
	default:
		return fail(c, fiber.StatusBadRequest, "active must be true or false")
	}

	products, err := h.catalogService.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(products),
		"products": products,
	})
}

// GetLowStock lists active products at or below their minimum stock
// GET /api/products/alerts/low-stock
func (h *ProductHandler) GetLowStock(c *fiber.Ctx) error {
	products, err := h.catalogService.LowStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(products),
		"products": products,
	})
}

// GetProduct returns a single product
// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.catalogService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "product": product})
}

// CreateProduct adds a catalog entry
// POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	product, err := h.catalogService.Create(c.UserContext(), &req, middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "product": product})
}

// UpdateProduct applies a partial update; the SKU cannot change
// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return respondError(c, err)
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	product, err := h.catalogService.Update(c.UserContext(), id, &req, middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "product": product})
}

// DeleteProduct soft-deletes a product by marking it inactive
// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.catalogService.Deactivate(c.UserContext(), id, middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deactivated",
		"product": product,
	})
}
