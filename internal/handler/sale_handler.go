package handler

import (
	"go-retail-analytics/internal/middleware"
	"go-retail-analytics/internal/model"
	"go-retail-analytics/internal/repository"
	"go-retail-analytics/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// GetSales lists sales, newest first
// GET /api/sales?startDate=&endDate=&branch=&status=
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	branch, err := parseBranch(c)
	if err != nil {
		return respondError(c, err)
	}

	status := model.SaleStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return fail(c, fiber.StatusBadRequest, "invalid status "+string(status))
	}

	sales, err := h.saleService.List(c.UserContext(), repository.SaleFilter{
		StartDate: start,
		EndDate:   end,
		Branch:    branch,
		Status:    status,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(sales),
		"sales":   sales,
	})
}

// GetSale returns a sale with its line items
// GET /api/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseID(c, "sale")
	if err != nil {
		return respondError(c, err)
	}

	sale, err := h.saleService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "sale": sale})
}

// CreateSale commits a sale and decrements stock atomically
// POST /api/sales
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	sale, err := h.saleService.Create(c.UserContext(), &req, middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "sale": sale})
}
