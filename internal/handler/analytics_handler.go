package handler

import (
	"go-retail-analytics/internal/model"
	"go-retail-analytics/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	analyticsService      service.AnalyticsService
	recommendationService service.RecommendationService
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService, recommendationService service.RecommendationService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService:      analyticsService,
		recommendationService: recommendationService,
	}
}

func analyticsFilter(c *fiber.Ctx) (service.AnalyticsFilter, error) {
	start, end, err := parseDateRange(c)
	if err != nil {
		return service.AnalyticsFilter{}, err
	}
	branch, err := parseBranch(c)
	if err != nil {
		return service.AnalyticsFilter{}, err
	}
	return service.AnalyticsFilter{StartDate: start, EndDate: end, Branch: branch}, nil
}

func listResponse(c *fiber.Ctx, key string, n int, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"count":   n,
		key:       data,
	})
}

// GetDashboard returns the headline KPIs
// GET /api/analytics/dashboard
func (h *AnalyticsHandler) GetDashboard(c *fiber.Ctx) error {
	f, err := analyticsFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	kpis, err := h.analyticsService.Dashboard(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "kpis": kpis})
}

// GetTopProducts ranks products by units sold
// GET /api/analytics/top-products?limit=
func (h *AnalyticsHandler) GetTopProducts(c *fiber.Ctx) error {
	f, err := analyticsFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	limit := c.QueryInt("limit", service.DefaultTopProductsLimit)
	products, err := h.analyticsService.TopProducts(c.UserContext(), f, limit)
	if err != nil {
		return respondError(c, err)
	}

	return listResponse(c, "products", len(products), products)
}

// GetByCategory groups completed sales by category
// GET /api/analytics/by-category
func (h *AnalyticsHandler) GetByCategory(c *fiber.Ctx) error {
	f, err := analyticsFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	data, err := h.analyticsService.ByCategory(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}

	return listResponse(c, "data", len(data), data)
}

// GetByGender groups completed sales by gender
// GET /api/analytics/by-gender
func (h *AnalyticsHandler) GetByGender(c *fiber.Ctx) error {
	f, err := analyticsFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	data, err := h.analyticsService.ByGender(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}

	return listResponse(c, "data", len(data), data)
}

// GetBySize groups completed sales by size and gender
// GET /api/analytics/by-size?gender=
func (h *AnalyticsHandler) GetBySize(c *fiber.Ctx) error {
	f, err := analyticsFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	gender := model.Gender(c.Query("gender"))
	if gender != "" && !gender.Valid() {
		return fail(c, fiber.StatusBadRequest, "invalid gender "+string(gender))
	}

	data, err := h.analyticsService.BySize(c.UserContext(), f, gender)
	if err != nil {
		return respondError(c, err)
	}

	return listResponse(c, "data", len(data), data)
}

// GetByBranch groups completed sales by store
// GET /api/analytics/by-branch
func (h *AnalyticsHandler) GetByBranch(c *fiber.Ctx) error {
	f, err := analyticsFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	data, err := h.analyticsService.ByBranch(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}

	return listResponse(c, "data", len(data), data)
}

// GetSalesTrend buckets completed sales per day or month
// GET /api/analytics/sales-trend?groupBy=day|month
func (h *AnalyticsHandler) GetSalesTrend(c *fiber.Ctx) error {
	f, err := analyticsFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	groupBy := service.TrendGrouping(c.Query("groupBy", string(service.TrendByDay)))
	if groupBy != service.TrendByDay && groupBy != service.TrendByMonth {
		return fail(c, fiber.StatusBadRequest, "groupBy must be day or month")
	}

	data, err := h.analyticsService.SalesTrend(c.UserContext(), f, groupBy)
	if err != nil {
		return respondError(c, err)
	}

	return listResponse(c, "data", len(data), data)
}

// GetRecommendations evaluates the restock and promotion rules
// GET /api/analytics/recommendations
func (h *AnalyticsHandler) GetRecommendations(c *fiber.Ctx) error {
	recs, err := h.recommendationService.Recommendations(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return listResponse(c, "recommendations", len(recs), recs)
}
