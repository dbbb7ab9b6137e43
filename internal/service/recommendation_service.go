package service

import (
	"context"
	"fmt"
	"time"

	"go-retail-analytics/internal/model"
	"go-retail-analytics/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	recommendationWindow  = 30 * 24 * time.Hour
	recommendationLimit   = 5
	lowRotationMinStock   = 5
	lowRotationDiscount   = "15-20%"
	starRestockThreshold  = "0.5"
	starReorderMultiplier = "1.5"
)

type Recommendation struct {
	Type        string               `json:"type"`
	Priority    string               `json:"priority"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Action      string               `json:"action"`
	Products    []RecommendedProduct `json:"products"`
}

// RecommendedProduct carries the fields relevant to the rule that listed it.
type RecommendedProduct struct {
	Name              string `json:"name"`
	SKU               string `json:"sku"`
	Stock             *int   `json:"stock,omitempty"`
	MinStock          *int   `json:"minStock,omitempty"`
	SuggestedDiscount string `json:"suggestedDiscount,omitempty"`
	CurrentStock      *int   `json:"currentStock,omitempty"`
	SoldLast30Days    int64  `json:"soldLast30Days,omitempty"`
	SuggestedOrder    int64  `json:"suggestedOrder,omitempty"`
}

type RecommendationService interface {
	Recommendations(ctx context.Context) ([]Recommendation, error)
}

type recommendationService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	now         func() time.Time
}

func NewRecommendationService(pRepo repository.ProductRepository, sRepo repository.SaleRepository) RecommendationService {
	return &recommendationService{productRepo: pRepo, saleRepo: sRepo, now: time.Now}
}

// Recommendations evaluates every rule and returns the non-empty ones in
// rule order: low stock, low rotation, star products to restock.
func (s *recommendationService) Recommendations(ctx context.Context) ([]Recommendation, error) {
	out := make([]Recommendation, 0, 3)

	low, err := s.lowStock(ctx)
	if err != nil {
		return nil, err
	}
	if low != nil {
		out = append(out, *low)
	}

	now := s.now().UTC()
	since := now.Add(-recommendationWindow)
	sold, err := s.saleRepo.GroupBySKU(ctx, repository.SaleFilter{
		StartDate: &since,
		EndDate:   &now,
		Status:    model.StatusCompleted,
	}, 0)
	if err != nil {
		return nil, err
	}

	rotation, err := s.lowRotation(ctx, sold)
	if err != nil {
		return nil, err
	}
	if rotation != nil {
		out = append(out, *rotation)
	}

	stars, err := s.starsToRestock(ctx, sold)
	if err != nil {
		return nil, err
	}
	if stars != nil {
		out = append(out, *stars)
	}

	return out, nil
}

func (s *recommendationService) lowStock(ctx context.Context) (*Recommendation, error) {
	products, err := s.productRepo.ListLowStock(ctx, recommendationLimit)
	if err != nil || len(products) == 0 {
		return nil, err
	}

	rec := &Recommendation{
		Type:        "warning",
		Priority:    "high",
		Title:       "Low stock products",
		Description: fmt.Sprintf("%d product(s) need urgent restocking", len(products)),
		Action:      "Increase stock",
	}
	for _, p := range products {
		stock, minStock := p.Stock, p.MinStock
		rec.Products = append(rec.Products, RecommendedProduct{
			Name:     p.Name,
			SKU:      p.SKU,
			Stock:    &stock,
			MinStock: &minStock,
		})
	}
	return rec, nil
}

func (s *recommendationService) lowRotation(ctx context.Context, sold []repository.SKUGroup) (*Recommendation, error) {
	soldSKUs := make(map[string]bool, len(sold))
	for _, t := range sold {
		soldSKUs[t.SKU] = true
	}

	candidates, err := s.productRepo.ListActiveAboveStock(ctx, lowRotationMinStock)
	if err != nil {
		return nil, err
	}

	var products []RecommendedProduct
	for _, p := range candidates {
		if soldSKUs[p.SKU] {
			continue
		}
		stock := p.Stock
		products = append(products, RecommendedProduct{
			Name:              p.Name,
			SKU:               p.SKU,
			Stock:             &stock,
			SuggestedDiscount: lowRotationDiscount,
		})
		if len(products) == recommendationLimit {
			break
		}
	}
	if len(products) == 0 {
		return nil, nil
	}

	return &Recommendation{
		Type:        "info",
		Priority:    "medium",
		Title:       "Low rotation products",
		Description: fmt.Sprintf("%d product(s) have not sold in 30 days", len(products)),
		Action:      "Apply promotional discounts",
		Products:    products,
	}, nil
}

func (s *recommendationService) starsToRestock(ctx context.Context, sold []repository.SKUGroup) (*Recommendation, error) {
	if len(sold) > recommendationLimit {
		sold = sold[:recommendationLimit]
	}
	if len(sold) == 0 {
		return nil, nil
	}

	skus := make([]string, len(sold))
	for i, t := range sold {
		skus[i] = t.SKU
	}
	catalog, err := s.productRepo.FindBySKUs(ctx, skus)
	if err != nil {
		return nil, err
	}
	stockBySKU := make(map[string]int, len(catalog))
	for _, p := range catalog {
		stockBySKU[p.SKU] = p.Stock
	}

	threshold := decimal.RequireFromString(starRestockThreshold)
	multiplier := decimal.RequireFromString(starReorderMultiplier)

	var products []RecommendedProduct
	for _, t := range sold {
		current := stockBySKU[t.SKU]
		qty := decimal.NewFromInt(t.TotalQuantity)
		if !decimal.NewFromInt(int64(current)).LessThan(qty.Mul(threshold)) {
			continue
		}
		products = append(products, RecommendedProduct{
			Name:           t.Name,
			SKU:            t.SKU,
			CurrentStock:   &current,
			SoldLast30Days: t.TotalQuantity,
			SuggestedOrder: qty.Mul(multiplier).Ceil().IntPart(),
		})
	}
	if len(products) == 0 {
		return nil, nil
	}

	return &Recommendation{
		Type:        "success",
		Priority:    "high",
		Title:       "Star products need more stock",
		Description: "Best sellers that require restocking",
		Action:      "Increase order",
		Products:    products,
	}, nil
}
