package service

import (
	"context"
	"time"

	"go-retail-analytics/internal/model"
	"go-retail-analytics/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const DefaultTopProductsLimit = 10

// AnalyticsFilter restricts aggregates to a sale date range and branch.
// Only completed sales are ever aggregated.
type AnalyticsFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Branch    model.Branch
}

func (f AnalyticsFilter) saleFilter() repository.SaleFilter {
	return repository.SaleFilter{
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Branch:    f.Branch,
		Status:    model.StatusCompleted,
	}
}

type TrendGrouping string

const (
	TrendByDay   TrendGrouping = "day"
	TrendByMonth TrendGrouping = "month"
)

type KPIs struct {
	TotalSales      int64   `json:"totalSales"`
	TotalRevenue    int64   `json:"totalRevenue"`
	TotalProfit     int64   `json:"totalProfit"`
	TotalCost       int64   `json:"totalCost"`
	AvgTicket       float64 `json:"avgTicket"`
	ProfitMargin    float64 `json:"profitMargin"`
	TotalProducts   int64   `json:"totalProducts"`
	TotalStockValue int64   `json:"totalStockValue"`
	LowStockAlerts  int64   `json:"lowStockAlerts"`
}

type TopProduct struct {
	SKU           string         `json:"_id"`
	Name          string         `json:"name"`
	Category      model.Category `json:"category"`
	Gender        model.Gender   `json:"gender"`
	Size          model.Size     `json:"size"`
	TotalQuantity int64          `json:"totalQuantity"`
	TotalRevenue  int64          `json:"totalRevenue"`
	TotalProfit   int64          `json:"totalProfit"`
	TimesOrdered  int64          `json:"timesOrdered"`
}

type GroupTotals struct {
	ID            string `json:"_id"`
	TotalQuantity int64  `json:"totalQuantity"`
	TotalRevenue  int64  `json:"totalRevenue"`
	TotalProfit   int64  `json:"totalProfit"`
}

type SizeKey struct {
	Size   model.Size   `json:"size"`
	Gender model.Gender `json:"gender"`
}

type SizeTotals struct {
	ID            SizeKey `json:"_id"`
	TotalQuantity int64   `json:"totalQuantity"`
	TotalRevenue  int64   `json:"totalRevenue"`
}

type BranchTotals struct {
	ID           model.Branch `json:"_id"`
	TotalSales   int64        `json:"totalSales"`
	TotalRevenue int64        `json:"totalRevenue"`
	TotalProfit  int64        `json:"totalProfit"`
	AvgTicket    float64      `json:"avgTicket"`
}

type TrendKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day,omitempty"`
}

type TrendPoint struct {
	ID           TrendKey `json:"_id"`
	TotalSales   int64    `json:"totalSales"`
	TotalRevenue int64    `json:"totalRevenue"`
	TotalProfit  int64    `json:"totalProfit"`
}

type AnalyticsService interface {
	Dashboard(ctx context.Context, f AnalyticsFilter) (*KPIs, error)
	TopProducts(ctx context.Context, f AnalyticsFilter, limit int) ([]TopProduct, error)
	ByCategory(ctx context.Context, f AnalyticsFilter) ([]GroupTotals, error)
	ByGender(ctx context.Context, f AnalyticsFilter) ([]GroupTotals, error)
	BySize(ctx context.Context, f AnalyticsFilter, gender model.Gender) ([]SizeTotals, error)
	ByBranch(ctx context.Context, f AnalyticsFilter) ([]BranchTotals, error)
	SalesTrend(ctx context.Context, f AnalyticsFilter, groupBy TrendGrouping) ([]TrendPoint, error)
}

type analyticsService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

func NewAnalyticsService(pRepo repository.ProductRepository, sRepo repository.SaleRepository) AnalyticsService {
	return &analyticsService{productRepo: pRepo, saleRepo: sRepo}
}

// Dashboard runs the sales and catalog halves concurrently. Catalog figures
// ignore the filter.
func (s *analyticsService) Dashboard(ctx context.Context, f AnalyticsFilter) (*KPIs, error) {
	var (
		sales   *repository.SalesSummary
		catalog *repository.CatalogSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sales, err = s.saleRepo.Summarize(gctx, f.saleFilter())
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = s.productRepo.CatalogSummary(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &KPIs{
		TotalSales:      sales.TotalSales,
		TotalRevenue:    sales.TotalRevenue,
		TotalProfit:     sales.TotalProfit,
		TotalCost:       sales.TotalCost,
		AvgTicket:       ratio(sales.TotalRevenue, sales.TotalSales),
		ProfitMargin:    percentage(sales.TotalProfit, sales.TotalRevenue),
		TotalProducts:   catalog.TotalProducts,
		TotalStockValue: catalog.TotalStockValue,
		LowStockAlerts:  catalog.LowStockAlerts,
	}, nil
}

func (s *analyticsService) TopProducts(ctx context.Context, f AnalyticsFilter, limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = DefaultTopProductsLimit
	}

	groups, err := s.saleRepo.GroupBySKU(ctx, f.saleFilter(), limit)
	if err != nil {
		return nil, err
	}

	out := make([]TopProduct, len(groups))
	for i, g := range groups {
		out[i] = TopProduct{
			SKU:           g.SKU,
			Name:          g.Name,
			Category:      g.Category,
			Gender:        g.Gender,
			Size:          g.Size,
			TotalQuantity: g.TotalQuantity,
			TotalRevenue:  g.TotalRevenue,
			TotalProfit:   g.TotalProfit,
			TimesOrdered:  g.TimesOrdered,
		}
	}
	return out, nil
}

func (s *analyticsService) ByCategory(ctx context.Context, f AnalyticsFilter) ([]GroupTotals, error) {
	return s.groupItems(ctx, f, "category")
}

func (s *analyticsService) ByGender(ctx context.Context, f AnalyticsFilter) ([]GroupTotals, error) {
	return s.groupItems(ctx, f, "gender")
}

func (s *analyticsService) groupItems(ctx context.Context, f AnalyticsFilter, column string) ([]GroupTotals, error) {
	groups, err := s.saleRepo.GroupItems(ctx, f.saleFilter(), column)
	if err != nil {
		return nil, err
	}

	out := make([]GroupTotals, len(groups))
	for i, g := range groups {
		out[i] = GroupTotals{
			ID:            g.Label,
			TotalQuantity: g.TotalQuantity,
			TotalRevenue:  g.TotalRevenue,
			TotalProfit:   g.TotalProfit,
		}
	}
	return out, nil
}

func (s *analyticsService) BySize(ctx context.Context, f AnalyticsFilter, gender model.Gender) ([]SizeTotals, error) {
	groups, err := s.saleRepo.GroupBySize(ctx, f.saleFilter(), gender)
	if err != nil {
		return nil, err
	}

	out := make([]SizeTotals, len(groups))
	for i, g := range groups {
		out[i] = SizeTotals{
			ID:            SizeKey{Size: g.Size, Gender: g.Gender},
			TotalQuantity: g.TotalQuantity,
			TotalRevenue:  g.TotalRevenue,
		}
	}
	return out, nil
}

func (s *analyticsService) ByBranch(ctx context.Context, f AnalyticsFilter) ([]BranchTotals, error) {
	groups, err := s.saleRepo.GroupByBranch(ctx, f.saleFilter())
	if err != nil {
		return nil, err
	}

	out := make([]BranchTotals, len(groups))
	for i, g := range groups {
		out[i] = BranchTotals{
			ID:           g.Branch,
			TotalSales:   g.TotalSales,
			TotalRevenue: g.TotalRevenue,
			TotalProfit:  g.TotalProfit,
			AvgTicket:    ratio(g.TotalRevenue, g.TotalSales),
		}
	}
	return out, nil
}

// SalesTrend buckets sales by UTC calendar day or month.
func (s *analyticsService) SalesTrend(ctx context.Context, f AnalyticsFilter, groupBy TrendGrouping) ([]TrendPoint, error) {
	groups, err := s.saleRepo.GroupByPeriod(ctx, f.saleFilter(), groupBy != TrendByMonth)
	if err != nil {
		return nil, err
	}

	out := make([]TrendPoint, len(groups))
	for i, g := range groups {
		out[i] = TrendPoint{
			ID:           TrendKey{Year: g.Year, Month: g.Month, Day: g.Day},
			TotalSales:   g.TotalSales,
			TotalRevenue: g.TotalRevenue,
			TotalProfit:  g.TotalProfit,
		}
	}
	return out, nil
}

// ratio returns num/den rounded to 2 decimals, or 0 when den is 0.
func ratio(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return decimal.NewFromInt(num).DivRound(decimal.NewFromInt(den), 2).InexactFloat64()
}

// percentage returns part/whole*100 rounded to 2 decimals, or 0 when whole is 0.
func percentage(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(whole), 2).
		InexactFloat64()
}
