package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-retail-analytics/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleFilter narrows sale listings and aggregates. Zero values are ignored;
// BranchAll behaves like an empty branch.
type SaleFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Branch    model.Branch
	Status    model.SaleStatus
}

// SalesSummary aggregates sale headers.
type SalesSummary struct {
	TotalSales   int64
	TotalRevenue int64
	TotalCost    int64
	TotalProfit  int64
}

// ItemGroup aggregates line items sharing one key.
type ItemGroup struct {
	Label         string
	TotalQuantity int64
	TotalRevenue  int64
	TotalProfit   int64
}

// SizeGroup aggregates line items by (size, gender).
type SizeGroup struct {
	Size          model.Size
	Gender        model.Gender
	TotalQuantity int64
	TotalRevenue  int64
}

// BranchGroup aggregates sale headers by branch.
type BranchGroup struct {
	Branch       model.Branch
	TotalSales   int64
	TotalRevenue int64
	TotalProfit  int64
}

// SKUGroup aggregates line items per SKU. The descriptive fields come from
// the earliest line recorded for the SKU.
type SKUGroup struct {
	SKU           string
	Name          string
	Category      model.Category
	Gender        model.Gender
	Size          model.Size
	TotalQuantity int64
	TotalRevenue  int64
	TotalProfit   int64
	TimesOrdered  int64
}

// PeriodGroup aggregates sale headers per UTC calendar day or month. Day is
// 0 for monthly buckets.
type PeriodGroup struct {
	Year         int `gorm:"column:bucket_year"`
	Month        int `gorm:"column:bucket_month"`
	Day          int `gorm:"column:bucket_day"`
	TotalSales   int64
	TotalRevenue int64
	TotalProfit  int64
}

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	List(ctx context.Context, filter SaleFilter) ([]model.Sale, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	LatestSaleNumber(ctx context.Context) (string, error)

	Summarize(ctx context.Context, filter SaleFilter) (*SalesSummary, error)
	GroupItems(ctx context.Context, filter SaleFilter, column string) ([]ItemGroup, error)
	GroupBySize(ctx context.Context, filter SaleFilter, gender model.Gender) ([]SizeGroup, error)
	GroupByBranch(ctx context.Context, filter SaleFilter) ([]BranchGroup, error)
	GroupBySKU(ctx context.Context, filter SaleFilter, limit int) ([]SKUGroup, error)
	GroupByPeriod(ctx context.Context, filter SaleFilter, byDay bool) ([]PeriodGroup, error)
}

// columns that GroupItems may group on
var itemGroupColumns = map[string]bool{
	"category": true,
	"gender":   true,
	"size":     true,
	"sku":      true,
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create persists the header and its items. Callers run it inside the
// transaction that decremented stock.
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) List(ctx context.Context, filter SaleFilter) ([]model.Sale, error) {
	var sales []model.Sale
	err := applySaleFilter(r.db.WithContext(ctx).Model(&model.Sale{}), filter, "sales").
		Preload("Items", orderItems).
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.WithContext(ctx).Preload("Items", orderItems).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// LatestSaleNumber returns the highest sale number issued, or "" when no
// sale exists. Longer numbers sort first so VT-10000 beats VT-9999.
func (r *saleRepo) LatestSaleNumber(ctx context.Context) (string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Order("LENGTH(sale_number) DESC").
		Order("sale_number DESC").
		Limit(1).
		Pluck("sale_number", &numbers).Error
	if err != nil || len(numbers) == 0 {
		return "", err
	}
	return numbers[0], nil
}

func (r *saleRepo) Summarize(ctx context.Context, filter SaleFilter) (*SalesSummary, error) {
	var summary SalesSummary
	err := applySaleFilter(r.db.WithContext(ctx).Model(&model.Sale{}), filter, "sales").
		Select(`
			COUNT(*) AS total_sales,
			COALESCE(SUM(total_amount), 0) AS total_revenue,
			COALESCE(SUM(total_cost), 0) AS total_cost,
			COALESCE(SUM(total_profit), 0) AS total_profit
		`).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GroupItems sums line items per value of column, highest revenue first.
func (r *saleRepo) GroupItems(ctx context.Context, filter SaleFilter, column string) ([]ItemGroup, error) {
	if !itemGroupColumns[column] {
		return nil, fmt.Errorf("group items: unsupported column %q", column)
	}

	var groups []ItemGroup
	err := r.itemsQuery(ctx, filter).
		Select(fmt.Sprintf(`
			sale_items.%s AS label,
			COALESCE(SUM(sale_items.quantity), 0) AS total_quantity,
			COALESCE(SUM(sale_items.subtotal), 0) AS total_revenue,
			COALESCE(SUM(sale_items.profit), 0) AS total_profit
		`, column)).
		Group("sale_items." + column).
		Order("total_revenue DESC").
		Scan(&groups).Error
	return groups, err
}

func (r *saleRepo) GroupBySize(ctx context.Context, filter SaleFilter, gender model.Gender) ([]SizeGroup, error) {
	q := r.itemsQuery(ctx, filter)
	if gender != "" {
		q = q.Where("sale_items.gender = ?", gender)
	}

	var groups []SizeGroup
	err := q.Select(`
			sale_items.size AS size,
			sale_items.gender AS gender,
			COALESCE(SUM(sale_items.quantity), 0) AS total_quantity,
			COALESCE(SUM(sale_items.subtotal), 0) AS total_revenue
		`).
		Group("sale_items.size, sale_items.gender").
		Order("total_quantity DESC").
		Scan(&groups).Error
	return groups, err
}

func (r *saleRepo) GroupByBranch(ctx context.Context, filter SaleFilter) ([]BranchGroup, error) {
	var groups []BranchGroup
	err := applySaleFilter(r.db.WithContext(ctx).Model(&model.Sale{}), filter, "sales").
		Select(`
			branch,
			COUNT(*) AS total_sales,
			COALESCE(SUM(total_amount), 0) AS total_revenue,
			COALESCE(SUM(total_profit), 0) AS total_profit
		`).
		Group("branch").
		Order("total_revenue DESC").
		Scan(&groups).Error
	return groups, err
}

// GroupBySKU sums line items per SKU, most units first. Ties keep the order
// in which the SKUs were first sold. A limit <= 0 returns every SKU.
func (r *saleRepo) GroupBySKU(ctx context.Context, filter SaleFilter, limit int) ([]SKUGroup, error) {
	totals := r.itemsQuery(ctx, filter).
		Select(`
			sale_items.sku AS sku,
			MIN(sale_items.id) AS first_id,
			COALESCE(SUM(sale_items.quantity), 0) AS total_quantity,
			COALESCE(SUM(sale_items.subtotal), 0) AS total_revenue,
			COALESCE(SUM(sale_items.profit), 0) AS total_profit,
			COUNT(*) AS times_ordered
		`).
		Group("sale_items.sku")

	q := r.db.WithContext(ctx).
		Table("(?) AS g", totals).
		Select(`
			g.sku, first_item.name, first_item.category, first_item.gender, first_item.size,
			g.total_quantity, g.total_revenue, g.total_profit, g.times_ordered
		`).
		Joins("JOIN sale_items AS first_item ON first_item.id = g.first_id").
		Order("g.total_quantity DESC").
		Order("g.first_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var groups []SKUGroup
	err := q.Scan(&groups).Error
	return groups, err
}

// GroupByPeriod sums sale headers per UTC calendar month, or per day when
// byDay is set, oldest bucket first.
func (r *saleRepo) GroupByPeriod(ctx context.Context, filter SaleFilter, byDay bool) ([]PeriodGroup, error) {
	cols := []string{
		r.datePart("YEAR", "sales.sale_date") + " AS bucket_year",
		r.datePart("MONTH", "sales.sale_date") + " AS bucket_month",
	}
	keys := []string{"bucket_year", "bucket_month"}
	if byDay {
		cols = append(cols, r.datePart("DAY", "sales.sale_date")+" AS bucket_day")
		keys = append(keys, "bucket_day")
	}
	cols = append(cols,
		"COUNT(*) AS total_sales",
		"COALESCE(SUM(sales.total_amount), 0) AS total_revenue",
		"COALESCE(SUM(sales.total_profit), 0) AS total_profit",
	)

	var groups []PeriodGroup
	err := applySaleFilter(r.db.WithContext(ctx).Model(&model.Sale{}), filter, "sales").
		Select(strings.Join(cols, ", ")).
		Group(strings.Join(keys, ", ")).
		Order(strings.Join(keys, " ASC, ") + " ASC").
		Scan(&groups).Error
	return groups, err
}

var sqliteDateFormats = map[string]string{
	"YEAR":  "%Y",
	"MONTH": "%m",
	"DAY":   "%d",
}

// datePart extracts a UTC calendar field of column as an integer, in the
// SQL dialect of the connected database.
func (r *saleRepo) datePart(field, column string) string {
	if r.db.Dialector.Name() == "sqlite" {
		return fmt.Sprintf("CAST(strftime('%s', %s) AS INTEGER)", sqliteDateFormats[field], column)
	}
	return fmt.Sprintf("CAST(EXTRACT(%s FROM %s AT TIME ZONE 'UTC') AS INTEGER)", field, column)
}

func (r *saleRepo) itemsQuery(ctx context.Context, filter SaleFilter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&model.SaleItem{}).
		Joins("JOIN sales ON sales.id = sale_items.sale_id")
	return applySaleFilter(q, filter, "sales")
}

func applySaleFilter(q *gorm.DB, f SaleFilter, table string) *gorm.DB {
	if f.StartDate != nil {
		q = q.Where(table+".sale_date >= ?", f.StartDate.UTC())
	}
	if f.EndDate != nil {
		q = q.Where(table+".sale_date <= ?", f.EndDate.UTC())
	}
	if f.Branch != "" && f.Branch != model.BranchAll {
		q = q.Where(table+".branch = ?", f.Branch)
	}
	if f.Status != "" {
		q = q.Where(table+".status = ?", f.Status)
	}
	return q
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
