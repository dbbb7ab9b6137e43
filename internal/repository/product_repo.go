package repository

import (
	"context"
	"strings"

	"go-retail-analytics/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductFilter narrows a catalog listing. Nil/empty fields are ignored.
type ProductFilter struct {
	Category model.Category
	Gender   model.Gender
	Size     model.Size
	Active   *bool
	Search   string
	SortBy   string
}

// CatalogSummary holds the catalog-wide dashboard figures.
type CatalogSummary struct {
	TotalProducts   int64 `json:"totalProducts"`
	TotalStockValue int64 `json:"totalStockValue"`
	LowStockAlerts  int64 `json:"lowStockAlerts"`
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	FindBySKUs(ctx context.Context, skus []string) ([]model.Product, error)
	Deactivate(ctx context.Context, id uuid.UUID, updatedBy string) error
	ListLowStock(ctx context.Context, limit int) ([]model.Product, error)
	ListActiveAboveStock(ctx context.Context, stock int) ([]model.Product, error)
	CatalogSummary(ctx context.Context) (*CatalogSummary, error)

	// Transactional helpers; tx must come from db.Transaction.
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	Save(tx *gorm.DB, product *model.Product) error
	DecrementStock(tx *gorm.DB, id uuid.UUID, qty int, updatedBy string) error
}

var productSorts = map[string]string{
	"name":       "name ASC",
	"price-asc":  "price ASC",
	"price-desc": "price DESC",
	"stock-low":  "stock ASC",
	"stock-high": "stock DESC",
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Gender != "" {
		q = q.Where("gender = ?", filter.Gender)
	}
	if filter.Size != "" {
		q = q.Where("size = ?", filter.Size)
	}
	if filter.Active != nil {
		q = q.Where("active = ?", *filter.Active)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + escapeLike(strings.ToLower(s)) + "%"
		q = q.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(sku) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	order, ok := productSorts[filter.SortBy]
	if !ok {
		order = "created_at DESC"
	}

	var products []model.Product
	err := q.Order(order).Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKUs(ctx context.Context, skus []string) ([]model.Product, error) {
	var products []model.Product
	if len(skus) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).Where("sku IN ?", skus).Find(&products).Error
	return products, err
}

// Save writes every column of an existing product.
func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	return tx.Save(product).Error
}

func (r *productRepo) Deactivate(ctx context.Context, id uuid.UUID, updatedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"active":     false,
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListLowStock returns active products at or below their minimum, lowest
// stock first. limit <= 0 means no limit.
func (r *productRepo) ListLowStock(ctx context.Context, limit int) ([]model.Product, error) {
	q := r.db.WithContext(ctx).
		Where("active = ? AND stock <= min_stock", true).
		Order("stock ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var products []model.Product
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) ListActiveAboveStock(ctx context.Context, stock int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("active = ? AND stock > ?", true, stock).
		Order("created_at ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) CatalogSummary(ctx context.Context) (*CatalogSummary, error) {
	var summary CatalogSummary
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select(`
			COUNT(*) AS total_products,
			COALESCE(SUM(price * stock), 0) AS total_stock_value,
			COALESCE(SUM(CASE WHEN active = ? AND stock <= min_stock THEN 1 ELSE 0 END), 0) AS low_stock_alerts
		`, true).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// LockByID loads a product and holds a row lock until tx ends.
func (r *productRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementStock only succeeds while enough stock remains; otherwise it
// returns ErrStockConflict and leaves the row untouched.
func (r *productRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, qty int, updatedBy string) error {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", qty),
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockConflict
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
