// Package seed fills an empty database with a demo catalog, one account per
// role and a few months of completed sales.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"go-retail-analytics/internal/model"
	"go-retail-analytics/internal/repository"
	"go-retail-analytics/internal/service"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const actor = "seed"

var ErrCatalogNotEmpty = errors.New("catalog already has products, rerun with reset")

var paymentMethods = []model.PaymentMethod{
	model.PaymentCash, model.PaymentCard, model.PaymentTransfer, model.PaymentMixed,
}

type Options struct {
	Sales int   // number of historical sales
	Days  int   // sales are spread over the last Days days
	Seed  int64 // random source seed
	Now   time.Time
}

func (o Options) withDefaults() Options {
	if o.Sales <= 0 {
		o.Sales = 250
	}
	if o.Days <= 0 {
		o.Days = 90
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

type Result struct {
	Users    int
	Products int
	Sales    int
}

type Seeder struct {
	db        *gorm.DB
	auth      service.AuthService
	catalog   service.CatalogService
	sales     service.SaleService
	saleRepo  repository.SaleRepository
	sequences repository.SequenceRepository
	log       *zap.Logger
}

func New(
	db *gorm.DB,
	auth service.AuthService,
	catalog service.CatalogService,
	sales service.SaleService,
	saleRepo repository.SaleRepository,
	sequences repository.SequenceRepository,
	log *zap.Logger,
) *Seeder {
	return &Seeder{
		db:        db,
		auth:      auth,
		catalog:   catalog,
		sales:     sales,
		saleRepo:  saleRepo,
		sequences: sequences,
		log:       log.Named("seed"),
	}
}

// Reset deletes every sale, product and sequence counter. Users are kept.
func Reset(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, table := range []interface{}{&model.SaleItem{}, &model.Sale{}, &model.Product{}, &model.Sequence{}} {
			if err := all.Delete(table).Error; err != nil {
				return fmt.Errorf("reset %T: %w", table, err)
			}
		}
		return nil
	})
}

// Run seeds users, the catalog and the sale history, then aligns the sale
// counter. It refuses to run against a non-empty catalog.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	existing, err := s.catalog.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrCatalogNotEmpty
	}

	res := &Result{}
	if res.Users, err = s.seedUsers(ctx); err != nil {
		return nil, err
	}

	products, err := s.seedCatalog(ctx)
	if err != nil {
		return nil, err
	}
	res.Products = len(products)

	rng := rand.New(rand.NewSource(opts.Seed))
	history := generateSales(rng, products, opts)
	if err := s.insertHistory(ctx, history); err != nil {
		return nil, err
	}
	res.Sales = len(history)

	if err := s.sales.SyncSequence(ctx); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Seeder) seedUsers(ctx context.Context) (int, error) {
	created := 0
	for _, u := range demoUsers {
		_, err := s.auth.Register(ctx, &service.RegisterRequest{
			Name:     u.name,
			Email:    u.email,
			Password: u.password,
			Role:     u.role,
			Branch:   u.branch,
		})
		if errors.Is(err, service.ErrEmailTaken) {
			s.log.Info("user already exists", zap.String("email", u.email))
			continue
		}
		if err != nil {
			return created, fmt.Errorf("create user %s: %w", u.email, err)
		}
		created++
	}
	return created, nil
}

func (s *Seeder) seedCatalog(ctx context.Context) ([]*model.Product, error) {
	products := make([]*model.Product, 0, len(demoCatalog))
	for _, d := range demoCatalog {
		price, cost, stock := d.price, d.cost, d.stock
		p, err := s.catalog.Create(ctx, &service.CreateProductRequest{
			SKU:      d.sku,
			Name:     d.name,
			Category: d.category,
			Gender:   d.gender,
			Size:     d.size,
			Season:   d.season,
			Color:    d.color,
			Price:    &price,
			Cost:     &cost,
			Stock:    &stock,
		}, actor)
		if err != nil {
			return nil, fmt.Errorf("create product %s: %w", d.sku, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// generateSales builds completed sales of 1-4 lines with 1-3 units each,
// dated within the last opts.Days days and sorted oldest first so sale
// numbers follow the calendar. Historical sales leave current stock alone.
func generateSales(rng *rand.Rand, products []*model.Product, opts Options) []*model.Sale {
	sales := make([]*model.Sale, 0, opts.Sales)
	if len(products) == 0 {
		return sales
	}

	branches := model.Branches()
	for i := 0; i < opts.Sales; i++ {
		daysAgo := rng.Intn(opts.Days)
		date := opts.Now.UTC().AddDate(0, 0, -daysAgo)
		date = time.Date(date.Year(), date.Month(), date.Day(), 9+rng.Intn(11), rng.Intn(60), 0, 0, time.UTC)
		if date.After(opts.Now) {
			date = opts.Now.UTC()
		}

		sale := &model.Sale{
			Branch:        branches[rng.Intn(len(branches))],
			PaymentMethod: paymentMethods[rng.Intn(len(paymentMethods))],
			Status:        model.StatusCompleted,
			SaleDate:      date,
		}
		lines := rng.Intn(4) + 1
		for pos := 0; pos < lines; pos++ {
			p := products[rng.Intn(len(products))]
			item := model.NewSaleItem(p, rng.Intn(3)+1, pos)
			sale.Items = append(sale.Items, item)
			sale.TotalAmount += item.Subtotal
			sale.TotalCost += item.LineCost()
		}
		sale.TotalProfit = sale.TotalAmount - sale.TotalCost
		sale.CreatedBy = actor
		sale.UpdatedBy = actor
		sales = append(sales, sale)
	}

	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].SaleDate.Before(sales[j].SaleDate)
	})
	return sales
}

func (s *Seeder) insertHistory(ctx context.Context, sales []*model.Sale) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sale := range sales {
			n, err := s.sequences.Next(ctx, tx, model.SaleSequence)
			if err != nil {
				return err
			}
			sale.SaleNumber = model.FormatSaleNumber(n)
			if err := s.saleRepo.Create(tx, sale); err != nil {
				return fmt.Errorf("insert %s: %w", sale.SaleNumber, err)
			}
		}
		return nil
	})
}
