package service

import (
	"context"
	"sync"
	"testing"

	"go-retail-analytics/internal/model"
	"go-retail-analytics/internal/repository"
	"go-retail-analytics/internal/testutil"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type publishedEvent struct {
	Type string
	Data interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Data: data})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type env struct {
	db        *gorm.DB
	products  repository.ProductRepository
	sales     repository.SaleRepository
	sequences repository.SequenceRepository
	users     repository.UserRepository
	events    *recordingPublisher

	catalog   CatalogService
	saleSvc   SaleService
	analytics AnalyticsService
	recs      RecommendationService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	log := zaptest.NewLogger(t)

	e := &env{
		db:        db,
		products:  repository.NewProductRepo(db),
		sales:     repository.NewSaleRepo(db),
		sequences: repository.NewSequenceRepo(db),
		users:     repository.NewUserRepo(db),
		events:    &recordingPublisher{},
	}
	e.catalog = NewCatalogService(e.products, db, e.events, log)
	e.saleSvc = NewSaleService(e.products, e.sales, e.sequences, db, e.events, log)
	e.analytics = NewAnalyticsService(e.products, e.sales)
	e.recs = NewRecommendationService(e.products, e.sales)
	return e
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }

// product creates a catalog entry through the service.
func (e *env) product(t *testing.T, sku string, price, cost int64, stock, minStock int, mutate ...func(*CreateProductRequest)) *model.Product {
	t.Helper()
	req := &CreateProductRequest{
		SKU:      sku,
		Name:     "Product " + sku,
		Category: model.CategoryTshirt,
		Gender:   model.GenderUnisex,
		Size:     "M",
		Price:    int64Ptr(price),
		Cost:     int64Ptr(cost),
		Stock:    intPtr(stock),
		MinStock: intPtr(minStock),
	}
	for _, m := range mutate {
		m(req)
	}
	p, err := e.catalog.Create(context.Background(), req, "tester")
	require.NoError(t, err)
	return p
}

func (e *env) sell(t *testing.T, branch model.Branch, lines ...SaleItemRequest) *model.Sale {
	t.Helper()
	sale, err := e.saleSvc.Create(context.Background(), &CreateSaleRequest{Branch: branch, Items: lines}, "seller")
	require.NoError(t, err)
	return sale
}

func (e *env) stockOf(t *testing.T, p *model.Product) int {
	t.Helper()
	got, err := e.products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	return got.Stock
}

func item(p *model.Product, qty int) SaleItemRequest {
	return SaleItemRequest{Product: p.ID, Quantity: qty}
}
