package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go-retail-analytics/internal/model"
	"go-retail-analytics/internal/repository"
	"go-retail-analytics/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleService_CommitSingleLine(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 100, 50, 10, 2)

	sale := e.sell(t, model.BranchCaliSur, item(a, 3))

	assert.Equal(t, "VT-0001", sale.SaleNumber)
	assert.Equal(t, int64(300), sale.TotalAmount)
	assert.Equal(t, int64(150), sale.TotalCost)
	assert.Equal(t, int64(150), sale.TotalProfit)
	assert.Equal(t, model.StatusCompleted, sale.Status)
	assert.Equal(t, model.PaymentCard, sale.PaymentMethod)
	assert.Equal(t, "seller", sale.CreatedBy)
	assert.Equal(t, 7, e.stockOf(t, a))

	stored, err := e.saleSvc.Get(context.Background(), sale.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "A", stored.Items[0].SKU)
	assert.Equal(t, int64(100), stored.Items[0].UnitPrice)
}

func TestSaleService_TotalsMatchLines(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 120, 70, 50, 2)
	b := e.product(t, "B", 35, 10, 50, 2)
	c := e.product(t, "C", 999, 1000, 50, 2)

	sale := e.sell(t, model.BranchCartagena, item(a, 2), item(b, 7), item(c, 1))

	var amount, cost int64
	for i, it := range sale.Items {
		assert.Equal(t, i, it.Position)
		assert.Equal(t, it.UnitPrice*int64(it.Quantity), it.Subtotal)
		amount += it.Subtotal
		cost += it.LineCost()
	}
	assert.Equal(t, amount, sale.TotalAmount)
	assert.Equal(t, cost, sale.TotalCost)
	assert.Equal(t, sale.TotalAmount-sale.TotalCost, sale.TotalProfit)
	assert.Equal(t, int64(-1), sale.Items[2].Profit, "selling below cost yields negative profit")
}

func TestSaleService_SequentialNumbers(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 10, 5, 100, 2)

	for i := 1; i <= 5; i++ {
		sale := e.sell(t, model.BranchBarranquilla, item(a, 1))
		assert.Equal(t, fmt.Sprintf("VT-%04d", i), sale.SaleNumber)
	}
}

func TestSaleService_InsufficientStock(t *testing.T) {
	e := newEnv(t)
	first := e.product(t, "FIRST", 10, 5, 10, 2)
	short := e.product(t, "SHORT", 10, 5, 3, 2)
	e.events.events = nil

	_, err := e.saleSvc.Create(context.Background(), &CreateSaleRequest{
		Branch: model.BranchCaliSur,
		Items:  []SaleItemRequest{item(first, 4), item(short, 5)},
	}, "seller")

	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr), "got %v", err)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, short.Name, stockErr.Product)
	assert.Contains(t, err.Error(), "available 3")

	assert.Equal(t, 10, e.stockOf(t, first), "earlier line rolled back")
	assert.Equal(t, 3, e.stockOf(t, short))

	sales, err := e.saleSvc.List(context.Background(), repository.SaleFilter{})
	require.NoError(t, err)
	assert.Empty(t, sales)
	assert.Empty(t, e.events.types())

	// the failed attempt does not consume a number
	next := e.sell(t, model.BranchCaliSur, item(first, 1))
	assert.Equal(t, "VT-0001", next.SaleNumber)
}

func TestSaleService_RepeatedProductClaimsRunningTotal(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "P", 10, 5, 5, 1)

	_, err := e.saleSvc.Create(context.Background(), &CreateSaleRequest{
		Branch: model.BranchCaliSur,
		Items:  []SaleItemRequest{item(p, 3), item(p, 3)},
	}, "seller")

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 5, e.stockOf(t, p))

	sale := e.sell(t, model.BranchCaliSur, item(p, 2), item(p, 3))
	assert.Len(t, sale.Items, 2)
	assert.Equal(t, 0, e.stockOf(t, p))
}

func TestSaleService_MissingProduct(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 10, 5, 10, 2)
	missing := uuid.New()

	_, err := e.saleSvc.Create(context.Background(), &CreateSaleRequest{
		Branch: model.BranchCaliSur,
		Items:  []SaleItemRequest{item(a, 1), {Product: missing, Quantity: 1}},
	}, "seller")

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, missing.String(), nf.ID)
	assert.Equal(t, 10, e.stockOf(t, a))
}

func TestSaleService_Validation(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 10, 5, 10, 2)

	tests := []struct {
		name string
		req  *CreateSaleRequest
	}{
		{"no items", &CreateSaleRequest{Branch: model.BranchCaliSur}},
		{"branch All", &CreateSaleRequest{Branch: model.BranchAll, Items: []SaleItemRequest{item(a, 1)}}},
		{"unknown branch", &CreateSaleRequest{Branch: "Lima", Items: []SaleItemRequest{item(a, 1)}}},
		{"zero quantity", &CreateSaleRequest{Branch: model.BranchCaliSur, Items: []SaleItemRequest{item(a, 0)}}},
		{"nil product", &CreateSaleRequest{Branch: model.BranchCaliSur, Items: []SaleItemRequest{{Quantity: 1}}}},
		{"bad payment", &CreateSaleRequest{Branch: model.BranchCaliSur, PaymentMethod: "Bitcoin", Items: []SaleItemRequest{item(a, 1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.saleSvc.Create(context.Background(), tt.req, "seller")
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
	assert.Equal(t, 10, e.stockOf(t, a))
}

func TestSaleService_SuppliedDateAndCustomer(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 10, 5, 10, 2)
	bogota := time.FixedZone("COT", -5*3600)
	when := time.Date(2024, 6, 30, 21, 0, 0, 0, bogota)

	sale, err := e.saleSvc.Create(context.Background(), &CreateSaleRequest{
		Branch:        model.BranchBogotaCentro,
		Items:         []SaleItemRequest{item(a, 1)},
		PaymentMethod: model.PaymentTransfer,
		Customer:      &model.Customer{Name: "Ana", Email: "ana@example.com"},
		Notes:         "gift wrap",
		SaleDate:      &when,
	}, "seller")
	require.NoError(t, err)

	stored, err := e.saleSvc.Get(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.True(t, stored.SaleDate.Equal(when))
	assert.Equal(t, 7, int(stored.SaleDate.UTC().Month()), "stored in UTC")
	assert.Equal(t, "Ana", stored.Customer.Name)
	assert.Equal(t, model.PaymentTransfer, stored.PaymentMethod)
	assert.Equal(t, "gift wrap", stored.Notes)
}

func TestSaleService_Events(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 10, 5, 6, 5)
	e.events.events = nil

	e.sell(t, model.BranchCaliSur, item(a, 2))

	assert.Equal(t, []string{ws.EventSaleCreated, ws.EventStockUpdate, ws.EventLowStock}, e.events.types())
	ev := e.events.events[1].Data.(stockEvent)
	assert.Equal(t, 6, ev.OldStock)
	assert.Equal(t, 4, ev.NewStock)
}

func TestSaleService_ListFilters(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 10, 5, 10, 2)
	e.sell(t, model.BranchCaliSur, item(a, 1))
	e.sell(t, model.BranchCartagena, item(a, 1))

	sales, err := e.saleSvc.List(context.Background(), repository.SaleFilter{Branch: model.BranchCartagena})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "VT-0002", sales[0].SaleNumber)

	_, err = e.saleSvc.Get(context.Background(), uuid.New())
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestSaleService_SyncSequence(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.product(t, "A", 10, 5, 10, 2)

	// a sale imported with a number the counter never issued
	imported := &model.Sale{
		SaleNumber:    "VT-0041",
		Branch:        model.BranchCaliSur,
		PaymentMethod: model.PaymentCash,
		Status:        model.StatusCompleted,
		SaleDate:      time.Now(),
		Items:         []model.SaleItem{model.NewSaleItem(a, 1, 0)},
	}
	require.NoError(t, e.sales.Create(e.db, imported))

	require.NoError(t, e.saleSvc.SyncSequence(ctx))
	sale := e.sell(t, model.BranchCaliSur, item(a, 1))
	assert.Equal(t, "VT-0042", sale.SaleNumber)

	require.NoError(t, e.saleSvc.SyncSequence(ctx))
	sale = e.sell(t, model.BranchCaliSur, item(a, 1))
	assert.Equal(t, "VT-0043", sale.SaleNumber)
}
