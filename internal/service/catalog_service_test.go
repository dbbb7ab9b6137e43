package service

import (
	"context"
	"errors"
	"testing"

	"go-retail-analytics/internal/model"
	"go-retail-analytics/internal/repository"
	"go-retail-analytics/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CreateAppliesDefaults(t *testing.T) {
	e := newEnv(t)

	p, err := e.catalog.Create(context.Background(), &CreateProductRequest{
		SKU:      " BUZ-01 ",
		Name:     "Buzo capota",
		Category: model.CategoryBuzo,
		Gender:   model.GenderNino,
		Size:     "8",
		Price:    int64Ptr(80000),
		Cost:     int64Ptr(35000),
	}, "admin-id")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "BUZ-01", p.SKU)
	assert.Equal(t, model.DefaultMinStock, p.MinStock)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, model.DefaultColor, p.Color)
	assert.Equal(t, model.DefaultBrand, p.Brand)
	assert.Equal(t, model.SeasonAllYear, p.Season)
	assert.True(t, p.Active)
	assert.Equal(t, "admin-id", p.CreatedBy)
	assert.Equal(t, []string{ws.EventProductCreated}, e.events.types())
}

func TestCatalogService_CreateValidation(t *testing.T) {
	e := newEnv(t)
	e.product(t, "TAKEN", 10, 5, 1, 1)

	base := func() *CreateProductRequest {
		return &CreateProductRequest{
			SKU: "NEW", Name: "New", Category: model.CategoryHogar, Gender: model.GenderUnisex, Size: "L",
			Price: int64Ptr(10), Cost: int64Ptr(5),
		}
	}

	tests := []struct {
		name   string
		mutate func(r *CreateProductRequest)
	}{
		{"missing name", func(r *CreateProductRequest) { r.Name = "  " }},
		{"missing sku", func(r *CreateProductRequest) { r.SKU = "" }},
		{"unknown category", func(r *CreateProductRequest) { r.Category = "ZAPATOS" }},
		{"unknown size", func(r *CreateProductRequest) { r.Size = "XXL" }},
		{"unknown season", func(r *CreateProductRequest) { r.Season = "Monzón" }},
		{"missing price", func(r *CreateProductRequest) { r.Price = nil }},
		{"negative cost", func(r *CreateProductRequest) { r.Cost = int64Ptr(-1) }},
		{"negative stock", func(r *CreateProductRequest) { r.Stock = intPtr(-3) }},
		{"duplicate sku", func(r *CreateProductRequest) { r.SKU = "TAKEN" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(req)
			_, err := e.catalog.Create(context.Background(), req, "admin")
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}

	_, err := e.catalog.Create(context.Background(), func() *CreateProductRequest {
		r := base()
		r.SKU = "TAKEN"
		return r
	}(), "admin")
	assert.True(t, errors.Is(err, ErrSKUTaken))
}

func TestCatalogService_UpdatePartial(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "UPD", 100, 50, 20, 5)
	e.events.events = nil

	newName := "Renamed"
	updated, err := e.catalog.Update(context.Background(), p.ID, &UpdateProductRequest{
		Name:  &newName,
		Stock: intPtr(3),
	}, "manager-id")
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 3, updated.Stock)
	assert.Equal(t, int64(100), updated.Price, "untouched fields keep their value")
	assert.Equal(t, "manager-id", updated.UpdatedBy)
	assert.Equal(t, []string{ws.EventProductUpdated, ws.EventStockUpdate, ws.EventLowStock}, e.events.types())

	same := "UPD"
	_, err = e.catalog.Update(context.Background(), p.ID, &UpdateProductRequest{SKU: &same}, "manager-id")
	assert.NoError(t, err, "resubmitting the same sku is allowed")
}

func TestCatalogService_UpdateRejects(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "ORIG", 100, 50, 20, 5)

	other := "OTHER"
	_, err := e.catalog.Update(context.Background(), p.ID, &UpdateProductRequest{SKU: &other}, "m")
	assert.ErrorIs(t, err, ErrSKUImmutable)

	bad := model.Gender("Otro")
	_, err = e.catalog.Update(context.Background(), p.ID, &UpdateProductRequest{Gender: &bad}, "m")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = e.catalog.Update(context.Background(), p.ID, &UpdateProductRequest{Price: int64Ptr(-5)}, "m")
	assert.ErrorAs(t, err, &ve)

	_, err = e.catalog.Update(context.Background(), uuid.New(), &UpdateProductRequest{}, "m")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)

	got, err := e.catalog.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Price)
	assert.Equal(t, model.GenderUnisex, got.Gender)
}

func TestCatalogService_Deactivate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.product(t, "SOFT", 100, 50, 2, 5)
	e.sell(t, model.BranchCaliSur, item(p, 1))

	low, err := e.catalog.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)

	got, err := e.catalog.Deactivate(ctx, p.ID, "admin")
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, 1, got.Stock)
	assert.Equal(t, p.Name, got.Name)

	low, err = e.catalog.LowStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, low)

	sales, err := e.saleSvc.List(ctx, repository.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, p.ID, sales[0].Items[0].ProductID)

	_, err = e.catalog.Deactivate(ctx, uuid.New(), "admin")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestCatalogService_ListAndGet(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.product(t, "L1", 300, 1, 1, 1)
	e.product(t, "L2", 100, 1, 1, 1, func(r *CreateProductRequest) { r.Active = boolPtr(false) })

	all, err := e.catalog.List(ctx, repository.ProductFilter{SortBy: "price-asc"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "L2", all[0].SKU)

	active, err := e.catalog.List(ctx, repository.ProductFilter{Active: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "L1", active[0].SKU)

	_, err = e.catalog.Get(ctx, uuid.New())
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}
