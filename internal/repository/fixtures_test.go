package repository

import (
	"context"
	"testing"
	"time"

	"go-retail-analytics/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProduct(t *testing.T, db *gorm.DB, sku string, mutate func(p *model.Product)) *model.Product {
	t.Helper()
	p := &model.Product{
		SKU:      sku,
		Name:     "Product " + sku,
		Category: model.CategoryPolos,
		Gender:   model.GenderUnisex,
		Size:     "M",
		Season:   model.SeasonAllYear,
		Price:    100,
		Cost:     50,
		Stock:    10,
		MinStock: 2,
		Active:   true,
	}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, NewProductRepo(db).Create(context.Background(), p))
	return p
}

type line struct {
	product *model.Product
	qty     int
}

func seedSale(t *testing.T, db *gorm.DB, number string, branch model.Branch, date time.Time, status model.SaleStatus, lines ...line) *model.Sale {
	t.Helper()
	sale := &model.Sale{
		SaleNumber:    number,
		Branch:        branch,
		PaymentMethod: model.PaymentCard,
		Status:        status,
		SaleDate:      date,
	}
	for i, l := range lines {
		item := model.NewSaleItem(l.product, l.qty, i)
		sale.Items = append(sale.Items, item)
		sale.TotalAmount += item.Subtotal
		sale.TotalCost += item.LineCost()
	}
	sale.TotalProfit = sale.TotalAmount - sale.TotalCost
	require.NoError(t, NewSaleRepo(db).Create(db, sale))
	return sale
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}
