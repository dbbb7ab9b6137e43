package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is optional contact data captured at the register.
type Customer struct {
	Name  string `gorm:"type:varchar(200)" json:"name,omitempty"`
	Email string `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone string `gorm:"type:varchar(32)" json:"phone,omitempty"`
}

// Sale is an immutable receipt. Totals are computed once at commit time.
type Sale struct {
	BaseModel
	SaleNumber    string        `gorm:"type:varchar(32);uniqueIndex;not null" json:"saleNumber"`
	Branch        Branch        `gorm:"type:varchar(32);not null;index:idx_sales_branch_date" json:"branch"`
	Items         []SaleItem    `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount   int64         `gorm:"not null" json:"totalAmount"`
	TotalCost     int64         `gorm:"not null" json:"totalCost"`
	TotalProfit   int64         `gorm:"not null" json:"totalProfit"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(16);not null" json:"paymentMethod"`
	Status        SaleStatus    `gorm:"type:varchar(16);not null;index" json:"status"`
	SaleDate      time.Time     `gorm:"not null;index;index:idx_sales_branch_date" json:"saleDate"`
	Customer      Customer      `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	Notes         string        `gorm:"type:text" json:"notes,omitempty"`
}

// BeforeSave keeps sale dates in UTC so day and month buckets are stable.
func (s *Sale) BeforeSave(tx *gorm.DB) error {
	s.SaleDate = s.SaleDate.UTC()
	return nil
}

// SaleItem is a line item frozen at sale time. Position preserves the
// order in which lines were submitted.
type SaleItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position  int       `gorm:"not null" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product"`
	SKU       string    `gorm:"type:varchar(64);not null;index" json:"sku"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Category  Category  `gorm:"type:varchar(32);not null;index" json:"category"`
	Gender    Gender    `gorm:"type:varchar(16);not null" json:"gender"`
	Size      Size      `gorm:"type:varchar(8);not null" json:"size"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"unitPrice"`
	UnitCost  int64     `gorm:"not null" json:"unitCost"`
	Subtotal  int64     `gorm:"not null" json:"subtotal"`
	Profit    int64     `gorm:"not null" json:"profit"`
}

// NewSaleItem snapshots the sellable fields of p for qty units.
func NewSaleItem(p *Product, qty, position int) SaleItem {
	subtotal := p.Price * int64(qty)
	cost := p.Cost * int64(qty)
	return SaleItem{
		Position:  position,
		ProductID: p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Category:  p.Category,
		Gender:    p.Gender,
		Size:      p.Size,
		Quantity:  qty,
		UnitPrice: p.Price,
		UnitCost:  p.Cost,
		Subtotal:  subtotal,
		Profit:    subtotal - cost,
	}
}

// LineCost is the cost of goods for this line.
func (i SaleItem) LineCost() int64 {
	return i.UnitCost * int64(i.Quantity)
}
