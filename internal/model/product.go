package model

import "strings"

const (
	DefaultMinStock = 10
	DefaultColor    = "Variado"
	DefaultBrand    = "Retail Brand"
)

type Product struct {
	BaseModel
	SKU      string   `gorm:"type:varchar(64);uniqueIndex;not null" json:"sku" validate:"required"`
	Name     string   `gorm:"type:varchar(200);not null" json:"name" validate:"required,max=200"`
	Category Category `gorm:"type:varchar(32);not null;index:idx_products_category_gender" json:"category" validate:"enum"`
	Gender   Gender   `gorm:"type:varchar(16);not null;index:idx_products_category_gender" json:"gender" validate:"enum"`
	Size     Size     `gorm:"type:varchar(8);not null" json:"size" validate:"enum"`
	Season   Season   `gorm:"type:varchar(16);not null" json:"season" validate:"enum"`
	Color    string   `gorm:"type:varchar(64)" json:"color"`
	Brand    string   `gorm:"type:varchar(128)" json:"brand"`
	Price    int64    `gorm:"not null" json:"price" validate:"gte=0"`
	Cost     int64    `gorm:"not null" json:"cost" validate:"gte=0"`
	Stock    int      `gorm:"not null;index" json:"stock" validate:"gte=0"`
	MinStock int      `gorm:"not null" json:"minStock" validate:"gte=0"`
	Active   bool     `gorm:"not null;index" json:"active"`
}

// ApplyDefaults fills the optional catalog fields left blank by the caller.
func (p *Product) ApplyDefaults() {
	p.SKU = strings.TrimSpace(p.SKU)
	p.Name = strings.TrimSpace(p.Name)
	if p.Color == "" {
		p.Color = DefaultColor
	}
	if p.Brand == "" {
		p.Brand = DefaultBrand
	}
	if p.Season == "" {
		p.Season = SeasonAllYear
	}
}

// IsLowStock reports whether an active product sits at or below its minimum.
func (p *Product) IsLowStock() bool {
	return p.Active && p.Stock <= p.MinStock
}
