package model

// Sequence is a named monotonic counter.
type Sequence struct {
	Name  string `gorm:"type:varchar(64);primaryKey" json:"name"`
	Value int64  `gorm:"not null" json:"value"`
}

const SaleSequence = "sale"
