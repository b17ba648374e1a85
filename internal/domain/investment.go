package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Investment is an equity-like position, one row per symbol held.
// PurchasePrice is the weighted-average acquisition cost, recomputed on each buy.
// CurrentPrice/TotalValue are either both set (TotalValue = CurrentPrice × Shares)
// or both nil; a failed refresh for one symbol leaves its pair untouched.
type Investment struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Symbol        string    `gorm:"column:symbol;not null" json:"symbol"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	Shares        float64   `gorm:"column:shares;type:decimal(18,6);not null;default:0" json:"shares"`
	PurchasePrice float64   `gorm:"column:purchase_price;type:decimal(18,6);not null;default:0" json:"purchasePrice"`
	CurrentPrice  *float64  `gorm:"column:current_price;type:decimal(18,6)" json:"currentPrice"`
	TotalValue    *float64  `gorm:"column:total_value;type:decimal(18,2)" json:"totalValue"`
	Dividends     float64   `gorm:"column:dividends;type:decimal(18,2);not null;default:0" json:"dividends"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Investment) TableName() string {
	return "investments"
}

func (i *Investment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// MarketValue is the display value: mark-to-market when a price has been
// recorded, otherwise cost basis.
func (i *Investment) MarketValue() float64 {
	if i.TotalValue != nil {
		return *i.TotalValue
	}
	return i.Shares * i.PurchasePrice
}
