package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Crypto is a cryptocurrency holding. Symbol is the CoinGecko id (e.g. "bitcoin").
// Same CurrentPrice/TotalValue pairing rule as Investment.
type Crypto struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Symbol        string    `gorm:"column:symbol;not null" json:"symbol"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	Amount        float64   `gorm:"column:amount;type:decimal(24,8);not null;default:0" json:"amount"`
	PurchasePrice float64   `gorm:"column:purchase_price;type:decimal(18,6);not null;default:0" json:"purchasePrice"`
	CurrentPrice  *float64  `gorm:"column:current_price;type:decimal(18,6)" json:"currentPrice"`
	TotalValue    *float64  `gorm:"column:total_value;type:decimal(18,2)" json:"totalValue"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Crypto) TableName() string {
	return "crypto"
}

func (c *Crypto) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Crypto) MarketValue() float64 {
	if c.TotalValue != nil {
		return *c.TotalValue
	}
	return c.Amount * c.PurchasePrice
}
