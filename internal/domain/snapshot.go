package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PortfolioSnapshot is an immutable point-in-time record of portfolio totals.
// Rows are append-only; nothing in the service updates or deletes them except
// the retention prune job.
type PortfolioSnapshot struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TotalValue       float64   `gorm:"column:total_value;type:decimal(18,2);not null" json:"totalValue"`
	AccountsValue    float64   `gorm:"column:accounts_value;type:decimal(18,2);not null" json:"accountsValue"`
	InvestmentsValue float64   `gorm:"column:investments_value;type:decimal(18,2);not null" json:"investmentsValue"`
	CryptoValue      float64   `gorm:"column:crypto_value;type:decimal(18,2);not null" json:"cryptoValue"`
	CashValue        float64   `gorm:"column:cash_value;type:decimal(18,2);not null" json:"cashValue"`
	Date             time.Time `gorm:"column:date;not null" json:"date"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (PortfolioSnapshot) TableName() string {
	return "portfolio_snapshots"
}

func (s *PortfolioSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Date.IsZero() {
		s.Date = time.Now()
	}
	return nil
}
