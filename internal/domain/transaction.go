package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction types. Legality of each type depends on the owning asset category
// (see transactions service).
const (
	TxDeposit    = "deposit"
	TxWithdrawal = "withdrawal"
	TxBuy        = "buy"
	TxSell       = "sell"
	TxDividend   = "dividend"
)

// Asset categories referenced by transactions.
const (
	AssetAccount    = "account"
	AssetInvestment = "investment"
	AssetCrypto     = "crypto"
	AssetCash       = "cash"
)

// Transaction is the append-only ledger entry. AssetID is a soft reference:
// deleting a position never deletes its transactions, so dangling references
// are possible and readers must tolerate them.
type Transaction struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Type        string    `gorm:"column:type;type:varchar(20);not null" json:"type"`
	AssetType   string    `gorm:"column:asset_type;type:varchar(20);not null" json:"assetType"`
	AssetID     uuid.UUID `gorm:"column:asset_id;type:uuid;not null" json:"assetId"`
	Amount      float64   `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Price       *float64  `gorm:"column:price;type:decimal(18,6)" json:"price"`
	Quantity    *float64  `gorm:"column:quantity;type:decimal(24,8)" json:"quantity"`
	Description *string   `gorm:"column:description" json:"description"`
	Date        time.Time `gorm:"column:date;not null" json:"date"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	return nil
}
