package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cash is physical cash held outside any account.
type Cash struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Amount    float64   `gorm:"column:amount;type:decimal(18,2);not null;default:0" json:"amount"`
	Currency  string    `gorm:"column:currency;not null;default:USD" json:"currency"`
	Location  *string   `gorm:"column:location" json:"location"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Cash) TableName() string {
	return "cash"
}

func (c *Cash) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
