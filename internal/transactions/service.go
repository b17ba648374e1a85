package transactions

import (
	"context"
	"time"

	"networth-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// CreateInput is the transaction payload. Price and Quantity are required for
// buys to take effect; Date defaults to now.
type CreateInput struct {
	Type        string     `json:"type"`
	AssetType   string     `json:"assetType"`
	AssetID     uuid.UUID  `json:"assetId"`
	Amount      float64    `json:"amount"`
	Price       *float64   `json:"price"`
	Quantity    *float64   `json:"quantity"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
}

// legalTypes maps each asset category to the transaction types that affect it.
var legalTypes = map[string]map[string]bool{
	domain.AssetAccount:    {domain.TxDeposit: true, domain.TxWithdrawal: true},
	domain.AssetCash:       {domain.TxDeposit: true, domain.TxWithdrawal: true},
	domain.AssetInvestment: {domain.TxBuy: true, domain.TxSell: true, domain.TxDividend: true},
	domain.AssetCrypto:     {domain.TxBuy: true, domain.TxSell: true},
}

// Create validates the input, rejects oversells up front, then appends the
// transaction row and applies the position effect. The row is the source of
// truth: if the position update fails after the row is written, the row stays
// and the position is a stale best-effort cache.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Transaction, string, int) {
	if errMsg := s.validate(ctx, in); errMsg != "" {
		return nil, errMsg, 400
	}

	tx := domain.Transaction{
		Type:        in.Type,
		AssetType:   in.AssetType,
		AssetID:     in.AssetID,
		Amount:      in.Amount,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Description: in.Description,
	}
	if in.Date != nil {
		tx.Date = *in.Date
	}

	if err := s.DB.WithContext(ctx).Create(&tx).Error; err != nil {
		log.Error().Err(err).Msg("Failed to create transaction")
		return nil, "Failed to create transaction", 500
	}

	s.applyToPosition(ctx, in)

	return &tx, "", 0
}

func (s *Service) validate(ctx context.Context, in CreateInput) string {
	types, ok := legalTypes[in.AssetType]
	if !ok {
		return "Invalid asset type"
	}
	if in.Type == "" {
		return "Transaction type is required"
	}
	if !types[in.Type] && !isKnownType(in.Type) {
		return "Invalid transaction type"
	}
	if in.AssetID == uuid.Nil {
		return "Asset id is required"
	}
	if in.Amount < 0 {
		return "Amount must not be negative"
	}
	if (in.Type == domain.TxDeposit || in.Type == domain.TxWithdrawal || in.Type == domain.TxDividend) && in.Amount == 0 {
		return "Amount is required"
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return "Quantity must not be negative"
	}
	if in.Price != nil && *in.Price < 0 {
		return "Price must not be negative"
	}

	// Selling more than is held would drive the position negative; reject
	// before anything is written.
	if in.Type == domain.TxSell && in.Quantity != nil {
		switch in.AssetType {
		case domain.AssetInvestment:
			var inv domain.Investment
			if err := s.DB.WithContext(ctx).First(&inv, "id = ?", in.AssetID).Error; err == nil && *in.Quantity > inv.Shares {
				return "Sell quantity exceeds held shares"
			}
		case domain.AssetCrypto:
			var c domain.Crypto
			if err := s.DB.WithContext(ctx).First(&c, "id = ?", in.AssetID).Error; err == nil && *in.Quantity > c.Amount {
				return "Sell quantity exceeds held amount"
			}
		}
	}
	return ""
}

func isKnownType(t string) bool {
	switch t {
	case domain.TxDeposit, domain.TxWithdrawal, domain.TxBuy, domain.TxSell, domain.TxDividend:
		return true
	}
	return false
}

// applyToPosition mutates the owning position for legal (category, type)
// pairs. An illegal pair, a missing asset, or a buy without price/quantity
// leaves the position untouched; the transaction row has already been kept.
func (s *Service) applyToPosition(ctx context.Context, in CreateInput) {
	db := s.DB.WithContext(ctx)

	switch in.AssetType {
	case domain.AssetAccount:
		switch in.Type {
		case domain.TxDeposit:
			s.increment(db, &domain.Account{}, in.AssetID, "balance", in.Amount)
		case domain.TxWithdrawal:
			s.increment(db, &domain.Account{}, in.AssetID, "balance", -in.Amount)
		}

	case domain.AssetCash:
		switch in.Type {
		case domain.TxDeposit:
			s.increment(db, &domain.Cash{}, in.AssetID, "amount", in.Amount)
		case domain.TxWithdrawal:
			s.increment(db, &domain.Cash{}, in.AssetID, "amount", -in.Amount)
		}

	case domain.AssetInvestment:
		switch in.Type {
		case domain.TxBuy:
			s.applyInvestmentBuy(db, in)
		case domain.TxSell:
			if in.Quantity != nil {
				s.increment(db, &domain.Investment{}, in.AssetID, "shares", -*in.Quantity)
			}
		case domain.TxDividend:
			s.increment(db, &domain.Investment{}, in.AssetID, "dividends", in.Amount)
		}

	case domain.AssetCrypto:
		switch in.Type {
		case domain.TxBuy:
			s.applyCryptoBuy(db, in)
		case domain.TxSell:
			if in.Quantity != nil {
				s.increment(db, &domain.Crypto{}, in.AssetID, "amount", -*in.Quantity)
			}
		}
	}
}

func (s *Service) increment(db *gorm.DB, model interface{}, id uuid.UUID, column string, delta float64) {
	res := db.Model(model).Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		log.Error().Err(res.Error).Str("asset_id", id.String()).Msg("Failed to update position")
	} else if res.RowsAffected == 0 {
		log.Warn().Str("asset_id", id.String()).Msg("Transaction references unknown asset; position skipped")
	}
}

// applyInvestmentBuy merges a buy lot into the position with a weighted-average
// cost recompute. A buy missing price or quantity is a logged inconsistency,
// not a failure.
func (s *Service) applyInvestmentBuy(db *gorm.DB, in CreateInput) {
	if in.Price == nil || in.Quantity == nil {
		log.Warn().Str("asset_id", in.AssetID.String()).Msg("Buy without price/quantity; position unchanged")
		return
	}

	var inv domain.Investment
	if err := db.First(&inv, "id = ?", in.AssetID).Error; err != nil {
		log.Warn().Err(err).Str("asset_id", in.AssetID.String()).Msg("Buy references unknown investment; position skipped")
		return
	}

	totalShares := inv.Shares + *in.Quantity
	if totalShares == 0 {
		log.Warn().Str("asset_id", in.AssetID.String()).Msg("Buy leaves zero total shares; average price unchanged")
		return
	}
	totalCost := inv.Shares*inv.PurchasePrice + *in.Quantity**in.Price

	updates := map[string]interface{}{
		"shares":         totalShares,
		"purchase_price": totalCost / totalShares,
	}
	if err := db.Model(&domain.Investment{}).Where("id = ?", in.AssetID).Updates(updates).Error; err != nil {
		log.Error().Err(err).Str("asset_id", in.AssetID.String()).Msg("Failed to apply investment buy")
	}
}

func (s *Service) applyCryptoBuy(db *gorm.DB, in CreateInput) {
	if in.Price == nil || in.Quantity == nil {
		log.Warn().Str("asset_id", in.AssetID.String()).Msg("Buy without price/quantity; position unchanged")
		return
	}

	var c domain.Crypto
	if err := db.First(&c, "id = ?", in.AssetID).Error; err != nil {
		log.Warn().Err(err).Str("asset_id", in.AssetID.String()).Msg("Buy references unknown crypto; position skipped")
		return
	}

	totalAmount := c.Amount + *in.Quantity
	if totalAmount == 0 {
		log.Warn().Str("asset_id", in.AssetID.String()).Msg("Buy leaves zero total amount; average price unchanged")
		return
	}
	totalCost := c.Amount*c.PurchasePrice + *in.Quantity**in.Price

	updates := map[string]interface{}{
		"amount":         totalAmount,
		"purchase_price": totalCost / totalAmount,
	}
	if err := db.Model(&domain.Crypto{}).Where("id = ?", in.AssetID).Updates(updates).Error; err != nil {
		log.Error().Err(err).Str("asset_id", in.AssetID.String()).Msg("Failed to apply crypto buy")
	}
}
