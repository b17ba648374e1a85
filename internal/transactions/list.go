package transactions

import (
	"context"

	"networth-backend/internal/domain"

	"github.com/google/uuid"
)

// AssetInfo is the best-effort owner summary attached to each listed
// transaction. Nil when the referenced asset no longer exists.
type AssetInfo struct {
	Name   string `json:"name"`
	Bank   string `json:"bank,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

type FormattedTx struct {
	domain.Transaction
	AssetInfo *AssetInfo `json:"assetInfo"`
}

// List returns transactions newest first, optionally filtered by asset
// category and/or asset id, each enriched with owner info when the asset
// still exists.
func (s *Service) List(ctx context.Context, assetType string, assetID *uuid.UUID) ([]FormattedTx, string, int) {
	q := s.DB.WithContext(ctx).Model(&domain.Transaction{})
	if assetType != "" {
		q = q.Where("asset_type = ?", assetType)
	}
	if assetID != nil {
		q = q.Where("asset_id = ?", *assetID)
	}

	var txs []domain.Transaction
	if err := q.Order("date DESC").Find(&txs).Error; err != nil {
		return nil, "Failed to fetch transactions", 500
	}
	if len(txs) == 0 {
		return []FormattedTx{}, "", 0
	}

	// Collect referenced ids per category and batch-load owner info.
	idsByType := map[string][]uuid.UUID{}
	seen := map[uuid.UUID]bool{}
	for _, tx := range txs {
		if !seen[tx.AssetID] {
			seen[tx.AssetID] = true
			idsByType[tx.AssetType] = append(idsByType[tx.AssetType], tx.AssetID)
		}
	}

	info := map[uuid.UUID]*AssetInfo{}
	if ids := idsByType[domain.AssetAccount]; len(ids) > 0 {
		var accounts []domain.Account
		s.DB.WithContext(ctx).Where("id IN ?", ids).Select("id, name, bank").Find(&accounts)
		for _, a := range accounts {
			info[a.ID] = &AssetInfo{Name: a.Name, Bank: a.Bank}
		}
	}
	if ids := idsByType[domain.AssetInvestment]; len(ids) > 0 {
		var investments []domain.Investment
		s.DB.WithContext(ctx).Where("id IN ?", ids).Select("id, name, symbol").Find(&investments)
		for _, i := range investments {
			info[i.ID] = &AssetInfo{Name: i.Name, Symbol: i.Symbol}
		}
	}
	if ids := idsByType[domain.AssetCrypto]; len(ids) > 0 {
		var cryptos []domain.Crypto
		s.DB.WithContext(ctx).Where("id IN ?", ids).Select("id, name, symbol").Find(&cryptos)
		for _, c := range cryptos {
			info[c.ID] = &AssetInfo{Name: c.Name, Symbol: c.Symbol}
		}
	}
	if ids := idsByType[domain.AssetCash]; len(ids) > 0 {
		var cash []domain.Cash
		s.DB.WithContext(ctx).Where("id IN ?", ids).Select("id, name").Find(&cash)
		for _, c := range cash {
			info[c.ID] = &AssetInfo{Name: c.Name}
		}
	}

	out := make([]FormattedTx, len(txs))
	for i, tx := range txs {
		out[i] = FormattedTx{Transaction: tx, AssetInfo: info[tx.AssetID]}
	}
	return out, "", 0
}
