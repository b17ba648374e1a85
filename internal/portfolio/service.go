package portfolio

import (
	"context"
	"sync"

	"networth-backend/internal/domain"
	"networth-backend/internal/quotes"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	DB     *gorm.DB
	Stocks quotes.Quoter
	Crypto quotes.Quoter
}

// Totals is the aggregate breakdown across the four categories.
type Totals struct {
	Total       float64 `json:"total"`
	Accounts    float64 `json:"accounts"`
	Investments float64 `json:"investments"`
	Crypto      float64 `json:"crypto"`
	Cash        float64 `json:"cash"`
}

// Overview is the full portfolio payload: totals plus raw rows.
type Overview struct {
	Total       float64             `json:"total"`
	Breakdown   Breakdown           `json:"breakdown"`
	Accounts    []domain.Account    `json:"accounts"`
	Investments []domain.Investment `json:"investments"`
	Crypto      []domain.Crypto     `json:"crypto"`
	Cash        []domain.Cash       `json:"cash"`
}

type Breakdown struct {
	Accounts    float64 `json:"accounts"`
	Investments float64 `json:"investments"`
	Crypto      float64 `json:"crypto"`
	Cash        float64 `json:"cash"`
}

// RefreshCounts reports how many positions per category got a fresh price.
type RefreshCounts struct {
	Investments int `json:"investments"`
	Crypto      int `json:"crypto"`
}

// GetOverview optionally refreshes prices, aggregates the four categories and
// appends a history snapshot. Quote failures never fail the read path.
func (s *Service) GetOverview(ctx context.Context, refresh bool) (*Overview, string, int) {
	if refresh {
		s.RefreshPrices(ctx)
	}

	var (
		accounts    []domain.Account
		investments []domain.Investment
		cryptos     []domain.Crypto
		cash        []domain.Cash
	)
	db := s.DB.WithContext(ctx)
	if err := db.Find(&accounts).Error; err != nil {
		return nil, "Failed to fetch portfolio", 500
	}
	if err := db.Find(&investments).Error; err != nil {
		return nil, "Failed to fetch portfolio", 500
	}
	if err := db.Find(&cryptos).Error; err != nil {
		return nil, "Failed to fetch portfolio", 500
	}
	if err := db.Find(&cash).Error; err != nil {
		return nil, "Failed to fetch portfolio", 500
	}

	totals := computeTotals(accounts, investments, cryptos, cash)

	if _, err := s.RecordSnapshot(ctx, totals); err != nil {
		// History may lag positions by one cycle; not corrected automatically.
		log.Error().Err(err).Msg("Failed to record portfolio snapshot")
	}

	return &Overview{
		Total: totals.Total,
		Breakdown: Breakdown{
			Accounts:    totals.Accounts,
			Investments: totals.Investments,
			Crypto:      totals.Crypto,
			Cash:        totals.Cash,
		},
		Accounts:    accounts,
		Investments: investments,
		Crypto:      cryptos,
		Cash:        cash,
	}, "", 0
}

// ComputeTotals aggregates current store state without calling any provider.
// Positions that never got a quote contribute quantity times average cost.
func (s *Service) ComputeTotals(ctx context.Context) (Totals, error) {
	var (
		accounts    []domain.Account
		investments []domain.Investment
		cryptos     []domain.Crypto
		cash        []domain.Cash
	)
	db := s.DB.WithContext(ctx)
	if err := db.Find(&accounts).Error; err != nil {
		return Totals{}, err
	}
	if err := db.Find(&investments).Error; err != nil {
		return Totals{}, err
	}
	if err := db.Find(&cryptos).Error; err != nil {
		return Totals{}, err
	}
	if err := db.Find(&cash).Error; err != nil {
		return Totals{}, err
	}
	return computeTotals(accounts, investments, cryptos, cash), nil
}

func computeTotals(accounts []domain.Account, investments []domain.Investment, cryptos []domain.Crypto, cash []domain.Cash) Totals {
	var t Totals
	for _, a := range accounts {
		t.Accounts += a.Balance
	}
	for _, i := range investments {
		t.Investments += i.MarketValue()
	}
	for _, c := range cryptos {
		t.Crypto += c.MarketValue()
	}
	for _, c := range cash {
		t.Cash += c.Amount
	}
	t.Total = t.Accounts + t.Investments + t.Crypto + t.Cash
	return t
}

// RefreshPrices fans out one quote per investment and crypto position. Each
// symbol succeeds or fails independently; an unavailable quote leaves that
// row's current_price/total_value pair untouched.
func (s *Service) RefreshPrices(ctx context.Context) RefreshCounts {
	var (
		investments []domain.Investment
		cryptos     []domain.Crypto
	)
	db := s.DB.WithContext(ctx)
	if err := db.Find(&investments).Error; err != nil {
		log.Error().Err(err).Msg("Failed to load investments for refresh")
	}
	if err := db.Find(&cryptos).Error; err != nil {
		log.Error().Err(err).Msg("Failed to load crypto for refresh")
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		counts RefreshCounts
	)

	for _, inv := range investments {
		wg.Add(1)
		go func(inv domain.Investment) {
			defer wg.Done()
			price, err := s.Stocks.Quote(ctx, inv.Symbol)
			if err != nil {
				return
			}
			if s.storePrice(ctx, &domain.Investment{}, inv.ID, price, inv.Shares) {
				mu.Lock()
				counts.Investments++
				mu.Unlock()
			}
		}(inv)
	}

	for _, c := range cryptos {
		wg.Add(1)
		go func(c domain.Crypto) {
			defer wg.Done()
			price, err := s.Crypto.Quote(ctx, c.Symbol)
			if err != nil {
				return
			}
			if s.storePrice(ctx, &domain.Crypto{}, c.ID, price, c.Amount) {
				mu.Lock()
				counts.Crypto++
				mu.Unlock()
			}
		}(c)
	}

	wg.Wait()
	return counts
}

// storePrice writes the current_price/total_value pair together so the two
// fields are never partially stale.
func (s *Service) storePrice(ctx context.Context, model interface{}, id uuid.UUID, price, quantity float64) bool {
	err := s.DB.WithContext(ctx).Model(model).Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_price": price,
			"total_value":   price * quantity,
		}).Error
	if err != nil {
		log.Error().Err(err).Str("asset_id", id.String()).Msg("Failed to store refreshed price")
		return false
	}
	return true
}

// RecordSnapshot appends one immutable history row.
func (s *Service) RecordSnapshot(ctx context.Context, totals Totals) (uuid.UUID, error) {
	snap := domain.PortfolioSnapshot{
		TotalValue:       totals.Total,
		AccountsValue:    totals.Accounts,
		InvestmentsValue: totals.Investments,
		CryptoValue:      totals.Crypto,
		CashValue:        totals.Cash,
	}
	if err := s.DB.WithContext(ctx).Create(&snap).Error; err != nil {
		return uuid.Nil, err
	}
	return snap.ID, nil
}

// History returns the most recent 30 snapshots in chronological order.
func (s *Service) History(ctx context.Context) ([]domain.PortfolioSnapshot, string, int) {
	var snaps []domain.PortfolioSnapshot
	if err := s.DB.WithContext(ctx).Order("date DESC").Limit(30).Find(&snaps).Error; err != nil {
		return nil, "Failed to fetch portfolio history", 500
	}
	for i, j := 0, len(snaps)-1; i < j; i, j = i+1, j-1 {
		snaps[i], snaps[j] = snaps[j], snaps[i]
	}
	return snaps, "", 0
}

// PruneHistory deletes all but the newest keep snapshots. keep <= 0 is a no-op
// (unbounded history).
func (s *Service) PruneHistory(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	newest := s.DB.Model(&domain.PortfolioSnapshot{}).
		Select("id").Order("date DESC").Limit(keep)
	res := s.DB.WithContext(ctx).
		Where("id NOT IN (?)", newest).
		Delete(&domain.PortfolioSnapshot{})
	return res.RowsAffected, res.Error
}

// UpdateAllPrices refreshes every investment and crypto position, records one
// snapshot of the refreshed totals, and reports what changed.
func (s *Service) UpdateAllPrices(ctx context.Context) (RefreshCounts, Totals, string, int) {
	counts := s.RefreshPrices(ctx)

	totals, err := s.ComputeTotals(ctx)
	if err != nil {
		return counts, Totals{}, "Failed to compute totals", 500
	}
	if _, err := s.RecordSnapshot(ctx, totals); err != nil {
		log.Error().Err(err).Msg("Failed to record portfolio snapshot")
	}
	return counts, totals, "", 0
}
