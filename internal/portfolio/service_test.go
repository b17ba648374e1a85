package portfolio

import (
	"context"
	"testing"
	"time"

	"networth-backend/internal/database"
	"networth-backend/internal/domain"
	"networth-backend/internal/quotes"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeQuoter returns a fixed price per symbol; symbols not in the map are
// unavailable.
type fakeQuoter struct {
	prices map[string]float64
}

func (f *fakeQuoter) Quote(ctx context.Context, symbol string) (float64, error) {
	if price, ok := f.prices[symbol]; ok {
		return price, nil
	}
	return 0, quotes.ErrUnavailable
}

func (f *fakeQuoter) QuoteByName(ctx context.Context, name string) (float64, error) {
	return f.Quote(ctx, name)
}

func (f *fakeQuoter) Search(ctx context.Context, query string) ([]quotes.SearchResult, error) {
	return nil, quotes.ErrUnavailable
}

func setupPortfolio(t *testing.T, stocks, coins quotes.Quoter) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	if stocks == nil {
		stocks = &fakeQuoter{}
	}
	if coins == nil {
		coins = &fakeQuoter{}
	}
	return &Service{DB: db, Stocks: stocks, Crypto: coins}, db
}

func TestComputeTotals_AccountsAndCash(t *testing.T) {
	svc, db := setupPortfolio(t, nil, nil)
	require.NoError(t, db.Create(&domain.Account{Name: "Main", Bank: "DB", Balance: 1000, Currency: "EUR"}).Error)
	require.NoError(t, db.Create(&domain.Cash{Name: "Safe", Amount: 200, Currency: "EUR"}).Error)

	totals, err := svc.ComputeTotals(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1200, totals.Total, 1e-9)
	assert.InDelta(t, 1000, totals.Accounts, 1e-9)
	assert.InDelta(t, 0, totals.Investments, 1e-9)
	assert.InDelta(t, 0, totals.Crypto, 1e-9)
	assert.InDelta(t, 200, totals.Cash, 1e-9)
}

func TestComputeTotals_FallsBackToCostBasis(t *testing.T) {
	svc, db := setupPortfolio(t, nil, nil)
	require.NoError(t, db.Create(&domain.Investment{Symbol: "XYZ", Name: "Xyz Corp", Shares: 10, PurchasePrice: 100}).Error)

	totals, err := svc.ComputeTotals(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1000, totals.Investments, 1e-9)
	assert.InDelta(t, 1000, totals.Total, 1e-9)
}

func TestComputeTotals_PrefersMarkToMarket(t *testing.T) {
	svc, db := setupPortfolio(t, nil, nil)
	price := 120.0
	value := 1200.0
	require.NoError(t, db.Create(&domain.Investment{
		Symbol: "AAPL", Name: "Apple", Shares: 10, PurchasePrice: 100,
		CurrentPrice: &price, TotalValue: &value,
	}).Error)

	totals, err := svc.ComputeTotals(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1200, totals.Investments, 1e-9)
}

func TestRefreshPrices_AllUnavailableLeavesRowsUntouched(t *testing.T) {
	svc, db := setupPortfolio(t, &fakeQuoter{}, &fakeQuoter{})
	price := 90.0
	value := 900.0
	require.NoError(t, db.Create(&domain.Investment{
		Symbol: "AAPL", Name: "Apple", Shares: 10, PurchasePrice: 100,
		CurrentPrice: &price, TotalValue: &value,
	}).Error)
	require.NoError(t, db.Create(&domain.Crypto{Symbol: "bitcoin", Name: "Bitcoin", Amount: 1, PurchasePrice: 20000}).Error)

	counts := svc.RefreshPrices(context.Background())
	assert.Equal(t, 0, counts.Investments)
	assert.Equal(t, 0, counts.Crypto)

	var inv domain.Investment
	require.NoError(t, db.First(&inv).Error)
	require.NotNil(t, inv.CurrentPrice)
	assert.InDelta(t, 90, *inv.CurrentPrice, 1e-9)
	assert.InDelta(t, 900, *inv.TotalValue, 1e-9)

	var c domain.Crypto
	require.NoError(t, db.First(&c).Error)
	assert.Nil(t, c.CurrentPrice)
	assert.Nil(t, c.TotalValue)
}

func TestRefreshPrices_IndependentPerSymbol(t *testing.T) {
	stocks := &fakeQuoter{prices: map[string]float64{"AAPL": 150}}
	coins := &fakeQuoter{prices: map[string]float64{"bitcoin": 30000}}
	svc, db := setupPortfolio(t, stocks, coins)
	require.NoError(t, db.Create(&domain.Investment{Symbol: "AAPL", Name: "Apple", Shares: 10, PurchasePrice: 100}).Error)
	require.NoError(t, db.Create(&domain.Investment{Symbol: "FAIL", Name: "No Quote", Shares: 3, PurchasePrice: 50}).Error)
	require.NoError(t, db.Create(&domain.Crypto{Symbol: "bitcoin", Name: "Bitcoin", Amount: 0.5, PurchasePrice: 20000}).Error)

	counts := svc.RefreshPrices(context.Background())
	assert.Equal(t, 1, counts.Investments)
	assert.Equal(t, 1, counts.Crypto)

	var quoted domain.Investment
	require.NoError(t, db.First(&quoted, "symbol = ?", "AAPL").Error)
	require.NotNil(t, quoted.CurrentPrice)
	assert.InDelta(t, 150, *quoted.CurrentPrice, 1e-9)
	assert.InDelta(t, 1500, *quoted.TotalValue, 1e-9)

	var unquoted domain.Investment
	require.NoError(t, db.First(&unquoted, "symbol = ?", "FAIL").Error)
	assert.Nil(t, unquoted.CurrentPrice)
	assert.Nil(t, unquoted.TotalValue)

	var btc domain.Crypto
	require.NoError(t, db.First(&btc).Error)
	require.NotNil(t, btc.TotalValue)
	assert.InDelta(t, 15000, *btc.TotalValue, 1e-9)
}

func TestGetOverview_RecordsSnapshot(t *testing.T) {
	svc, db := setupPortfolio(t, nil, nil)
	require.NoError(t, db.Create(&domain.Account{Name: "Main", Bank: "DB", Balance: 1000, Currency: "EUR"}).Error)
	require.NoError(t, db.Create(&domain.Cash{Name: "Safe", Amount: 200, Currency: "EUR"}).Error)

	overview, errMsg, _ := svc.GetOverview(context.Background(), false)
	require.Empty(t, errMsg)
	assert.InDelta(t, 1200, overview.Total, 1e-9)
	assert.InDelta(t, 1000, overview.Breakdown.Accounts, 1e-9)
	assert.Len(t, overview.Accounts, 1)
	assert.Len(t, overview.Cash, 1)

	var snaps []domain.PortfolioSnapshot
	require.NoError(t, db.Find(&snaps).Error)
	require.Len(t, snaps, 1)
	assert.InDelta(t, 1200, snaps[0].TotalValue, 1e-9)
	assert.InDelta(t, 1000, snaps[0].AccountsValue, 1e-9)
	assert.InDelta(t, 200, snaps[0].CashValue, 1e-9)
}

func TestHistory_ReturnsMostRecent30Chronological(t *testing.T) {
	svc, db := setupPortfolio(t, nil, nil)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 35; i++ {
		snap := domain.PortfolioSnapshot{TotalValue: float64(i), Date: base.AddDate(0, 0, i)}
		require.NoError(t, db.Create(&snap).Error)
	}

	snaps, errMsg, _ := svc.History(context.Background())
	require.Empty(t, errMsg)
	require.Len(t, snaps, 30)
	// oldest of the returned window first, newest last
	assert.InDelta(t, 5, snaps[0].TotalValue, 1e-9)
	assert.InDelta(t, 34, snaps[29].TotalValue, 1e-9)
	assert.True(t, snaps[0].Date.Before(snaps[29].Date))
}

func TestPruneHistory_KeepsNewest(t *testing.T) {
	svc, _ := setupPortfolio(t, nil, nil)
	for i := 0; i < 10; i++ {
		_, err := svc.RecordSnapshot(context.Background(), Totals{Total: float64(i)})
		require.NoError(t, err)
	}

	removed, err := svc.PruneHistory(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), removed)

	snaps, errMsg, _ := svc.History(context.Background())
	require.Empty(t, errMsg)
	assert.Len(t, snaps, 4)
}

func TestPruneHistory_ZeroKeepIsNoop(t *testing.T) {
	svc, _ := setupPortfolio(t, nil, nil)
	for i := 0; i < 3; i++ {
		_, err := svc.RecordSnapshot(context.Background(), Totals{Total: float64(i)})
		require.NoError(t, err)
	}

	removed, err := svc.PruneHistory(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

func TestUpdateAllPrices_SnapshotsRefreshedTotals(t *testing.T) {
	stocks := &fakeQuoter{prices: map[string]float64{"AAPL": 200}}
	svc, db := setupPortfolio(t, stocks, nil)
	require.NoError(t, db.Create(&domain.Investment{Symbol: "AAPL", Name: "Apple", Shares: 10, PurchasePrice: 100}).Error)

	counts, totals, errMsg, _ := svc.UpdateAllPrices(context.Background())
	require.Empty(t, errMsg)
	assert.Equal(t, 1, counts.Investments)
	assert.InDelta(t, 2000, totals.Investments, 1e-9)

	var snaps []domain.PortfolioSnapshot
	require.NoError(t, db.Find(&snaps).Error)
	require.Len(t, snaps, 1)
	assert.InDelta(t, 2000, snaps[0].TotalValue, 1e-9)
}
