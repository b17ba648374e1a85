package investments

import (
	"context"
	"errors"
	"sync"

	"networth-backend/internal/domain"
	"networth-backend/internal/quotes"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB     *gorm.DB
	Quoter quotes.Quoter
}

type CreateInput struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Shares        float64 `json:"shares"`
	PurchasePrice float64 `json:"purchasePrice"`
	// TotalAmount buys "this much money worth" at the current price instead
	// of an explicit share count.
	TotalAmount float64 `json:"totalAmount"`
}

type UpdateInput struct {
	Symbol        *string  `json:"symbol"`
	Name          *string  `json:"name"`
	Shares        *float64 `json:"shares"`
	PurchasePrice *float64 `json:"purchasePrice"`
	Dividends     *float64 `json:"dividends"`
}

// List returns all investments newest first, refreshing each position's price
// best-effort beforehand. Symbols whose quote is unavailable keep their
// last-known values.
func (s *Service) List(ctx context.Context) ([]domain.Investment, string, int) {
	var investments []domain.Investment
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&investments).Error; err != nil {
		return nil, "Failed to fetch investments", 500
	}

	var wg sync.WaitGroup
	for i := range investments {
		wg.Add(1)
		go func(inv *domain.Investment) {
			defer wg.Done()
			price, err := s.Quoter.Quote(ctx, inv.Symbol)
			if err != nil {
				return
			}
			totalValue := price * inv.Shares
			if err := s.DB.WithContext(ctx).Model(&domain.Investment{}).
				Where("id = ?", inv.ID).
				Updates(map[string]interface{}{
					"current_price": price,
					"total_value":   totalValue,
				}).Error; err == nil {
				inv.CurrentPrice = &price
				inv.TotalValue = &totalValue
			}
		}(&investments[i])
	}
	wg.Wait()

	return investments, "", 0
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Investment, string, int) {
	if in.Symbol == "" || in.Name == "" {
		return nil, "Symbol and name are required", 400
	}
	if in.Shares <= 0 && in.TotalAmount <= 0 {
		return nil, "Shares or total amount is required", 400
	}

	shares := in.Shares
	purchasePrice := in.PurchasePrice

	currentPrice, err := s.Quoter.Quote(ctx, in.Symbol)
	quoted := err == nil

	if in.TotalAmount > 0 && quoted {
		shares = in.TotalAmount / currentPrice
		purchasePrice = currentPrice
	}
	if !quoted {
		currentPrice = purchasePrice
	}
	totalValue := shares * currentPrice

	investment := domain.Investment{
		Symbol:        in.Symbol,
		Name:          in.Name,
		Shares:        shares,
		PurchasePrice: purchasePrice,
		CurrentPrice:  &currentPrice,
		TotalValue:    &totalValue,
	}
	if err := s.DB.WithContext(ctx).Create(&investment).Error; err != nil {
		return nil, "Failed to create investment", 500
	}
	return &investment, "", 0
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Investment, string, int) {
	var investment domain.Investment
	if err := s.DB.WithContext(ctx).First(&investment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "Investment not found", 404
		}
		return nil, "Failed to fetch investment", 500
	}

	if in.Symbol != nil {
		investment.Symbol = *in.Symbol
	}
	if in.Name != nil {
		investment.Name = *in.Name
	}
	if in.Shares != nil {
		investment.Shares = *in.Shares
	}
	if in.PurchasePrice != nil {
		investment.PurchasePrice = *in.PurchasePrice
	}
	if in.Dividends != nil {
		investment.Dividends = *in.Dividends
	}

	if err := s.DB.WithContext(ctx).Save(&investment).Error; err != nil {
		return nil, "Failed to update investment", 500
	}
	return &investment, "", 0
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) (string, int) {
	res := s.DB.WithContext(ctx).Delete(&domain.Investment{}, "id = ?", id)
	if res.Error != nil {
		return "Failed to delete investment", 500
	}
	if res.RowsAffected == 0 {
		return "Investment not found", 404
	}
	return "", 0
}
