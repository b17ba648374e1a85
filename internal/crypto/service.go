package crypto

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
	Amount        float64 `json:"amount"`
	PurchasePrice float64 `json:"purchasePrice"`
	TotalAmount   float64 `json:"totalAmount"`
}

type UpdateInput struct {
	Symbol        *string  `json:"symbol"`
	Name          *string  `json:"name"`
	Amount        *float64 `json:"amount"`
	PurchasePrice *float64 `json:"purchasePrice"`
}

// List returns all crypto holdings newest first after a best-effort price
// refresh per holding.
func (s *Service) List(ctx context.Context) ([]domain.Crypto, string, int) {
	var holdings []domain.Crypto
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&holdings).Error; err != nil {
		return nil, "Failed to fetch crypto holdings", 500
	}

	var wg sync.WaitGroup
	for i := range holdings {
		wg.Add(1)
		go func(holding *domain.Crypto) {
			defer wg.Done()
			price, err := s.Quoter.Quote(ctx, holding.Symbol)
			if err != nil {
				return
			}
			totalValue := price * holding.Amount
			if err := s.DB.WithContext(ctx).Model(&domain.Crypto{}).
				Where("id = ?", holding.ID).
				Updates(map[string]interface{}{
					"current_price": price,
					"total_value":   totalValue,
				}).Error; err == nil {
				holding.CurrentPrice = &price
				holding.TotalValue = &totalValue
			}
		}(&holdings[i])
	}
	wg.Wait()

	return holdings, "", 0
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Crypto, string, int) {
	if in.Symbol == "" || in.Name == "" {
		return nil, "Symbol and name are required", 400
	}
	if in.Amount <= 0 && in.TotalAmount <= 0 {
		return nil, "Amount or total amount is required", 400
	}

	amount := in.Amount
	purchasePrice := in.PurchasePrice

	currentPrice, err := s.Quoter.Quote(ctx, in.Symbol)
	quoted := err == nil

	if in.TotalAmount > 0 && quoted {
		amount = in.TotalAmount / currentPrice
		purchasePrice = currentPrice
	}
	if !quoted {
		currentPrice = purchasePrice
	}
	totalValue := amount * currentPrice

	holding := domain.Crypto{
		Symbol:        in.Symbol,
		Name:          in.Name,
		Amount:        amount,
		PurchasePrice: purchasePrice,
		CurrentPrice:  &currentPrice,
		TotalValue:    &totalValue,
	}
	if err := s.DB.WithContext(ctx).Create(&holding).Error; err != nil {
		return nil, "Failed to create crypto holding", 500
	}
	return &holding, "", 0
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Crypto, string, int) {
	var holding domain.Crypto
	if err := s.DB.WithContext(ctx).First(&holding, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "Crypto holding not found", 404
		}
		return nil, "Failed to fetch crypto holding", 500
	}

	if in.Symbol != nil {
		holding.Symbol = *in.Symbol
	}
	if in.Name != nil {
		holding.Name = *in.Name
	}
	if in.Amount != nil {
		holding.Amount = *in.Amount
	}
	if in.PurchasePrice != nil {
		holding.PurchasePrice = *in.PurchasePrice
	}

	if err := s.DB.WithContext(ctx).Save(&holding).Error; err != nil {
		return nil, "Failed to update crypto holding", 500
	}
	return &holding, "", 0
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) (string, int) {
	res := s.DB.WithContext(ctx).Delete(&domain.Crypto{}, "id = ?", id)
	if res.Error != nil {
		return "Failed to delete crypto holding", 500
	}
	if res.RowsAffected == 0 {
		return "Crypto holding not found", 404
	}
	return "", 0
}
