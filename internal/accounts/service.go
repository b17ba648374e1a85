package accounts

import (
	"context"
	"errors"

	"networth-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Name     string  `json:"name"`
	Bank     string  `json:"bank"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// UpdateInput merges only the provided fields.
type UpdateInput struct {
	Name     *string  `json:"name"`
	Bank     *string  `json:"bank"`
	Balance  *float64 `json:"balance"`
	Currency *string  `json:"currency"`
}

func (s *Service) List(ctx context.Context) ([]domain.Account, string, int) {
	var accounts []domain.Account
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, "Failed to fetch accounts", 500
	}
	return accounts, "", 0
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Account, string, int) {
	if in.Name == "" || in.Bank == "" {
		return nil, "Name and bank are required", 400
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}

	account := domain.Account{
		Name:     in.Name,
		Bank:     in.Bank,
		Balance:  in.Balance,
		Currency: in.Currency,
	}
	if err := s.DB.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, "Failed to create account", 500
	}
	return &account, "", 0
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Account, string, int) {
	var account domain.Account
	if err := s.DB.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "Account not found", 404
		}
		return nil, "Failed to fetch account", 500
	}

	if in.Name != nil {
		account.Name = *in.Name
	}
	if in.Bank != nil {
		account.Bank = *in.Bank
	}
	if in.Balance != nil {
		account.Balance = *in.Balance
	}
	if in.Currency != nil {
		account.Currency = *in.Currency
	}

	if err := s.DB.WithContext(ctx).Save(&account).Error; err != nil {
		return nil, "Failed to update account", 500
	}
	return &account, "", 0
}

// Delete removes the account. Its transaction history stays; readers tolerate
// the dangling reference.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (string, int) {
	res := s.DB.WithContext(ctx).Delete(&domain.Account{}, "id = ?", id)
	if res.Error != nil {
		return "Failed to delete account", 500
	}
	if res.RowsAffected == 0 {
		return "Account not found", 404
	}
	return "", 0
}
