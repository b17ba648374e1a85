package cash

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
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Location *string `json:"location"`
}

type UpdateInput struct {
	Name     *string  `json:"name"`
	Amount   *float64 `json:"amount"`
	Currency *string  `json:"currency"`
	Location *string  `json:"location"`
}

func (s *Service) List(ctx context.Context) ([]domain.Cash, string, int) {
	var holdings []domain.Cash
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&holdings).Error; err != nil {
		return nil, "Failed to fetch cash holdings", 500
	}
	return holdings, "", 0
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Cash, string, int) {
	if in.Name == "" {
		return nil, "Name is required", 400
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}

	holding := domain.Cash{
		Name:     in.Name,
		Amount:   in.Amount,
		Currency: in.Currency,
		Location: in.Location,
	}
	if err := s.DB.WithContext(ctx).Create(&holding).Error; err != nil {
		return nil, "Failed to create cash holding", 500
	}
	return &holding, "", 0
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Cash, string, int) {
	var holding domain.Cash
	if err := s.DB.WithContext(ctx).First(&holding, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "Cash holding not found", 404
		}
		return nil, "Failed to fetch cash holding", 500
	}

	if in.Name != nil {
		holding.Name = *in.Name
	}
	if in.Amount != nil {
		holding.Amount = *in.Amount
	}
	if in.Currency != nil {
		holding.Currency = *in.Currency
	}
	if in.Location != nil {
		holding.Location = in.Location
	}

	if err := s.DB.WithContext(ctx).Save(&holding).Error; err != nil {
		return nil, "Failed to update cash holding", 500
	}
	return &holding, "", 0
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) (string, int) {
	res := s.DB.WithContext(ctx).Delete(&domain.Cash{}, "id = ?", id)
	if res.Error != nil {
		return "Failed to delete cash holding", 500
	}
	if res.RowsAffected == 0 {
		return "Cash holding not found", 404
	}
	return "", 0
}
