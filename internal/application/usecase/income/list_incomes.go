package income

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// ListIncomesInput represents the input for listing income events.
type ListIncomesInput struct {
	UserID   uuid.UUID
	AssetID  *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
}

// ListIncomesUseCase lists income events with optional asset and date filters.
type ListIncomesUseCase struct {
	incomeRepo adapter.IncomeRepository
}

// NewListIncomesUseCase creates a new ListIncomesUseCase instance.
func NewListIncomesUseCase(incomeRepo adapter.IncomeRepository) *ListIncomesUseCase {
	return &ListIncomesUseCase{incomeRepo: incomeRepo}
}

// Execute returns the user's income events, date ascending.
func (uc *ListIncomesUseCase) Execute(ctx context.Context, input ListIncomesInput) ([]*entity.IncomeEvent, error) {
	events, err := uc.incomeRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing income events: %w", err)
	}

	filtered := make([]*entity.IncomeEvent, 0, len(events))
	for _, e := range events {
		if input.AssetID != nil && e.AssetID != *input.AssetID {
			continue
		}
		if input.DateFrom != nil && e.Date.Before(*input.DateFrom) {
			continue
		}
		if input.DateTo != nil && e.Date.After(*input.DateTo) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}
