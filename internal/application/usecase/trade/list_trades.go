package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// ListTradesInput represents the input for listing trades.
type ListTradesInput struct {
	UserID   uuid.UUID
	AssetID  *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
}

// ListTradesUseCase lists trades with optional asset and date filters.
type ListTradesUseCase struct {
	tradeRepo adapter.TradeRepository
}

// NewListTradesUseCase creates a new ListTradesUseCase instance.
func NewListTradesUseCase(tradeRepo adapter.TradeRepository) *ListTradesUseCase {
	return &ListTradesUseCase{tradeRepo: tradeRepo}
}

// Execute returns the user's trades, (date, id) ascending.
func (uc *ListTradesUseCase) Execute(ctx context.Context, input ListTradesInput) ([]*entity.Trade, error) {
	var trades []*entity.Trade
	var err error
	if input.AssetID != nil {
		trades, err = uc.tradeRepo.FindByAsset(ctx, input.UserID, *input.AssetID)
	} else {
		trades, err = uc.tradeRepo.FindByUser(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing trades: %w", err)
	}

	if input.DateFrom == nil && input.DateTo == nil {
		return trades, nil
	}

	filtered := make([]*entity.Trade, 0, len(trades))
	for _, t := range trades {
		if input.DateFrom != nil && t.Date.Before(*input.DateFrom) {
			continue
		}
		if input.DateTo != nil && t.Date.After(*input.DateTo) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered, nil
}
