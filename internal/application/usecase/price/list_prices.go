package price

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// ListPricesInput represents the input for listing an asset's price history.
type ListPricesInput struct {
	UserID  uuid.UUID
	AssetID uuid.UUID
	Limit   int
}

// ListPricesUseCase lists an asset's stored prices, most recent first.
type ListPricesUseCase struct {
	priceRepo adapter.PriceRepository
}

// NewListPricesUseCase creates a new ListPricesUseCase instance.
func NewListPricesUseCase(priceRepo adapter.PriceRepository) *ListPricesUseCase {
	return &ListPricesUseCase{priceRepo: priceRepo}
}

// Execute returns the asset's price history, date descending.
func (uc *ListPricesUseCase) Execute(ctx context.Context, input ListPricesInput) ([]*entity.Price, error) {
	prices, err := uc.priceRepo.FindByAsset(ctx, input.UserID, input.AssetID)
	if err != nil {
		return nil, fmt.Errorf("listing prices: %w", err)
	}
	if input.Limit > 0 && len(prices) > input.Limit {
		prices = prices[:input.Limit]
	}
	return prices, nil
}
