package price

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// ManualSource marks prices typed in by the user, as opposed to quotes
// fetched from a provider.
const ManualSource = "manual"

// UpsertPriceInput represents the input for saving a price.
type UpsertPriceInput struct {
	UserID  uuid.UUID
	AssetID uuid.UUID
	Date    time.Time
	Price   decimal.Decimal
	Source  string
}

// UpsertPriceUseCase writes one price observation. Saving the same asset and
// date again replaces the earlier value.
type UpsertPriceUseCase struct {
	priceRepo adapter.PriceRepository
	assetRepo adapter.AssetRepository
}

// NewUpsertPriceUseCase creates a new UpsertPriceUseCase instance.
func NewUpsertPriceUseCase(priceRepo adapter.PriceRepository, assetRepo adapter.AssetRepository) *UpsertPriceUseCase {
	return &UpsertPriceUseCase{priceRepo: priceRepo, assetRepo: assetRepo}
}

// Execute validates and saves the price.
func (uc *UpsertPriceUseCase) Execute(ctx context.Context, input UpsertPriceInput) (*entity.Price, error) {
	if !input.Price.IsPositive() {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidPrice,
			"preço deve ser maior que zero",
			domainerror.ErrInvalidPrice,
		)
	}

	asset, err := uc.assetRepo.FindByID(ctx, input.UserID, input.AssetID)
	if err != nil {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeAssetNotFound,
			"ativo não encontrado",
			domainerror.ErrAssetNotFound,
		)
	}

	source := input.Source
	if source == "" {
		source = ManualSource
	}

	p := entity.NewPrice(input.UserID, asset.ID, input.Date, input.Price, source)
	if err := uc.priceRepo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("saving price: %w", err)
	}
	return p, nil
}
