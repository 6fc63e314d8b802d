package asset

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// DeleteAssetInput represents the input for asset deletion.
type DeleteAssetInput struct {
	UserID  uuid.UUID
	AssetID uuid.UUID
}

// DeleteAssetUseCase removes an asset with no trades or income events, and
// purges its stored prices with it.
type DeleteAssetUseCase struct {
	assetRepo adapter.AssetRepository
}

// NewDeleteAssetUseCase creates a new DeleteAssetUseCase instance.
func NewDeleteAssetUseCase(assetRepo adapter.AssetRepository) *DeleteAssetUseCase {
	return &DeleteAssetUseCase{assetRepo: assetRepo}
}

// Execute deletes the asset and its price history.
func (uc *DeleteAssetUseCase) Execute(ctx context.Context, input DeleteAssetInput) error {
	if _, err := uc.assetRepo.FindByID(ctx, input.UserID, input.AssetID); err != nil {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeAssetNotFound,
			"ativo não encontrado",
			domainerror.ErrAssetNotFound,
		)
	}

	count, err := uc.assetRepo.UsageCount(ctx, input.UserID, input.AssetID)
	if err != nil {
		return fmt.Errorf("checking asset usage: %w", err)
	}
	if count > 0 {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeAssetInUse,
			fmt.Sprintf("ativo possui %d operações ou proventos vinculados", count),
			domainerror.ErrAssetInUse,
		)
	}

	if err := uc.assetRepo.DeleteWithPrices(ctx, input.UserID, input.AssetID); err != nil {
		return fmt.Errorf("deleting asset: %w", err)
	}
	return nil
}
