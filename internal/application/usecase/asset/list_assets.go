package asset

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// ListAssetsUseCase lists the user's assets.
type ListAssetsUseCase struct {
	assetRepo adapter.AssetRepository
}

// NewListAssetsUseCase creates a new ListAssetsUseCase instance.
func NewListAssetsUseCase(assetRepo adapter.AssetRepository) *ListAssetsUseCase {
	return &ListAssetsUseCase{assetRepo: assetRepo}
}

// Execute returns the user's assets, symbol ascending.
func (uc *ListAssetsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.Asset, error) {
	assets, err := uc.assetRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	return assets, nil
}
