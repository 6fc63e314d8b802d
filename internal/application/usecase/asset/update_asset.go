package asset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// UpdateAssetInput represents the input for asset update.
type UpdateAssetInput struct {
	UserID          uuid.UUID
	AssetID         uuid.UUID
	Symbol          string
	Name            string
	AssetClass      entity.AssetClass
	Sector          string
	Currency        entity.Currency
	BrokerAccountID *uuid.UUID
	SourceAccountID *uuid.UUID
	Issuer          string
	MaturityDate    *time.Time
}

// UpdateAssetUseCase handles asset update logic.
type UpdateAssetUseCase struct {
	assetRepo   adapter.AssetRepository
	accountRepo adapter.AccountRepository
}

// NewUpdateAssetUseCase creates a new UpdateAssetUseCase instance.
func NewUpdateAssetUseCase(assetRepo adapter.AssetRepository, accountRepo adapter.AccountRepository) *UpdateAssetUseCase {
	return &UpdateAssetUseCase{assetRepo: assetRepo, accountRepo: accountRepo}
}

// Execute performs the asset update.
func (uc *UpdateAssetUseCase) Execute(ctx context.Context, input UpdateAssetInput) (*entity.Asset, error) {
	asset, err := uc.assetRepo.FindByID(ctx, input.UserID, input.AssetID)
	if err != nil {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeAssetNotFound,
			"ativo não encontrado",
			domainerror.ErrAssetNotFound,
		)
	}

	symbol := strings.ToUpper(strings.TrimSpace(input.Symbol))
	name := strings.TrimSpace(input.Name)
	if symbol == "" || name == "" {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeAssetSymbolRequired,
			"símbolo e nome são obrigatórios",
			domainerror.ErrAssetSymbolRequired,
		)
	}
	if !entity.IsValidAssetClass(input.AssetClass) {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidAssetClass,
			"classe de ativo inválida",
			domainerror.ErrInvalidAssetClass,
		)
	}

	if symbol != asset.Symbol {
		if existing, err := uc.assetRepo.FindBySymbol(ctx, input.UserID, symbol); err == nil && existing.ID != asset.ID {
			return nil, domainerror.NewInvestmentError(
				domainerror.ErrCodeAssetSymbolTaken,
				"já existe um ativo com esse símbolo",
				domainerror.ErrAssetSymbolTaken,
			)
		}
	}

	if err := validateAssetAccounts(ctx, uc.accountRepo, input.UserID, input.BrokerAccountID, input.SourceAccountID); err != nil {
		return nil, err
	}

	sector := strings.TrimSpace(input.Sector)
	if sector == "" {
		sector = DefaultSector
	}
	currency := input.Currency
	if currency == "" {
		currency = entity.CurrencyBRL
	}

	asset.Symbol = symbol
	asset.Name = name
	asset.AssetClass = input.AssetClass
	asset.Sector = sector
	asset.Currency = currency
	asset.BrokerAccountID = input.BrokerAccountID
	asset.SourceAccountID = input.SourceAccountID
	asset.Issuer = strings.TrimSpace(input.Issuer)
	asset.MaturityDate = input.MaturityDate

	if err := uc.assetRepo.Update(ctx, asset); err != nil {
		return nil, fmt.Errorf("updating asset: %w", err)
	}
	return asset, nil
}
