// Package asset contains asset registry use cases.
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

// DefaultSector is used when the caller gives no sector.
const DefaultSector = "Não definido"

// CreateAssetInput represents the input for asset creation.
type CreateAssetInput struct {
	UserID          uuid.UUID
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

// CreateAssetOutput represents the output of asset creation.
type CreateAssetOutput struct {
	Asset *entity.Asset
}

// CreateAssetUseCase handles asset creation logic.
type CreateAssetUseCase struct {
	assetRepo   adapter.AssetRepository
	accountRepo adapter.AccountRepository
}

// NewCreateAssetUseCase creates a new CreateAssetUseCase instance.
func NewCreateAssetUseCase(assetRepo adapter.AssetRepository, accountRepo adapter.AccountRepository) *CreateAssetUseCase {
	return &CreateAssetUseCase{assetRepo: assetRepo, accountRepo: accountRepo}
}

// Execute performs the asset creation.
func (uc *CreateAssetUseCase) Execute(ctx context.Context, input CreateAssetInput) (*CreateAssetOutput, error) {
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

	sector := strings.TrimSpace(input.Sector)
	if sector == "" {
		sector = DefaultSector
	}
	currency := input.Currency
	if currency == "" {
		currency = entity.CurrencyBRL
	}
	if !entity.IsValidCurrency(currency) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidCurrency,
			"moeda inválida",
			domainerror.ErrInvalidCurrency,
		)
	}

	if err := uc.validateAccounts(ctx, input.UserID, input.BrokerAccountID, input.SourceAccountID); err != nil {
		return nil, err
	}

	if _, err := uc.assetRepo.FindBySymbol(ctx, input.UserID, symbol); err == nil {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeAssetSymbolTaken,
			"já existe um ativo com esse símbolo",
			domainerror.ErrAssetSymbolTaken,
		)
	}

	asset := entity.NewAsset(
		input.UserID,
		symbol,
		name,
		input.AssetClass,
		sector,
		currency,
		input.BrokerAccountID,
		input.SourceAccountID,
		strings.TrimSpace(input.Issuer),
		input.MaturityDate,
	)
	if err := uc.assetRepo.Create(ctx, asset); err != nil {
		return nil, fmt.Errorf("creating asset: %w", err)
	}
	return &CreateAssetOutput{Asset: asset}, nil
}

func (uc *CreateAssetUseCase) validateAccounts(ctx context.Context, userID uuid.UUID, brokerID, sourceID *uuid.UUID) error {
	return validateAssetAccounts(ctx, uc.accountRepo, userID, brokerID, sourceID)
}

// validateAssetAccounts checks that the referenced accounts exist for the
// user. Ownership scoping happens in the repository; a foreign id simply
// does not resolve.
func validateAssetAccounts(ctx context.Context, accountRepo adapter.AccountRepository, userID uuid.UUID, brokerID, sourceID *uuid.UUID) error {
	if brokerID != nil {
		if _, err := accountRepo.FindByID(ctx, userID, *brokerID); err != nil {
			return domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"conta corretora inválida",
				domainerror.ErrAccountNotFound,
			)
		}
	}
	if sourceID != nil {
		if _, err := accountRepo.FindByID(ctx, userID, *sourceID); err != nil {
			return domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"conta origem inválida",
				domainerror.ErrAccountNotFound,
			)
		}
	}
	return nil
}
