package income

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// InvestmentIncomeCategory names the income category for cash posted by
// dividend and interest events.
const InvestmentIncomeCategory = "Investimentos"

// CreateIncomeInput represents the input for recording an income event.
type CreateIncomeInput struct {
	UserID  uuid.UUID
	AssetID uuid.UUID
	Date    time.Time
	Type    entity.IncomeType
	Amount  decimal.Decimal
	Note    string
}

// CreateIncomeUseCase records investment income. When the asset is linked to
// a broker account the cash lands there as a credit; income never touches
// the asset's cost basis.
type CreateIncomeUseCase struct {
	incomeRepo   adapter.IncomeRepository
	assetRepo    adapter.AssetRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateIncomeUseCase creates a new CreateIncomeUseCase instance.
func NewCreateIncomeUseCase(
	incomeRepo adapter.IncomeRepository,
	assetRepo adapter.AssetRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateIncomeUseCase {
	return &CreateIncomeUseCase{
		incomeRepo:   incomeRepo,
		assetRepo:    assetRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute validates and records the income event.
func (uc *CreateIncomeUseCase) Execute(ctx context.Context, input CreateIncomeInput) (*entity.IncomeEvent, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidIncomeAmount,
			"valor do provento deve ser maior que zero",
			domainerror.ErrInvalidIncomeAmount,
		)
	}
	if !entity.IsValidIncomeType(input.Type) {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidIncomeType,
			"tipo de provento inválido",
			domainerror.ErrInvalidIncomeType,
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

	note := strings.TrimSpace(input.Note)
	event := entity.NewIncomeEvent(input.UserID, asset.ID, input.Date, input.Type, input.Amount, note)

	if asset.BrokerAccountID == nil {
		if err := uc.incomeRepo.Create(ctx, event); err != nil {
			return nil, fmt.Errorf("recording income event: %w", err)
		}
		return event, nil
	}

	category, err := uc.categoryRepo.GetOrCreate(ctx, input.UserID, InvestmentIncomeCategory, entity.CategoryKindIncome)
	if err != nil {
		return nil, fmt.Errorf("resolving income category: %w", err)
	}

	cash := entity.NewTransaction(
		input.UserID,
		input.Date,
		fmt.Sprintf("PROVENTO %s (%s)", strings.ToUpper(strings.TrimSpace(asset.Symbol)), input.Type),
		input.Amount,
		*asset.BrokerAccountID,
		&category.ID,
		entity.MethodInvestment,
		note,
	)

	if err := uc.incomeRepo.CreateWithCash(ctx, event, cash); err != nil {
		return nil, fmt.Errorf("recording income event: %w", err)
	}
	return event, nil
}
