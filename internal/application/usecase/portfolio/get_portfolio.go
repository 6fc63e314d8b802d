package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/application/usecase/position"
	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// GetPortfolioInput represents the input for the portfolio view.
type GetPortfolioInput struct {
	UserID uuid.UUID
	AsOf   *time.Time // defaults to now
}

// GetPortfolioOutput represents the valued portfolio.
type GetPortfolioOutput struct {
	Positions []*entity.PositionView
	Summary   *entity.PortfolioSummary
}

// GetPortfolioUseCase recomputes the full portfolio view from the trade,
// price and income streams.
type GetPortfolioUseCase struct {
	tradeRepo       adapter.TradeRepository
	assetRepo       adapter.AssetRepository
	priceRepo       adapter.PriceRepository
	incomeRepo      adapter.IncomeRepository
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
}

// NewGetPortfolioUseCase creates a new GetPortfolioUseCase instance.
func NewGetPortfolioUseCase(
	tradeRepo adapter.TradeRepository,
	assetRepo adapter.AssetRepository,
	priceRepo adapter.PriceRepository,
	incomeRepo adapter.IncomeRepository,
	accountRepo adapter.AccountRepository,
	transactionRepo adapter.TransactionRepository,
) *GetPortfolioUseCase {
	return &GetPortfolioUseCase{
		tradeRepo:       tradeRepo,
		assetRepo:       assetRepo,
		priceRepo:       priceRepo,
		incomeRepo:      incomeRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute recomputes positions and values them as of the given date.
func (uc *GetPortfolioUseCase) Execute(ctx context.Context, input GetPortfolioInput) (*GetPortfolioOutput, error) {
	asOf := time.Now().UTC()
	if input.AsOf != nil {
		asOf = *input.AsOf
	}

	trades, err := uc.tradeRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading trades: %w", err)
	}

	assetList, err := uc.assetRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}
	assets := make(map[uuid.UUID]*entity.Asset, len(assetList))
	for _, a := range assetList {
		assets[a.ID] = a
	}

	latestPrices, err := uc.priceRepo.LatestByAsset(ctx, input.UserID, asOf)
	if err != nil {
		return nil, fmt.Errorf("loading prices: %w", err)
	}

	incomeSums, err := uc.incomeRepo.SumByAsset(ctx, input.UserID, asOf)
	if err != nil {
		return nil, fmt.Errorf("loading income: %w", err)
	}

	positions := position.Compute(trades, assets)
	views := Value(positions, latestPrices, incomeSums, assets)

	brokerBalance, err := uc.brokerBalance(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetPortfolioOutput{
		Positions: views,
		Summary:   Summarize(views, brokerBalance),
	}, nil
}

func (uc *GetPortfolioUseCase) brokerBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	brokers, err := uc.accountRepo.FindByType(ctx, userID, entity.AccountTypeBroker)
	if err != nil {
		return decimal.Zero, fmt.Errorf("loading broker accounts: %w", err)
	}

	total := decimal.Zero
	for _, acc := range brokers {
		sum, err := uc.transactionRepo.SumByAccount(ctx, userID, acc.ID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("summing broker account %s: %w", acc.ID, err)
		}
		total = total.Add(sum)
	}

	return total, nil
}
