package trade

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// DeleteTradeInput represents the input for deleting a trade.
type DeleteTradeInput struct {
	UserID  uuid.UUID
	TradeID uuid.UUID
}

// DeleteTradeUseCase removes a trade together with its cash movement so the
// broker balance and the position fold stay consistent.
type DeleteTradeUseCase struct {
	tradeRepo    adapter.TradeRepository
	assetRepo    adapter.AssetRepository
	categoryRepo adapter.CategoryRepository
	logger       *slog.Logger
}

// NewDeleteTradeUseCase creates a new DeleteTradeUseCase instance.
func NewDeleteTradeUseCase(
	tradeRepo adapter.TradeRepository,
	assetRepo adapter.AssetRepository,
	categoryRepo adapter.CategoryRepository,
	logger *slog.Logger,
) *DeleteTradeUseCase {
	return &DeleteTradeUseCase{
		tradeRepo:    tradeRepo,
		assetRepo:    assetRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Execute deletes the trade and its linked cash transaction. Rows created
// before the explicit link existed have no transaction to delete; for those
// a compensating REVERSAL transaction is posted instead, never skipped.
func (uc *DeleteTradeUseCase) Execute(ctx context.Context, input DeleteTradeInput) error {
	trade, err := uc.tradeRepo.FindByID(ctx, input.UserID, input.TradeID)
	if err != nil {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeTradeNotFound,
			"operação não encontrada",
			domainerror.ErrTradeNotFound,
		)
	}

	if trade.CashTransactionID != nil {
		if err := uc.tradeRepo.DeleteWithCash(ctx, input.UserID, trade.ID, *trade.CashTransactionID); err != nil {
			return fmt.Errorf("deleting trade with cash: %w", err)
		}
		return nil
	}

	asset, err := uc.assetRepo.FindByID(ctx, input.UserID, trade.AssetID)
	if err != nil {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeAssetNotFound,
			"ativo não encontrado",
			domainerror.ErrAssetNotFound,
		)
	}
	if asset.BrokerAccountID == nil {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeTradeReversalFailed,
			"ativo sem conta corretora vinculada",
			domainerror.ErrTradeReversalFailed,
		)
	}

	reversal, err := uc.buildReversal(ctx, input.UserID, trade, asset)
	if err != nil {
		return err
	}

	uc.logger.WarnContext(ctx, "trade has no linked cash transaction, posting reversal",
		slog.String("trade_id", trade.ID.String()),
		slog.String("symbol", asset.Symbol),
		slog.String("amount", reversal.Amount.String()),
	)

	if err := uc.tradeRepo.DeleteWithReversal(ctx, input.UserID, trade.ID, reversal); err != nil {
		return fmt.Errorf("deleting trade with reversal: %w", err)
	}
	return nil
}

func (uc *DeleteTradeUseCase) buildReversal(ctx context.Context, userID uuid.UUID, trade *entity.Trade, asset *entity.Asset) (*entity.Transaction, error) {
	fx := trade.ExchangeRate
	if !fx.IsPositive() {
		fx = decimal.NewFromInt(1)
	}
	gross := trade.Quantity.Mul(trade.Price).Mul(fx)
	feesBRL := trade.Fees.Mul(fx)
	taxesBRL := trade.Taxes.Mul(fx)

	symbol := strings.ToUpper(strings.TrimSpace(asset.Symbol))
	var amount decimal.Decimal
	var description string
	if trade.Side == entity.TradeSideBuy {
		cost := gross.Add(feesBRL)
		if !asset.AssetClass.IsFixedIncome() {
			cost = cost.Add(taxesBRL)
		}
		// The original outflow comes back in.
		amount = cost
		description = "REVERSAL INV BUY " + symbol
	} else {
		amount = gross.Sub(feesBRL).Sub(taxesBRL).Neg()
		description = "REVERSAL INV SELL " + symbol
	}

	category, err := uc.categoryRepo.GetOrCreate(ctx, userID, InvestmentCategory, entity.CategoryKindTransfer)
	if err != nil {
		return nil, fmt.Errorf("resolving investment category: %w", err)
	}

	return entity.NewTransaction(
		userID,
		trade.Date,
		description,
		amount,
		*asset.BrokerAccountID,
		&category.ID,
		entity.MethodInvestment,
		trade.Note,
	), nil
}
