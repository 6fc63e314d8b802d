package trade

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

// InvestmentCategory names the category attached to every cash movement the
// investment engine posts. Created on demand as a transfer so trades never
// distort expense or income reports.
const InvestmentCategory = "Investimentos"

// brokerCashTolerance absorbs rounding noise when checking whether the
// broker account covers a purchase. Half a cent in BRL.
var brokerCashTolerance = decimal.New(5, -3)

// CreateTradeInput represents the input for recording a trade.
type CreateTradeInput struct {
	UserID       uuid.UUID
	AssetID      uuid.UUID
	Date         time.Time
	Side         entity.TradeSide
	Quantity     decimal.Decimal
	Price        decimal.Decimal
	ExchangeRate decimal.Decimal
	Fees         decimal.Decimal
	Taxes        decimal.Decimal
	Note         string
}

// CreateTradeOutput represents the output of recording a trade.
type CreateTradeOutput struct {
	Trade           *entity.Trade
	CashTransaction *entity.Transaction
}

// CreateTradeUseCase records a buy or sell and its cash movement on the
// asset's broker account in a single storage transaction.
type CreateTradeUseCase struct {
	tradeRepo       adapter.TradeRepository
	assetRepo       adapter.AssetRepository
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
}

// NewCreateTradeUseCase creates a new CreateTradeUseCase instance.
func NewCreateTradeUseCase(
	tradeRepo adapter.TradeRepository,
	assetRepo adapter.AssetRepository,
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
) *CreateTradeUseCase {
	return &CreateTradeUseCase{
		tradeRepo:       tradeRepo,
		assetRepo:       assetRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute validates and records the trade.
func (uc *CreateTradeUseCase) Execute(ctx context.Context, input CreateTradeInput) (*CreateTradeOutput, error) {
	if !entity.IsValidTradeSide(input.Side) {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidTradeSide,
			"tipo da operação inválido",
			domainerror.ErrInvalidTradeSide,
		)
	}
	if !input.Quantity.IsPositive() {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidTradeQuantity,
			"quantidade deve ser maior que zero",
			domainerror.ErrInvalidTradeQuantity,
		)
	}
	if !input.Price.IsPositive() {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidTradePrice,
			"preço deve ser maior que zero",
			domainerror.ErrInvalidTradePrice,
		)
	}
	if input.Fees.IsNegative() || input.Taxes.IsNegative() {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidTradeCosts,
			"taxas e impostos não podem ser negativos",
			domainerror.ErrInvalidTradeCosts,
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
	if asset.BrokerAccountID == nil {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeAssetNotFound,
			"ativo sem conta corretora vinculada",
			domainerror.ErrAssetNotFound,
		)
	}

	fx := decimal.NewFromInt(1)
	if asset.Currency == entity.CurrencyUSD {
		if !input.ExchangeRate.IsPositive() {
			return nil, domainerror.NewInvestmentError(
				domainerror.ErrCodeExchangeRateRequired,
				"cotação USD/BRL é obrigatória para ativos em dólar",
				domainerror.ErrExchangeRateRequired,
			)
		}
		fx = input.ExchangeRate
	}

	gross := input.Quantity.Mul(input.Price).Mul(fx)
	feesBRL := input.Fees.Mul(fx)
	taxesBRL := input.Taxes.Mul(fx)

	// Fixed income pays IR/IOF at redemption, not at entry.
	totalCost := gross.Add(feesBRL)
	if !asset.AssetClass.IsFixedIncome() {
		totalCost = totalCost.Add(taxesBRL)
	}
	if totalCost.IsNegative() {
		totalCost = decimal.Zero
	}

	if input.Side == entity.TradeSideBuy {
		balance, err := uc.transactionRepo.SumByAccount(ctx, input.UserID, *asset.BrokerAccountID)
		if err != nil {
			return nil, fmt.Errorf("checking broker balance: %w", err)
		}
		if balance.Add(brokerCashTolerance).LessThan(totalCost) {
			return nil, domainerror.NewInvestmentError(
				domainerror.ErrCodeInsufficientBrokerCash,
				fmt.Sprintf("saldo insuficiente na corretora. Disponível: %s; Necessário: %s",
					balance.StringFixed(2), totalCost.StringFixed(2)),
				domainerror.ErrInsufficientBrokerCash,
			)
		}
	}

	symbol := strings.ToUpper(strings.TrimSpace(asset.Symbol))
	var cashAmount decimal.Decimal
	var description string
	if input.Side == entity.TradeSideBuy {
		cashAmount = totalCost.Neg()
		description = "INV BUY " + symbol
	} else {
		cashAmount = gross.Sub(feesBRL).Sub(taxesBRL)
		description = "INV SELL " + symbol
	}

	category, err := uc.categoryRepo.GetOrCreate(ctx, input.UserID, InvestmentCategory, entity.CategoryKindTransfer)
	if err != nil {
		return nil, fmt.Errorf("resolving investment category: %w", err)
	}

	cash := entity.NewTransaction(
		input.UserID,
		input.Date,
		description,
		cashAmount,
		*asset.BrokerAccountID,
		&category.ID,
		entity.MethodInvestment,
		strings.TrimSpace(input.Note),
	)

	trade := entity.NewTrade(
		input.UserID,
		asset.ID,
		input.Date,
		input.Side,
		input.Quantity,
		input.Price,
		fx,
		input.Fees,
		input.Taxes,
		strings.TrimSpace(input.Note),
	)

	if err := uc.tradeRepo.CreateWithCash(ctx, trade, cash); err != nil {
		return nil, fmt.Errorf("recording trade: %w", err)
	}

	return &CreateTradeOutput{Trade: trade, CashTransaction: cash}, nil
}
