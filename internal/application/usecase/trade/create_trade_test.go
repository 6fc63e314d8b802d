package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

type fakeTradeRepo struct {
	adapter.TradeRepository
	created *entity.Trade
	cash    *entity.Transaction
}

func (f *fakeTradeRepo) CreateWithCash(_ context.Context, trade *entity.Trade, cash *entity.Transaction) error {
	trade.CashTransactionID = &cash.ID
	f.created = trade
	f.cash = cash
	return nil
}

type fakeAssetRepo struct {
	adapter.AssetRepository
	asset *entity.Asset
}

func (f *fakeAssetRepo) FindByID(_ context.Context, _, id uuid.UUID) (*entity.Asset, error) {
	if f.asset == nil || f.asset.ID != id {
		return nil, domainerror.ErrAssetNotFound
	}
	return f.asset, nil
}

type fakeCategoryRepo struct {
	adapter.CategoryRepository
}

func (f *fakeCategoryRepo) GetOrCreate(_ context.Context, userID uuid.UUID, name string, kind entity.CategoryKind) (*entity.Category, error) {
	return entity.NewCategory(userID, name, kind), nil
}

type fakeTransactionRepo struct {
	adapter.TransactionRepository
	balance decimal.Decimal
}

func (f *fakeTransactionRepo) SumByAccount(_ context.Context, _, _ uuid.UUID) (decimal.Decimal, error) {
	return f.balance, nil
}

func newCreateTradeFixture(asset *entity.Asset, brokerBalance string) (*CreateTradeUseCase, *fakeTradeRepo) {
	trades := &fakeTradeRepo{}
	uc := NewCreateTradeUseCase(
		trades,
		&fakeAssetRepo{asset: asset},
		&fakeCategoryRepo{},
		&fakeTransactionRepo{balance: decimal.RequireFromString(brokerBalance)},
	)
	return uc, trades
}

func brokerAsset(class entity.AssetClass, currency entity.Currency) *entity.Asset {
	broker := uuid.New()
	asset := entity.NewAsset(uuid.New(), "petr4", "Petrobras", class, "Energia", currency, &broker, nil, "", nil)
	return asset
}

func TestCreateTradeBuyPostsCashAndLinksIt(t *testing.T) {
	asset := brokerAsset(entity.AssetClassStockBR, entity.CurrencyBRL)
	uc, trades := newCreateTradeFixture(asset, "10000")

	out, err := uc.Execute(context.Background(), CreateTradeInput{
		UserID:   asset.UserID,
		AssetID:  asset.ID,
		Date:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Side:     entity.TradeSideBuy,
		Quantity: decimal.NewFromInt(100),
		Price:    decimal.NewFromInt(10),
		Fees:     decimal.NewFromInt(5),
		Taxes:    decimal.NewFromInt(2),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got, want := trades.cash.Amount.String(), "-1007"; got != want {
		t.Errorf("cash amount = %s, want %s", got, want)
	}
	if got, want := trades.cash.Description, "INV BUY PETR4"; got != want {
		t.Errorf("cash description = %q, want %q", got, want)
	}
	if trades.cash.Method != entity.MethodInvestment {
		t.Errorf("cash method = %q, want %q", trades.cash.Method, entity.MethodInvestment)
	}
	if out.Trade.CashTransactionID == nil || *out.Trade.CashTransactionID != trades.cash.ID {
		t.Error("trade not linked to its cash transaction")
	}
}

func TestCreateTradeFixedIncomeExcludesTaxesFromCash(t *testing.T) {
	asset := brokerAsset(entity.AssetClassFixedIncome, entity.CurrencyBRL)
	uc, trades := newCreateTradeFixture(asset, "10000")

	_, err := uc.Execute(context.Background(), CreateTradeInput{
		UserID:   asset.UserID,
		AssetID:  asset.ID,
		Date:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Side:     entity.TradeSideBuy,
		Quantity: decimal.NewFromInt(1),
		Price:    decimal.NewFromInt(1000),
		Fees:     decimal.NewFromInt(2),
		Taxes:    decimal.NewFromInt(30),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got, want := trades.cash.Amount.String(), "-1002"; got != want {
		t.Errorf("cash amount = %s, want %s", got, want)
	}
}

func TestCreateTradeSellCreditsNetProceeds(t *testing.T) {
	asset := brokerAsset(entity.AssetClassStockBR, entity.CurrencyBRL)
	uc, trades := newCreateTradeFixture(asset, "0")

	_, err := uc.Execute(context.Background(), CreateTradeInput{
		UserID:   asset.UserID,
		AssetID:  asset.ID,
		Date:     time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Side:     entity.TradeSideSell,
		Quantity: decimal.NewFromInt(10),
		Price:    decimal.NewFromInt(12),
		Fees:     decimal.NewFromInt(3),
		Taxes:    decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got, want := trades.cash.Amount.String(), "116"; got != want {
		t.Errorf("cash amount = %s, want %s", got, want)
	}
	if got, want := trades.cash.Description, "INV SELL PETR4"; got != want {
		t.Errorf("cash description = %q, want %q", got, want)
	}
}

func TestCreateTradeBuyRejectsInsufficientBrokerCash(t *testing.T) {
	asset := brokerAsset(entity.AssetClassStockBR, entity.CurrencyBRL)
	uc, _ := newCreateTradeFixture(asset, "999.99")

	_, err := uc.Execute(context.Background(), CreateTradeInput{
		UserID:   asset.UserID,
		AssetID:  asset.ID,
		Date:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Side:     entity.TradeSideBuy,
		Quantity: decimal.NewFromInt(100),
		Price:    decimal.NewFromInt(10),
	})
	if !errors.Is(err, domainerror.ErrInsufficientBrokerCash) {
		t.Fatalf("Execute() error = %v, want ErrInsufficientBrokerCash", err)
	}
}

func TestCreateTradeToleratesHalfCentShortfall(t *testing.T) {
	asset := brokerAsset(entity.AssetClassStockBR, entity.CurrencyBRL)
	uc, _ := newCreateTradeFixture(asset, "999.996")

	_, err := uc.Execute(context.Background(), CreateTradeInput{
		UserID:   asset.UserID,
		AssetID:  asset.ID,
		Date:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Side:     entity.TradeSideBuy,
		Quantity: decimal.NewFromInt(100),
		Price:    decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil within tolerance", err)
	}
}

func TestCreateTradeUSDRequiresExchangeRate(t *testing.T) {
	asset := brokerAsset(entity.AssetClassStockUS, entity.CurrencyUSD)
	uc, _ := newCreateTradeFixture(asset, "100000")

	_, err := uc.Execute(context.Background(), CreateTradeInput{
		UserID:   asset.UserID,
		AssetID:  asset.ID,
		Date:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Side:     entity.TradeSideBuy,
		Quantity: decimal.NewFromInt(1),
		Price:    decimal.NewFromInt(100),
	})
	if !errors.Is(err, domainerror.ErrExchangeRateRequired) {
		t.Fatalf("Execute() error = %v, want ErrExchangeRateRequired", err)
	}
}

func TestCreateTradeUSDConvertsCashToBRL(t *testing.T) {
	asset := brokerAsset(entity.AssetClassStockUS, entity.CurrencyUSD)
	uc, trades := newCreateTradeFixture(asset, "100000")

	_, err := uc.Execute(context.Background(), CreateTradeInput{
		UserID:       asset.UserID,
		AssetID:      asset.ID,
		Date:         time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Side:         entity.TradeSideBuy,
		Quantity:     decimal.NewFromInt(2),
		Price:        decimal.NewFromInt(50),
		ExchangeRate: decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got, want := trades.cash.Amount.String(), "-500"; got != want {
		t.Errorf("cash amount = %s, want %s", got, want)
	}
}

func TestCreateTradeValidation(t *testing.T) {
	asset := brokerAsset(entity.AssetClassStockBR, entity.CurrencyBRL)

	tests := []struct {
		name    string
		mutate  func(*CreateTradeInput)
		wantErr error
	}{
		{"unknown side", func(in *CreateTradeInput) { in.Side = "SHORT" }, domainerror.ErrInvalidTradeSide},
		{"zero quantity", func(in *CreateTradeInput) { in.Quantity = decimal.Zero }, domainerror.ErrInvalidTradeQuantity},
		{"zero price", func(in *CreateTradeInput) { in.Price = decimal.Zero }, domainerror.ErrInvalidTradePrice},
		{"negative fees", func(in *CreateTradeInput) { in.Fees = decimal.NewFromInt(-1) }, domainerror.ErrInvalidTradeCosts},
		{"unknown asset", func(in *CreateTradeInput) { in.AssetID = uuid.New() }, domainerror.ErrAssetNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newCreateTradeFixture(asset, "10000")
			input := CreateTradeInput{
				UserID:   asset.UserID,
				AssetID:  asset.ID,
				Date:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
				Side:     entity.TradeSideBuy,
				Quantity: decimal.NewFromInt(1),
				Price:    decimal.NewFromInt(10),
			}
			tt.mutate(&input)
			if _, err := uc.Execute(context.Background(), input); !errors.Is(err, tt.wantErr) {
				t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
