// Package position computes investment positions from the raw trade log.
package position

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type tradeSpec struct {
	date     string
	side     entity.TradeSide
	qty      string
	price    string
	fx       string
	fees     string
	taxes    string
}

func buildTrades(assetID uuid.UUID, specs []tradeSpec) []*entity.Trade {
	userID := uuid.New()
	trades := make([]*entity.Trade, 0, len(specs))
	base := time.Now().UTC()
	for i, s := range specs {
		fx := "1"
		if s.fx != "" {
			fx = s.fx
		}
		fees := "0"
		if s.fees != "" {
			fees = s.fees
		}
		taxes := "0"
		if s.taxes != "" {
			taxes = s.taxes
		}
		trades = append(trades, &entity.Trade{
			ID:           uuid.New(),
			UserID:       userID,
			AssetID:      assetID,
			Date:         day(s.date),
			Side:         s.side,
			Quantity:     d(s.qty),
			Price:        d(s.price),
			ExchangeRate: d(fx),
			Fees:         d(fees),
			Taxes:        d(taxes),
			CreatedAt:    base.Add(time.Duration(i) * time.Second),
		})
	}
	return trades
}

func assetMap(assets ...*entity.Asset) map[uuid.UUID]*entity.Asset {
	m := make(map[uuid.UUID]*entity.Asset, len(assets))
	for _, a := range assets {
		m[a.ID] = a
	}
	return m
}

func TestCompute_AverageCost(t *testing.T) {
	assetID := uuid.New()
	asset := &entity.Asset{ID: assetID, Symbol: "PETR4", AssetClass: entity.AssetClassStockBR, Currency: entity.CurrencyBRL}

	t.Run("buy then partial sell realizes blended cost", func(t *testing.T) {
		trades := buildTrades(assetID, []tradeSpec{
			{date: "2024-01-10", side: entity.TradeSideBuy, qty: "10", price: "100", fees: "5"},
			{date: "2024-02-10", side: entity.TradeSideSell, qty: "4", price: "120"},
		})

		pos := Compute(trades, assetMap(asset))[assetID]
		if pos == nil {
			t.Fatal("expected position for asset")
		}

		if !pos.Quantity.Equal(d("6")) {
			t.Errorf("expected qty 6, got %s", pos.Quantity)
		}
		if !pos.CostBasis.Equal(d("603")) {
			t.Errorf("expected cost basis 603, got %s", pos.CostBasis)
		}
		if !pos.RealizedPnL.Equal(d("78")) {
			t.Errorf("expected realized pnl 78, got %s", pos.RealizedPnL)
		}
		if !pos.AvgCost.Equal(d("100.5")) {
			t.Errorf("expected avg cost 100.5, got %s", pos.AvgCost)
		}
	})

	t.Run("fees enter cost basis on buy", func(t *testing.T) {
		trades := buildTrades(assetID, []tradeSpec{
			{date: "2024-01-10", side: entity.TradeSideBuy, qty: "10", price: "100", fees: "5"},
		})

		pos := Compute(trades, assetMap(asset))[assetID]
		if !pos.CostBasis.Equal(d("1005")) {
			t.Errorf("expected cost basis 1005, got %s", pos.CostBasis)
		}
		if !pos.AvgCost.Equal(d("100.5")) {
			t.Errorf("expected avg cost 100.5, got %s", pos.AvgCost)
		}
	})

	t.Run("full liquidation zeroes avg cost", func(t *testing.T) {
		trades := buildTrades(assetID, []tradeSpec{
			{date: "2024-01-10", side: entity.TradeSideBuy, qty: "10", price: "100"},
			{date: "2024-03-10", side: entity.TradeSideSell, qty: "10", price: "110"},
		})

		pos := Compute(trades, assetMap(asset))[assetID]
		if !pos.Quantity.IsZero() {
			t.Errorf("expected qty 0, got %s", pos.Quantity)
		}
		if !pos.AvgCost.IsZero() {
			t.Errorf("expected avg cost 0, got %s", pos.AvgCost)
		}
		if !pos.RealizedPnL.Equal(d("100")) {
			t.Errorf("expected realized pnl 100, got %s", pos.RealizedPnL)
		}
	})

	t.Run("sell without position treats avg cost as zero", func(t *testing.T) {
		trades := buildTrades(assetID, []tradeSpec{
			{date: "2024-01-10", side: entity.TradeSideSell, qty: "3", price: "50"},
		})

		pos := Compute(trades, assetMap(asset))[assetID]
		if !pos.Quantity.Equal(d("-3")) {
			t.Errorf("expected qty -3, got %s", pos.Quantity)
		}
		if !pos.RealizedPnL.Equal(d("150")) {
			t.Errorf("expected realized pnl 150, got %s", pos.RealizedPnL)
		}
		if !pos.CostBasis.IsZero() {
			t.Errorf("expected cost basis 0, got %s", pos.CostBasis)
		}
	})

	t.Run("unsorted input folds in date order", func(t *testing.T) {
		trades := buildTrades(assetID, []tradeSpec{
			{date: "2024-02-10", side: entity.TradeSideSell, qty: "4", price: "120"},
			{date: "2024-01-10", side: entity.TradeSideBuy, qty: "10", price: "100", fees: "5"},
		})

		pos := Compute(trades, assetMap(asset))[assetID]
		if !pos.RealizedPnL.Equal(d("78")) {
			t.Errorf("expected realized pnl 78, got %s", pos.RealizedPnL)
		}
	})
}

func TestCompute_USDAsset(t *testing.T) {
	assetID := uuid.New()
	asset := &entity.Asset{ID: assetID, Symbol: "VOO", AssetClass: entity.AssetClassETFUS, Currency: entity.CurrencyUSD}

	trades := buildTrades(assetID, []tradeSpec{
		{date: "2024-01-10", side: entity.TradeSideBuy, qty: "2", price: "50", fx: "5.0"},
	})

	pos := Compute(trades, assetMap(asset))[assetID]
	if pos == nil {
		t.Fatal("expected position for asset")
	}
	if !pos.CostBasis.Equal(d("500")) {
		t.Errorf("expected cost basis 500 BRL, got %s", pos.CostBasis)
	}
	if !pos.LastTradeFX.Equal(d("5.0")) {
		t.Errorf("expected last trade fx 5.0, got %s", pos.LastTradeFX)
	}
}

func TestCompute_FixedIncomeExcludesTaxes(t *testing.T) {
	rfID := uuid.New()
	acaoID := uuid.New()
	assets := assetMap(
		&entity.Asset{ID: rfID, Symbol: "CDB-2027", AssetClass: entity.AssetClassFixedIncome, Currency: entity.CurrencyBRL},
		&entity.Asset{ID: acaoID, Symbol: "VALE3", AssetClass: entity.AssetClassStockBR, Currency: entity.CurrencyBRL},
	)

	rfTrades := buildTrades(rfID, []tradeSpec{
		{date: "2024-01-10", side: entity.TradeSideBuy, qty: "1", price: "1000", fees: "2", taxes: "30"},
	})
	acaoTrades := buildTrades(acaoID, []tradeSpec{
		{date: "2024-01-10", side: entity.TradeSideBuy, qty: "1", price: "1000", fees: "2", taxes: "30"},
	})

	positions := Compute(append(rfTrades, acaoTrades...), assets)

	if got := positions[rfID].CostBasis; !got.Equal(d("1002")) {
		t.Errorf("fixed income: expected cost basis 1002 (taxes deferred), got %s", got)
	}
	if got := positions[acaoID].CostBasis; !got.Equal(d("1032")) {
		t.Errorf("equity: expected cost basis 1032, got %s", got)
	}
}

func TestCompute_SellTaxesReduceProceeds(t *testing.T) {
	assetID := uuid.New()
	asset := &entity.Asset{ID: assetID, Symbol: "ITUB4", AssetClass: entity.AssetClassStockBR, Currency: entity.CurrencyBRL}

	trades := buildTrades(assetID, []tradeSpec{
		{date: "2024-01-10", side: entity.TradeSideBuy, qty: "10", price: "100"},
		{date: "2024-02-10", side: entity.TradeSideSell, qty: "10", price: "110", fees: "3", taxes: "7"},
	})

	pos := Compute(trades, assetMap(asset))[assetID]
	// proceeds = 1100 - 3 - 7 = 1090, cost removed = 1000
	if !pos.RealizedPnL.Equal(d("90")) {
		t.Errorf("expected realized pnl 90, got %s", pos.RealizedPnL)
	}
}

func TestCompute_EmptyInput(t *testing.T) {
	positions := Compute(nil, nil)
	if len(positions) != 0 {
		t.Errorf("expected no positions, got %d", len(positions))
	}
}
