// Package portfolio values computed positions against latest prices.
package portfolio

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

func TestValue(t *testing.T) {
	brID := uuid.New()
	usID := uuid.New()

	positions := map[uuid.UUID]*entity.Position{
		brID: {
			AssetID:     brID,
			Symbol:      "PETR4",
			AssetClass:  entity.AssetClassStockBR,
			Currency:    entity.CurrencyBRL,
			Quantity:    d("10"),
			AvgCost:     d("30"),
			CostBasis:   d("300"),
			RealizedPnL: d("20"),
			LastTradeFX: d("1"),
		},
		usID: {
			AssetID:     usID,
			Symbol:      "VOO",
			AssetClass:  entity.AssetClassETFUS,
			Currency:    entity.CurrencyUSD,
			Quantity:    d("2"),
			AvgCost:     d("250"),
			CostBasis:   d("500"),
			RealizedPnL: decimal.Zero,
			LastTradeFX: d("5"),
		},
	}

	priceDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	prices := map[uuid.UUID]*entity.Price{
		brID: {AssetID: brID, Date: priceDate, Price: d("35")},
		usID: {AssetID: usID, Date: priceDate, Price: d("60")},
	}
	income := map[uuid.UUID]decimal.Decimal{
		brID: d("15"),
	}
	assets := map[uuid.UUID]*entity.Asset{
		brID: {ID: brID, Name: "Petrobras PN"},
		usID: {ID: usID, Name: "Vanguard S&P 500"},
	}

	views := Value(positions, prices, income, assets)

	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}

	// Sorted by symbol: PETR4 before VOO.
	petr, voo := views[0], views[1]
	if petr.Symbol != "PETR4" || voo.Symbol != "VOO" {
		t.Fatalf("unexpected order: %s, %s", petr.Symbol, voo.Symbol)
	}

	t.Run("BRL asset", func(t *testing.T) {
		if !petr.MarketValue.Equal(d("350")) {
			t.Errorf("expected market value 350, got %s", petr.MarketValue)
		}
		if !petr.UnrealizedPnL.Equal(d("50")) {
			t.Errorf("expected unrealized 50, got %s", petr.UnrealizedPnL)
		}
		// 50 unrealized + 20 realized + 15 income
		if !petr.TotalReturn.Equal(d("85")) {
			t.Errorf("expected total return 85, got %s", petr.TotalReturn)
		}
		if !petr.ReturnPct.Round(4).Equal(d("28.3333")) {
			t.Errorf("expected return pct 28.3333, got %s", petr.ReturnPct.Round(4))
		}
	})

	t.Run("USD asset converts at last trade fx", func(t *testing.T) {
		// 2 * 60 * 5 = 600 BRL
		if !voo.MarketValue.Equal(d("600")) {
			t.Errorf("expected market value 600, got %s", voo.MarketValue)
		}
		if !voo.UnrealizedPnL.Equal(d("100")) {
			t.Errorf("expected unrealized 100, got %s", voo.UnrealizedPnL)
		}
	})
}

func TestValue_NoPriceValuesAtZero(t *testing.T) {
	assetID := uuid.New()
	positions := map[uuid.UUID]*entity.Position{
		assetID: {
			AssetID:   assetID,
			Symbol:    "CDB-2027",
			Currency:  entity.CurrencyBRL,
			Quantity:  d("1"),
			CostBasis: d("1000"),
		},
	}

	views := Value(positions, nil, nil, nil)
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	if !views[0].MarketValue.IsZero() {
		t.Errorf("expected market value 0, got %s", views[0].MarketValue)
	}
	if !views[0].UnrealizedPnL.Equal(d("-1000")) {
		t.Errorf("expected unrealized -1000, got %s", views[0].UnrealizedPnL)
	}
	if views[0].PriceDate != nil {
		t.Error("expected nil price date")
	}
}

func TestValue_ZeroCostBasisHasZeroReturnPct(t *testing.T) {
	assetID := uuid.New()
	positions := map[uuid.UUID]*entity.Position{
		assetID: {
			AssetID:     assetID,
			Symbol:      "XPTO",
			Currency:    entity.CurrencyBRL,
			Quantity:    decimal.Zero,
			CostBasis:   decimal.Zero,
			RealizedPnL: d("40"),
		},
	}

	views := Value(positions, nil, nil, nil)
	if !views[0].ReturnPct.IsZero() {
		t.Errorf("expected return pct 0 when cost basis is 0, got %s", views[0].ReturnPct)
	}
	if !views[0].TotalReturn.Equal(d("40")) {
		t.Errorf("expected total return 40, got %s", views[0].TotalReturn)
	}
}

func TestSummarize(t *testing.T) {
	views := []*entity.PositionView{
		{
			Position:      entity.Position{CostBasis: d("300"), RealizedPnL: d("20")},
			MarketValue:   d("350"),
			UnrealizedPnL: d("50"),
			Income:        d("15"),
			TotalReturn:   d("85"),
		},
		{
			Position:      entity.Position{CostBasis: d("500")},
			MarketValue:   d("600"),
			UnrealizedPnL: d("100"),
			TotalReturn:   d("100"),
		},
	}

	s := Summarize(views, d("250"))

	if s.AssetCount != 2 {
		t.Errorf("expected 2 assets, got %d", s.AssetCount)
	}
	if !s.TotalInvested.Equal(d("800")) {
		t.Errorf("expected invested 800, got %s", s.TotalInvested)
	}
	if !s.TotalMarket.Equal(d("950")) {
		t.Errorf("expected market 950, got %s", s.TotalMarket)
	}
	if !s.TotalReturn.Equal(d("185")) {
		t.Errorf("expected return 185, got %s", s.TotalReturn)
	}
	if !s.TotalReturnPct.Round(4).Equal(d("23.125")) {
		t.Errorf("expected return pct 23.125, got %s", s.TotalReturnPct)
	}
	if !s.BrokerBalance.Equal(d("250")) {
		t.Errorf("expected broker balance 250, got %s", s.BrokerBalance)
	}
}
