// Package portfolio values computed positions against latest prices.
package portfolio

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Value turns positions into valued views using each asset's latest price and
// accumulated income. Pure function; callers persist nothing from it.
//
// Market value uses the last trade's FX rate for USD assets, not a live
// rate. A position without any stored price values at zero market price.
func Value(
	positions map[uuid.UUID]*entity.Position,
	latestPrices map[uuid.UUID]*entity.Price,
	incomeSums map[uuid.UUID]decimal.Decimal,
	assets map[uuid.UUID]*entity.Asset,
) []*entity.PositionView {
	views := make([]*entity.PositionView, 0, len(positions))

	for assetID, pos := range positions {
		view := &entity.PositionView{Position: *pos}

		if asset, ok := assets[assetID]; ok {
			view.Name = asset.Name
		}

		fx := decimal.NewFromInt(1)
		if pos.Currency == entity.CurrencyUSD && pos.LastTradeFX.IsPositive() {
			fx = pos.LastTradeFX
		}

		if p, ok := latestPrices[assetID]; ok {
			view.Price = p.Price
			priceDate := p.Date
			view.PriceDate = &priceDate
		}

		view.MarketValue = pos.Quantity.Mul(view.Price).Mul(fx)
		view.UnrealizedPnL = view.MarketValue.Sub(pos.CostBasis)

		if income, ok := incomeSums[assetID]; ok {
			view.Income = income
		}

		view.TotalReturn = view.UnrealizedPnL.Add(pos.RealizedPnL).Add(view.Income)
		if pos.CostBasis.IsPositive() {
			view.ReturnPct = view.TotalReturn.Div(pos.CostBasis).Mul(hundred)
		}

		views = append(views, view)
	}

	sort.Slice(views, func(i, j int) bool { return views[i].Symbol < views[j].Symbol })

	return views
}

// Summarize folds position views into portfolio totals. BrokerBalance is
// supplied by the caller (signed sum of broker-account transactions).
func Summarize(views []*entity.PositionView, brokerBalance decimal.Decimal) *entity.PortfolioSummary {
	s := &entity.PortfolioSummary{
		AssetCount:    len(views),
		BrokerBalance: brokerBalance,
	}

	for _, v := range views {
		s.TotalInvested = s.TotalInvested.Add(v.CostBasis)
		s.TotalMarket = s.TotalMarket.Add(v.MarketValue)
		s.TotalIncome = s.TotalIncome.Add(v.Income)
		s.TotalRealized = s.TotalRealized.Add(v.RealizedPnL)
		s.TotalUnrealized = s.TotalUnrealized.Add(v.UnrealizedPnL)
		s.TotalReturn = s.TotalReturn.Add(v.TotalReturn)
	}

	if s.TotalInvested.IsPositive() {
		s.TotalReturnPct = s.TotalReturn.Div(s.TotalInvested).Mul(hundred)
	}

	return s
}
