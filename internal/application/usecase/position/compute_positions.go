// Package position computes investment positions from the raw trade log.
package position

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// Compute folds trades into average-cost positions, one per asset. It is a
// pure function: callers recompute on every read instead of maintaining
// derived tables.
//
// Trades are processed in (date, created_at, id) ascending order. A BUY adds
// quantity*price*fx plus FX-adjusted fees (and taxes, except for fixed-income
// classes, whose taxes settle at redemption) to the cost basis. A SELL
// realizes the blended average cost: proceeds minus cost removed goes to
// realized P&L, and both quantity and cost basis shrink. Selling more than
// the held quantity is tolerated with avg cost treated as zero; the position
// goes negative rather than the trade being rejected.
func Compute(trades []*entity.Trade, assets map[uuid.UUID]*entity.Asset) map[uuid.UUID]*entity.Position {
	sorted := make([]*entity.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})

	positions := make(map[uuid.UUID]*entity.Position)

	for _, t := range sorted {
		pos, ok := positions[t.AssetID]
		if !ok {
			pos = &entity.Position{
				AssetID:     t.AssetID,
				Quantity:    decimal.Zero,
				CostBasis:   decimal.Zero,
				RealizedPnL: decimal.Zero,
				LastTradeFX: decimal.NewFromInt(1),
			}
			if asset, found := assets[t.AssetID]; found {
				pos.Symbol = asset.Symbol
				pos.AssetClass = asset.AssetClass
				pos.Currency = asset.Currency
			}
			positions[t.AssetID] = pos
		}

		fx := tradeFX(t, pos.Currency)
		pos.LastTradeFX = fx

		grossBRL := t.Quantity.Mul(t.Price).Mul(fx)
		feesBRL := t.Fees.Mul(fx)
		taxesBRL := t.Taxes.Mul(fx)

		switch t.Side {
		case entity.TradeSideBuy:
			cost := grossBRL.Add(feesBRL)
			if !pos.AssetClass.IsFixedIncome() {
				cost = cost.Add(taxesBRL)
			}
			pos.Quantity = pos.Quantity.Add(t.Quantity)
			pos.CostBasis = pos.CostBasis.Add(cost)

		case entity.TradeSideSell:
			avgCost := decimal.Zero
			if pos.Quantity.IsPositive() {
				avgCost = pos.CostBasis.Div(pos.Quantity)
			}
			proceeds := grossBRL.Sub(feesBRL).Sub(taxesBRL)
			costRemoved := avgCost.Mul(t.Quantity)
			pos.RealizedPnL = pos.RealizedPnL.Add(proceeds.Sub(costRemoved))
			pos.Quantity = pos.Quantity.Sub(t.Quantity)
			pos.CostBasis = pos.CostBasis.Sub(costRemoved)
		}
	}

	for _, pos := range positions {
		if pos.Quantity.IsZero() {
			pos.AvgCost = decimal.Zero
		} else {
			pos.AvgCost = pos.CostBasis.Div(pos.Quantity)
		}
	}

	return positions
}

func tradeFX(t *entity.Trade, currency entity.Currency) decimal.Decimal {
	if currency == entity.CurrencyUSD && t.ExchangeRate.IsPositive() {
		return t.ExchangeRate
	}
	return decimal.NewFromInt(1)
}
