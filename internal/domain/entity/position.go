package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Position is the derived state of one asset after replaying its trades in
// (date, id) order under the average-cost method. Positions are never
// persisted; every read recomputes them from the trade stream.
type Position struct {
	AssetID     uuid.UUID
	Symbol      string
	AssetClass  AssetClass
	Currency    Currency
	Quantity    decimal.Decimal
	AvgCost     decimal.Decimal
	CostBasis   decimal.Decimal
	RealizedPnL decimal.Decimal
	LastTradeFX decimal.Decimal // exchange rate of the most recent trade
}

// PositionView is a valued position: the position plus latest price, income
// and the return figures derived from them.
type PositionView struct {
	Position

	Name          string
	Price         decimal.Decimal
	PriceDate     *time.Time
	MarketValue   decimal.Decimal
	UnrealizedPnL decimal.Decimal
	Income        decimal.Decimal
	TotalReturn   decimal.Decimal
	ReturnPct     decimal.Decimal
}

// PortfolioSummary aggregates position views across the whole portfolio.
type PortfolioSummary struct {
	AssetCount      int
	TotalInvested   decimal.Decimal
	TotalMarket     decimal.Decimal
	TotalIncome     decimal.Decimal
	TotalRealized   decimal.Decimal
	TotalUnrealized decimal.Decimal
	TotalReturn     decimal.Decimal
	TotalReturnPct  decimal.Decimal
	BrokerBalance   decimal.Decimal
}
