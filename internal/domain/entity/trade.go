package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeSide is the direction of a trade.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// IsValidTradeSide reports whether the given side is known.
func IsValidTradeSide(s TradeSide) bool {
	return s == TradeSideBuy || s == TradeSideSell
}

// Trade represents one immutable buy or sell. The only allowed change after
// creation is a full delete with cash reversal. CashTransactionID links the
// trade to the cash movement posted on the broker account at creation time,
// so reversal never has to reconstruct the match heuristically.
type Trade struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	AssetID           uuid.UUID
	Date              time.Time
	Side              TradeSide
	Quantity          decimal.Decimal // > 0
	Price             decimal.Decimal // > 0, in the asset's currency
	ExchangeRate      decimal.Decimal // FX to BRL; 1 unless the asset is USD
	Fees              decimal.Decimal
	Taxes             decimal.Decimal
	Note              string
	CashTransactionID *uuid.UUID
	CreatedAt         time.Time
}

// NewTrade creates a new Trade entity.
func NewTrade(
	userID uuid.UUID,
	assetID uuid.UUID,
	date time.Time,
	side TradeSide,
	quantity decimal.Decimal,
	price decimal.Decimal,
	exchangeRate decimal.Decimal,
	fees decimal.Decimal,
	taxes decimal.Decimal,
	note string,
) *Trade {
	return &Trade{
		ID:           uuid.New(),
		UserID:       userID,
		AssetID:      assetID,
		Date:         date,
		Side:         side,
		Quantity:     quantity,
		Price:        price,
		ExchangeRate: exchangeRate,
		Fees:         fees,
		Taxes:        taxes,
		Note:         note,
		CreatedAt:    time.Now().UTC(),
	}
}

// TradeWithAsset carries a trade with its asset resolved; the position fold
// needs the asset's currency and class.
type TradeWithAsset struct {
	Trade *Trade
	Asset *Asset
}
