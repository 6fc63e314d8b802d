package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeType is the closed set of investment income kinds.
type IncomeType string

const (
	IncomeTypeDividend   IncomeType = "DIVIDEND"
	IncomeTypeJCP        IncomeType = "JCP"
	IncomeTypeInterest   IncomeType = "INTEREST"
	IncomeTypeCoupon     IncomeType = "COUPON"
	IncomeTypeFixedYield IncomeType = "RF_YIELD"
	IncomeTypeFIIRent    IncomeType = "FII_RENT"
)

// AllIncomeTypes lists every known income type.
var AllIncomeTypes = []IncomeType{
	IncomeTypeDividend,
	IncomeTypeJCP,
	IncomeTypeInterest,
	IncomeTypeCoupon,
	IncomeTypeFixedYield,
	IncomeTypeFIIRent,
}

// IsValidIncomeType reports whether the given type is known.
func IsValidIncomeType(t IncomeType) bool {
	for _, known := range AllIncomeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IncomeEvent represents additive investment income (dividends, interest,
// rent). Income never touches cost basis.
type IncomeEvent struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	AssetID   uuid.UUID
	Date      time.Time
	Type      IncomeType
	Amount    decimal.Decimal // > 0, BRL
	Note      string
	CreatedAt time.Time
}

// NewIncomeEvent creates a new IncomeEvent entity.
func NewIncomeEvent(userID, assetID uuid.UUID, date time.Time, incomeType IncomeType, amount decimal.Decimal, note string) *IncomeEvent {
	return &IncomeEvent{
		ID:        uuid.New(),
		UserID:    userID,
		AssetID:   assetID,
		Date:      date,
		Type:      incomeType,
		Amount:    amount,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
}
