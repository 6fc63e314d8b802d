package error

import "errors"

// Asset domain errors.
var (
	// ErrAssetNotFound is returned when an asset is not found in the system.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInvalidAssetClass is returned when the asset class is outside the closed set.
	ErrInvalidAssetClass = errors.New("invalid asset class")

	// ErrAssetSymbolRequired is returned when the asset symbol is empty.
	ErrAssetSymbolRequired = errors.New("asset symbol is required")

	// ErrAssetSymbolTaken is returned when the user already has an asset with that symbol.
	ErrAssetSymbolTaken = errors.New("asset symbol already in use")

	// ErrAssetInUse is returned when deleting an asset that still has trades or income.
	ErrAssetInUse = errors.New("asset has trades or income events and cannot be deleted")
)

// Trade, income and price domain errors.
var (
	// ErrTradeNotFound is returned when a trade is not found in the system.
	ErrTradeNotFound = errors.New("trade not found")

	// ErrInvalidTradeSide is returned when the side is not BUY or SELL.
	ErrInvalidTradeSide = errors.New("invalid trade side")

	// ErrInvalidTradeQuantity is returned when the quantity is not positive.
	ErrInvalidTradeQuantity = errors.New("trade quantity must be positive")

	// ErrInvalidTradePrice is returned when the unit price is not positive.
	ErrInvalidTradePrice = errors.New("trade price must be positive")

	// ErrInvalidTradeCosts is returned when fees or taxes are negative.
	ErrInvalidTradeCosts = errors.New("fees and taxes must not be negative")

	// ErrExchangeRateRequired is returned when a USD asset trade has no positive FX rate.
	ErrExchangeRateRequired = errors.New("exchange rate is required for USD assets")

	// ErrInsufficientBrokerCash is returned when the broker account cannot fund a BUY.
	ErrInsufficientBrokerCash = errors.New("insufficient cash in broker account")

	// ErrTradeReversalFailed is returned when neither the linked cash transaction
	// nor a compensating reversal could be recorded for a deleted trade.
	ErrTradeReversalFailed = errors.New("trade cash reversal failed")

	// ErrIncomeNotFound is returned when an income event is not found in the system.
	ErrIncomeNotFound = errors.New("income event not found")

	// ErrInvalidIncomeType is returned when the income type is outside the closed set.
	ErrInvalidIncomeType = errors.New("invalid income type")

	// ErrInvalidIncomeAmount is returned when the income amount is not positive.
	ErrInvalidIncomeAmount = errors.New("income amount must be positive")

	// ErrInvalidPrice is returned when a manual price is not positive.
	ErrInvalidPrice = errors.New("price must be positive")

	// ErrPriceNotFound is returned when no price exists for the asset.
	ErrPriceNotFound = errors.New("price not found")
)

// InvestmentErrorCode defines error codes for asset, trade, income and price errors.
type InvestmentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAssetClass     InvestmentErrorCode = "INV-010001"
	ErrCodeAssetSymbolRequired   InvestmentErrorCode = "INV-010002"
	ErrCodeAssetNotFound         InvestmentErrorCode = "INV-010003"
	ErrCodeInvalidTradeSide      InvestmentErrorCode = "INV-010004"
	ErrCodeInvalidTradeQuantity  InvestmentErrorCode = "INV-010005"
	ErrCodeInvalidTradePrice     InvestmentErrorCode = "INV-010006"
	ErrCodeInvalidTradeCosts     InvestmentErrorCode = "INV-010007"
	ErrCodeExchangeRateRequired  InvestmentErrorCode = "INV-010008"
	ErrCodeTradeNotFound         InvestmentErrorCode = "INV-010009"
	ErrCodeInvalidIncomeType     InvestmentErrorCode = "INV-010010"
	ErrCodeInvalidIncomeAmount   InvestmentErrorCode = "INV-010011"
	ErrCodeInvalidPrice          InvestmentErrorCode = "INV-010012"

	// Conflict errors (02XXXX)
	ErrCodeAssetSymbolTaken       InvestmentErrorCode = "INV-020001"
	ErrCodeAssetInUse             InvestmentErrorCode = "INV-020002"
	ErrCodeInsufficientBrokerCash InvestmentErrorCode = "INV-020003"

	// Reconciliation errors (03XXXX)
	ErrCodeTradeReversalFailed InvestmentErrorCode = "INV-030001"
)

// InvestmentError represents an investment error with code and message.
type InvestmentError struct {
	Code    InvestmentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvestmentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InvestmentError) Unwrap() error {
	return e.Err
}

// NewInvestmentError creates a new InvestmentError with the given code and message.
func NewInvestmentError(code InvestmentErrorCode, message string, err error) *InvestmentError {
	return &InvestmentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
