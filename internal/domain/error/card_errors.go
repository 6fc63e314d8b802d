package error

import "errors"

// Credit card and invoice domain errors.
var (
	// ErrCardNotFound is returned when a card is not found in the system.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardNameRequired is returned when the card name is empty.
	ErrCardNameRequired = errors.New("card name is required")

	// ErrCardNameTaken is returned when the user already has a card with that name and type.
	ErrCardNameTaken = errors.New("card name already in use")

	// ErrInvalidCardBrand is returned when the brand is not Visa or Master.
	ErrInvalidCardBrand = errors.New("invalid card brand")

	// ErrInvalidCardType is returned when the card type is not Credito or Debito.
	ErrInvalidCardType = errors.New("invalid card type")

	// ErrInvalidDueCloseDay is returned when due or close day falls outside range.
	ErrInvalidDueCloseDay = errors.New("due day must be 1..31 and close day 0..31")

	// ErrCardAccountNotBank is returned when a card is linked to a non bank account.
	ErrCardAccountNotBank = errors.New("card accounts must be bank accounts")

	// ErrCardInUse is returned when deleting a card that still has charges.
	ErrCardInUse = errors.New("card has charges and cannot be deleted")

	// ErrInvalidChargeAmount is returned when a charge amount is not positive.
	ErrInvalidChargeAmount = errors.New("charge amount must be positive")

	// ErrInvalidInstallments is returned when the installment count is outside 1..120.
	ErrInvalidInstallments = errors.New("installments must be between 1 and 120")

	// ErrChargeNotFound is returned when a charge is not found in the system.
	ErrChargeNotFound = errors.New("charge not found")

	// ErrChargeAlreadyPaid is returned when deleting a charge that is already paid.
	ErrChargeAlreadyPaid = errors.New("paid charges cannot be deleted")

	// ErrInvoiceNotFound is returned when an invoice is not found in the system.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvoiceAlreadyPaid is returned when paying an invoice with nothing outstanding.
	ErrInvoiceAlreadyPaid = errors.New("invoice has no outstanding amount")

	// ErrNoPayingAccount is returned when no bank account is available to pay an invoice.
	ErrNoPayingAccount = errors.New("no bank account available to pay invoice")
)

// CardErrorCode defines error codes for card, charge and invoice errors.
type CardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCardNameRequired    CardErrorCode = "CRD-010001"
	ErrCodeInvalidCardBrand    CardErrorCode = "CRD-010002"
	ErrCodeInvalidCardType     CardErrorCode = "CRD-010003"
	ErrCodeInvalidDueCloseDay  CardErrorCode = "CRD-010004"
	ErrCodeCardAccountNotBank  CardErrorCode = "CRD-010005"
	ErrCodeInvalidChargeAmount CardErrorCode = "CRD-010006"
	ErrCodeInvalidInstallments CardErrorCode = "CRD-010007"
	ErrCodeCardNotFound        CardErrorCode = "CRD-010008"
	ErrCodeChargeNotFound      CardErrorCode = "CRD-010009"
	ErrCodeInvoiceNotFound     CardErrorCode = "CRD-010010"
	ErrCodeChargeCategory      CardErrorCode = "CRD-010011"

	// Conflict errors (02XXXX)
	ErrCodeCardNameTaken      CardErrorCode = "CRD-020001"
	ErrCodeCardInUse          CardErrorCode = "CRD-020002"
	ErrCodeChargeAlreadyPaid  CardErrorCode = "CRD-020003"
	ErrCodeInvoiceAlreadyPaid CardErrorCode = "CRD-020004"
	ErrCodeNoPayingAccount    CardErrorCode = "CRD-020005"
)

// CardError represents a card or invoice error with code and message.
type CardError struct {
	Code    CardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CardError) Unwrap() error {
	return e.Err
}

// NewCardError creates a new CardError with the given code and message.
func NewCardError(code CardErrorCode, message string, err error) *CardError {
	return &CardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
