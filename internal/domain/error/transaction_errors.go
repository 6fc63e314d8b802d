// Package error defines domain-specific errors for the finance backend.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not positive.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionKind is returned when the transaction kind is invalid.
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")

	// ErrInvalidDueDay is returned when a commitment due day is outside 1..31.
	ErrInvalidDueDay = errors.New("due day must be between 1 and 31")

	// ErrInvalidRepeatMonths is returned when the commitment repetition count is outside 1..120.
	ErrInvalidRepeatMonths = errors.New("repeat months must be between 1 and 120")

	// ErrNotACommitment is returned when settling a transaction that is not a commitment.
	ErrNotACommitment = errors.New("transaction is not a scheduled commitment")

	// ErrInvalidSettleAccount is returned when a commitment is settled against a non cash account.
	ErrInvalidSettleAccount = errors.New("commitments settle against bank or cash accounts only")

	// ErrTransferSameAccount is returned when a transfer names the same account twice.
	ErrTransferSameAccount = errors.New("transfer accounts must be distinct")

	// ErrTransferAccountTypes is returned when a transfer pairs unsupported account types.
	ErrTransferAccountTypes = errors.New("transfers move money between bank and broker accounts")

	// ErrInsufficientBalance is returned when the source account cannot cover a transfer.
	ErrInsufficientBalance = errors.New("insufficient balance in source account")

	// ErrEmptyImport is returned when a bulk import carries no rows.
	ErrEmptyImport = errors.New("import contains no rows")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionKind   TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidDueDay            TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidRepeatMonths      TransactionErrorCode = "TXN-010005"
	ErrCodeInvalidSettleAccount     TransactionErrorCode = "TXN-010006"
	ErrCodeTransferSameAccount      TransactionErrorCode = "TXN-010007"
	ErrCodeTransferAccountTypes     TransactionErrorCode = "TXN-010008"
	ErrCodeEmptyImport              TransactionErrorCode = "TXN-010009"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010010"

	// Conflict errors (02XXXX)
	ErrCodeInsufficientBalance TransactionErrorCode = "TXN-020001"
	ErrCodeNotACommitment      TransactionErrorCode = "TXN-020002"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
