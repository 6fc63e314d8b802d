package error

import "errors"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found in the system.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAccountType is returned when the account type is outside the closed set.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrInvalidCurrency is returned when the currency is not BRL or USD.
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrAccountNameRequired is returned when the account name is empty.
	ErrAccountNameRequired = errors.New("account name is required")

	// ErrAccountNameTaken is returned when the user already has an account with that name.
	ErrAccountNameTaken = errors.New("account name already in use")

	// ErrAccountInUse is returned when deleting an account still referenced by
	// transactions, assets or cards.
	ErrAccountInUse = errors.New("account is referenced and cannot be deleted")
)

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidCategoryKind is returned when the category kind is invalid.
	ErrInvalidCategoryKind = errors.New("invalid category kind")

	// ErrCategoryNameRequired is returned when the category name is empty.
	ErrCategoryNameRequired = errors.New("category name is required")

	// ErrCategoryNameTaken is returned when the user already has a category with that name.
	ErrCategoryNameTaken = errors.New("category name already in use")

	// ErrCategoryInUse is returned when deleting a category still referenced by
	// transactions or charges.
	ErrCategoryInUse = errors.New("category is referenced and cannot be deleted")
)

// AccountErrorCode defines error codes for account and category errors.
type AccountErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAccountType   AccountErrorCode = "ACC-010001"
	ErrCodeInvalidCurrency      AccountErrorCode = "ACC-010002"
	ErrCodeAccountNameRequired  AccountErrorCode = "ACC-010003"
	ErrCodeAccountNotFound      AccountErrorCode = "ACC-010004"
	ErrCodeInvalidCategoryKind  AccountErrorCode = "ACC-010005"
	ErrCodeCategoryNameRequired AccountErrorCode = "ACC-010006"
	ErrCodeCategoryNotFound     AccountErrorCode = "ACC-010007"

	// Conflict errors (02XXXX)
	ErrCodeAccountNameTaken  AccountErrorCode = "ACC-020001"
	ErrCodeAccountInUse      AccountErrorCode = "ACC-020002"
	ErrCodeCategoryNameTaken AccountErrorCode = "ACC-020003"
	ErrCodeCategoryInUse     AccountErrorCode = "ACC-020004"
)

// AccountError represents an account or category error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
