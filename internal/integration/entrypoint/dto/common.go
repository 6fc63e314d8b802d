// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// FormatBRL renders a decimal amount as a display string ("R$ 1.234,56").
// Responses carry both the raw decimal string and this formatted form.
func FormatBRL(amount decimal.Decimal) string {
	cents := amount.Shift(2).Round(0).IntPart()
	return money.New(cents, money.BRL).Display()
}
