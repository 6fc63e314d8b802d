// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccountType represents the kind of account a transaction can post to.
type AccountType string

const (
	AccountTypeBank   AccountType = "Banco"
	AccountTypeCard   AccountType = "Cartao"
	AccountTypeCash   AccountType = "Dinheiro"
	AccountTypeBroker AccountType = "Corretora"
)

// Currency is the set of currencies the system handles. Everything settles
// in BRL; USD assets carry a per-trade exchange rate.
type Currency string

const (
	CurrencyBRL Currency = "BRL"
	CurrencyUSD Currency = "USD"
)

// Account represents a cash account (bank, cash, broker) or a card ledger.
type Account struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Type            AccountType
	Currency        Currency
	ShowOnDashboard bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewAccount creates a new Account entity.
func NewAccount(userID uuid.UUID, name string, accountType AccountType, currency Currency, showOnDashboard bool) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		Type:            accountType,
		Currency:        currency,
		ShowOnDashboard: showOnDashboard,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsValidAccountType reports whether the given type is one of the known kinds.
func IsValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeBank, AccountTypeCard, AccountTypeCash, AccountTypeBroker:
		return true
	}
	return false
}

// IsValidCurrency reports whether the given currency is supported.
func IsValidCurrency(c Currency) bool {
	return c == CurrencyBRL || c == CurrencyUSD
}
