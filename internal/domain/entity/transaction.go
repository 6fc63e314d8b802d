package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionMethod is the closed set of settlement methods. Legacy imports
// used free-text tags ("Futuro", "Agendado") to mark scheduled-but-unsettled
// rows; those are translated to MethodCommitment on ingestion.
type TransactionMethod string

const (
	MethodPIX        TransactionMethod = "PIX"
	MethodDebit      TransactionMethod = "Debito"
	MethodCredit     TransactionMethod = "Credito"
	MethodInvestment TransactionMethod = "INV"
	MethodCommitment TransactionMethod = "Futuro"
	MethodNone       TransactionMethod = ""
)

// NormalizeMethod maps raw method strings (including legacy accented and
// free-text values) into the closed method set. Unknown tags pass through
// unchanged so imported data keeps its original label.
func NormalizeMethod(raw string) TransactionMethod {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return MethodNone
	case "pix":
		return MethodPIX
	case "debito", "débito":
		return MethodDebit
	case "credito", "crédito":
		return MethodCredit
	case "inv":
		return MethodInvestment
	case "futuro", "agendado":
		return MethodCommitment
	}
	return TransactionMethod(strings.TrimSpace(raw))
}

// IsCommitment reports whether the method marks a scheduled, not yet
// cash-settled row.
func (m TransactionMethod) IsCommitment() bool {
	return m == MethodCommitment
}

// Transaction represents one signed cash movement on an account.
// Negative amounts are outflows. A transfer is exactly two transactions
// with opposite signs, created atomically.
type Transaction struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Date         time.Time
	Description  string
	Amount       decimal.Decimal // BRL, negative = outflow
	AccountID    uuid.UUID
	CategoryID   *uuid.UUID
	Method       TransactionMethod
	Notes        string
	RecurrenceID *uuid.UUID // groups an installment/future series
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	accountID uuid.UUID,
	categoryID *uuid.UUID,
	method TransactionMethod,
	notes string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      amount,
		AccountID:   accountID,
		CategoryID:  categoryID,
		Method:      method,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransactionWithDetails carries a transaction with its account and category
// resolved, as the projector and report layers consume it.
type TransactionWithDetails struct {
	Transaction *Transaction
	Account     *Account
	Category    *Category
}

// CategoryKindOrEmpty returns the resolved category kind, or "" when the
// transaction is uncategorized.
func (t *TransactionWithDetails) CategoryKindOrEmpty() CategoryKind {
	if t.Category == nil {
		return ""
	}
	return t.Category.Kind
}
