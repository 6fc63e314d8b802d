package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// CardRepository defines the interface for credit card persistence operations.
type CardRepository interface {
	// Create creates a new card.
	Create(ctx context.Context, card *entity.CreditCard) error

	// FindByID retrieves a card by ID for the given user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.CreditCard, error)

	// FindByUser retrieves all cards for the given user, name ascending.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CreditCard, error)

	// FindByNameAndType retrieves a card by name and type for the given user.
	FindByNameAndType(ctx context.Context, userID uuid.UUID, name string, cardType entity.CardType) (*entity.CreditCard, error)

	// Update updates an existing card.
	Update(ctx context.Context, card *entity.CreditCard) error

	// Delete removes a card for the given user.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// ChargeCount counts charges recorded against the card.
	ChargeCount(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

// ChargeFilter defines filter options for listing charges.
type ChargeFilter struct {
	CardID        *uuid.UUID
	InvoicePeriod string
	Paid          *bool
	StartDate     *time.Time
	EndDate       *time.Time
}

// InvoiceListFilter defines filter options for listing invoices.
type InvoiceListFilter struct {
	CardID *uuid.UUID
	Status *entity.InvoiceStatus
}

// InvoiceRepository defines the interface for charge and invoice persistence.
// Multi-row mutations run atomically: a partial charge registration, payment
// or deletion never persists.
type InvoiceRepository interface {
	// RegisterCharges appends the charges and upserts each touched invoice's
	// total, all in one storage transaction. Charges may span periods.
	RegisterCharges(ctx context.Context, userID uuid.UUID, cardID uuid.UUID, charges []*entity.CreditCardCharge, dueDateFor func(period string) time.Time) error

	// FindInvoice retrieves one card invoice by period for the given user.
	FindInvoice(ctx context.Context, userID, cardID uuid.UUID, period string) (*entity.CreditCardInvoice, error)

	// FindInvoiceByID retrieves an invoice by ID for the given user.
	FindInvoiceByID(ctx context.Context, userID, id uuid.UUID) (*entity.CreditCardInvoice, error)

	// ListInvoices retrieves the user's invoices matching the filter,
	// due date descending.
	ListInvoices(ctx context.Context, userID uuid.UUID, filter InvoiceListFilter) ([]*entity.CreditCardInvoice, error)

	// FindChargeByID retrieves a charge by ID for the given user.
	FindChargeByID(ctx context.Context, userID, id uuid.UUID) (*entity.CreditCardCharge, error)

	// ListCharges retrieves the user's charges matching the filter,
	// (purchase date, id) ascending.
	ListCharges(ctx context.Context, userID uuid.UUID, filter ChargeFilter) ([]*entity.CreditCardCharge, error)

	// ListChargesWithDetails resolves card and category for each charge.
	ListChargesWithDetails(ctx context.Context, userID uuid.UUID, filter ChargeFilter) ([]*entity.ChargeWithDetails, error)

	// ApplyPayment increments the invoice's paid amount, flips the period's
	// charges to paid when markChargesPaid is set, and inserts the cash
	// transactions, all in one storage transaction.
	ApplyPayment(ctx context.Context, userID, invoiceID uuid.UUID, amount decimal.Decimal, markChargesPaid bool, cashTransactions []*entity.Transaction) error

	// DeleteCharges removes the charges, decrements their invoices and drops
	// invoice rows left with nothing owed, all in one storage transaction.
	DeleteCharges(ctx context.Context, userID uuid.UUID, chargeIDs []uuid.UUID) error
}
