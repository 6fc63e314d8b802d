package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/application/usecase/ledger"
)

// ListTransactionsInput represents the input for listing ledger rows.
type ListTransactionsInput struct {
	UserID   uuid.UUID
	View     ledger.View
	DateFrom *time.Time
	DateTo   *time.Time
	Account  string
}

// ListTransactionsOutput represents the projected rows.
type ListTransactionsOutput struct {
	Rows []ledger.Row
}

// ListTransactionsUseCase lists the ledger through a view projection, so
// commitments and card charges surface exactly as the dashboard counts them.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	invoiceRepo     adapter.InvoiceRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	invoiceRepo adapter.InvoiceRepository,
) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		invoiceRepo:     invoiceRepo,
	}
}

// Execute projects the requested view over the user's rows.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	transactions, err := uc.transactionRepo.FindByUserWithDetails(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	charges, err := uc.invoiceRepo.ListChargesWithDetails(ctx, input.UserID, adapter.ChargeFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading charges: %w", err)
	}

	rows := ledger.Project(transactions, charges, input.View, time.Now().UTC())

	filtered := rows[:0:0]
	for _, r := range rows {
		if input.DateFrom != nil && r.Date.Before(*input.DateFrom) {
			continue
		}
		if input.DateTo != nil && r.Date.After(*input.DateTo) {
			continue
		}
		if input.Account != "" && r.Account != input.Account {
			continue
		}
		filtered = append(filtered, r)
	}

	return &ListTransactionsOutput{Rows: filtered}, nil
}
