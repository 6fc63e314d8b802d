package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// ListInvoicesInput represents the input for listing card invoices.
type ListInvoicesInput struct {
	UserID uuid.UUID
	CardID *uuid.UUID
	Status *entity.InvoiceStatus
}

// ListInvoicesOutput represents the matching invoices.
type ListInvoicesOutput struct {
	Invoices []*entity.CreditCardInvoice
}

// ListInvoicesUseCase lists invoices filtered by card and derived status.
type ListInvoicesUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewListInvoicesUseCase creates a new ListInvoicesUseCase instance.
func NewListInvoicesUseCase(invoiceRepo adapter.InvoiceRepository) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{invoiceRepo: invoiceRepo}
}

// Execute lists the user's invoices, due date descending.
func (uc *ListInvoicesUseCase) Execute(ctx context.Context, input ListInvoicesInput) (*ListInvoicesOutput, error) {
	invoices, err := uc.invoiceRepo.ListInvoices(ctx, input.UserID, adapter.InvoiceListFilter{
		CardID: input.CardID,
		Status: input.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	return &ListInvoicesOutput{Invoices: invoices}, nil
}
