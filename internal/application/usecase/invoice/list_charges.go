package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// ListChargesInput represents the input for listing card charges.
type ListChargesInput struct {
	UserID        uuid.UUID
	CardID        *uuid.UUID
	InvoicePeriod string
	Paid          *bool
}

// ListChargesOutput represents the matching charges with details.
type ListChargesOutput struct {
	Charges []*entity.ChargeWithDetails
}

// ListChargesUseCase lists charges with their card and category resolved.
type ListChargesUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewListChargesUseCase creates a new ListChargesUseCase instance.
func NewListChargesUseCase(invoiceRepo adapter.InvoiceRepository) *ListChargesUseCase {
	return &ListChargesUseCase{invoiceRepo: invoiceRepo}
}

// Execute lists the user's charges, (purchase date, id) ascending.
func (uc *ListChargesUseCase) Execute(ctx context.Context, input ListChargesInput) (*ListChargesOutput, error) {
	charges, err := uc.invoiceRepo.ListChargesWithDetails(ctx, input.UserID, adapter.ChargeFilter{
		CardID:        input.CardID,
		InvoicePeriod: input.InvoicePeriod,
		Paid:          input.Paid,
	})
	if err != nil {
		return nil, fmt.Errorf("listing charges: %w", err)
	}

	return &ListChargesOutput{Charges: charges}, nil
}
