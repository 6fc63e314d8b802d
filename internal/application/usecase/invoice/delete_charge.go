package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// DeleteScope selects how much of an installment series a deletion removes.
type DeleteScope string

const (
	// DeleteScopeSingle removes exactly one charge.
	DeleteScopeSingle DeleteScope = "single"
	// DeleteScopeFuture removes the charge and its future unpaid siblings.
	DeleteScopeFuture DeleteScope = "future"
)

// DeleteChargeInput represents the input for deleting a charge.
type DeleteChargeInput struct {
	UserID   uuid.UUID
	ChargeID uuid.UUID
	Scope    DeleteScope
}

// DeleteChargeOutput reports how many charges were removed.
type DeleteChargeOutput struct {
	Deleted int
}

// DeleteChargeUseCase removes unpaid charges and adjusts their invoices.
type DeleteChargeUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewDeleteChargeUseCase creates a new DeleteChargeUseCase instance.
func NewDeleteChargeUseCase(invoiceRepo adapter.InvoiceRepository) *DeleteChargeUseCase {
	return &DeleteChargeUseCase{invoiceRepo: invoiceRepo}
}

// Execute deletes the charge. Scope future extends the deletion to every
// still-unpaid charge in the same series: rows sharing the group tag, or for
// legacy rows without one, rows on the same card and category whose
// description matches after stripping the installment suffix and whose
// purchase date is not earlier. Paid charges are never deleted.
func (uc *DeleteChargeUseCase) Execute(ctx context.Context, input DeleteChargeInput) (*DeleteChargeOutput, error) {
	charge, err := uc.invoiceRepo.FindChargeByID(ctx, input.UserID, input.ChargeID)
	if err != nil {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeChargeNotFound,
			"compra não encontrada",
			domainerror.ErrChargeNotFound,
		)
	}
	if charge.Paid {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeChargeAlreadyPaid,
			"compras já pagas não podem ser excluídas",
			domainerror.ErrChargeAlreadyPaid,
		)
	}

	ids := []uuid.UUID{charge.ID}
	if input.Scope == DeleteScopeFuture {
		siblings, err := uc.futureSiblings(ctx, input.UserID, charge)
		if err != nil {
			return nil, err
		}
		ids = append(ids, siblings...)
	}

	if err := uc.invoiceRepo.DeleteCharges(ctx, input.UserID, ids); err != nil {
		return nil, fmt.Errorf("deleting charges: %w", err)
	}

	return &DeleteChargeOutput{Deleted: len(ids)}, nil
}

func (uc *DeleteChargeUseCase) futureSiblings(
	ctx context.Context,
	userID uuid.UUID,
	charge *entity.CreditCardCharge,
) ([]uuid.UUID, error) {
	unpaid := false
	candidates, err := uc.invoiceRepo.ListCharges(ctx, userID, adapter.ChargeFilter{
		CardID: &charge.CardID,
		Paid:   &unpaid,
	})
	if err != nil {
		return nil, fmt.Errorf("loading series candidates: %w", err)
	}

	tag := charge.GroupTag()
	base := charge.BaseDescription()

	var ids []uuid.UUID
	for _, c := range candidates {
		if c.ID == charge.ID {
			continue
		}
		if tag != "" {
			if c.GroupTag() == tag {
				ids = append(ids, c.ID)
			}
			continue
		}
		// Legacy series rows predate group tags; match shape instead.
		if c.BaseDescription() != base {
			continue
		}
		if !sameCategory(c.CategoryID, charge.CategoryID) {
			continue
		}
		if c.PurchaseDate.Before(charge.PurchaseDate) {
			continue
		}
		ids = append(ids, c.ID)
	}

	return ids, nil
}

func sameCategory(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
