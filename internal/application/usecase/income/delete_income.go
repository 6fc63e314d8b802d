package income

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// DeleteIncomeInput represents the input for deleting an income event.
type DeleteIncomeInput struct {
	UserID   uuid.UUID
	IncomeID uuid.UUID
}

// DeleteIncomeUseCase removes an income event.
type DeleteIncomeUseCase struct {
	incomeRepo adapter.IncomeRepository
}

// NewDeleteIncomeUseCase creates a new DeleteIncomeUseCase instance.
func NewDeleteIncomeUseCase(incomeRepo adapter.IncomeRepository) *DeleteIncomeUseCase {
	return &DeleteIncomeUseCase{incomeRepo: incomeRepo}
}

// Execute deletes the income event for the given user.
func (uc *DeleteIncomeUseCase) Execute(ctx context.Context, input DeleteIncomeInput) error {
	if _, err := uc.incomeRepo.FindByID(ctx, input.UserID, input.IncomeID); err != nil {
		return domainerror.ErrIncomeNotFound
	}
	if err := uc.incomeRepo.Delete(ctx, input.UserID, input.IncomeID); err != nil {
		return fmt.Errorf("deleting income event: %w", err)
	}
	return nil
}
