package card

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// DeleteCardInput represents the input for card deletion.
type DeleteCardInput struct {
	UserID uuid.UUID
	CardID uuid.UUID
}

// DeleteCardUseCase removes a card that has no charges.
type DeleteCardUseCase struct {
	cardRepo adapter.CardRepository
}

// NewDeleteCardUseCase creates a new DeleteCardUseCase instance.
func NewDeleteCardUseCase(cardRepo adapter.CardRepository) *DeleteCardUseCase {
	return &DeleteCardUseCase{cardRepo: cardRepo}
}

// Execute deletes the card. Cards with recorded charges are kept and the
// caller gets a conflict.
func (uc *DeleteCardUseCase) Execute(ctx context.Context, input DeleteCardInput) error {
	if _, err := uc.cardRepo.FindByID(ctx, input.UserID, input.CardID); err != nil {
		return domainerror.NewCardError(
			domainerror.ErrCodeCardNotFound,
			"cartão não encontrado",
			domainerror.ErrCardNotFound,
		)
	}

	count, err := uc.cardRepo.ChargeCount(ctx, input.UserID, input.CardID)
	if err != nil {
		return fmt.Errorf("checking card usage: %w", err)
	}
	if count > 0 {
		return domainerror.NewCardError(
			domainerror.ErrCodeCardInUse,
			"não foi possível excluir cartão (possui faturas/movimentos)",
			domainerror.ErrCardInUse,
		)
	}

	if err := uc.cardRepo.Delete(ctx, input.UserID, input.CardID); err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}
	return nil
}
