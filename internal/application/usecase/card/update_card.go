package card

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// UpdateCardInput represents the input for card update. The full card
// configuration is replaced, matching how the settings form submits it.
type UpdateCardInput struct {
	UserID          uuid.UUID
	CardID          uuid.UUID
	Name            string
	Brand           entity.CardBrand
	Model           string
	CardType        entity.CardType
	CardAccountID   uuid.UUID
	SourceAccountID *uuid.UUID
	DueDay          int
	CloseDay        int
}

// UpdateCardUseCase handles card update logic.
type UpdateCardUseCase struct {
	cardRepo    adapter.CardRepository
	accountRepo adapter.AccountRepository
}

// NewUpdateCardUseCase creates a new UpdateCardUseCase instance.
func NewUpdateCardUseCase(cardRepo adapter.CardRepository, accountRepo adapter.AccountRepository) *UpdateCardUseCase {
	return &UpdateCardUseCase{cardRepo: cardRepo, accountRepo: accountRepo}
}

// Execute performs the card update.
func (uc *UpdateCardUseCase) Execute(ctx context.Context, input UpdateCardInput) (*entity.CreditCard, error) {
	card, err := uc.cardRepo.FindByID(ctx, input.UserID, input.CardID)
	if err != nil {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardNotFound,
			"cartão não encontrado",
			domainerror.ErrCardNotFound,
		)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardNameRequired,
			"nome do cartão é obrigatório",
			domainerror.ErrCardNameRequired,
		)
	}
	cardType, brand, err := normalizeCard(input.CardType, input.Brand)
	if err != nil {
		return nil, err
	}
	dueDay, closeDay, err := resolveCycleDays(cardType, input.DueDay, input.CloseDay)
	if err != nil {
		return nil, err
	}

	sourceID := input.CardAccountID
	if input.SourceAccountID != nil {
		sourceID = *input.SourceAccountID
	}
	if err := requireBankAccount(ctx, uc.accountRepo, input.UserID, input.CardAccountID); err != nil {
		return nil, err
	}
	if sourceID != input.CardAccountID {
		if err := requireBankAccount(ctx, uc.accountRepo, input.UserID, sourceID); err != nil {
			return nil, err
		}
	}

	if name != card.Name || cardType != card.CardType {
		if existing, err := uc.cardRepo.FindByNameAndType(ctx, input.UserID, name, cardType); err == nil && existing.ID != card.ID {
			return nil, domainerror.NewCardError(
				domainerror.ErrCodeCardNameTaken,
				"já existe um cartão com este nome e tipo",
				domainerror.ErrCardNameTaken,
			)
		}
	}

	card.Name = name
	card.Brand = brand
	card.Model = strings.TrimSpace(input.Model)
	card.CardType = cardType
	card.CardAccountID = input.CardAccountID
	card.SourceAccountID = sourceID
	card.DueDay = dueDay
	card.CloseDay = closeDay

	if err := uc.cardRepo.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("updating card: %w", err)
	}
	return card, nil
}
