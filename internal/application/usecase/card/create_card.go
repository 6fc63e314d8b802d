// Package card contains card configuration use cases.
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

// CreateCardInput represents the input for card creation. SourceAccountID
// may be nil to pay invoices from the linked bank account itself.
type CreateCardInput struct {
	UserID          uuid.UUID
	Name            string
	Brand           entity.CardBrand
	Model           string
	CardType        entity.CardType
	CardAccountID   uuid.UUID
	SourceAccountID *uuid.UUID
	DueDay          int
	CloseDay        int
}

// CreateCardOutput represents the output of card creation.
type CreateCardOutput struct {
	Card *entity.CreditCard
}

// CreateCardUseCase handles card creation logic.
type CreateCardUseCase struct {
	cardRepo    adapter.CardRepository
	accountRepo adapter.AccountRepository
}

// NewCreateCardUseCase creates a new CreateCardUseCase instance.
func NewCreateCardUseCase(cardRepo adapter.CardRepository, accountRepo adapter.AccountRepository) *CreateCardUseCase {
	return &CreateCardUseCase{cardRepo: cardRepo, accountRepo: accountRepo}
}

// Execute performs the card creation.
func (uc *CreateCardUseCase) Execute(ctx context.Context, input CreateCardInput) (*CreateCardOutput, error) {
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
	if err := uc.requireBankAccount(ctx, input.UserID, input.CardAccountID); err != nil {
		return nil, err
	}
	if sourceID != input.CardAccountID {
		if err := uc.requireBankAccount(ctx, input.UserID, sourceID); err != nil {
			return nil, err
		}
	}

	if _, err := uc.cardRepo.FindByNameAndType(ctx, input.UserID, name, cardType); err == nil {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardNameTaken,
			"já existe um cartão com este nome e tipo",
			domainerror.ErrCardNameTaken,
		)
	}

	card := entity.NewCreditCard(input.UserID, name, brand, strings.TrimSpace(input.Model), cardType, input.CardAccountID, sourceID, dueDay, closeDay)
	if err := uc.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("creating card: %w", err)
	}
	return &CreateCardOutput{Card: card}, nil
}

func (uc *CreateCardUseCase) requireBankAccount(ctx context.Context, userID, accountID uuid.UUID) error {
	return requireBankAccount(ctx, uc.accountRepo, userID, accountID)
}

func requireBankAccount(ctx context.Context, accountRepo adapter.AccountRepository, userID, accountID uuid.UUID) error {
	account, err := accountRepo.FindByID(ctx, userID, accountID)
	if err != nil || account.Type != entity.AccountTypeBank {
		return domainerror.NewCardError(
			domainerror.ErrCodeCardAccountNotBank,
			"conta vinculada ao cartão é obrigatória e deve ser do tipo Banco",
			domainerror.ErrCardAccountNotBank,
		)
	}
	return nil
}

func normalizeCard(cardType entity.CardType, brand entity.CardBrand) (entity.CardType, entity.CardBrand, error) {
	switch cardType {
	case entity.CardTypeCredit, entity.CardTypeDebit:
	default:
		return "", "", domainerror.NewCardError(
			domainerror.ErrCodeInvalidCardType,
			"tipo do cartão deve ser Credito ou Debito",
			domainerror.ErrInvalidCardType,
		)
	}
	switch brand {
	case entity.CardBrandVisa, entity.CardBrandMaster:
	default:
		return "", "", domainerror.NewCardError(
			domainerror.ErrCodeInvalidCardBrand,
			"bandeira do cartão deve ser Visa ou Master",
			domainerror.ErrInvalidCardBrand,
		)
	}
	return cardType, brand, nil
}

// resolveCycleDays validates the invoice cycle days. Debit cards have no
// invoice cycle, so both days collapse to their fixed values.
func resolveCycleDays(cardType entity.CardType, dueDay, closeDay int) (int, int, error) {
	if cardType == entity.CardTypeDebit {
		return 1, 0, nil
	}
	if dueDay < 1 || dueDay > 31 || closeDay < 0 || closeDay > 31 {
		return 0, 0, domainerror.NewCardError(
			domainerror.ErrCodeInvalidDueCloseDay,
			"dia de vencimento deve estar entre 1 e 31 e fechamento entre 0 e 31",
			domainerror.ErrInvalidDueCloseDay,
		)
	}
	return dueDay, closeDay, nil
}
