package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// UpdateAccountInput represents the input for account update. Nil fields are
// left unchanged.
type UpdateAccountInput struct {
	UserID          uuid.UUID
	AccountID       uuid.UUID
	Name            *string
	Type            *entity.AccountType
	Currency        *entity.Currency
	ShowOnDashboard *bool
}

// UpdateAccountUseCase handles account update logic.
type UpdateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewUpdateAccountUseCase creates a new UpdateAccountUseCase instance.
func NewUpdateAccountUseCase(accountRepo adapter.AccountRepository) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{accountRepo: accountRepo}
}

// Execute performs the account update.
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*entity.Account, error) {
	account, err := uc.accountRepo.FindByID(ctx, input.UserID, input.AccountID)
	if err != nil {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"conta não encontrada",
			domainerror.ErrAccountNotFound,
		)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeAccountNameRequired,
				"nome da conta é obrigatório",
				domainerror.ErrAccountNameRequired,
			)
		}
		if name != account.Name {
			if existing, err := uc.accountRepo.FindByName(ctx, input.UserID, name); err == nil && existing.ID != account.ID {
				return nil, domainerror.NewAccountError(
					domainerror.ErrCodeAccountNameTaken,
					"já existe uma conta com esse nome",
					domainerror.ErrAccountNameTaken,
				)
			}
		}
		account.Name = name
	}
	if input.Type != nil {
		if !entity.IsValidAccountType(*input.Type) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeInvalidAccountType,
				"tipo de conta inválido",
				domainerror.ErrInvalidAccountType,
			)
		}
		account.Type = *input.Type
	}
	if input.Currency != nil {
		if !entity.IsValidCurrency(*input.Currency) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeInvalidCurrency,
				"moeda inválida",
				domainerror.ErrInvalidCurrency,
			)
		}
		account.Currency = *input.Currency
	}
	if input.ShowOnDashboard != nil {
		account.ShowOnDashboard = *input.ShowOnDashboard
	}

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}
	return account, nil
}
