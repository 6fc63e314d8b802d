// Package account contains account-related use cases.
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

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID          uuid.UUID
	Name            string
	Type            entity.AccountType
	Currency        entity.Currency
	ShowOnDashboard bool
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{accountRepo: accountRepo}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNameRequired,
			"nome da conta é obrigatório",
			domainerror.ErrAccountNameRequired,
		)
	}
	if !entity.IsValidAccountType(input.Type) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountType,
			"tipo de conta inválido",
			domainerror.ErrInvalidAccountType,
		)
	}
	currency := input.Currency
	if currency == "" {
		currency = entity.CurrencyBRL
	}
	if !entity.IsValidCurrency(currency) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidCurrency,
			"moeda inválida",
			domainerror.ErrInvalidCurrency,
		)
	}

	if _, err := uc.accountRepo.FindByName(ctx, input.UserID, name); err == nil {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNameTaken,
			"já existe uma conta com esse nome",
			domainerror.ErrAccountNameTaken,
		)
	}

	account := entity.NewAccount(input.UserID, name, input.Type, currency, input.ShowOnDashboard)
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}
	return &CreateAccountOutput{Account: account}, nil
}
