package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// ListAccountsInput represents the input for listing accounts.
type ListAccountsInput struct {
	UserID uuid.UUID
	Type   *entity.AccountType
}

// ListAccountsUseCase lists the user's accounts.
type ListAccountsUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepo adapter.AccountRepository) *ListAccountsUseCase {
	return &ListAccountsUseCase{accountRepo: accountRepo}
}

// Execute returns the user's accounts, name ascending.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) ([]*entity.Account, error) {
	var accounts []*entity.Account
	var err error
	if input.Type != nil {
		accounts, err = uc.accountRepo.FindByType(ctx, input.UserID, *input.Type)
	} else {
		accounts, err = uc.accountRepo.FindByUser(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return accounts, nil
}
