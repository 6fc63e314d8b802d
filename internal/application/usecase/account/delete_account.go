package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// DeleteAccountUseCase removes an account that nothing references anymore.
type DeleteAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(accountRepo adapter.AccountRepository) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{accountRepo: accountRepo}
}

// Execute deletes the account. Accounts still referenced by transactions,
// assets or cards are kept and the caller gets a conflict.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	if _, err := uc.accountRepo.FindByID(ctx, input.UserID, input.AccountID); err != nil {
		return domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"conta não encontrada",
			domainerror.ErrAccountNotFound,
		)
	}

	usage, err := uc.accountRepo.Usage(ctx, input.UserID, input.AccountID)
	if err != nil {
		return fmt.Errorf("checking account usage: %w", err)
	}
	if usage.InUse() {
		return domainerror.NewAccountError(
			domainerror.ErrCodeAccountInUse,
			fmt.Sprintf("conta possui %d lançamentos, %d ativos e %d cartões vinculados",
				usage.Transactions, usage.Assets, usage.Cards),
			domainerror.ErrAccountInUse,
		)
	}

	if err := uc.accountRepo.Delete(ctx, input.UserID, input.AccountID); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	return nil
}
