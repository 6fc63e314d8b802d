package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// SettleCommitmentInput represents the input for settling a commitment.
type SettleCommitmentInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	PaymentDate   time.Time
	AccountID     uuid.UUID
	Amount        decimal.Decimal
	Notes         string
}

// SettleCommitmentUseCase converts a scheduled commitment into a dated cash
// row on a bank or cash account.
type SettleCommitmentUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
}

// NewSettleCommitmentUseCase creates a new SettleCommitmentUseCase instance.
func NewSettleCommitmentUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
) *SettleCommitmentUseCase {
	return &SettleCommitmentUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

// Execute rewrites the commitment row in place: payment date, paying
// account, settled amount, and the method flips from Futuro to PIX.
func (uc *SettleCommitmentUseCase) Execute(ctx context.Context, input SettleCommitmentInput) error {
	amount := input.Amount.Abs()
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"valor deve ser maior que zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	account, err := uc.accountRepo.FindByID(ctx, input.UserID, input.AccountID)
	if err != nil {
		return domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"conta inválida",
			domainerror.ErrAccountNotFound,
		)
	}
	if account.Type != entity.AccountTypeBank && account.Type != entity.AccountTypeCash {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidSettleAccount,
			"pagamento deve ser em conta do tipo Banco ou Dinheiro",
			domainerror.ErrInvalidSettleAccount,
		)
	}

	t, err := uc.transactionRepo.FindByID(ctx, input.UserID, input.TransactionID)
	if err != nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"lançamento não encontrado",
			domainerror.ErrTransactionNotFound,
		)
	}
	if !t.Method.IsCommitment() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotACommitment,
			"lançamento não é um compromisso agendado",
			domainerror.ErrNotACommitment,
		)
	}

	t.Date = input.PaymentDate
	t.AccountID = account.ID
	t.Amount = amount.Neg()
	t.Method = entity.MethodPIX
	if input.Notes != "" {
		t.Notes = input.Notes
	}
	t.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.Update(ctx, t); err != nil {
		return fmt.Errorf("settling commitment: %w", err)
	}
	return nil
}
