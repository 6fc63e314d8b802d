// Package transaction contains cash transaction use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/application/usecase/invoice"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

const (
	// MaxRepeatMonths caps a commitment schedule.
	MaxRepeatMonths = 120
)

// CreateTransactionInput represents the input for transaction creation.
// Amount is always positive; the sign comes from the resolved kind.
type CreateTransactionInput struct {
	UserID          uuid.UUID
	Date            time.Time
	Description     string
	Amount          decimal.Decimal
	Kind            entity.CategoryKind // optional; inferred when empty
	AccountID       uuid.UUID
	SourceAccountID *uuid.UUID // transfers only
	CategoryID      *uuid.UUID
	Method          string // raw; normalized on ingestion
	CardID          *uuid.UUID
	Notes           string
	DueDay          int // commitments only, 1..31
	RepeatMonths    int // commitments only, 1..120
	Installments    int // credit card only
}

// CreateMode reports which path a creation took.
type CreateMode string

const (
	ModeSingle         CreateMode = "single"
	ModeTransfer       CreateMode = "transfer"
	ModeFutureSchedule CreateMode = "future_schedule"
	ModeCreditCharge   CreateMode = "credit_card_charge"
	ModeDebitCard      CreateMode = "debit_card_expense"
)

// CreateTransactionOutput represents the result of transaction creation.
type CreateTransactionOutput struct {
	Mode      CreateMode
	Created   int
	FirstDate *time.Time
	LastDate  *time.Time
}

// CreateTransactionUseCase routes a new entry to the right flow: plain cash
// row, two-leg transfer, monthly commitment schedule, debit card expense or
// credit card charge.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	categoryRepo    adapter.CategoryRepository
	cardRepo        adapter.CardRepository
	registerCharge  *invoice.RegisterChargeUseCase
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
	cardRepo adapter.CardRepository,
	registerCharge *invoice.RegisterChargeUseCase,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		cardRepo:        cardRepo,
		registerCharge:  registerCharge,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	amount := input.Amount.Abs()
	if !amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"valor deve ser maior que zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	account, err := uc.accountRepo.FindByID(ctx, input.UserID, input.AccountID)
	if err != nil {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"conta inválida",
			domainerror.ErrAccountNotFound,
		)
	}

	var category *entity.Category
	if input.CategoryID != nil {
		category, err = uc.categoryRepo.FindByID(ctx, input.UserID, *input.CategoryID)
		if err != nil {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeCategoryNotFound,
				"categoria inválida",
				domainerror.ErrCategoryNotFound,
			)
		}
	}

	description := input.Description
	if description == "" {
		if category != nil {
			description = category.Name
		} else {
			description = "Lançamento"
		}
	}

	kind, err := resolveKind(input.Kind, category, input.Amount)
	if err != nil {
		return nil, err
	}

	method := entity.NormalizeMethod(input.Method)

	if method.IsCommitment() {
		if kind != entity.CategoryKindExpense {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionKind,
				"método Futuro só é permitido para Despesa",
				domainerror.ErrInvalidTransactionKind,
			)
		}
		return uc.createSchedule(ctx, input, description, amount)
	}

	if kind == entity.CategoryKindTransfer {
		return uc.createTransfer(ctx, input, account, description, amount, method)
	}

	if kind == entity.CategoryKindExpense {
		switch method {
		case entity.MethodCredit:
			if input.CardID == nil {
				return nil, domainerror.NewCardError(
					domainerror.ErrCodeCardNotFound,
					"para método Crédito, selecione um cartão do tipo Crédito",
					domainerror.ErrCardNotFound,
				)
			}
			_, err := uc.registerCharge.Execute(ctx, invoice.RegisterChargeInput{
				UserID:       input.UserID,
				CardID:       *input.CardID,
				PurchaseDate: input.Date,
				Amount:       amount,
				CategoryID:   input.CategoryID,
				Description:  description,
				Note:         input.Notes,
				Installments: input.Installments,
			})
			if err != nil {
				return nil, err
			}
			return &CreateTransactionOutput{Mode: ModeCreditCharge}, nil

		case entity.MethodDebit:
			if input.CardID != nil {
				return uc.createDebitCardExpense(ctx, input, description, amount)
			}
		}
	}

	signed := amount.Neg()
	if kind == entity.CategoryKindIncome {
		signed = amount
	}

	t := entity.NewTransaction(input.UserID, input.Date, description, signed, account.ID, input.CategoryID, method, input.Notes)
	if err := uc.transactionRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	return &CreateTransactionOutput{Mode: ModeSingle, Created: 1}, nil
}

// createSchedule replicates a commitment row monthly on the due day. When
// today is already past the due day the first occurrence rolls to next
// month. All rows share one recurrence id.
func (uc *CreateTransactionUseCase) createSchedule(
	ctx context.Context,
	input CreateTransactionInput,
	description string,
	amount decimal.Decimal,
) (*CreateTransactionOutput, error) {
	if input.DueDay < 1 || input.DueDay > 31 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDueDay,
			"dia de vencimento deve estar entre 1 e 31",
			domainerror.ErrInvalidDueDay,
		)
	}
	repeat := input.RepeatMonths
	if repeat == 0 {
		repeat = 1
	}
	if repeat < 1 || repeat > MaxRepeatMonths {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidRepeatMonths,
			fmt.Sprintf("meses para replicar deve estar entre 1 e %d", MaxRepeatMonths),
			domainerror.ErrInvalidRepeatMonths,
		)
	}

	today := time.Now().UTC()
	year, month := today.Year(), int(today.Month())
	if today.Day() > input.DueDay {
		year, month = addMonths(year, month, 1)
	}

	recurrenceID := uuid.New()
	rows := make([]*entity.Transaction, 0, repeat)
	for i := 0; i < repeat; i++ {
		y, m := addMonths(year, month, i)
		due := dueDateFor(y, m, input.DueDay)
		t := entity.NewTransaction(
			input.UserID,
			due,
			description,
			amount.Neg(),
			input.AccountID,
			input.CategoryID,
			entity.MethodCommitment,
			input.Notes,
		)
		rid := recurrenceID
		t.RecurrenceID = &rid
		rows = append(rows, t)
	}

	if err := uc.transactionRepo.CreateBatch(ctx, rows); err != nil {
		return nil, fmt.Errorf("creating commitment schedule: %w", err)
	}

	first := rows[0].Date
	last := rows[len(rows)-1].Date
	return &CreateTransactionOutput{
		Mode:      ModeFutureSchedule,
		Created:   len(rows),
		FirstDate: &first,
		LastDate:  &last,
	}, nil
}

// createTransfer writes the two opposing legs atomically. Transfers move
// money between Bank and Broker accounts of distinct types only, and the
// source must cover the amount.
func (uc *CreateTransactionUseCase) createTransfer(
	ctx context.Context,
	input CreateTransactionInput,
	destination *entity.Account,
	description string,
	amount decimal.Decimal,
	method entity.TransactionMethod,
) (*CreateTransactionOutput, error) {
	if input.SourceAccountID == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransferSameAccount,
			"conta origem é obrigatória para Transferência",
			domainerror.ErrTransferSameAccount,
		)
	}
	if *input.SourceAccountID == destination.ID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransferSameAccount,
			"conta origem e destino devem ser diferentes",
			domainerror.ErrTransferSameAccount,
		)
	}

	source, err := uc.accountRepo.FindByID(ctx, input.UserID, *input.SourceAccountID)
	if err != nil {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"conta origem inválida",
			domainerror.ErrAccountNotFound,
		)
	}

	if !isTransferable(source.Type) || !isTransferable(destination.Type) || source.Type == destination.Type {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransferAccountTypes,
			"para Transferência, use contas de tipos diferentes (Banco <-> Corretora)",
			domainerror.ErrTransferAccountTypes,
		)
	}

	balance, err := uc.transactionRepo.SumByAccount(ctx, input.UserID, source.ID)
	if err != nil {
		return nil, fmt.Errorf("checking source balance: %w", err)
	}
	if balance.LessThan(amount) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInsufficientBalance,
			"saldo insuficiente na conta origem",
			domainerror.ErrInsufficientBalance,
		)
	}

	out := entity.NewTransaction(
		input.UserID,
		input.Date,
		fmt.Sprintf("TRANSF -> %s | %s", destination.Name, description),
		amount.Neg(),
		source.ID,
		input.CategoryID,
		method,
		input.Notes,
	)
	in := entity.NewTransaction(
		input.UserID,
		input.Date,
		fmt.Sprintf("TRANSF <- %s | %s", source.Name, description),
		amount,
		destination.ID,
		input.CategoryID,
		method,
		input.Notes,
	)

	if err := uc.transactionRepo.CreateBatch(ctx, []*entity.Transaction{out, in}); err != nil {
		return nil, fmt.Errorf("creating transfer: %w", err)
	}

	return &CreateTransactionOutput{Mode: ModeTransfer, Created: 2}, nil
}

// createDebitCardExpense posts the expense straight to the bank account the
// debit card is linked to.
func (uc *CreateTransactionUseCase) createDebitCardExpense(
	ctx context.Context,
	input CreateTransactionInput,
	description string,
	amount decimal.Decimal,
) (*CreateTransactionOutput, error) {
	card, err := uc.cardRepo.FindByID(ctx, input.UserID, *input.CardID)
	if err != nil || card.CardType != entity.CardTypeDebit {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardNotFound,
			"cartão de débito inválido ou não encontrado",
			domainerror.ErrCardNotFound,
		)
	}

	linked, err := uc.accountRepo.FindByID(ctx, input.UserID, card.CardAccountID)
	if err != nil || linked.Type != entity.AccountTypeBank {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardAccountNotBank,
			"cartão Débito deve estar vinculado a uma conta Banco",
			domainerror.ErrCardAccountNotBank,
		)
	}

	t := entity.NewTransaction(
		input.UserID,
		input.Date,
		fmt.Sprintf("DEBITO CARTAO %s | %s", card.Name, description),
		amount.Neg(),
		linked.ID,
		input.CategoryID,
		entity.MethodDebit,
		input.Notes,
	)
	if err := uc.transactionRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating debit card expense: %w", err)
	}

	return &CreateTransactionOutput{Mode: ModeDebitCard, Created: 1}, nil
}

func resolveKind(requested entity.CategoryKind, category *entity.Category, rawAmount decimal.Decimal) (entity.CategoryKind, error) {
	if requested != "" && !entity.IsValidCategoryKind(requested) {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionKind,
			"tipo inválido",
			domainerror.ErrInvalidTransactionKind,
		)
	}
	if requested != "" && category != nil && requested != category.Kind {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionKind,
			"tipo incompatível com a categoria",
			domainerror.ErrInvalidTransactionKind,
		)
	}
	if requested != "" {
		return requested, nil
	}
	if category != nil {
		return category.Kind, nil
	}
	if rawAmount.IsNegative() {
		return entity.CategoryKindExpense, nil
	}
	return entity.CategoryKindIncome, nil
}

func isTransferable(t entity.AccountType) bool {
	return t == entity.AccountTypeBank || t == entity.AccountTypeBroker
}

func addMonths(year, month, n int) (int, int) {
	month += n
	for month > 12 {
		month -= 12
		year++
	}
	return year, month
}

func dueDateFor(year, month, day int) time.Time {
	if max := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day(); day > max {
		day = max
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
