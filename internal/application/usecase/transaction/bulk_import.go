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

// ImportRow is one already-typed transaction row from the CSV importer. The
// importer validates shape (ISO dates, numeric amounts) before rows reach
// the engine; raw CSV text never gets here.
type ImportRow struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // signed
	Account     string
	Category    string
	Method      string
	Notes       string
}

// BulkImportInput represents the input for a transaction import.
type BulkImportInput struct {
	UserID uuid.UUID
	Rows   []ImportRow
}

// BulkImportOutput reports how many rows were inserted.
type BulkImportOutput struct {
	Rows     int
	Inserted int
}

// BulkImportUseCase inserts imported rows, creating referenced bank accounts
// and expense categories on demand.
type BulkImportUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	categoryRepo    adapter.CategoryRepository
}

// NewBulkImportUseCase creates a new BulkImportUseCase instance.
func NewBulkImportUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
) *BulkImportUseCase {
	return &BulkImportUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute imports the rows. All inserts go in one batch so a failed import
// leaves nothing behind.
func (uc *BulkImportUseCase) Execute(ctx context.Context, input BulkImportInput) (*BulkImportOutput, error) {
	if len(input.Rows) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyImport,
			"importação sem linhas válidas",
			domainerror.ErrEmptyImport,
		)
	}

	accounts := make(map[string]uuid.UUID)
	categories := make(map[string]uuid.UUID)

	transactions := make([]*entity.Transaction, 0, len(input.Rows))
	for _, row := range input.Rows {
		if row.Account == "" || row.Description == "" || row.Amount.IsZero() {
			continue
		}

		accountID, err := uc.ensureAccount(ctx, input.UserID, row.Account, accounts)
		if err != nil {
			return nil, err
		}

		var categoryID *uuid.UUID
		if row.Category != "" {
			id, err := uc.ensureCategory(ctx, input.UserID, row.Category, categories)
			if err != nil {
				return nil, err
			}
			categoryID = &id
		}

		transactions = append(transactions, entity.NewTransaction(
			input.UserID,
			row.Date,
			row.Description,
			row.Amount,
			accountID,
			categoryID,
			entity.NormalizeMethod(row.Method),
			row.Notes,
		))
	}

	if len(transactions) == 0 {
		return &BulkImportOutput{Rows: len(input.Rows), Inserted: 0}, nil
	}

	if err := uc.transactionRepo.CreateBatch(ctx, transactions); err != nil {
		return nil, fmt.Errorf("importing transactions: %w", err)
	}

	return &BulkImportOutput{Rows: len(input.Rows), Inserted: len(transactions)}, nil
}

func (uc *BulkImportUseCase) ensureAccount(ctx context.Context, userID uuid.UUID, name string, cache map[string]uuid.UUID) (uuid.UUID, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}
	if existing, err := uc.accountRepo.FindByName(ctx, userID, name); err == nil {
		cache[name] = existing.ID
		return existing.ID, nil
	}

	account := entity.NewAccount(userID, name, entity.AccountTypeBank, entity.CurrencyBRL, false)
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return uuid.Nil, fmt.Errorf("creating imported account %q: %w", name, err)
	}
	cache[name] = account.ID
	return account.ID, nil
}

func (uc *BulkImportUseCase) ensureCategory(ctx context.Context, userID uuid.UUID, name string, cache map[string]uuid.UUID) (uuid.UUID, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}
	category, err := uc.categoryRepo.GetOrCreate(ctx, userID, name, entity.CategoryKindExpense)
	if err != nil {
		return uuid.Nil, fmt.Errorf("creating imported category %q: %w", name, err)
	}
	cache[name] = category.ID
	return category.ID, nil
}
