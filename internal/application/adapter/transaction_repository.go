package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Search     string // Case-insensitive description match
}

// TransactionRepository defines the interface for transaction persistence
// operations. Every method is scoped to the owning user.
type TransactionRepository interface {
	// Create creates a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// CreateBatch creates multiple transactions atomically. A transfer's two
	// legs and a commitment schedule's monthly rows go through here.
	CreateBatch(ctx context.Context, transactions []*entity.Transaction) error

	// FindByID retrieves a transaction by ID for the given user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error)

	// FindByUser retrieves all of the user's transactions, (date, id) ascending.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// FindByFilter retrieves the user's transactions matching the filter,
	// (date, id) ascending.
	FindByFilter(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]*entity.Transaction, error)

	// FindByUserWithDetails retrieves the user's transactions with account and
	// category resolved, (date, id) ascending.
	FindByUserWithDetails(ctx context.Context, userID uuid.UUID) ([]*entity.TransactionWithDetails, error)

	// Update updates an existing transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction for the given user.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// SumByAccount returns the signed sum of the account's transactions.
	SumByAccount(ctx context.Context, userID, accountID uuid.UUID) (decimal.Decimal, error)
}
