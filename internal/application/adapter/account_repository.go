// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// AccountUsage counts the rows that still reference an account.
type AccountUsage struct {
	Transactions int64
	Assets       int64
	Cards        int64
}

// InUse reports whether any reference remains.
func (u AccountUsage) InUse() bool {
	return u.Transactions > 0 || u.Assets > 0 || u.Cards > 0
}

// AccountRepository defines the interface for account persistence operations.
// Every method is scoped to the owning user; rows belonging to other users
// behave as if they did not exist.
type AccountRepository interface {
	// Create creates a new account.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by ID for the given user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Account, error)

	// FindByName retrieves an account by exact name for the given user.
	FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Account, error)

	// FindByUser retrieves all accounts for the given user, name ascending.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)

	// FindByType retrieves the user's accounts of one type.
	FindByType(ctx context.Context, userID uuid.UUID, accountType entity.AccountType) ([]*entity.Account, error)

	// Update updates an existing account.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes an account for the given user.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// Usage counts references to the account across transactions, assets and cards.
	Usage(ctx context.Context, userID, id uuid.UUID) (AccountUsage, error)
}

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by ID for the given user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Category, error)

	// FindByName retrieves a category by exact name for the given user.
	FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error)

	// FindByUser retrieves all categories for the given user, name ascending.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// GetOrCreate returns the user's category with that name, creating it with
	// the given kind when absent.
	GetOrCreate(ctx context.Context, userID uuid.UUID, name string, kind entity.CategoryKind) (*entity.Category, error)

	// Update updates an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category for the given user.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// UsageCount counts transactions and charges referencing the category.
	UsageCount(ctx context.Context, userID, id uuid.UUID) (int64, error)
}
