package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryKind classifies categories for reporting. Transfer-kind categories
// are balance-neutral and excluded from income/expense totals.
type CategoryKind string

const (
	CategoryKindExpense  CategoryKind = "Despesa"
	CategoryKindIncome   CategoryKind = "Receita"
	CategoryKindTransfer CategoryKind = "Transferencia"
)

// Category represents a transaction/charge category.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Kind      CategoryKind
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(userID uuid.UUID, name string, kind CategoryKind) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsValidCategoryKind reports whether the given kind is known.
func IsValidCategoryKind(k CategoryKind) bool {
	switch k {
	case CategoryKindExpense, CategoryKindIncome, CategoryKindTransfer:
		return true
	}
	return false
}
