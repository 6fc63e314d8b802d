package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	UserID uuid.UUID
	Kind   *entity.CategoryKind
}

// ListCategoriesUseCase lists the user's categories.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

// Execute returns the user's categories, name ascending.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) ([]*entity.Category, error) {
	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	if input.Kind == nil {
		return categories, nil
	}

	filtered := make([]*entity.Category, 0, len(categories))
	for _, c := range categories {
		if c.Kind == *input.Kind {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}
