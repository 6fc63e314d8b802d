package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

// DeleteCategoryUseCase removes a category that nothing references anymore.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute deletes the category. Categories still referenced by transactions
// or charges are kept and the caller gets a conflict.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	if _, err := uc.categoryRepo.FindByID(ctx, input.UserID, input.CategoryID); err != nil {
		return domainerror.NewAccountError(
			domainerror.ErrCodeCategoryNotFound,
			"categoria não encontrada",
			domainerror.ErrCategoryNotFound,
		)
	}

	count, err := uc.categoryRepo.UsageCount(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return fmt.Errorf("checking category usage: %w", err)
	}
	if count > 0 {
		return domainerror.NewAccountError(
			domainerror.ErrCodeCategoryInUse,
			fmt.Sprintf("categoria possui %d lançamentos vinculados", count),
			domainerror.ErrCategoryInUse,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, input.UserID, input.CategoryID); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return nil
}
