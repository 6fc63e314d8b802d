package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update. Nil fields
// are left unchanged.
type UpdateCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Name       *string
	Kind       *entity.CategoryKind
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*entity.Category, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeCategoryNotFound,
			"categoria não encontrada",
			domainerror.ErrCategoryNotFound,
		)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeCategoryNameRequired,
				"nome da categoria é obrigatório",
				domainerror.ErrCategoryNameRequired,
			)
		}
		if name != category.Name {
			if existing, err := uc.categoryRepo.FindByName(ctx, input.UserID, name); err == nil && existing.ID != category.ID {
				return nil, domainerror.NewAccountError(
					domainerror.ErrCodeCategoryNameTaken,
					"já existe uma categoria com esse nome",
					domainerror.ErrCategoryNameTaken,
				)
			}
		}
		category.Name = name
	}
	if input.Kind != nil {
		if !entity.IsValidCategoryKind(*input.Kind) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeInvalidCategoryKind,
				"tipo de categoria deve ser Despesa, Receita ou Transferencia",
				domainerror.ErrInvalidCategoryKind,
			)
		}
		category.Kind = *input.Kind
	}

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}
	return category, nil
}
