// Package category contains category-related use cases.
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

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID uuid.UUID
	Name   string
	Kind   entity.CategoryKind
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeCategoryNameRequired,
			"nome da categoria é obrigatório",
			domainerror.ErrCategoryNameRequired,
		)
	}
	if !entity.IsValidCategoryKind(input.Kind) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidCategoryKind,
			"tipo de categoria deve ser Despesa, Receita ou Transferencia",
			domainerror.ErrInvalidCategoryKind,
		)
	}

	if _, err := uc.categoryRepo.FindByName(ctx, input.UserID, name); err == nil {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeCategoryNameTaken,
			"já existe uma categoria com esse nome",
			domainerror.ErrCategoryNameTaken,
		)
	}

	category := entity.NewCategory(input.UserID, name, input.Kind)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return &CreateCategoryOutput{Category: category}, nil
}
