package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
	"github.com/controle-financeiro/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).Create(categoryModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrCategoryNameTaken
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a category by ID for the given user.
func (r *categoryRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindByName retrieves a category by exact name for the given user.
func (r *categoryRepository) FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindByUser retrieves all categories for the given user.
func (r *categoryRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// GetOrCreate returns the user's category with that name, creating it with
// the given kind when absent.
func (r *categoryRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, name string, kind entity.CategoryKind) (*entity.Category, error) {
	category, err := r.FindByName(ctx, userID, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, err
	}

	category = entity.NewCategory(userID, name, kind)
	if err := r.Create(ctx, category); err != nil {
		// A concurrent request may have created the same name first.
		if errors.Is(err, domainerror.ErrCategoryNameTaken) {
			return r.FindByName(ctx, userID, name)
		}
		return nil, err
	}
	return category, nil
}

// Update updates an existing category.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", category.UserID, category.ID).
		Save(categoryModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrCategoryNameTaken
		}
		return result.Error
	}
	return nil
}

// Delete removes a category for the given user.
func (r *categoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.CategoryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// UsageCount counts transactions and charges referencing the category.
func (r *categoryRepository) UsageCount(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	var transactions int64
	result := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("user_id = ? AND category_id = ?", userID, id).
		Count(&transactions)
	if result.Error != nil {
		return 0, result.Error
	}

	var charges int64
	result = r.db.WithContext(ctx).Model(&model.CreditCardChargeModel{}).
		Where("user_id = ? AND category_id = ?", userID, id).
		Count(&charges)
	if result.Error != nil {
		return 0, result.Error
	}

	return transactions + charges, nil
}
