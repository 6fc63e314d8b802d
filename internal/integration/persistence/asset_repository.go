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

// assetRepository implements the adapter.AssetRepository interface.
type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository instance.
func NewAssetRepository(db *gorm.DB) adapter.AssetRepository {
	return &assetRepository{
		db: db,
	}
}

// Create creates a new asset in the database.
func (r *assetRepository) Create(ctx context.Context, asset *entity.Asset) error {
	assetModel := model.AssetFromEntity(asset)
	result := r.db.WithContext(ctx).Create(assetModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrAssetSymbolTaken
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves an asset by ID for the given user.
func (r *assetRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Asset, error) {
	var assetModel model.AssetModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&assetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAssetNotFound
		}
		return nil, result.Error
	}
	return assetModel.ToEntity(), nil
}

// FindBySymbol retrieves an asset by symbol for the given user.
func (r *assetRepository) FindBySymbol(ctx context.Context, userID uuid.UUID, symbol string) (*entity.Asset, error) {
	var assetModel model.AssetModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		First(&assetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAssetNotFound
		}
		return nil, result.Error
	}
	return assetModel.ToEntity(), nil
}

// FindByUser retrieves all assets for the given user.
func (r *assetRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Asset, error) {
	var assetModels []model.AssetModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("symbol ASC").
		Find(&assetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	assets := make([]*entity.Asset, len(assetModels))
	for i := range assetModels {
		assets[i] = assetModels[i].ToEntity()
	}
	return assets, nil
}

// Update updates an existing asset.
func (r *assetRepository) Update(ctx context.Context, asset *entity.Asset) error {
	assetModel := model.AssetFromEntity(asset)
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", asset.UserID, asset.ID).
		Save(assetModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrAssetSymbolTaken
		}
		return result.Error
	}
	return nil
}

// DeleteWithPrices removes an asset and its stored prices atomically.
func (r *assetRepository) DeleteWithPrices(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("user_id = ? AND asset_id = ?", userID, id).
			Delete(&model.PriceModel{}).Error
		if err != nil {
			return err
		}

		result := tx.
			Where("user_id = ? AND id = ?", userID, id).
			Delete(&model.AssetModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrAssetNotFound
		}
		return nil
	})
}

// UsageCount counts trades and income events referencing the asset.
func (r *assetRepository) UsageCount(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	var trades int64
	result := r.db.WithContext(ctx).Model(&model.TradeModel{}).
		Where("user_id = ? AND asset_id = ?", userID, id).
		Count(&trades)
	if result.Error != nil {
		return 0, result.Error
	}

	var incomes int64
	result = r.db.WithContext(ctx).Model(&model.IncomeEventModel{}).
		Where("user_id = ? AND asset_id = ?", userID, id).
		Count(&incomes)
	if result.Error != nil {
		return 0, result.Error
	}

	return trades + incomes, nil
}
