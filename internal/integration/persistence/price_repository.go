package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	"github.com/controle-financeiro/backend/internal/integration/persistence/model"
)

// priceRepository implements the adapter.PriceRepository interface.
type priceRepository struct {
	db *gorm.DB
}

// NewPriceRepository creates a new price repository instance.
func NewPriceRepository(db *gorm.DB) adapter.PriceRepository {
	return &priceRepository{
		db: db,
	}
}

// Upsert writes the price, replacing any row for the same asset and date.
func (r *priceRepository) Upsert(ctx context.Context, price *entity.Price) error {
	priceModel := model.PriceFromEntity(price)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "asset_id"},
			{Name: "date"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"price", "source"}),
	}).Create(priceModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// LatestByAsset returns each asset's most recent price on or before asOf.
func (r *priceRepository) LatestByAsset(ctx context.Context, userID uuid.UUID, asOf time.Time) (map[uuid.UUID]*entity.Price, error) {
	var priceModels []model.PriceModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date <= ?", userID, asOf).
		Order("asset_id ASC, date ASC").
		Find(&priceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	// Ascending date order means the last row seen per asset wins.
	latest := make(map[uuid.UUID]*entity.Price)
	for i := range priceModels {
		latest[priceModels[i].AssetID] = priceModels[i].ToEntity()
	}
	return latest, nil
}

// FindByAsset retrieves the asset's price history, date descending.
func (r *priceRepository) FindByAsset(ctx context.Context, userID, assetID uuid.UUID) ([]*entity.Price, error) {
	var priceModels []model.PriceModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND asset_id = ?", userID, assetID).
		Order("date DESC").
		Find(&priceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	prices := make([]*entity.Price, len(priceModels))
	for i := range priceModels {
		prices[i] = priceModels[i].ToEntity()
	}
	return prices, nil
}
