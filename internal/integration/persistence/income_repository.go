package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
	"github.com/controle-financeiro/backend/internal/integration/persistence/model"
)

// incomeRepository implements the adapter.IncomeRepository interface.
type incomeRepository struct {
	db *gorm.DB
}

// NewIncomeRepository creates a new income repository instance.
func NewIncomeRepository(db *gorm.DB) adapter.IncomeRepository {
	return &incomeRepository{
		db: db,
	}
}

// Create creates an income event with no cash leg.
func (r *incomeRepository) Create(ctx context.Context, event *entity.IncomeEvent) error {
	eventModel := model.IncomeEventFromEntity(event)
	result := r.db.WithContext(ctx).Create(eventModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateWithCash creates the event and its cash transaction atomically.
func (r *incomeRepository) CreateWithCash(ctx context.Context, event *entity.IncomeEvent, cash *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.IncomeEventFromEntity(event)).Error; err != nil {
			return err
		}
		return tx.Create(model.TransactionFromEntity(cash)).Error
	})
}

// FindByID retrieves an income event by ID for the given user.
func (r *incomeRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.IncomeEvent, error) {
	var eventModel model.IncomeEventModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&eventModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrIncomeNotFound
		}
		return nil, result.Error
	}
	return eventModel.ToEntity(), nil
}

// FindByUser retrieves all income events for the given user.
func (r *incomeRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.IncomeEvent, error) {
	var eventModels []model.IncomeEventModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&eventModels)
	if result.Error != nil {
		return nil, result.Error
	}

	events := make([]*entity.IncomeEvent, len(eventModels))
	for i := range eventModels {
		events[i] = eventModels[i].ToEntity()
	}
	return events, nil
}

// Delete removes an income event for the given user.
func (r *incomeRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.IncomeEventModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrIncomeNotFound
	}
	return nil
}

// SumByAsset returns total income per asset up to the given date.
func (r *incomeRepository) SumByAsset(ctx context.Context, userID uuid.UUID, until time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	type assetSum struct {
		AssetID uuid.UUID
		Total   decimal.Decimal
	}

	var sums []assetSum
	result := r.db.WithContext(ctx).Model(&model.IncomeEventModel{}).
		Select("asset_id, SUM(amount) AS total").
		Where("user_id = ? AND date <= ?", userID, until).
		Group("asset_id").
		Scan(&sums)
	if result.Error != nil {
		return nil, result.Error
	}

	totals := make(map[uuid.UUID]decimal.Decimal, len(sums))
	for _, sum := range sums {
		totals[sum.AssetID] = sum.Total
	}
	return totals, nil
}
