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

// tradeRepository implements the adapter.TradeRepository interface.
type tradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new trade repository instance.
func NewTradeRepository(db *gorm.DB) adapter.TradeRepository {
	return &tradeRepository{
		db: db,
	}
}

// Create creates a trade with no cash leg.
func (r *tradeRepository) Create(ctx context.Context, trade *entity.Trade) error {
	tradeModel := model.TradeFromEntity(trade)
	result := r.db.WithContext(ctx).Create(tradeModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateWithCash creates the trade and its linked cash transaction
// atomically, recording the transaction's ID on the trade.
func (r *tradeRepository) CreateWithCash(ctx context.Context, trade *entity.Trade, cash *entity.Transaction) error {
	trade.CashTransactionID = &cash.ID

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.TransactionFromEntity(cash)).Error; err != nil {
			return err
		}
		return tx.Create(model.TradeFromEntity(trade)).Error
	})
}

// FindByID retrieves a trade by ID for the given user.
func (r *tradeRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Trade, error) {
	var tradeModel model.TradeModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&tradeModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTradeNotFound
		}
		return nil, result.Error
	}
	return tradeModel.ToEntity(), nil
}

// FindByUser retrieves all trades for the given user.
func (r *tradeRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Trade, error) {
	var tradeModels []model.TradeModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&tradeModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTradeEntities(tradeModels), nil
}

// FindByAsset retrieves the asset's trades.
func (r *tradeRepository) FindByAsset(ctx context.Context, userID, assetID uuid.UUID) ([]*entity.Trade, error) {
	var tradeModels []model.TradeModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND asset_id = ?", userID, assetID).
		Order("date ASC, id ASC").
		Find(&tradeModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTradeEntities(tradeModels), nil
}

// DeleteWithCash removes the trade and its linked cash transaction atomically.
func (r *tradeRepository) DeleteWithCash(ctx context.Context, userID, tradeID, cashTransactionID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("user_id = ? AND id = ?", userID, tradeID).
			Delete(&model.TradeModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTradeNotFound
		}

		return tx.
			Where("user_id = ? AND id = ?", userID, cashTransactionID).
			Delete(&model.TransactionModel{}).Error
	})
}

// DeleteWithReversal removes the trade and posts a compensating cash
// transaction atomically.
func (r *tradeRepository) DeleteWithReversal(ctx context.Context, userID, tradeID uuid.UUID, reversal *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("user_id = ? AND id = ?", userID, tradeID).
			Delete(&model.TradeModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTradeNotFound
		}

		return tx.Create(model.TransactionFromEntity(reversal)).Error
	})
}

func toTradeEntities(tradeModels []model.TradeModel) []*entity.Trade {
	trades := make([]*entity.Trade, len(tradeModels))
	for i := range tradeModels {
		trades[i] = tradeModels[i].ToEntity()
	}
	return trades
}
