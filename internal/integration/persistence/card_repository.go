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

// cardRepository implements the adapter.CardRepository interface.
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository instance.
func NewCardRepository(db *gorm.DB) adapter.CardRepository {
	return &cardRepository{
		db: db,
	}
}

// Create creates a new card in the database.
func (r *cardRepository) Create(ctx context.Context, card *entity.CreditCard) error {
	cardModel := model.CreditCardFromEntity(card)
	result := r.db.WithContext(ctx).Create(cardModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrCardNameTaken
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a card by ID for the given user.
func (r *cardRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.CreditCard, error) {
	var cardModel model.CreditCardModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&cardModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCardNotFound
		}
		return nil, result.Error
	}
	return cardModel.ToEntity(), nil
}

// FindByUser retrieves all cards for the given user.
func (r *cardRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CreditCard, error) {
	var cardModels []model.CreditCardModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&cardModels)
	if result.Error != nil {
		return nil, result.Error
	}

	cards := make([]*entity.CreditCard, len(cardModels))
	for i := range cardModels {
		cards[i] = cardModels[i].ToEntity()
	}
	return cards, nil
}

// FindByNameAndType retrieves a card by name and type for the given user.
func (r *cardRepository) FindByNameAndType(ctx context.Context, userID uuid.UUID, name string, cardType entity.CardType) (*entity.CreditCard, error) {
	var cardModel model.CreditCardModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ? AND card_type = ?", userID, name, string(cardType)).
		First(&cardModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCardNotFound
		}
		return nil, result.Error
	}
	return cardModel.ToEntity(), nil
}

// Update updates an existing card.
func (r *cardRepository) Update(ctx context.Context, card *entity.CreditCard) error {
	cardModel := model.CreditCardFromEntity(card)
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", card.UserID, card.ID).
		Save(cardModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrCardNameTaken
		}
		return result.Error
	}
	return nil
}

// Delete removes a card for the given user.
func (r *cardRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.CreditCardModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCardNotFound
	}
	return nil
}

// ChargeCount counts charges recorded against the card.
func (r *cardRepository) ChargeCount(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.CreditCardChargeModel{}).
		Where("user_id = ? AND card_id = ?", userID, id).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
