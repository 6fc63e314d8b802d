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

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// Create creates a new account in the database.
func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountModel := model.AccountFromEntity(account)
	result := r.db.WithContext(ctx).Create(accountModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrAccountNameTaken
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves an account by ID for the given user.
func (r *accountRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Account, error) {
	var accountModel model.AccountModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// FindByName retrieves an account by exact name for the given user.
func (r *accountRepository) FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Account, error) {
	var accountModel model.AccountModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// FindByUser retrieves all accounts for the given user.
func (r *accountRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	var accountModels []model.AccountModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&accountModels)
	if result.Error != nil {
		return nil, result.Error
	}

	accounts := make([]*entity.Account, len(accountModels))
	for i := range accountModels {
		accounts[i] = accountModels[i].ToEntity()
	}
	return accounts, nil
}

// FindByType retrieves the user's accounts of one type.
func (r *accountRepository) FindByType(ctx context.Context, userID uuid.UUID, accountType entity.AccountType) ([]*entity.Account, error) {
	var accountModels []model.AccountModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, string(accountType)).
		Order("name ASC").
		Find(&accountModels)
	if result.Error != nil {
		return nil, result.Error
	}

	accounts := make([]*entity.Account, len(accountModels))
	for i := range accountModels {
		accounts[i] = accountModels[i].ToEntity()
	}
	return accounts, nil
}

// Update updates an existing account.
func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountModel := model.AccountFromEntity(account)
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", account.UserID, account.ID).
		Save(accountModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrAccountNameTaken
		}
		return result.Error
	}
	return nil
}

// Delete removes an account for the given user.
func (r *accountRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.AccountModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}
	return nil
}

// Usage counts references to the account across transactions, assets and cards.
func (r *accountRepository) Usage(ctx context.Context, userID, id uuid.UUID) (adapter.AccountUsage, error) {
	var usage adapter.AccountUsage

	result := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("user_id = ? AND account_id = ?", userID, id).
		Count(&usage.Transactions)
	if result.Error != nil {
		return adapter.AccountUsage{}, result.Error
	}

	result = r.db.WithContext(ctx).Model(&model.AssetModel{}).
		Where("user_id = ? AND (broker_account_id = ? OR source_account_id = ?)", userID, id, id).
		Count(&usage.Assets)
	if result.Error != nil {
		return adapter.AccountUsage{}, result.Error
	}

	result = r.db.WithContext(ctx).Model(&model.CreditCardModel{}).
		Where("user_id = ? AND (card_account_id = ? OR source_account_id = ?)", userID, id, id).
		Count(&usage.Cards)
	if result.Error != nil {
		return adapter.AccountUsage{}, result.Error
	}

	return usage, nil
}
