package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_accounts_user_name"`
	Name            string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_accounts_user_name"`
	Type            string    `gorm:"type:varchar(20);not null;index"`
	Currency        string    `gorm:"type:varchar(3);not null;default:'BRL'"`
	ShowOnDashboard bool      `gorm:"default:false"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		Type:            entity.AccountType(m.Type),
		Currency:        entity.Currency(m.Currency),
		ShowOnDashboard: m.ShowOnDashboard,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// AccountFromEntity converts a domain Account entity to an AccountModel.
func AccountFromEntity(a *entity.Account) *AccountModel {
	return &AccountModel{
		ID:              a.ID,
		UserID:          a.UserID,
		Name:            a.Name,
		Type:            string(a.Type),
		Currency:        string(a.Currency),
		ShowOnDashboard: a.ShowOnDashboard,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
