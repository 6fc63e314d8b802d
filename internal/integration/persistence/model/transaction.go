package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date         time.Time       `gorm:"type:date;not null;index"`
	Description  string          `gorm:"type:varchar(255);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AccountID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	Method       string          `gorm:"type:varchar(20);index"`
	Notes        string          `gorm:"type:text"`
	RecurrenceID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Account  *AccountModel  `gorm:"foreignKey:AccountID;references:ID"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:           m.ID,
		UserID:       m.UserID,
		Date:         m.Date,
		Description:  m.Description,
		Amount:       m.Amount,
		AccountID:    m.AccountID,
		CategoryID:   m.CategoryID,
		Method:       entity.TransactionMethod(m.Method),
		Notes:        m.Notes,
		RecurrenceID: m.RecurrenceID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToEntityWithDetails converts the model with its preloaded account and
// category relations.
func (m *TransactionModel) ToEntityWithDetails() *entity.TransactionWithDetails {
	details := &entity.TransactionWithDetails{Transaction: m.ToEntity()}
	if m.Account != nil {
		details.Account = m.Account.ToEntity()
	}
	if m.Category != nil {
		details.Category = m.Category.ToEntity()
	}
	return details
}

// TransactionFromEntity converts a domain Transaction entity to a TransactionModel.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:           t.ID,
		UserID:       t.UserID,
		Date:         t.Date,
		Description:  t.Description,
		Amount:       t.Amount,
		AccountID:    t.AccountID,
		CategoryID:   t.CategoryID,
		Method:       string(t.Method),
		Notes:        t.Notes,
		RecurrenceID: t.RecurrenceID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
