package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// CreditCardModel represents the credit_cards table in the database.
type CreditCardModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_cards_user_name_type"`
	Name            string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_cards_user_name_type"`
	Brand           string    `gorm:"type:varchar(20);not null"`
	Model           string    `gorm:"type:varchar(50)"`
	CardType        string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_cards_user_name_type"`
	CardAccountID   uuid.UUID `gorm:"type:uuid;not null;index"`
	SourceAccountID uuid.UUID `gorm:"type:uuid;not null"`
	DueDay          int       `gorm:"not null;default:1"`
	CloseDay        int       `gorm:"not null;default:0"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`

	CardAccount   *AccountModel `gorm:"foreignKey:CardAccountID;references:ID"`
	SourceAccount *AccountModel `gorm:"foreignKey:SourceAccountID;references:ID"`
}

// TableName returns the table name for the CreditCardModel.
func (CreditCardModel) TableName() string {
	return "credit_cards"
}

// ToEntity converts a CreditCardModel to a domain CreditCard entity.
func (m *CreditCardModel) ToEntity() *entity.CreditCard {
	return &entity.CreditCard{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		Brand:           entity.CardBrand(m.Brand),
		Model:           m.Model,
		CardType:        entity.CardType(m.CardType),
		CardAccountID:   m.CardAccountID,
		SourceAccountID: m.SourceAccountID,
		DueDay:          m.DueDay,
		CloseDay:        m.CloseDay,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// CreditCardFromEntity converts a domain CreditCard entity to a CreditCardModel.
func CreditCardFromEntity(c *entity.CreditCard) *CreditCardModel {
	return &CreditCardModel{
		ID:              c.ID,
		UserID:          c.UserID,
		Name:            c.Name,
		Brand:           string(c.Brand),
		Model:           c.Model,
		CardType:        string(c.CardType),
		CardAccountID:   c.CardAccountID,
		SourceAccountID: c.SourceAccountID,
		DueDay:          c.DueDay,
		CloseDay:        c.CloseDay,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// CreditCardInvoiceModel represents the credit_card_invoices table.
type CreditCardInvoiceModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_invoices_user_card_period"`
	CardID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_user_card_period"`
	InvoicePeriod string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_invoices_user_card_period"`
	DueDate       time.Time       `gorm:"type:date;not null;index"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	Card *CreditCardModel `gorm:"foreignKey:CardID;references:ID"`
}

// TableName returns the table name for the CreditCardInvoiceModel.
func (CreditCardInvoiceModel) TableName() string {
	return "credit_card_invoices"
}

// ToEntity converts a CreditCardInvoiceModel to a domain entity.
func (m *CreditCardInvoiceModel) ToEntity() *entity.CreditCardInvoice {
	return &entity.CreditCardInvoice{
		ID:            m.ID,
		UserID:        m.UserID,
		CardID:        m.CardID,
		InvoicePeriod: m.InvoicePeriod,
		DueDate:       m.DueDate,
		TotalAmount:   m.TotalAmount,
		PaidAmount:    m.PaidAmount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// InvoiceFromEntity converts a domain CreditCardInvoice to its model.
func InvoiceFromEntity(i *entity.CreditCardInvoice) *CreditCardInvoiceModel {
	return &CreditCardInvoiceModel{
		ID:            i.ID,
		UserID:        i.UserID,
		CardID:        i.CardID,
		InvoicePeriod: i.InvoicePeriod,
		DueDate:       i.DueDate,
		TotalAmount:   i.TotalAmount,
		PaidAmount:    i.PaidAmount,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

// CreditCardChargeModel represents the credit_card_charges table.
type CreditCardChargeModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CardID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	PurchaseDate  time.Time       `gorm:"type:date;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	Description   string          `gorm:"type:varchar(255);not null"`
	InvoicePeriod string          `gorm:"type:varchar(7);not null;index"`
	DueDate       time.Time       `gorm:"type:date;not null"`
	Paid          bool            `gorm:"not null;default:false;index"`
	Note          string          `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	Card     *CreditCardModel `gorm:"foreignKey:CardID;references:ID"`
	Category *CategoryModel   `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the CreditCardChargeModel.
func (CreditCardChargeModel) TableName() string {
	return "credit_card_charges"
}

// ToEntity converts a CreditCardChargeModel to a domain entity.
func (m *CreditCardChargeModel) ToEntity() *entity.CreditCardCharge {
	return &entity.CreditCardCharge{
		ID:            m.ID,
		UserID:        m.UserID,
		CardID:        m.CardID,
		PurchaseDate:  m.PurchaseDate,
		Amount:        m.Amount,
		CategoryID:    m.CategoryID,
		Description:   m.Description,
		InvoicePeriod: m.InvoicePeriod,
		DueDate:       m.DueDate,
		Paid:          m.Paid,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToEntityWithDetails converts the model with its preloaded card and
// category relations.
func (m *CreditCardChargeModel) ToEntityWithDetails() *entity.ChargeWithDetails {
	details := &entity.ChargeWithDetails{Charge: m.ToEntity()}
	if m.Card != nil {
		details.Card = m.Card.ToEntity()
	}
	if m.Category != nil {
		details.Category = m.Category.ToEntity()
	}
	return details
}

// ChargeFromEntity converts a domain CreditCardCharge to its model.
func ChargeFromEntity(c *entity.CreditCardCharge) *CreditCardChargeModel {
	return &CreditCardChargeModel{
		ID:            c.ID,
		UserID:        c.UserID,
		CardID:        c.CardID,
		PurchaseDate:  c.PurchaseDate,
		Amount:        c.Amount,
		CategoryID:    c.CategoryID,
		Description:   c.Description,
		InvoicePeriod: c.InvoicePeriod,
		DueDate:       c.DueDate,
		Paid:          c.Paid,
		Note:          c.Note,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
