package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// AssetModel represents the assets table in the database.
type AssetModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_assets_user_symbol"`
	Symbol          string     `gorm:"type:varchar(30);not null;uniqueIndex:idx_assets_user_symbol"`
	Name            string     `gorm:"type:varchar(255);not null"`
	AssetClass      string     `gorm:"type:varchar(20);not null;index"`
	Sector          string     `gorm:"type:varchar(100)"`
	Currency        string     `gorm:"type:varchar(3);not null;default:'BRL'"`
	BrokerAccountID *uuid.UUID `gorm:"type:uuid;index"`
	SourceAccountID *uuid.UUID `gorm:"type:uuid"`
	Issuer          string     `gorm:"type:varchar(255)"`
	MaturityDate    *time.Time `gorm:"type:date"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`

	BrokerAccount *AccountModel `gorm:"foreignKey:BrokerAccountID;references:ID"`
}

// TableName returns the table name for the AssetModel.
func (AssetModel) TableName() string {
	return "assets"
}

// ToEntity converts an AssetModel to a domain Asset entity.
func (m *AssetModel) ToEntity() *entity.Asset {
	return &entity.Asset{
		ID:              m.ID,
		UserID:          m.UserID,
		Symbol:          m.Symbol,
		Name:            m.Name,
		AssetClass:      entity.AssetClass(m.AssetClass),
		Sector:          m.Sector,
		Currency:        entity.Currency(m.Currency),
		BrokerAccountID: m.BrokerAccountID,
		SourceAccountID: m.SourceAccountID,
		Issuer:          m.Issuer,
		MaturityDate:    m.MaturityDate,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// AssetFromEntity converts a domain Asset entity to an AssetModel.
func AssetFromEntity(a *entity.Asset) *AssetModel {
	return &AssetModel{
		ID:              a.ID,
		UserID:          a.UserID,
		Symbol:          a.Symbol,
		Name:            a.Name,
		AssetClass:      string(a.AssetClass),
		Sector:          a.Sector,
		Currency:        string(a.Currency),
		BrokerAccountID: a.BrokerAccountID,
		SourceAccountID: a.SourceAccountID,
		Issuer:          a.Issuer,
		MaturityDate:    a.MaturityDate,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// TradeModel represents the trades table in the database.
type TradeModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	AssetID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date              time.Time       `gorm:"type:date;not null;index"`
	Side              string          `gorm:"type:varchar(4);not null"`
	Quantity          decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Price             decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	ExchangeRate      decimal.Decimal `gorm:"type:decimal(15,6);not null;default:1"`
	Fees              decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Taxes             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Note              string          `gorm:"type:text"`
	CashTransactionID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt         time.Time       `gorm:"not null"`

	Asset *AssetModel `gorm:"foreignKey:AssetID;references:ID"`
}

// TableName returns the table name for the TradeModel.
func (TradeModel) TableName() string {
	return "trades"
}

// ToEntity converts a TradeModel to a domain Trade entity.
func (m *TradeModel) ToEntity() *entity.Trade {
	return &entity.Trade{
		ID:                m.ID,
		UserID:            m.UserID,
		AssetID:           m.AssetID,
		Date:              m.Date,
		Side:              entity.TradeSide(m.Side),
		Quantity:          m.Quantity,
		Price:             m.Price,
		ExchangeRate:      m.ExchangeRate,
		Fees:              m.Fees,
		Taxes:             m.Taxes,
		Note:              m.Note,
		CashTransactionID: m.CashTransactionID,
		CreatedAt:         m.CreatedAt,
	}
}

// ToEntityWithAsset converts the model with its preloaded asset relation.
func (m *TradeModel) ToEntityWithAsset() *entity.TradeWithAsset {
	withAsset := &entity.TradeWithAsset{Trade: m.ToEntity()}
	if m.Asset != nil {
		withAsset.Asset = m.Asset.ToEntity()
	}
	return withAsset
}

// TradeFromEntity converts a domain Trade entity to a TradeModel.
func TradeFromEntity(t *entity.Trade) *TradeModel {
	return &TradeModel{
		ID:                t.ID,
		UserID:            t.UserID,
		AssetID:           t.AssetID,
		Date:              t.Date,
		Side:              string(t.Side),
		Quantity:          t.Quantity,
		Price:             t.Price,
		ExchangeRate:      t.ExchangeRate,
		Fees:              t.Fees,
		Taxes:             t.Taxes,
		Note:              t.Note,
		CashTransactionID: t.CashTransactionID,
		CreatedAt:         t.CreatedAt,
	}
}

// IncomeEventModel represents the income_events table in the database.
type IncomeEventModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	AssetID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date      time.Time       `gorm:"type:date;not null;index"`
	Type      string          `gorm:"type:varchar(20);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Note      string          `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"not null"`

	Asset *AssetModel `gorm:"foreignKey:AssetID;references:ID"`
}

// TableName returns the table name for the IncomeEventModel.
func (IncomeEventModel) TableName() string {
	return "income_events"
}

// ToEntity converts an IncomeEventModel to a domain IncomeEvent entity.
func (m *IncomeEventModel) ToEntity() *entity.IncomeEvent {
	return &entity.IncomeEvent{
		ID:        m.ID,
		UserID:    m.UserID,
		AssetID:   m.AssetID,
		Date:      m.Date,
		Type:      entity.IncomeType(m.Type),
		Amount:    m.Amount,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}

// IncomeEventFromEntity converts a domain IncomeEvent to its model.
func IncomeEventFromEntity(e *entity.IncomeEvent) *IncomeEventModel {
	return &IncomeEventModel{
		ID:        e.ID,
		UserID:    e.UserID,
		AssetID:   e.AssetID,
		Date:      e.Date,
		Type:      string(e.Type),
		Amount:    e.Amount,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
}

// PriceModel represents the prices table in the database. The composite
// unique index backs the one-price-per-asset-per-day upsert.
type PriceModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_prices_user_asset_date"`
	AssetID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_prices_user_asset_date"`
	Date      time.Time       `gorm:"type:date;not null;uniqueIndex:idx_prices_user_asset_date"`
	Price     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Source    string          `gorm:"type:varchar(30);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the PriceModel.
func (PriceModel) TableName() string {
	return "prices"
}

// ToEntity converts a PriceModel to a domain Price entity.
func (m *PriceModel) ToEntity() *entity.Price {
	return &entity.Price{
		ID:        m.ID,
		UserID:    m.UserID,
		AssetID:   m.AssetID,
		Date:      m.Date,
		Price:     m.Price,
		Source:    m.Source,
		CreatedAt: m.CreatedAt,
	}
}

// PriceFromEntity converts a domain Price entity to a PriceModel.
func PriceFromEntity(p *entity.Price) *PriceModel {
	return &PriceModel{
		ID:        p.ID,
		UserID:    p.UserID,
		AssetID:   p.AssetID,
		Date:      p.Date,
		Price:     p.Price,
		Source:    p.Source,
		CreatedAt: p.CreatedAt,
	}
}
