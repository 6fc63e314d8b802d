package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// AssetRepository defines the interface for asset persistence operations.
type AssetRepository interface {
	// Create creates a new asset.
	Create(ctx context.Context, asset *entity.Asset) error

	// FindByID retrieves an asset by ID for the given user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Asset, error)

	// FindBySymbol retrieves an asset by symbol for the given user.
	FindBySymbol(ctx context.Context, userID uuid.UUID, symbol string) (*entity.Asset, error)

	// FindByUser retrieves all assets for the given user, symbol ascending.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Asset, error)

	// Update updates an existing asset.
	Update(ctx context.Context, asset *entity.Asset) error

	// DeleteWithPrices removes an asset and its stored prices atomically.
	DeleteWithPrices(ctx context.Context, userID, id uuid.UUID) error

	// UsageCount counts trades and income events referencing the asset.
	UsageCount(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

// TradeRepository defines the interface for trade persistence operations.
type TradeRepository interface {
	// Create creates a trade with no cash leg.
	Create(ctx context.Context, trade *entity.Trade) error

	// CreateWithCash creates the trade and its linked cash transaction
	// atomically, recording the transaction's ID on the trade.
	CreateWithCash(ctx context.Context, trade *entity.Trade, cash *entity.Transaction) error

	// FindByID retrieves a trade by ID for the given user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Trade, error)

	// FindByUser retrieves all trades for the given user, (date, id) ascending.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Trade, error)

	// FindByAsset retrieves the asset's trades, (date, id) ascending.
	FindByAsset(ctx context.Context, userID, assetID uuid.UUID) ([]*entity.Trade, error)

	// DeleteWithCash removes the trade and its linked cash transaction atomically.
	DeleteWithCash(ctx context.Context, userID, tradeID, cashTransactionID uuid.UUID) error

	// DeleteWithReversal removes the trade and posts a compensating cash
	// transaction atomically. Used for rows predating the explicit cash link.
	DeleteWithReversal(ctx context.Context, userID, tradeID uuid.UUID, reversal *entity.Transaction) error
}

// IncomeRepository defines the interface for income event persistence operations.
type IncomeRepository interface {
	// Create creates an income event with no cash leg.
	Create(ctx context.Context, event *entity.IncomeEvent) error

	// CreateWithCash creates the event and its cash transaction atomically.
	CreateWithCash(ctx context.Context, event *entity.IncomeEvent, cash *entity.Transaction) error

	// FindByID retrieves an income event by ID for the given user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.IncomeEvent, error)

	// FindByUser retrieves all income events for the given user, date ascending.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.IncomeEvent, error)

	// Delete removes an income event for the given user.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// SumByAsset returns total income per asset up to the given date.
	SumByAsset(ctx context.Context, userID uuid.UUID, until time.Time) (map[uuid.UUID]decimal.Decimal, error)
}

// PriceRepository defines the interface for price persistence operations.
type PriceRepository interface {
	// Upsert writes the price, replacing any row for the same asset and date.
	Upsert(ctx context.Context, price *entity.Price) error

	// LatestByAsset returns each asset's most recent price on or before asOf.
	LatestByAsset(ctx context.Context, userID uuid.UUID, asOf time.Time) (map[uuid.UUID]*entity.Price, error)

	// FindByAsset retrieves the asset's price history, date descending.
	FindByAsset(ctx context.Context, userID, assetID uuid.UUID) ([]*entity.Price, error)
}
