package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// Quote is one fetched market quote.
type Quote struct {
	Price  decimal.Decimal
	AsOf   time.Time
	Source string
}

// QuoteProvider fetches a market quote for one asset. Implementations decide
// symbol normalization per asset class and currency.
type QuoteProvider interface {
	Fetch(ctx context.Context, symbol string, class entity.AssetClass, currency entity.Currency) (*Quote, error)
}

// QuoteCache fronts quote providers with a short-lived per-symbol cache.
type QuoteCache interface {
	// Get returns the cached quote for the key, or nil on a miss.
	Get(ctx context.Context, key string) (*Quote, error)

	// Set stores the quote under the key with the cache's TTL.
	Set(ctx context.Context, key string, quote *Quote) error
}
