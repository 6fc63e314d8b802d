package quotes

import (
	"context"
	"fmt"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// Resolver picks the provider chain for an asset class and fronts it with an
// optional cache. B3-listed classes go to BRAPI first because it resolves
// raw B3 tickers reliably; Yahoo covers everything else and serves as the
// B3 fallback, with and without the ".SA" suffix.
type Resolver struct {
	brapi *BrapiClient
	yahoo *YahooClient
	cache adapter.QuoteCache
}

// NewResolver creates a new Resolver. cache may be nil.
func NewResolver(brapi *BrapiClient, yahoo *YahooClient, cache adapter.QuoteCache) *Resolver {
	return &Resolver{brapi: brapi, yahoo: yahoo, cache: cache}
}

// Fetch implements adapter.QuoteProvider.
func (r *Resolver) Fetch(ctx context.Context, symbol string, class entity.AssetClass, currency entity.Currency) (*adapter.Quote, error) {
	key, fetch, err := r.plan(symbol, class, currency)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	quote, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		// Cache failures never fail the fetch.
		_ = r.cache.Set(ctx, key, quote)
	}
	return quote, nil
}

func (r *Resolver) plan(symbol string, class entity.AssetClass, currency entity.Currency) (string, func(context.Context) (*adapter.Quote, error), error) {
	switch {
	case class.IsB3Listed():
		return "b3:" + BrapiSymbol(symbol), func(ctx context.Context) (*adapter.Quote, error) {
			return r.fetchB3(ctx, symbol)
		}, nil
	case class.IsCrypto():
		pair := CryptoPair(symbol, string(currency))
		return "crypto:" + pair, func(ctx context.Context) (*adapter.Quote, error) {
			return r.yahoo.LastPrice(ctx, pair)
		}, nil
	case class == entity.AssetClassStockUS || class == entity.AssetClassETFUS:
		sym := BrapiSymbol(symbol)
		return "us:" + sym, func(ctx context.Context) (*adapter.Quote, error) {
			return r.yahoo.LastPrice(ctx, sym)
		}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", domainerror.ErrClassNotQuotable, class)
	}
}

func (r *Resolver) fetchB3(ctx context.Context, symbol string) (*adapter.Quote, error) {
	quote, brapiErr := r.brapi.LastPrice(ctx, symbol)
	if brapiErr == nil {
		return quote, nil
	}

	if quote, err := r.yahoo.LastPrice(ctx, NormalizeB3(symbol)); err == nil {
		return quote, nil
	}
	if quote, err := r.yahoo.LastPrice(ctx, BrapiSymbol(symbol)); err == nil {
		return quote, nil
	}
	return nil, brapiErr
}

var _ adapter.QuoteProvider = (*Resolver)(nil)
