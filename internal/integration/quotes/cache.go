package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/adapter"
)

// DefaultCacheTTL keeps quotes fresh enough for intraday valuation while
// sparing the providers from one call per page load.
const DefaultCacheTTL = 5 * time.Minute

// RedisQuoteCache implements adapter.QuoteCache on Redis.
type RedisQuoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisQuoteCache creates a new Redis quote cache. ttl <= 0 uses the
// default.
func NewRedisQuoteCache(client *redis.Client, ttl time.Duration) *RedisQuoteCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisQuoteCache{client: client, ttl: ttl}
}

type cachedQuote struct {
	Price  decimal.Decimal `json:"price"`
	AsOf   time.Time       `json:"as_of"`
	Source string          `json:"source"`
}

// Get returns the cached quote for the key, or nil on a miss.
func (c *RedisQuoteCache) Get(ctx context.Context, key string) (*adapter.Quote, error) {
	raw, err := c.client.Get(ctx, c.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading quote cache: %w", err)
	}

	var cached cachedQuote
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("decoding cached quote: %w", err)
	}
	return &adapter.Quote{Price: cached.Price, AsOf: cached.AsOf, Source: cached.Source}, nil
}

// Set stores the quote under the key with the cache's TTL.
func (c *RedisQuoteCache) Set(ctx context.Context, key string, quote *adapter.Quote) error {
	raw, err := json.Marshal(cachedQuote{Price: quote.Price, AsOf: quote.AsOf, Source: quote.Source})
	if err != nil {
		return fmt.Errorf("encoding quote: %w", err)
	}
	if err := c.client.Set(ctx, c.redisKey(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing quote cache: %w", err)
	}
	return nil
}

func (c *RedisQuoteCache) redisKey(key string) string {
	return "quote:" + key
}

var _ adapter.QuoteCache = (*RedisQuoteCache)(nil)
