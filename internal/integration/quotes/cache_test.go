package quotes

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/adapter"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisQuoteCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisQuoteCache(client, ttl), mr
}

func TestRedisQuoteCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	quote := &adapter.Quote{
		Price:  decimal.RequireFromString("38.52"),
		AsOf:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Source: "brapi",
	}
	if err := cache.Set(ctx, "b3:PETR4", quote); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get(ctx, "b3:PETR4")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() = nil, want cached quote")
	}
	if !got.Price.Equal(quote.Price) || !got.AsOf.Equal(quote.AsOf) || got.Source != quote.Source {
		t.Errorf("Get() = %+v, want %+v", got, quote)
	}
}

func TestRedisQuoteCacheMissReturnsNil(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	got, err := cache.Get(context.Background(), "b3:MISSING")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil on miss", got)
	}
}

func TestRedisQuoteCacheExpires(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	quote := &adapter.Quote{Price: decimal.NewFromInt(10), AsOf: time.Now().UTC(), Source: "yahoo"}
	if err := cache.Set(ctx, "us:AAPL", quote); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, "us:AAPL")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() after TTL = %+v, want nil", got)
	}
}
