package quote

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

type fakeAssetRepo struct {
	adapter.AssetRepository
	assets []*entity.Asset
}

func (f *fakeAssetRepo) FindByUser(_ context.Context, _ uuid.UUID) ([]*entity.Asset, error) {
	return f.assets, nil
}

type fakePriceRepo struct {
	adapter.PriceRepository
	mu    sync.Mutex
	saved []*entity.Price
}

func (f *fakePriceRepo) Upsert(_ context.Context, p *entity.Price) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, p)
	return nil
}

type fakeProvider struct {
	mu      sync.Mutex
	quotes  map[string]*adapter.Quote
	errs    map[string]error
	fetched []string
}

func (f *fakeProvider) Fetch(_ context.Context, symbol string, _ entity.AssetClass, _ entity.Currency) (*adapter.Quote, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, symbol)
	f.mu.Unlock()
	if err, ok := f.errs[symbol]; ok {
		return nil, err
	}
	if q, ok := f.quotes[symbol]; ok {
		return q, nil
	}
	return nil, domainerror.ErrQuoteNotFound
}

func quoteAsset(userID uuid.UUID, symbol string) *entity.Asset {
	return entity.NewAsset(userID, symbol, symbol, entity.AssetClassStockBR, "", entity.CurrencyBRL, nil, nil, "", nil)
}

func TestRefreshQuotesKeepsSubmissionOrderAndSaves(t *testing.T) {
	userID := uuid.New()
	assets := []*entity.Asset{
		quoteAsset(userID, "PETR4"),
		quoteAsset(userID, "VALE3"),
		quoteAsset(userID, "ITUB4"),
	}
	asOf := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	provider := &fakeProvider{
		quotes: map[string]*adapter.Quote{
			"PETR4": {Price: decimal.NewFromFloat(38.5), AsOf: asOf, Source: "brapi"},
			"ITUB4": {Price: decimal.NewFromFloat(33.1), AsOf: asOf, Source: "brapi"},
		},
		errs: map[string]error{
			"VALE3": domainerror.ErrQuoteUpstream,
		},
	}
	prices := &fakePriceRepo{}
	uc := NewRefreshQuotesUseCase(&fakeAssetRepo{assets: assets}, prices, provider, 0, 0)

	out, err := uc.Execute(context.Background(), RefreshQuotesInput{UserID: userID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if out.Total != 3 || out.Saved != 2 {
		t.Errorf("total/saved = %d/%d, want 3/2", out.Total, out.Saved)
	}
	for i, want := range []string{"PETR4", "VALE3", "ITUB4"} {
		if out.Report[i].Symbol != want {
			t.Errorf("report[%d].Symbol = %s, want %s", i, out.Report[i].Symbol, want)
		}
	}
	if out.Report[0].Err != nil || out.Report[2].Err != nil {
		t.Error("successful fetches should have nil Err")
	}
	if !errors.Is(out.Report[1].Err, domainerror.ErrQuoteUpstream) {
		t.Errorf("report[1].Err = %v, want ErrQuoteUpstream", out.Report[1].Err)
	}
	if len(prices.saved) != 2 {
		t.Fatalf("saved %d prices, want 2", len(prices.saved))
	}
}

func TestRefreshQuotesFiltersByAssetID(t *testing.T) {
	userID := uuid.New()
	a := quoteAsset(userID, "PETR4")
	b := quoteAsset(userID, "VALE3")
	provider := &fakeProvider{quotes: map[string]*adapter.Quote{
		"VALE3": {Price: decimal.NewFromInt(60), AsOf: time.Now(), Source: "brapi"},
	}}
	uc := NewRefreshQuotesUseCase(&fakeAssetRepo{assets: []*entity.Asset{a, b}}, &fakePriceRepo{}, provider, 0, 0)

	out, err := uc.Execute(context.Background(), RefreshQuotesInput{UserID: userID, AssetIDs: []uuid.UUID{b.ID}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Total != 1 || out.Report[0].Symbol != "VALE3" {
		t.Errorf("expected a single VALE3 entry, got total=%d", out.Total)
	}
}

func TestRefreshQuotesEmptyAssetList(t *testing.T) {
	uc := NewRefreshQuotesUseCase(&fakeAssetRepo{}, &fakePriceRepo{}, &fakeProvider{}, 0, 0)
	out, err := uc.Execute(context.Background(), RefreshQuotesInput{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Total != 0 || out.Saved != 0 || len(out.Report) != 0 {
		t.Errorf("expected empty report, got %+v", out)
	}
}

func TestResolveWorkers(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		override   int
		configured int
		want       int
	}{
		{"one asset floors at two", 1, 0, 0, 2},
		{"three assets", 3, 0, 0, 3},
		{"many assets cap at four", 50, 0, 0, 4},
		{"configured wins over default", 50, 0, 8, 8},
		{"override wins over configured", 50, 2, 8, 2},
		{"override clamped high", 5, 99, 0, 16},
		{"override clamped low", 5, -3, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveWorkers(tt.total, tt.override, tt.configured); got != tt.want {
				t.Errorf("resolveWorkers(%d, %d, %d) = %d, want %d", tt.total, tt.override, tt.configured, got, tt.want)
			}
		})
	}
}

func TestResolveTimeout(t *testing.T) {
	tests := []struct {
		name       string
		override   time.Duration
		configured time.Duration
		want       time.Duration
	}{
		{"default", 0, 0, 25 * time.Second},
		{"configured", 0, 40 * time.Second, 40 * time.Second},
		{"override wins", 10 * time.Second, 40 * time.Second, 10 * time.Second},
		{"clamped low", time.Second, 0, 3 * time.Second},
		{"clamped high", 10 * time.Minute, 0, 120 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveTimeout(tt.override, tt.configured); got != tt.want {
				t.Errorf("resolveTimeout(%v, %v) = %v, want %v", tt.override, tt.configured, got, tt.want)
			}
		})
	}
}
