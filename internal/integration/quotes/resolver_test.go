package quotes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

func TestNormalizeB3(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PETR4", "PETR4.SA"},
		{"petr4", "PETR4.SA"},
		{"PETR4.SA", "PETR4.SA"},
		{"PETR4 SA", "PETR4SA.SA"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeB3(tt.in); got != tt.want {
			t.Errorf("NormalizeB3(%q) = %q, want %q", tt.in, tt.want, got)
		}
	}
}

func TestCryptoPair(t *testing.T) {
	tests := []struct {
		symbol   string
		currency string
		want     string
	}{
		{"BTC", "USD", "BTC-USD"},
		{"btc", "brl", "BTC-BRL"},
		{"ETH-USD", "BRL", "ETH-USD"},
		{"SOL", "", "SOL-USD"},
	}
	for _, tt := range tests {
		if got := CryptoPair(tt.symbol, tt.currency); got != tt.want {
			t.Errorf("CryptoPair(%q, %q) = %q, want %q", tt.symbol, tt.currency, got, tt.want)
		}
	}
}

func brapiServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func yahooServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolverB3PrefersBrapi(t *testing.T) {
	brapiSrv := brapiServer(t, http.StatusOK, `{"results":[{"symbol":"PETR4","regularMarketPrice":38.52}]}`)
	yahooSrv := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("yahoo should not be called when BRAPI answers")
	})

	resolver := NewResolver(
		NewBrapiClient(nil, brapiSrv.URL, "test-token"),
		NewYahooClient(nil, yahooSrv.URL),
		nil,
	)

	quote, err := resolver.Fetch(context.Background(), "PETR4", entity.AssetClassStockBR, entity.CurrencyBRL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got := quote.Price.String(); got != "38.52" {
		t.Errorf("price = %s, want 38.52", got)
	}
	if quote.Source != "brapi" {
		t.Errorf("source = %s, want brapi", quote.Source)
	}
}

func TestResolverB3FallsBackToYahoo(t *testing.T) {
	brapiSrv := brapiServer(t, http.StatusTooManyRequests, `{"error":true}`)
	yahooSrv := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{"regularMarketPrice":38.10,"regularMarketTime":1718030400}}]}}`)
	})

	resolver := NewResolver(
		NewBrapiClient(nil, brapiSrv.URL, "test-token"),
		NewYahooClient(nil, yahooSrv.URL),
		nil,
	)

	quote, err := resolver.Fetch(context.Background(), "PETR4", entity.AssetClassFII, entity.CurrencyBRL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if quote.Source != "yahoo" {
		t.Errorf("source = %s, want yahoo", quote.Source)
	}
}

func TestResolverB3ReportsBrapiErrorWhenAllFail(t *testing.T) {
	brapiSrv := brapiServer(t, http.StatusInternalServerError, ``)
	yahooSrv := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	resolver := NewResolver(
		NewBrapiClient(nil, brapiSrv.URL, "test-token"),
		NewYahooClient(nil, yahooSrv.URL),
		nil,
	)

	_, err := resolver.Fetch(context.Background(), "XXXX3", entity.AssetClassStockBR, entity.CurrencyBRL)
	if !errors.Is(err, domainerror.ErrQuoteUpstream) {
		t.Fatalf("Fetch() error = %v, want ErrQuoteUpstream", err)
	}
}

func TestResolverCryptoUsesYahooPair(t *testing.T) {
	var requested string
	yahooSrv := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{"regularMarketPrice":350000.5}}]}}`)
	})

	resolver := NewResolver(
		NewBrapiClient(nil, "http://unused.invalid", "t"),
		NewYahooClient(nil, yahooSrv.URL),
		nil,
	)

	quote, err := resolver.Fetch(context.Background(), "BTC", entity.AssetClassCrypto, entity.CurrencyBRL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if requested != "/v8/finance/chart/BTC-BRL" {
		t.Errorf("requested path = %s, want /v8/finance/chart/BTC-BRL", requested)
	}
	if got := quote.Price.String(); got != "350000.5" {
		t.Errorf("price = %s, want 350000.5", got)
	}
}

func TestResolverRejectsUnquotableClasses(t *testing.T) {
	resolver := NewResolver(
		NewBrapiClient(nil, "http://unused.invalid", "t"),
		NewYahooClient(nil, "http://unused.invalid"),
		nil,
	)

	for _, class := range []entity.AssetClass{
		entity.AssetClassFixedIncome,
		entity.AssetClassTreasuryBR,
		entity.AssetClassCash,
		entity.AssetClassOther,
	} {
		if _, err := resolver.Fetch(context.Background(), "CDB-X", class, entity.CurrencyBRL); !errors.Is(err, domainerror.ErrClassNotQuotable) {
			t.Errorf("Fetch(%s) error = %v, want ErrClassNotQuotable", class, err)
		}
	}
}

func TestBrapiClientRequiresToken(t *testing.T) {
	client := NewBrapiClient(nil, "http://unused.invalid", "")
	if _, err := client.LastPrice(context.Background(), "PETR4"); !errors.Is(err, domainerror.ErrQuoteUpstream) {
		t.Fatalf("LastPrice() error = %v, want ErrQuoteUpstream", err)
	}
}
