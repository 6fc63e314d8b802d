package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooClient fetches quotes from the Yahoo Finance chart endpoint. It takes
// symbols in Yahoo form: "PETR4.SA", "AAPL", "BTC-USD".
type YahooClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewYahooClient creates a new Yahoo Finance client. baseURL may be empty to
// use the public endpoint.
func NewYahooClient(httpClient *http.Client, baseURL string) *YahooClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultYahooBaseURL
	}
	return &YahooClient{httpClient: httpClient, baseURL: baseURL}
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice decimal.Decimal `json:"regularMarketPrice"`
				RegularMarketTime  int64           `json:"regularMarketTime"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// LastPrice returns the latest quote for the symbol.
func (c *YahooClient) LastPrice(ctx context.Context, symbol string) (*adapter.Quote, error) {
	if symbol == "" {
		return nil, domainerror.ErrQuoteNotFound
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=5d&interval=1d", c.baseURL, url.PathEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building Yahoo request: %w", err)
	}
	req.Header.Set("User-Agent", "controle-financeiro/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerror.ErrQuoteUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: Yahoo HTTP %d", domainerror.ErrQuoteUpstream, resp.StatusCode)
	}

	var body yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding Yahoo response: %w", err)
	}
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("%w: Yahoo %s", domainerror.ErrQuoteUpstream, body.Chart.Error.Code)
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", domainerror.ErrQuoteNotFound, symbol)
	}

	meta := body.Chart.Result[0].Meta
	if !meta.RegularMarketPrice.IsPositive() {
		return nil, fmt.Errorf("%w: %s", domainerror.ErrQuoteNotFound, symbol)
	}

	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	if meta.RegularMarketTime > 0 {
		asOf = time.Unix(meta.RegularMarketTime, 0).UTC().Truncate(24 * time.Hour)
	}

	return &adapter.Quote{Price: meta.RegularMarketPrice, AsOf: asOf, Source: "yahoo"}, nil
}
