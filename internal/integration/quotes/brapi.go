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

const defaultBrapiBaseURL = "https://brapi.dev/api"

// BrapiClient fetches B3 quotes from brapi.dev. BRAPI takes the raw B3
// ticker without the ".SA" suffix.
type BrapiClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewBrapiClient creates a new BRAPI client. baseURL may be empty to use the
// public endpoint.
func NewBrapiClient(httpClient *http.Client, baseURL, token string) *BrapiClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBrapiBaseURL
	}
	return &BrapiClient{httpClient: httpClient, baseURL: baseURL, token: token}
}

type brapiResponse struct {
	Results []struct {
		Symbol             string          `json:"symbol"`
		RegularMarketPrice decimal.Decimal `json:"regularMarketPrice"`
		RegularMarketTime  string          `json:"regularMarketTime"`
	} `json:"results"`
	Message string `json:"message"`
	Error   bool   `json:"error"`
}

// LastPrice returns the latest quote for the symbol.
func (c *BrapiClient) LastPrice(ctx context.Context, symbol string) (*adapter.Quote, error) {
	if c.token == "" {
		return nil, fmt.Errorf("%w: BRAPI token not configured", domainerror.ErrQuoteUpstream)
	}
	sym := BrapiSymbol(symbol)
	if sym == "" {
		return nil, domainerror.ErrQuoteNotFound
	}

	endpoint := fmt.Sprintf("%s/quote/%s?token=%s", c.baseURL, url.PathEscape(sym), url.QueryEscape(c.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building BRAPI request: %w", err)
	}
	req.Header.Set("User-Agent", "controle-financeiro/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerror.ErrQuoteUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: BRAPI HTTP %d", domainerror.ErrQuoteUpstream, resp.StatusCode)
	}

	var body brapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding BRAPI response: %w", err)
	}
	if len(body.Results) == 0 {
		return nil, fmt.Errorf("%w: %s", domainerror.ErrQuoteNotFound, sym)
	}

	row := body.Results[0]
	if !row.RegularMarketPrice.IsPositive() {
		return nil, fmt.Errorf("%w: %s", domainerror.ErrQuoteNotFound, sym)
	}

	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	if row.RegularMarketTime != "" {
		if ts, err := time.Parse(time.RFC3339, row.RegularMarketTime); err == nil {
			asOf = ts.UTC().Truncate(24 * time.Hour)
		}
	}

	return &adapter.Quote{Price: row.RegularMarketPrice, AsOf: asOf, Source: "brapi"}, nil
}
