package dto

import (
	"time"

	"github.com/controle-financeiro/backend/internal/application/usecase/quote"
	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// CreateAssetRequest represents the request body for asset creation.
type CreateAssetRequest struct {
	Symbol          string  `json:"symbol" binding:"required,min=1,max=30"`
	Name            string  `json:"name" binding:"required,min=1,max=255"`
	AssetClass      string  `json:"asset_class" binding:"required"`
	Sector          string  `json:"sector,omitempty"`
	Currency        string  `json:"currency,omitempty"`
	BrokerAccountID *string `json:"broker_account_id,omitempty"`
	SourceAccountID *string `json:"source_account_id,omitempty"`
	Issuer          string  `json:"issuer,omitempty"`
	MaturityDate    *string `json:"maturity_date,omitempty"`
}

// UpdateAssetRequest represents the request body for asset update. All
// fields are replaced.
type UpdateAssetRequest struct {
	Symbol          string  `json:"symbol" binding:"required,min=1,max=30"`
	Name            string  `json:"name" binding:"required,min=1,max=255"`
	AssetClass      string  `json:"asset_class" binding:"required"`
	Sector          string  `json:"sector,omitempty"`
	Currency        string  `json:"currency,omitempty"`
	BrokerAccountID *string `json:"broker_account_id,omitempty"`
	SourceAccountID *string `json:"source_account_id,omitempty"`
	Issuer          string  `json:"issuer,omitempty"`
	MaturityDate    *string `json:"maturity_date,omitempty"`
}

// AssetResponse represents an asset in API responses.
type AssetResponse struct {
	ID              string    `json:"id"`
	Symbol          string    `json:"symbol"`
	Name            string    `json:"name"`
	AssetClass      string    `json:"asset_class"`
	Sector          string    `json:"sector,omitempty"`
	Currency        string    `json:"currency"`
	BrokerAccountID string    `json:"broker_account_id,omitempty"`
	SourceAccountID string    `json:"source_account_id,omitempty"`
	Issuer          string    `json:"issuer,omitempty"`
	MaturityDate    string    `json:"maturity_date,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToAssetResponse converts an asset entity to its response form.
func ToAssetResponse(asset *entity.Asset) AssetResponse {
	response := AssetResponse{
		ID:         asset.ID.String(),
		Symbol:     asset.Symbol,
		Name:       asset.Name,
		AssetClass: string(asset.AssetClass),
		Sector:     asset.Sector,
		Currency:   string(asset.Currency),
		Issuer:     asset.Issuer,
		CreatedAt:  asset.CreatedAt,
		UpdatedAt:  asset.UpdatedAt,
	}
	if asset.BrokerAccountID != nil {
		response.BrokerAccountID = asset.BrokerAccountID.String()
	}
	if asset.SourceAccountID != nil {
		response.SourceAccountID = asset.SourceAccountID.String()
	}
	if asset.MaturityDate != nil {
		response.MaturityDate = asset.MaturityDate.Format("2006-01-02")
	}
	return response
}

// ToAssetListResponse converts a slice of assets.
func ToAssetListResponse(assets []*entity.Asset) []AssetResponse {
	responses := make([]AssetResponse, len(assets))
	for i, asset := range assets {
		responses[i] = ToAssetResponse(asset)
	}
	return responses
}

// CreateTradeRequest represents the request body for trade creation.
type CreateTradeRequest struct {
	AssetID      string `json:"asset_id" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Side         string `json:"side" binding:"required"`
	Quantity     string `json:"quantity" binding:"required"`
	Price        string `json:"price" binding:"required"`
	ExchangeRate string `json:"exchange_rate,omitempty"`
	Fees         string `json:"fees,omitempty"`
	Taxes        string `json:"taxes,omitempty"`
	Note         string `json:"note,omitempty"`
}

// TradeResponse represents a trade in API responses.
type TradeResponse struct {
	ID                string `json:"id"`
	AssetID           string `json:"asset_id"`
	AssetSymbol       string `json:"asset_symbol,omitempty"`
	Date              string `json:"date"`
	Side              string `json:"side"`
	Quantity          string `json:"quantity"`
	Price             string `json:"price"`
	ExchangeRate      string `json:"exchange_rate"`
	Fees              string `json:"fees"`
	Taxes             string `json:"taxes"`
	Note              string `json:"note,omitempty"`
	CashTransactionID string `json:"cash_transaction_id,omitempty"`
}

// ToTradeResponse converts a bare trade entity.
func ToTradeResponse(trade *entity.Trade) TradeResponse {
	response := TradeResponse{
		ID:           trade.ID.String(),
		AssetID:      trade.AssetID.String(),
		Date:         trade.Date.Format("2006-01-02"),
		Side:         string(trade.Side),
		Quantity:     trade.Quantity.String(),
		Price:        trade.Price.String(),
		ExchangeRate: trade.ExchangeRate.String(),
		Fees:         trade.Fees.String(),
		Taxes:        trade.Taxes.String(),
		Note:         trade.Note,
	}
	if trade.CashTransactionID != nil {
		response.CashTransactionID = trade.CashTransactionID.String()
	}
	return response
}

// ToTradeListResponse converts a slice of trades.
func ToTradeListResponse(trades []*entity.Trade) []TradeResponse {
	responses := make([]TradeResponse, len(trades))
	for i, trade := range trades {
		responses[i] = ToTradeResponse(trade)
	}
	return responses
}

// CreateIncomeRequest represents the request body for recording an income
// event (dividends, JCP, rendimentos).
type CreateIncomeRequest struct {
	AssetID string `json:"asset_id" binding:"required"`
	Date    string `json:"date" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
	Note    string `json:"note,omitempty"`
}

// IncomeResponse represents an income event in API responses.
type IncomeResponse struct {
	ID              string `json:"id"`
	AssetID         string `json:"asset_id"`
	Date            string `json:"date"`
	Type            string `json:"type"`
	Amount          string `json:"amount"`
	AmountFormatted string `json:"amount_formatted"`
	Note            string `json:"note,omitempty"`
}

// ToIncomeResponse converts an income event entity to its response form.
func ToIncomeResponse(income *entity.IncomeEvent) IncomeResponse {
	return IncomeResponse{
		ID:              income.ID.String(),
		AssetID:         income.AssetID.String(),
		Date:            income.Date.Format("2006-01-02"),
		Type:            string(income.Type),
		Amount:          income.Amount.String(),
		AmountFormatted: FormatBRL(income.Amount),
		Note:            income.Note,
	}
}

// ToIncomeListResponse converts a slice of income events.
func ToIncomeListResponse(incomes []*entity.IncomeEvent) []IncomeResponse {
	responses := make([]IncomeResponse, len(incomes))
	for i, income := range incomes {
		responses[i] = ToIncomeResponse(income)
	}
	return responses
}

// UpsertPriceRequest represents the request body for a manual price mark.
type UpsertPriceRequest struct {
	AssetID string `json:"asset_id" binding:"required"`
	Date    string `json:"date" binding:"required"`
	Price   string `json:"price" binding:"required"`
	Source  string `json:"source,omitempty"`
}

// PriceResponse represents a price mark in API responses.
type PriceResponse struct {
	ID      string `json:"id"`
	AssetID string `json:"asset_id"`
	Date    string `json:"date"`
	Price   string `json:"price"`
	Source  string `json:"source,omitempty"`
}

// ToPriceResponse converts a price entity to its response form.
func ToPriceResponse(price *entity.Price) PriceResponse {
	return PriceResponse{
		ID:      price.ID.String(),
		AssetID: price.AssetID.String(),
		Date:    price.Date.Format("2006-01-02"),
		Price:   price.Price.String(),
		Source:  price.Source,
	}
}

// ToPriceListResponse converts a slice of prices.
func ToPriceListResponse(prices []*entity.Price) []PriceResponse {
	responses := make([]PriceResponse, len(prices))
	for i, price := range prices {
		responses[i] = ToPriceResponse(price)
	}
	return responses
}

// RefreshQuotesRequest represents the request body for a quote refresh run.
// An empty asset list refreshes every quotable asset.
type RefreshQuotesRequest struct {
	AssetIDs []string `json:"asset_ids,omitempty"`
	Workers  int      `json:"workers,omitempty"`
}

// QuoteReportResponse is one asset's outcome in a refresh run.
type QuoteReportResponse struct {
	AssetID   string `json:"asset_id"`
	Symbol    string `json:"symbol"`
	Price     string `json:"price,omitempty"`
	Date      string `json:"date,omitempty"`
	Source    string `json:"source,omitempty"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Error     string `json:"error,omitempty"`
}

// RefreshQuotesResponse reports a full refresh run.
type RefreshQuotesResponse struct {
	Saved  int                   `json:"saved"`
	Total  int                   `json:"total"`
	Report []QuoteReportResponse `json:"report"`
}

// ToRefreshQuotesResponse converts the usecase output.
func ToRefreshQuotesResponse(output *quote.RefreshQuotesOutput) RefreshQuotesResponse {
	response := RefreshQuotesResponse{
		Saved:  output.Saved,
		Total:  output.Total,
		Report: make([]QuoteReportResponse, len(output.Report)),
	}
	for i, report := range output.Report {
		item := QuoteReportResponse{
			AssetID:   report.AssetID.String(),
			Symbol:    report.Symbol,
			ElapsedMS: report.Elapsed.Milliseconds(),
		}
		if report.Err != nil {
			item.Error = report.Err.Error()
		} else {
			item.Price = report.Price.String()
			item.Date = report.Date.Format("2006-01-02")
			item.Source = report.Source
		}
		response.Report[i] = item
	}
	return response
}
