package dto

import (
	"github.com/controle-financeiro/backend/internal/application/usecase/ledger"
	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// KPIResponse is the dashboard headline block.
type KPIResponse struct {
	Receitas          string `json:"receitas"`
	ReceitasFormatted string `json:"receitas_formatted"`
	Despesas          string `json:"despesas"`
	DespesasFormatted string `json:"despesas_formatted"`
	Saldo             string `json:"saldo"`
	SaldoFormatted    string `json:"saldo_formatted"`
}

// MonthlyRowResponse is one month's totals.
type MonthlyRowResponse struct {
	Month    string `json:"month"`
	Receitas string `json:"receitas"`
	Despesas string `json:"despesas"`
	Saldo    string `json:"saldo"`
}

// CategoryTotalResponse is one expense category's total.
type CategoryTotalResponse struct {
	Category       string `json:"category"`
	Valor          string `json:"valor"`
	ValorFormatted string `json:"valor_formatted"`
}

// AccountBalanceResponse is one account's projected balance.
type AccountBalanceResponse struct {
	Account        string `json:"account"`
	Saldo          string `json:"saldo"`
	SaldoFormatted string `json:"saldo_formatted"`
}

// BalancePointResponse is one day of the cumulative cash series.
type BalancePointResponse struct {
	Date        string `json:"date"`
	CashBalance string `json:"cash_balance"`
}

// CommitmentsResponse totals scheduled rows by aging bucket.
type CommitmentsResponse struct {
	AVencer  string `json:"a_vencer"`
	Vencidos string `json:"vencidos"`
	Total    string `json:"total"`
}

// DashboardResponse is the full dashboard payload for one view.
type DashboardResponse struct {
	Rows        []LedgerRowResponse      `json:"rows"`
	KPIs        KPIResponse              `json:"kpis"`
	Monthly     []MonthlyRowResponse     `json:"monthly"`
	Categories  []CategoryTotalResponse  `json:"categories"`
	Balances    []AccountBalanceResponse `json:"balances"`
	Timeseries  []BalancePointResponse   `json:"timeseries"`
	Commitments CommitmentsResponse      `json:"commitments"`
}

// ToDashboardResponse converts the dashboard usecase output.
func ToDashboardResponse(output *ledger.GetDashboardOutput) DashboardResponse {
	response := DashboardResponse{
		Rows: ToLedgerRowListResponse(output.Rows),
		KPIs: KPIResponse{
			Receitas:          output.KPIs.Receitas.String(),
			ReceitasFormatted: FormatBRL(output.KPIs.Receitas),
			Despesas:          output.KPIs.Despesas.String(),
			DespesasFormatted: FormatBRL(output.KPIs.Despesas),
			Saldo:             output.KPIs.Saldo.String(),
			SaldoFormatted:    FormatBRL(output.KPIs.Saldo),
		},
		Monthly:    make([]MonthlyRowResponse, len(output.Monthly)),
		Categories: make([]CategoryTotalResponse, len(output.Categories)),
		Balances:   make([]AccountBalanceResponse, len(output.Balances)),
		Timeseries: make([]BalancePointResponse, len(output.Timeseries)),
		Commitments: CommitmentsResponse{
			AVencer:  output.Commitments.AVencer.String(),
			Vencidos: output.Commitments.Vencidos.String(),
			Total:    output.Commitments.Total.String(),
		},
	}
	for i, month := range output.Monthly {
		response.Monthly[i] = MonthlyRowResponse{
			Month:    month.Month,
			Receitas: month.Receitas.String(),
			Despesas: month.Despesas.String(),
			Saldo:    month.Saldo.String(),
		}
	}
	for i, category := range output.Categories {
		response.Categories[i] = CategoryTotalResponse{
			Category:       category.Category,
			Valor:          category.Valor.String(),
			ValorFormatted: FormatBRL(category.Valor),
		}
	}
	for i, balance := range output.Balances {
		response.Balances[i] = AccountBalanceResponse{
			Account:        balance.Account,
			Saldo:          balance.Saldo.String(),
			SaldoFormatted: FormatBRL(balance.Saldo),
		}
	}
	for i, point := range output.Timeseries {
		response.Timeseries[i] = BalancePointResponse{
			Date:        point.Date.Format("2006-01-02"),
			CashBalance: point.CashBalance.String(),
		}
	}
	return response
}

// PositionResponse is one portfolio line.
type PositionResponse struct {
	AssetID              string `json:"asset_id"`
	Symbol               string `json:"symbol"`
	Name                 string `json:"name"`
	AssetClass           string `json:"asset_class"`
	Currency             string `json:"currency"`
	Quantity             string `json:"quantity"`
	AvgCost              string `json:"avg_cost"`
	CostBasis            string `json:"cost_basis"`
	Price                string `json:"price"`
	PriceDate            string `json:"price_date,omitempty"`
	MarketValue          string `json:"market_value"`
	MarketValueFormatted string `json:"market_value_formatted"`
	RealizedPnL          string `json:"realized_pnl"`
	UnrealizedPnL        string `json:"unrealized_pnl"`
	Income               string `json:"income"`
	TotalReturn          string `json:"total_return"`
	ReturnPct            string `json:"return_pct"`
}

// PortfolioSummaryResponse is the portfolio footer block.
type PortfolioSummaryResponse struct {
	AssetCount           int    `json:"asset_count"`
	TotalInvested        string `json:"total_invested"`
	TotalMarket          string `json:"total_market"`
	TotalMarketFormatted string `json:"total_market_formatted"`
	TotalIncome          string `json:"total_income"`
	TotalRealized        string `json:"total_realized"`
	TotalUnrealized      string `json:"total_unrealized"`
	TotalReturn          string `json:"total_return"`
	TotalReturnPct       string `json:"total_return_pct"`
	BrokerBalance        string `json:"broker_balance"`
}

// PortfolioResponse is the full portfolio payload.
type PortfolioResponse struct {
	Positions []PositionResponse       `json:"positions"`
	Summary   PortfolioSummaryResponse `json:"summary"`
}

// ToPortfolioResponse converts the portfolio valuation output.
func ToPortfolioResponse(positions []*entity.PositionView, summary *entity.PortfolioSummary) PortfolioResponse {
	response := PortfolioResponse{
		Positions: make([]PositionResponse, len(positions)),
		Summary: PortfolioSummaryResponse{
			AssetCount:           summary.AssetCount,
			TotalInvested:        summary.TotalInvested.String(),
			TotalMarket:          summary.TotalMarket.String(),
			TotalMarketFormatted: FormatBRL(summary.TotalMarket),
			TotalIncome:          summary.TotalIncome.String(),
			TotalRealized:        summary.TotalRealized.String(),
			TotalUnrealized:      summary.TotalUnrealized.String(),
			TotalReturn:          summary.TotalReturn.String(),
			TotalReturnPct:       summary.TotalReturnPct.String(),
			BrokerBalance:        summary.BrokerBalance.String(),
		},
	}
	for i, view := range positions {
		item := PositionResponse{
			AssetID:              view.AssetID.String(),
			Symbol:               view.Symbol,
			Name:                 view.Name,
			AssetClass:           string(view.AssetClass),
			Currency:             string(view.Currency),
			Quantity:             view.Quantity.String(),
			AvgCost:              view.AvgCost.String(),
			CostBasis:            view.CostBasis.String(),
			Price:                view.Price.String(),
			MarketValue:          view.MarketValue.String(),
			MarketValueFormatted: FormatBRL(view.MarketValue),
			RealizedPnL:          view.RealizedPnL.String(),
			UnrealizedPnL:        view.UnrealizedPnL.String(),
			Income:               view.Income.String(),
			TotalReturn:          view.TotalReturn.String(),
			ReturnPct:            view.ReturnPct.String(),
		}
		if view.PriceDate != nil {
			item.PriceDate = view.PriceDate.Format("2006-01-02")
		}
		response.Positions[i] = item
	}
	return response
}
