package dto

import (
	"time"

	"github.com/controle-financeiro/backend/internal/application/usecase/ledger"
	"github.com/controle-financeiro/backend/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction
// creation. Depending on the method and target fields the same request can
// produce a single row, a transfer pair, a future schedule, a card charge
// series or a debit expense.
type CreateTransactionRequest struct {
	Date            string  `json:"date" binding:"required"`
	Description     string  `json:"description" binding:"required,min=1,max=255"`
	Amount          string  `json:"amount" binding:"required"`
	Kind            string  `json:"kind,omitempty"`
	AccountID       string  `json:"account_id,omitempty"`
	SourceAccountID string  `json:"source_account_id,omitempty"`
	CategoryID      *string `json:"category_id,omitempty"`
	Method          string  `json:"method,omitempty"`
	CardID          *string `json:"card_id,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	DueDay          int     `json:"due_day,omitempty"`
	RepeatMonths    int     `json:"repeat_months,omitempty"`
	Installments    int     `json:"installments,omitempty"`
}

// CreateTransactionResponse reports what the creation actually produced.
type CreateTransactionResponse struct {
	Mode      string  `json:"mode"`
	Created   int     `json:"created"`
	FirstDate string  `json:"first_date,omitempty"`
	LastDate  string  `json:"last_date,omitempty"`
}

// ToCreateTransactionResponse converts the usecase output.
func ToCreateTransactionResponse(output *transaction.CreateTransactionOutput) CreateTransactionResponse {
	response := CreateTransactionResponse{
		Mode:    string(output.Mode),
		Created: output.Created,
	}
	if output.FirstDate != nil && !output.FirstDate.IsZero() {
		response.FirstDate = output.FirstDate.Format("2006-01-02")
	}
	if output.LastDate != nil && !output.LastDate.IsZero() {
		response.LastDate = output.LastDate.Format("2006-01-02")
	}
	return response
}

// SettleCommitmentRequest represents the request body for settling a
// scheduled commitment into a realized cash movement.
type SettleCommitmentRequest struct {
	PaymentDate string `json:"payment_date" binding:"required"`
	AccountID   string `json:"account_id" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Notes       string `json:"notes,omitempty"`
}

// ImportRowRequest is one row of a bulk import payload.
type ImportRowRequest struct {
	Date        string `json:"date" binding:"required"`
	Description string `json:"description" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Account     string `json:"account" binding:"required"`
	Category    string `json:"category,omitempty"`
	Method      string `json:"method,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// BulkImportRequest represents the request body for bulk transaction import.
type BulkImportRequest struct {
	Rows []ImportRowRequest `json:"rows" binding:"required,min=1,dive"`
}

// BulkImportResponse reports the import totals.
type BulkImportResponse struct {
	Rows     int `json:"rows"`
	Inserted int `json:"inserted"`
}

// LedgerRowResponse is one projected ledger entry in API responses. The raw
// decimal string feeds arithmetic on the client; the formatted field is the
// display value.
type LedgerRowResponse struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	Description     string `json:"description"`
	Amount          string `json:"amount"`
	AmountFormatted string `json:"amount_formatted"`
	Account         string `json:"account"`
	Category        string `json:"category,omitempty"`
	CategoryKind    string `json:"category_kind,omitempty"`
	Method          string `json:"method,omitempty"`
	Notes           string `json:"notes,omitempty"`
	Status          string `json:"status,omitempty"`
}

// ToLedgerRowResponse converts a projected ledger row.
func ToLedgerRowResponse(row ledger.Row) LedgerRowResponse {
	return LedgerRowResponse{
		ID:              row.ID.String(),
		Date:            row.Date.Format("2006-01-02"),
		Description:     row.Description,
		Amount:          row.Amount.String(),
		AmountFormatted: FormatBRL(row.Amount),
		Account:         row.Account,
		Category:        row.Category,
		CategoryKind:    string(row.CategoryKind),
		Method:          string(row.Method),
		Notes:           row.Notes,
		Status:          row.Status,
	}
}

// ToLedgerRowListResponse converts a slice of projected rows.
func ToLedgerRowListResponse(rows []ledger.Row) []LedgerRowResponse {
	responses := make([]LedgerRowResponse, len(rows))
	for i, row := range rows {
		responses[i] = ToLedgerRowResponse(row)
	}
	return responses
}

// ParseDate parses the date format the API accepts everywhere.
func ParseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}
