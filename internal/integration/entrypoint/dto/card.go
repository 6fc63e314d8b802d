package dto

import (
	"time"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// CreateCardRequest represents the request body for card creation.
// SourceAccountID defaults to the card account when omitted.
type CreateCardRequest struct {
	Name            string  `json:"name" binding:"required,min=1,max=255"`
	Brand           string  `json:"brand" binding:"required"`
	Model           string  `json:"model,omitempty"`
	CardType        string  `json:"card_type" binding:"required"`
	CardAccountID   string  `json:"card_account_id" binding:"required"`
	SourceAccountID *string `json:"source_account_id,omitempty"`
	DueDay          int     `json:"due_day" binding:"required,min=1,max=31"`
	CloseDay        int     `json:"close_day" binding:"min=0,max=31"`
}

// UpdateCardRequest represents the request body for card update. All fields
// are replaced.
type UpdateCardRequest struct {
	Name            string  `json:"name" binding:"required,min=1,max=255"`
	Brand           string  `json:"brand" binding:"required"`
	Model           string  `json:"model,omitempty"`
	CardType        string  `json:"card_type" binding:"required"`
	CardAccountID   string  `json:"card_account_id" binding:"required"`
	SourceAccountID *string `json:"source_account_id,omitempty"`
	DueDay          int     `json:"due_day" binding:"required,min=1,max=31"`
	CloseDay        int     `json:"close_day" binding:"min=0,max=31"`
}

// CardResponse represents a card in API responses.
type CardResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Brand           string    `json:"brand"`
	Model           string    `json:"model,omitempty"`
	CardType        string    `json:"card_type"`
	CardAccountID   string    `json:"card_account_id"`
	SourceAccountID string    `json:"source_account_id"`
	DueDay          int       `json:"due_day"`
	CloseDay        int       `json:"close_day"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToCardResponse converts a card entity to its response form.
func ToCardResponse(card *entity.CreditCard) CardResponse {
	return CardResponse{
		ID:              card.ID.String(),
		Name:            card.Name,
		Brand:           string(card.Brand),
		Model:           card.Model,
		CardType:        string(card.CardType),
		CardAccountID:   card.CardAccountID.String(),
		SourceAccountID: card.SourceAccountID.String(),
		DueDay:          card.DueDay,
		CloseDay:        card.CloseDay,
		CreatedAt:       card.CreatedAt,
		UpdatedAt:       card.UpdatedAt,
	}
}

// ToCardListResponse converts a slice of cards.
func ToCardListResponse(cards []*entity.CreditCard) []CardResponse {
	responses := make([]CardResponse, len(cards))
	for i, card := range cards {
		responses[i] = ToCardResponse(card)
	}
	return responses
}

// RegisterChargeRequest represents the request body for registering a card
// purchase. Amount is the per-installment value.
type RegisterChargeRequest struct {
	CardID       string  `json:"card_id" binding:"required"`
	PurchaseDate string  `json:"purchase_date" binding:"required"`
	Amount       string  `json:"amount" binding:"required"`
	CategoryID   *string `json:"category_id,omitempty"`
	Description  string  `json:"description" binding:"required,min=1,max=255"`
	Note         string  `json:"note,omitempty"`
	Installments int     `json:"installments,omitempty"`
}

// ChargeResponse represents a card charge in API responses.
type ChargeResponse struct {
	ID              string `json:"id"`
	CardID          string `json:"card_id"`
	CardName        string `json:"card_name,omitempty"`
	PurchaseDate    string `json:"purchase_date"`
	Amount          string `json:"amount"`
	AmountFormatted string `json:"amount_formatted"`
	CategoryID      string `json:"category_id,omitempty"`
	CategoryName    string `json:"category_name,omitempty"`
	Description     string `json:"description"`
	InvoicePeriod   string `json:"invoice_period"`
	DueDate         string `json:"due_date"`
	Paid            bool   `json:"paid"`
	Note            string `json:"note,omitempty"`
}

// ToChargeResponse converts a bare charge entity.
func ToChargeResponse(charge *entity.CreditCardCharge) ChargeResponse {
	response := ChargeResponse{
		ID:              charge.ID.String(),
		CardID:          charge.CardID.String(),
		PurchaseDate:    charge.PurchaseDate.Format("2006-01-02"),
		Amount:          charge.Amount.String(),
		AmountFormatted: FormatBRL(charge.Amount),
		Description:     charge.Description,
		InvoicePeriod:   charge.InvoicePeriod,
		DueDate:         charge.DueDate.Format("2006-01-02"),
		Paid:            charge.Paid,
		Note:            charge.Note,
	}
	if charge.CategoryID != nil {
		response.CategoryID = charge.CategoryID.String()
	}
	return response
}

// ToChargeWithDetailsResponse converts a charge with its card and category
// resolved.
func ToChargeWithDetailsResponse(detail *entity.ChargeWithDetails) ChargeResponse {
	response := ToChargeResponse(detail.Charge)
	if detail.Card != nil {
		response.CardName = detail.Card.Name
	}
	if detail.Category != nil {
		response.CategoryName = detail.Category.Name
	}
	return response
}

// ToChargeListResponse converts a slice of detailed charges.
func ToChargeListResponse(details []*entity.ChargeWithDetails) []ChargeResponse {
	responses := make([]ChargeResponse, len(details))
	for i, detail := range details {
		responses[i] = ToChargeWithDetailsResponse(detail)
	}
	return responses
}

// RegisterChargeResponse reports the charges a registration produced.
type RegisterChargeResponse struct {
	Charges []ChargeResponse `json:"charges"`
}

// InvoiceResponse represents a card invoice in API responses. Status is
// derived from the amounts.
type InvoiceResponse struct {
	ID                 string `json:"id"`
	CardID             string `json:"card_id"`
	InvoicePeriod      string `json:"invoice_period"`
	DueDate            string `json:"due_date"`
	TotalAmount        string `json:"total_amount"`
	TotalFormatted     string `json:"total_formatted"`
	PaidAmount         string `json:"paid_amount"`
	Remaining          string `json:"remaining"`
	RemainingFormatted string `json:"remaining_formatted"`
	Status             string `json:"status"`
}

// ToInvoiceResponse converts an invoice entity to its response form.
func ToInvoiceResponse(invoice *entity.CreditCardInvoice) InvoiceResponse {
	remaining := invoice.Remaining()
	return InvoiceResponse{
		ID:                 invoice.ID.String(),
		CardID:             invoice.CardID.String(),
		InvoicePeriod:      invoice.InvoicePeriod,
		DueDate:            invoice.DueDate.Format("2006-01-02"),
		TotalAmount:        invoice.TotalAmount.String(),
		TotalFormatted:     FormatBRL(invoice.TotalAmount),
		PaidAmount:         invoice.PaidAmount.String(),
		Remaining:          remaining.String(),
		RemainingFormatted: FormatBRL(remaining),
		Status:             string(invoice.Status()),
	}
}

// ToInvoiceListResponse converts a slice of invoices.
func ToInvoiceListResponse(invoices []*entity.CreditCardInvoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		responses[i] = ToInvoiceResponse(invoice)
	}
	return responses
}

// PayInvoiceRequest represents the request body for invoice payment.
// Amount defaults to the open remainder; SourceAccountID defaults to the
// card's configured source account.
type PayInvoiceRequest struct {
	PaymentDate     string  `json:"payment_date" binding:"required"`
	SourceAccountID *string `json:"source_account_id,omitempty"`
	Amount          *string `json:"amount,omitempty"`
}

// PayInvoiceResponse carries the updated invoice and the cash rows the
// payment created.
type PayInvoiceResponse struct {
	Invoice      InvoiceResponse `json:"invoice"`
	Transactions int             `json:"transactions"`
}

// DeleteChargeResponse reports how many charges a deletion removed.
type DeleteChargeResponse struct {
	Deleted int `json:"deleted"`
}
