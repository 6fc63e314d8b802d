package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CardType distinguishes credit cards (charges accrue into invoices) from
// debit cards (expenses post straight to the linked bank account).
type CardType string

const (
	CardTypeCredit CardType = "Credito"
	CardTypeDebit  CardType = "Debito"
)

// CardBrand is the card network.
type CardBrand string

const (
	CardBrandVisa   CardBrand = "Visa"
	CardBrandMaster CardBrand = "Master"
)

// CreditCard represents a card configuration. CardAccountID is the virtual
// ledger charges post against; SourceAccountID is the bank account that
// actually pays invoices.
type CreditCard struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Brand           CardBrand
	Model           string
	CardType        CardType
	CardAccountID   uuid.UUID
	SourceAccountID uuid.UUID
	DueDay          int // 1..31
	CloseDay        int // 0..31; 0 = legacy "always next month"
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewCreditCard creates a new CreditCard entity.
func NewCreditCard(
	userID uuid.UUID,
	name string,
	brand CardBrand,
	model string,
	cardType CardType,
	cardAccountID uuid.UUID,
	sourceAccountID uuid.UUID,
	dueDay int,
	closeDay int,
) *CreditCard {
	now := time.Now().UTC()

	return &CreditCard{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		Brand:           brand,
		Model:           model,
		CardType:        cardType,
		CardAccountID:   cardAccountID,
		SourceAccountID: sourceAccountID,
		DueDay:          dueDay,
		CloseDay:        closeDay,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// InvoiceStatus is the derived state of a card invoice.
type InvoiceStatus string

const (
	InvoiceStatusOpen InvoiceStatus = "OPEN"
	InvoiceStatusPaid InvoiceStatus = "PAID"
)

// CreditCardInvoice is the rolling aggregate of one card's charges for one
// invoice period. Status is derived, never stored: OPEN iff total > paid.
type CreditCardInvoice struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	CardID        uuid.UUID
	InvoicePeriod string // "YYYY-MM"
	DueDate       time.Time
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Status derives the invoice state from its amounts.
func (i *CreditCardInvoice) Status() InvoiceStatus {
	if i.TotalAmount.GreaterThan(i.PaidAmount) {
		return InvoiceStatusOpen
	}
	return InvoiceStatusPaid
}

// Remaining is the unpaid part of the invoice.
func (i *CreditCardInvoice) Remaining() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

// chargeGroupPrefix tags a charge note with the series it belongs to, so a
// "delete future installments" request can find its siblings.
const chargeGroupPrefix = "[grupo:"

// CreditCardCharge is one purchase assigned to a card invoice period.
// Amount is always stored positive; the sign is applied at render time.
type CreditCardCharge struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	CardID        uuid.UUID
	PurchaseDate  time.Time
	Amount        decimal.Decimal // > 0
	CategoryID    *uuid.UUID
	Description   string
	InvoicePeriod string // "YYYY-MM"
	DueDate       time.Time
	Paid          bool
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCreditCardCharge creates a new unpaid charge.
func NewCreditCardCharge(
	userID uuid.UUID,
	cardID uuid.UUID,
	purchaseDate time.Time,
	amount decimal.Decimal,
	categoryID *uuid.UUID,
	description string,
	invoicePeriod string,
	dueDate time.Time,
	note string,
) *CreditCardCharge {
	now := time.Now().UTC()

	return &CreditCardCharge{
		ID:            uuid.New(),
		UserID:        userID,
		CardID:        cardID,
		PurchaseDate:  purchaseDate,
		Amount:        amount,
		CategoryID:    categoryID,
		Description:   description,
		InvoicePeriod: invoicePeriod,
		DueDate:       dueDate,
		Paid:          false,
		Note:          note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// GroupTag extracts the series tag embedded in the note, or "" for legacy
// rows without one.
func (c *CreditCardCharge) GroupTag() string {
	start := strings.Index(c.Note, chargeGroupPrefix)
	if start < 0 {
		return ""
	}
	rest := c.Note[start+len(chargeGroupPrefix):]
	end := strings.Index(rest, "]")
	if end < 0 {
		return ""
	}
	return rest[:end]
}

// AppendGroupTag returns the note with the series tag appended.
func AppendGroupTag(note, tag string) string {
	tagged := chargeGroupPrefix + tag + "]"
	if strings.TrimSpace(note) == "" {
		return tagged
	}
	return note + " " + tagged
}

// BaseDescription strips a trailing "(n/m)" installment suffix, used when
// matching legacy series rows that predate group tags.
func (c *CreditCardCharge) BaseDescription() string {
	desc := strings.TrimSpace(c.Description)
	open := strings.LastIndex(desc, "(")
	if open < 0 || !strings.HasSuffix(desc, ")") {
		return desc
	}
	inner := desc[open+1 : len(desc)-1]
	var cur, total int
	if _, err := fmt.Sscanf(inner, "%d/%d", &cur, &total); err != nil {
		return desc
	}
	return strings.TrimSpace(desc[:open])
}

// ChargeWithDetails carries a charge with its card and category resolved.
type ChargeWithDetails struct {
	Charge   *CreditCardCharge
	Card     *CreditCard
	Category *Category
}
