// Package ledger projects the raw transaction and charge streams into the
// three reporting views: caixa (cash), competencia (accrual) and futuro
// (commitments).
package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// View selects a ledger projection.
type View string

const (
	// ViewCash shows realized cash movements only.
	ViewCash View = "caixa"
	// ViewAccrual recognizes card expenses at purchase time.
	ViewAccrual View = "competencia"
	// ViewCommitments shows scheduled-but-unsettled rows.
	ViewCommitments View = "futuro"
)

// NormalizeView maps raw view strings (including legacy aliases) onto the
// closed view set, defaulting to cash.
func NormalizeView(raw string) View {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "competencia", "competência", "accrual":
		return ViewAccrual
	case "futuro", "compromissos", "commitments":
		return ViewCommitments
	}
	return ViewCash
}

// Commitment status flags, as the dashboard renders them.
const (
	StatusPending        = "Pendente"
	StatusOverdue        = "Vencido"
	StatusPaid           = "Pago"
	StatusAwaitingInvoice = "Aguardando Fatura"
)

// InvoicePaymentPrefix marks cash rows created by invoice payments; the
// accrual view drops them to avoid double counting card expenses.
const InvoicePaymentPrefix = "PGTO FATURA "

// invoiceFallbackCategory matches the category assigned to uncategorized
// invoice payment chunks.
const invoiceFallbackCategory = "Fatura Cartão"

// Row is one projected ledger entry. Charges and transactions flatten into
// the same shape so the aggregations run uniformly.
type Row struct {
	ID           uuid.UUID
	Date         time.Time
	Description  string
	Amount       decimal.Decimal
	Account      string
	Category     string
	CategoryKind entity.CategoryKind
	Method       entity.TransactionMethod
	Notes        string
	Status       string // commitment flag; empty outside the futuro view
}

// Project builds the requested view from raw rows, sorted (date, id)
// ascending. The today parameter fixes commitment maturation: a commitment
// row whose date has passed counts as cash even before explicit settlement.
func Project(
	transactions []*entity.TransactionWithDetails,
	charges []*entity.ChargeWithDetails,
	view View,
	today time.Time,
) []Row {
	today = truncateDay(today)

	var rows []Row
	switch view {
	case ViewAccrual:
		rows = projectAccrual(transactions, charges)
	case ViewCommitments:
		rows = projectCommitments(transactions, charges, today)
	default:
		rows = projectCash(transactions, today)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].ID.String() < rows[j].ID.String()
	})

	return rows
}

func projectCash(transactions []*entity.TransactionWithDetails, today time.Time) []Row {
	rows := make([]Row, 0, len(transactions))
	for _, t := range transactions {
		if t.Transaction.Method.IsCommitment() && truncateDay(t.Transaction.Date).After(today) {
			continue
		}
		rows = append(rows, transactionRow(t))
	}
	return rows
}

func projectAccrual(transactions []*entity.TransactionWithDetails, charges []*entity.ChargeWithDetails) []Row {
	rows := make([]Row, 0, len(transactions)+len(charges))
	for _, t := range transactions {
		if isInvoicePayment(t) {
			continue
		}
		rows = append(rows, transactionRow(t))
	}
	for _, c := range charges {
		rows = append(rows, chargeRow(c, c.Charge.PurchaseDate, ""))
	}
	return rows
}

func projectCommitments(transactions []*entity.TransactionWithDetails, charges []*entity.ChargeWithDetails, today time.Time) []Row {
	var rows []Row
	for _, t := range transactions {
		if !t.Transaction.Method.IsCommitment() {
			continue
		}
		row := transactionRow(t)
		if truncateDay(t.Transaction.Date).Before(today) {
			row.Status = StatusOverdue
		} else {
			row.Status = StatusPending
		}
		rows = append(rows, row)
	}
	for _, c := range charges {
		if c.Charge.Paid || !truncateDay(c.Charge.DueDate).After(today) {
			continue
		}
		rows = append(rows, chargeRow(c, c.Charge.DueDate, StatusAwaitingInvoice))
	}
	return rows
}

// isInvoicePayment detects the cash rows emitted by invoice payment: the
// description prefix or the fallback invoice category.
func isInvoicePayment(t *entity.TransactionWithDetails) bool {
	if strings.HasPrefix(t.Transaction.Description, InvoicePaymentPrefix) {
		return true
	}
	return t.Category != nil && t.Category.Name == invoiceFallbackCategory
}

func transactionRow(t *entity.TransactionWithDetails) Row {
	row := Row{
		ID:          t.Transaction.ID,
		Date:        t.Transaction.Date,
		Description: t.Transaction.Description,
		Amount:      t.Transaction.Amount,
		Method:      t.Transaction.Method,
		Notes:       t.Transaction.Notes,
	}
	if t.Account != nil {
		row.Account = t.Account.Name
	}
	if t.Category != nil {
		row.Category = t.Category.Name
		row.CategoryKind = t.Category.Kind
	}
	return row
}

// chargeRow renders a card charge as a negative expense. The accrual view
// dates it at purchase, the commitments view at the invoice due date.
func chargeRow(c *entity.ChargeWithDetails, date time.Time, status string) Row {
	row := Row{
		ID:           c.Charge.ID,
		Date:         date,
		Description:  c.Charge.Description,
		Amount:       c.Charge.Amount.Neg(),
		Method:       entity.MethodCredit,
		Notes:        c.Charge.Note,
		CategoryKind: entity.CategoryKindExpense,
		Status:       status,
	}
	if c.Card != nil {
		row.Account = c.Card.Name
	}
	if c.Category != nil {
		row.Category = c.Category.Name
		row.CategoryKind = c.Category.Kind
	}
	return row
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
