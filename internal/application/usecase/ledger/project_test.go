// Package ledger projects the raw transaction and charge streams into the
// three reporting views.
package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

var today = day("2024-06-15")

func tx(date, desc, amount string, method entity.TransactionMethod, cat *entity.Category) *entity.TransactionWithDetails {
	return &entity.TransactionWithDetails{
		Transaction: &entity.Transaction{
			ID:          uuid.New(),
			Date:        day(date),
			Description: desc,
			Amount:      d(amount),
			Method:      method,
		},
		Account:  &entity.Account{Name: "Nubank"},
		Category: cat,
	}
}

func cardCharge(purchase, due, desc, amount string, paid bool) *entity.ChargeWithDetails {
	return &entity.ChargeWithDetails{
		Charge: &entity.CreditCardCharge{
			ID:           uuid.New(),
			PurchaseDate: day(purchase),
			DueDate:      day(due),
			Description:  desc,
			Amount:       d(amount),
			Paid:         paid,
		},
		Card:     &entity.CreditCard{Name: "Visa Infinite"},
		Category: &entity.Category{Name: "Mercado", Kind: entity.CategoryKindExpense},
	}
}

var (
	despesa = &entity.Category{Name: "Mercado", Kind: entity.CategoryKindExpense}
	receita = &entity.Category{Name: "Salário", Kind: entity.CategoryKindIncome}
	transf  = &entity.Category{Name: "Investimentos", Kind: entity.CategoryKindTransfer}
	fatura  = &entity.Category{Name: "Fatura Cartão", Kind: entity.CategoryKindExpense}
)

func TestProject_CashView(t *testing.T) {
	transactions := []*entity.TransactionWithDetails{
		tx("2024-06-01", "Salário", "5000", entity.MethodPIX, receita),
		tx("2024-06-20", "Aluguel", "-1500", entity.MethodCommitment, despesa),
		tx("2024-06-10", "Condomínio", "-800", entity.MethodCommitment, despesa),
	}

	rows := Project(transactions, nil, ViewCash, today)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Future commitment excluded; matured commitment included.
	for _, r := range rows {
		if r.Description == "Aluguel" {
			t.Error("future commitment must not appear in cash view")
		}
	}
	if rows[1].Description != "Condomínio" {
		t.Errorf("matured commitment missing, got %q", rows[1].Description)
	}
}

func TestProject_CommitmentMaturesOnItsDate(t *testing.T) {
	transactions := []*entity.TransactionWithDetails{
		tx("2024-06-15", "Boleto do dia", "-100", entity.MethodCommitment, despesa),
	}

	rows := Project(transactions, nil, ViewCash, today)
	if len(rows) != 1 {
		t.Fatalf("commitment dated today must count as cash, got %d rows", len(rows))
	}
}

func TestProject_AccrualView(t *testing.T) {
	transactions := []*entity.TransactionWithDetails{
		tx("2024-06-01", "Salário", "5000", entity.MethodPIX, receita),
		tx("2024-06-10", "PGTO FATURA Visa Infinite (2024-06)", "-900", entity.MethodCredit, fatura),
		tx("2024-06-11", "PGTO FATURA Visa Infinite (2024-06) - Mercado", "-300", entity.MethodCredit, despesa),
	}
	charges := []*entity.ChargeWithDetails{
		cardCharge("2024-05-28", "2024-06-10", "Mercado semanal", "250", true),
	}

	rows := Project(transactions, charges, ViewAccrual, today)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows (salary + charge), got %d", len(rows))
	}
	if rows[0].Description != "Mercado semanal" {
		t.Errorf("expected charge first by date, got %q", rows[0].Description)
	}
	// Charge renders as a negative expense at purchase date.
	if !rows[0].Amount.Equal(d("-250")) {
		t.Errorf("expected charge amount -250, got %s", rows[0].Amount)
	}
	if !rows[0].Date.Equal(day("2024-05-28")) {
		t.Errorf("expected purchase date, got %s", rows[0].Date)
	}
}

func TestProject_CommitmentsView(t *testing.T) {
	transactions := []*entity.TransactionWithDetails{
		tx("2024-06-01", "Salário", "5000", entity.MethodPIX, receita),
		tx("2024-06-10", "Aluguel", "-1500", entity.MethodCommitment, despesa),
		tx("2024-07-10", "Aluguel", "-1500", entity.MethodCommitment, despesa),
	}
	charges := []*entity.ChargeWithDetails{
		cardCharge("2024-06-01", "2024-07-10", "Notebook (1/10)", "400", false),
		cardCharge("2024-06-01", "2024-06-10", "Jantar", "120", false),
		cardCharge("2024-06-01", "2024-07-10", "Pago antigo", "90", true),
	}

	rows := Project(transactions, charges, ViewCommitments, today)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	byDesc := make(map[string]Row)
	for _, r := range rows {
		byDesc[r.Description] = r
	}

	if _, ok := byDesc["Salário"]; ok {
		t.Error("non-commitment transaction must not appear")
	}
	if _, ok := byDesc["Pago antigo"]; ok {
		t.Error("paid charge must not appear")
	}
	if _, ok := byDesc["Jantar"]; ok {
		t.Error("charge already due must not appear")
	}

	if got := byDesc["Notebook (1/10)"].Status; got != StatusAwaitingInvoice {
		t.Errorf("expected %q, got %q", StatusAwaitingInvoice, got)
	}

	overdue := false
	pending := false
	for _, r := range rows {
		if r.Description != "Aluguel" {
			continue
		}
		switch r.Status {
		case StatusOverdue:
			overdue = true
		case StatusPending:
			pending = true
		}
	}
	if !overdue || !pending {
		t.Errorf("expected one overdue and one pending Aluguel row (overdue=%v pending=%v)", overdue, pending)
	}
}

func TestProject_SortedByDate(t *testing.T) {
	transactions := []*entity.TransactionWithDetails{
		tx("2024-06-10", "b", "-10", entity.MethodPIX, despesa),
		tx("2024-06-01", "a", "-10", entity.MethodPIX, despesa),
		tx("2024-06-05", "c", "-10", entity.MethodPIX, despesa),
	}

	rows := Project(transactions, nil, ViewCash, today)
	for i := 1; i < len(rows); i++ {
		if rows[i].Date.Before(rows[i-1].Date) {
			t.Fatalf("rows out of order at %d", i)
		}
	}
}

func TestNormalizeView(t *testing.T) {
	tests := []struct {
		raw  string
		want View
	}{
		{"caixa", ViewCash},
		{"", ViewCash},
		{"competencia", ViewAccrual},
		{"Competência", ViewAccrual},
		{"futuro", ViewCommitments},
		{"compromissos", ViewCommitments},
		{"garbage", ViewCash},
	}
	for _, tt := range tests {
		if got := NormalizeView(tt.raw); got != tt.want {
			t.Errorf("NormalizeView(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}
