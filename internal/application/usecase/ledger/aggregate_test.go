package ledger

import (
	"testing"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

func row(date, amount string, kind entity.CategoryKind, category, account string) Row {
	return Row{
		Date:         day(date),
		Amount:       d(amount),
		CategoryKind: kind,
		Category:     category,
		Account:      account,
	}
}

func TestKPIs(t *testing.T) {
	rows := []Row{
		row("2024-06-01", "5000", entity.CategoryKindIncome, "Salário", "Nubank"),
		row("2024-06-05", "-1200", entity.CategoryKindExpense, "Mercado", "Nubank"),
		row("2024-06-07", "-2000", entity.CategoryKindTransfer, "Investimentos", "Nubank"),
		row("2024-06-07", "2000", entity.CategoryKindTransfer, "Investimentos", "XP"),
	}

	k := KPIs(rows)

	if !k.Receitas.Equal(d("5000")) {
		t.Errorf("expected receitas 5000, got %s", k.Receitas)
	}
	if !k.Despesas.Equal(d("-1200")) {
		t.Errorf("expected despesas -1200, got %s", k.Despesas)
	}
	if !k.Saldo.Equal(d("3800")) {
		t.Errorf("expected saldo 3800, got %s", k.Saldo)
	}
}

func TestTransferNetsToZeroAcrossAccounts(t *testing.T) {
	rows := []Row{
		row("2024-06-07", "-2000", entity.CategoryKindTransfer, "Investimentos", "Nubank"),
		row("2024-06-07", "2000", entity.CategoryKindTransfer, "Investimentos", "XP"),
	}

	balances := AccountBalances(rows)
	total := d("0")
	for _, b := range balances {
		total = total.Add(b.Saldo)
	}
	if !total.IsZero() {
		t.Errorf("transfer must net to zero across accounts, got %s", total)
	}

	k := KPIs(rows)
	if !k.Receitas.IsZero() || !k.Despesas.IsZero() {
		t.Errorf("transfer must not touch KPIs, got receitas=%s despesas=%s", k.Receitas, k.Despesas)
	}
}

func TestMonthlySummary(t *testing.T) {
	rows := []Row{
		row("2024-05-10", "3000", entity.CategoryKindIncome, "Salário", "Nubank"),
		row("2024-05-20", "-500", entity.CategoryKindExpense, "Mercado", "Nubank"),
		row("2024-06-10", "3000", entity.CategoryKindIncome, "Salário", "Nubank"),
	}

	monthly := MonthlySummary(rows)
	if len(monthly) != 2 {
		t.Fatalf("expected 2 months, got %d", len(monthly))
	}
	if monthly[0].Month != "2024-05" || monthly[1].Month != "2024-06" {
		t.Errorf("months out of order: %s, %s", monthly[0].Month, monthly[1].Month)
	}
	if !monthly[0].Saldo.Equal(d("2500")) {
		t.Errorf("expected may saldo 2500, got %s", monthly[0].Saldo)
	}
}

func TestCategoryExpenses(t *testing.T) {
	rows := []Row{
		row("2024-06-01", "-300", entity.CategoryKindExpense, "Mercado", "Nubank"),
		row("2024-06-02", "-700", entity.CategoryKindExpense, "Aluguel", "Nubank"),
		row("2024-06-03", "-100", entity.CategoryKindExpense, "Mercado", "Nubank"),
		row("2024-06-04", "5000", entity.CategoryKindIncome, "Salário", "Nubank"),
	}

	out := CategoryExpenses(rows)
	if len(out) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(out))
	}
	if out[0].Category != "Aluguel" || !out[0].Valor.Equal(d("700")) {
		t.Errorf("expected Aluguel=700 first, got %s=%s", out[0].Category, out[0].Valor)
	}
	if out[1].Category != "Mercado" || !out[1].Valor.Equal(d("400")) {
		t.Errorf("expected Mercado=400, got %s=%s", out[1].Category, out[1].Valor)
	}
}

func TestCashBalanceTimeseries(t *testing.T) {
	rows := []Row{
		row("2024-06-01", "100", entity.CategoryKindIncome, "", "Nubank"),
		row("2024-06-01", "-30", entity.CategoryKindExpense, "", "Nubank"),
		row("2024-06-03", "-20", entity.CategoryKindExpense, "", "Nubank"),
	}

	series := CashBalanceTimeseries(rows)
	if len(series) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series))
	}
	if !series[0].CashBalance.Equal(d("70")) {
		t.Errorf("expected 70 on day one, got %s", series[0].CashBalance)
	}
	if !series[1].CashBalance.Equal(d("50")) {
		t.Errorf("expected running 50, got %s", series[1].CashBalance)
	}
}

func TestSummarizeCommitments(t *testing.T) {
	rows := []Row{
		{Amount: d("-1500"), Status: StatusOverdue},
		{Amount: d("-800"), Status: StatusPending},
		{Amount: d("-400"), Status: StatusAwaitingInvoice},
	}

	s := SummarizeCommitments(rows)
	if !s.Vencidos.Equal(d("1500")) {
		t.Errorf("expected vencidos 1500, got %s", s.Vencidos)
	}
	if !s.AVencer.Equal(d("1200")) {
		t.Errorf("expected a vencer 1200, got %s", s.AVencer)
	}
	if !s.Total.Equal(d("2700")) {
		t.Errorf("expected total 2700, got %s", s.Total)
	}
}

func TestAvailableCash(t *testing.T) {
	transactions := []*entity.Transaction{
		{Date: day("2024-06-01"), Amount: d("1000"), Method: entity.MethodPIX},
		{Date: day("2024-06-20"), Amount: d("-300"), Method: entity.MethodCommitment},
		{Date: day("2024-06-10"), Amount: d("-200"), Method: entity.MethodCommitment},
	}

	got := AvailableCash(transactions, today)
	// Future commitment (-300) excluded; matured one (-200) counts.
	if !got.Equal(d("800")) {
		t.Errorf("expected available cash 800, got %s", got)
	}
}
