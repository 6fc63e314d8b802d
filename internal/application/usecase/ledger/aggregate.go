package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// KPIResult is the dashboard headline: income, expenses and their net.
// Transfer-kind rows are balance-neutral and stay out of all three.
type KPIResult struct {
	Receitas decimal.Decimal
	Despesas decimal.Decimal // negative
	Saldo    decimal.Decimal
}

// KPIs sums the projected rows into the headline figures.
func KPIs(rows []Row) KPIResult {
	out := KPIResult{
		Receitas: decimal.Zero,
		Despesas: decimal.Zero,
		Saldo:    decimal.Zero,
	}

	for _, r := range rows {
		if r.CategoryKind == entity.CategoryKindTransfer {
			continue
		}
		if r.Amount.IsPositive() {
			out.Receitas = out.Receitas.Add(r.Amount)
		} else {
			out.Despesas = out.Despesas.Add(r.Amount)
		}
	}

	out.Saldo = out.Receitas.Add(out.Despesas)
	return out
}

// MonthlyRow is one month's income/expense totals.
type MonthlyRow struct {
	Month    string // "YYYY-MM"
	Receitas decimal.Decimal
	Despesas decimal.Decimal
	Saldo    decimal.Decimal
}

// MonthlySummary groups non-transfer rows by month, ascending.
func MonthlySummary(rows []Row) []MonthlyRow {
	byMonth := make(map[string]*MonthlyRow)
	var months []string

	for _, r := range rows {
		if r.CategoryKind == entity.CategoryKindTransfer {
			continue
		}
		month := r.Date.Format("2006-01")
		m, ok := byMonth[month]
		if !ok {
			m = &MonthlyRow{Month: month, Receitas: decimal.Zero, Despesas: decimal.Zero}
			byMonth[month] = m
			months = append(months, month)
		}
		if r.Amount.IsPositive() {
			m.Receitas = m.Receitas.Add(r.Amount)
		} else {
			m.Despesas = m.Despesas.Add(r.Amount)
		}
	}

	sort.Strings(months)
	out := make([]MonthlyRow, 0, len(months))
	for _, month := range months {
		m := byMonth[month]
		m.Saldo = m.Receitas.Add(m.Despesas)
		out = append(out, *m)
	}
	return out
}

// CategoryTotal is one expense category's absolute total.
type CategoryTotal struct {
	Category string
	Valor    decimal.Decimal
}

// CategoryExpenses totals expense-kind rows per category, largest first.
func CategoryExpenses(rows []Row) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	var names []string

	for _, r := range rows {
		if r.CategoryKind != entity.CategoryKindExpense {
			continue
		}
		name := r.Category
		if name == "" {
			name = "Sem categoria"
		}
		if _, ok := totals[name]; !ok {
			names = append(names, name)
		}
		totals[name] = totals[name].Add(r.Amount.Abs())
	}

	out := make([]CategoryTotal, 0, len(names))
	for _, name := range names {
		out = append(out, CategoryTotal{Category: name, Valor: totals[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Valor.GreaterThan(out[j].Valor) })
	return out
}

// AccountBalance is one account's signed sum over the projected rows.
type AccountBalance struct {
	Account string
	Saldo   decimal.Decimal
}

// AccountBalances sums rows per account, largest balance first.
func AccountBalances(rows []Row) []AccountBalance {
	totals := make(map[string]decimal.Decimal)
	var names []string

	for _, r := range rows {
		if _, ok := totals[r.Account]; !ok {
			names = append(names, r.Account)
		}
		totals[r.Account] = totals[r.Account].Add(r.Amount)
	}

	out := make([]AccountBalance, 0, len(names))
	for _, name := range names {
		out = append(out, AccountBalance{Account: name, Saldo: totals[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Saldo.GreaterThan(out[j].Saldo) })
	return out
}

// BalancePoint is one day of the cumulative cash balance series.
type BalancePoint struct {
	Date        time.Time
	CashBalance decimal.Decimal
}

// CashBalanceTimeseries accumulates the daily signed sums into a running
// balance, date ascending.
func CashBalanceTimeseries(rows []Row) []BalancePoint {
	daily := make(map[time.Time]decimal.Decimal)
	var days []time.Time

	for _, r := range rows {
		day := truncateDay(r.Date)
		if _, ok := daily[day]; !ok {
			days = append(days, day)
		}
		daily[day] = daily[day].Add(r.Amount)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]BalancePoint, 0, len(days))
	running := decimal.Zero
	for _, day := range days {
		running = running.Add(daily[day])
		out = append(out, BalancePoint{Date: day, CashBalance: running})
	}
	return out
}

// CommitmentsSummary totals commitment rows by status.
type CommitmentsSummary struct {
	AVencer  decimal.Decimal // pending and awaiting-invoice, absolute
	Vencidos decimal.Decimal // overdue, absolute
	Total    decimal.Decimal
}

// SummarizeCommitments folds the futuro-view rows into aging buckets.
func SummarizeCommitments(rows []Row) CommitmentsSummary {
	out := CommitmentsSummary{
		AVencer:  decimal.Zero,
		Vencidos: decimal.Zero,
		Total:    decimal.Zero,
	}

	for _, r := range rows {
		value := r.Amount.Abs()
		if r.Status == StatusOverdue {
			out.Vencidos = out.Vencidos.Add(value)
		} else {
			out.AVencer = out.AVencer.Add(value)
		}
	}

	out.Total = out.AVencer.Add(out.Vencidos)
	return out
}

// AvailableCash sums an account's rows excluding commitment rows still in
// the future: money already promised but not yet due does not reduce what
// is spendable today.
func AvailableCash(transactions []*entity.Transaction, today time.Time) decimal.Decimal {
	today = truncateDay(today)
	total := decimal.Zero
	for _, t := range transactions {
		if t.Method.IsCommitment() && truncateDay(t.Date).After(today) {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}
