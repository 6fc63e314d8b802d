package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// GetDashboardInput represents the input for a dashboard projection.
type GetDashboardInput struct {
	UserID   uuid.UUID
	View     View
	DateFrom *time.Time
	DateTo   *time.Time
	Account  string // filter by account name; empty = all
}

// GetDashboardOutput carries the projected rows and every aggregation the
// dashboard renders from them.
type GetDashboardOutput struct {
	Rows        []Row
	KPIs        KPIResult
	Monthly     []MonthlyRow
	Categories  []CategoryTotal
	Balances    []AccountBalance
	Timeseries  []BalancePoint
	Commitments CommitmentsSummary
}

// GetDashboardUseCase recomputes a full dashboard from the raw streams.
type GetDashboardUseCase struct {
	transactionRepo adapter.TransactionRepository
	invoiceRepo     adapter.InvoiceRepository
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(
	transactionRepo adapter.TransactionRepository,
	invoiceRepo adapter.InvoiceRepository,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		transactionRepo: transactionRepo,
		invoiceRepo:     invoiceRepo,
	}
}

// Execute projects the requested view and aggregates it. Date and account
// filters apply to the projected rows, so a charge surfacing in the accrual
// view is filtered by its projected date, not its storage date.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*GetDashboardOutput, error) {
	transactions, err := uc.transactionRepo.FindByUserWithDetails(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	var charges []*entity.ChargeWithDetails
	if input.View == ViewAccrual || input.View == ViewCommitments {
		charges, err = uc.invoiceRepo.ListChargesWithDetails(ctx, input.UserID, adapter.ChargeFilter{})
		if err != nil {
			return nil, fmt.Errorf("loading charges: %w", err)
		}
	}

	rows := Project(transactions, charges, input.View, time.Now().UTC())
	rows = filterRows(rows, input)

	out := &GetDashboardOutput{
		Rows:       rows,
		KPIs:       KPIs(rows),
		Monthly:    MonthlySummary(rows),
		Categories: CategoryExpenses(rows),
		Balances:   AccountBalances(rows),
		Timeseries: CashBalanceTimeseries(rows),
	}
	if input.View == ViewCommitments {
		out.Commitments = SummarizeCommitments(rows)
	}

	return out, nil
}

func filterRows(rows []Row, input GetDashboardInput) []Row {
	out := rows[:0:0]
	for _, r := range rows {
		if input.DateFrom != nil && r.Date.Before(truncateDay(*input.DateFrom)) {
			continue
		}
		if input.DateTo != nil && r.Date.After(truncateDay(*input.DateTo)) {
			continue
		}
		if input.Account != "" && r.Account != input.Account {
			continue
		}
		out = append(out, r)
	}
	return out
}
