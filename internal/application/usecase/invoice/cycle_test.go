// Package invoice implements the credit card invoice cycle engine.
package invoice

import (
	"testing"
	"time"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		name     string
		closeDay int
		purchase string
		want     string
	}{
		{"on close day stays in month", 25, "2024-03-20", "2024-03"},
		{"close day itself stays in month", 25, "2024-03-25", "2024-03"},
		{"after close day rolls to next month", 25, "2024-03-28", "2024-04"},
		{"december rollover crosses year", 25, "2024-12-28", "2025-01"},
		{"legacy card always rolls", 0, "2024-03-02", "2024-04"},
		{"legacy card december", 0, "2024-12-02", "2025-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := &entity.CreditCard{CloseDay: tt.closeDay, DueDay: 10}
			got := ResolvePeriod(card, day(tt.purchase))
			if got != tt.want {
				t.Errorf("ResolvePeriod(close=%d, %s) = %s, want %s", tt.closeDay, tt.purchase, got, tt.want)
			}
		})
	}
}

func TestDueDate(t *testing.T) {
	tests := []struct {
		name   string
		dueDay int
		period string
		want   string
	}{
		{"regular month", 10, "2024-04", "2024-04-10"},
		{"clamped to february", 31, "2024-02", "2024-02-29"},
		{"clamped to non leap february", 30, "2023-02", "2023-02-28"},
		{"clamped to thirty day month", 31, "2024-04", "2024-04-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := &entity.CreditCard{DueDay: tt.dueDay}
			got := DueDate(card, tt.period)
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("DueDate(due=%d, %s) = %s, want %s", tt.dueDay, tt.period, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestNextPeriod(t *testing.T) {
	tests := []struct {
		period string
		n      int
		want   string
	}{
		{"2024-03", 0, "2024-03"},
		{"2024-03", 1, "2024-04"},
		{"2024-11", 3, "2025-02"},
		{"2024-01", 24, "2026-01"},
	}

	for _, tt := range tests {
		if got := NextPeriod(tt.period, tt.n); got != tt.want {
			t.Errorf("NextPeriod(%s, %d) = %s, want %s", tt.period, tt.n, got, tt.want)
		}
	}
}
