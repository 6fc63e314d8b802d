// Package invoice implements the credit card invoice cycle engine.
package invoice

import (
	"fmt"
	"time"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// ResolvePeriod maps a purchase date onto the card's invoice period.
// With a positive close day, purchases on or before it stay in the purchase
// month; later ones roll to the next month. Legacy cards (close day 0)
// always roll to the next month.
func ResolvePeriod(card *entity.CreditCard, purchaseDate time.Time) string {
	year, month := purchaseDate.Year(), int(purchaseDate.Month())

	if card.CloseDay > 0 {
		if purchaseDate.Day() > card.CloseDay {
			year, month = addMonths(year, month, 1)
		}
	} else {
		year, month = addMonths(year, month, 1)
	}

	return fmt.Sprintf("%04d-%02d", year, month)
}

// DueDate resolves the card's due date inside the period's month, clamping
// the configured day to the month's length (due day 31 in February pays on
// the 28th or 29th).
func DueDate(card *entity.CreditCard, period string) time.Time {
	year, month := parsePeriod(period)
	return dateWithClampedDay(year, month, card.DueDay)
}

// NextPeriod returns the period n months after the given one. Installment
// expansion walks consecutive periods with it.
func NextPeriod(period string, n int) string {
	year, month := parsePeriod(period)
	year, month = addMonths(year, month, n)
	return fmt.Sprintf("%04d-%02d", year, month)
}

func parsePeriod(period string) (int, int) {
	var year, month int
	if _, err := fmt.Sscanf(period, "%d-%d", &year, &month); err != nil || month < 1 || month > 12 {
		now := time.Now().UTC()
		return now.Year(), int(now.Month())
	}
	return year, month
}

func addMonths(year, month, n int) (int, int) {
	month += n
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}
	return year, month
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateWithClampedDay(year, month, day int) time.Time {
	if day < 1 {
		day = 1
	}
	if max := daysInMonth(year, month); day > max {
		day = max
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
