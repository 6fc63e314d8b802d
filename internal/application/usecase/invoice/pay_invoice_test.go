package invoice

import (
	"testing"

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

func charge(categoryID *uuid.UUID, amount string) *entity.CreditCardCharge {
	return &entity.CreditCardCharge{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Amount:     d(amount),
	}
}

func TestSplitPayment(t *testing.T) {
	food := uuid.New()
	transport := uuid.New()
	names := map[uuid.UUID]string{food: "Alimentação", transport: "Transporte"}

	t.Run("partial payment splits proportionally with remainder on last chunk", func(t *testing.T) {
		charges := []*entity.CreditCardCharge{
			charge(&food, "200"),
			charge(&transport, "100"),
		}

		chunks := SplitPayment(d("150"), charges, names)

		if len(chunks) != 2 {
			t.Fatalf("expected 2 chunks, got %d", len(chunks))
		}
		// Largest category first: Food 200/300 of 150 = 100.
		if chunks[0].CategoryName != "Alimentação" || !chunks[0].Amount.Equal(d("100")) {
			t.Errorf("expected Alimentação=100, got %s=%s", chunks[0].CategoryName, chunks[0].Amount)
		}
		if chunks[1].CategoryName != "Transporte" || !chunks[1].Amount.Equal(d("50")) {
			t.Errorf("expected Transporte=50, got %s=%s", chunks[1].CategoryName, chunks[1].Amount)
		}
	})

	t.Run("chunk sum always equals paid amount", func(t *testing.T) {
		a, b, c := uuid.New(), uuid.New(), uuid.New()
		charges := []*entity.CreditCardCharge{
			charge(&a, "33.37"),
			charge(&b, "33.33"),
			charge(&c, "33.30"),
		}

		amount := d("99.99")
		chunks := SplitPayment(amount, charges, nil)

		sum := decimal.Zero
		for _, chunk := range chunks {
			sum = sum.Add(chunk.Amount)
		}
		if !sum.Equal(amount) {
			t.Errorf("chunk sum %s != paid amount %s", sum, amount)
		}
	})

	t.Run("single category yields single chunk", func(t *testing.T) {
		charges := []*entity.CreditCardCharge{
			charge(&food, "120"),
			charge(&food, "80"),
		}

		chunks := SplitPayment(d("200"), charges, names)

		if len(chunks) != 1 {
			t.Fatalf("expected 1 chunk, got %d", len(chunks))
		}
		if !chunks[0].Amount.Equal(d("200")) {
			t.Errorf("expected 200, got %s", chunks[0].Amount)
		}
	})

	t.Run("uncategorized charges fall back to invoice category", func(t *testing.T) {
		charges := []*entity.CreditCardCharge{charge(nil, "90")}

		chunks := SplitPayment(d("90"), charges, names)

		if len(chunks) != 1 {
			t.Fatalf("expected 1 chunk, got %d", len(chunks))
		}
		if chunks[0].CategoryID != nil {
			t.Error("expected nil category id for fallback chunk")
		}
		if chunks[0].CategoryName != InvoicePaymentCategory {
			t.Errorf("expected %q, got %q", InvoicePaymentCategory, chunks[0].CategoryName)
		}
	})

	t.Run("no unpaid charges yields one fallback chunk", func(t *testing.T) {
		chunks := SplitPayment(d("55"), nil, nil)

		if len(chunks) != 1 {
			t.Fatalf("expected 1 chunk, got %d", len(chunks))
		}
		if !chunks[0].Amount.Equal(d("55")) {
			t.Errorf("expected 55, got %s", chunks[0].Amount)
		}
	})
}

func TestInvoiceStatus(t *testing.T) {
	inv := &entity.CreditCardInvoice{TotalAmount: d("300"), PaidAmount: d("150")}
	if inv.Status() != entity.InvoiceStatusOpen {
		t.Errorf("partially paid invoice must stay OPEN, got %s", inv.Status())
	}
	if !inv.Remaining().Equal(d("150")) {
		t.Errorf("expected remaining 150, got %s", inv.Remaining())
	}

	inv.PaidAmount = d("300")
	if inv.Status() != entity.InvoiceStatusPaid {
		t.Errorf("settled invoice must be PAID, got %s", inv.Status())
	}
}
