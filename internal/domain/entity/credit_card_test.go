package entity

import "testing"

func TestChargeGroupTag(t *testing.T) {
	t.Run("round trips through note", func(t *testing.T) {
		note := AppendGroupTag("compra parcelada", "abc-123")
		c := &CreditCardCharge{Note: note}
		if got := c.GroupTag(); got != "abc-123" {
			t.Errorf("expected tag abc-123, got %q", got)
		}
	})

	t.Run("empty note gets bare tag", func(t *testing.T) {
		note := AppendGroupTag("", "xyz")
		if note != "[grupo:xyz]" {
			t.Errorf("unexpected note %q", note)
		}
	})

	t.Run("legacy note without tag", func(t *testing.T) {
		c := &CreditCardCharge{Note: "sem tag"}
		if got := c.GroupTag(); got != "" {
			t.Errorf("expected empty tag, got %q", got)
		}
	})
}

func TestChargeBaseDescription(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"Notebook (2/10)", "Notebook"},
		{"Notebook (10/10)", "Notebook"},
		{"Mercado", "Mercado"},
		{"Show (extra)", "Show (extra)"},
		{"Assinatura (1/2) ", "Assinatura"},
	}

	for _, tt := range tests {
		c := &CreditCardCharge{Description: tt.desc}
		if got := c.BaseDescription(); got != tt.want {
			t.Errorf("BaseDescription(%q) = %q, want %q", tt.desc, got, tt.want)
		}
	}
}
