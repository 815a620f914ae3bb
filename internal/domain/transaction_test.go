package domain

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to TransactionStatus
		want     bool
	}{
		{TransactionStatusUnpacked, TransactionStatusPacked, true},
		{TransactionStatusPacked, TransactionStatusDelivered, true},
		{TransactionStatusUnpacked, TransactionStatusDelivered, false},
		{TransactionStatusPacked, TransactionStatusUnpacked, false},
		{TransactionStatusDelivered, TransactionStatusPacked, false},
		{TransactionStatusDelivered, TransactionStatusUnpacked, false},
		{TransactionStatusDelivered, TransactionStatusDelivered, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCartLineTotal(t *testing.T) {
	line := NewCartLine("Widget", 5, 3)
	if line.TotalPrice != 15 {
		t.Errorf("expected total 15, got %v", line.TotalPrice)
	}

	lines := []CartLine{NewCartLine("Widget", 5, 3), NewCartLine("Gadget", 2, 2)}
	if total := CartTotal(lines); total != 19 {
		t.Errorf("expected cart total 19, got %v", total)
	}
}
