package payment

import (
	"context"
	"strings"
	"testing"
)

func TestForMethod(t *testing.T) {
	tests := []struct {
		method Method
		want   string
	}{
		{MethodCreditCard, "credit card"},
		{MethodDigitalWallet, "digital wallet"},
		{MethodBankTransfer, "bank transfer"},
	}

	for _, tt := range tests {
		strategy, err := ForMethod(tt.method)
		if err != nil {
			t.Fatalf("method %s: %v", tt.method, err)
		}
		receipt, err := strategy.Pay(context.Background(), 15)
		if err != nil {
			t.Fatalf("method %s: pay failed: %v", tt.method, err)
		}
		if !strings.Contains(receipt, tt.want) {
			t.Errorf("method %s: receipt %q does not mention %q", tt.method, receipt, tt.want)
		}
		if !strings.Contains(receipt, "15.00") {
			t.Errorf("method %s: receipt %q does not mention amount", tt.method, receipt)
		}
	}
}

func TestForMethodUnknown(t *testing.T) {
	if _, err := ForMethod(Method("cash")); err == nil {
		t.Error("expected unknown method to fail")
	}
}
