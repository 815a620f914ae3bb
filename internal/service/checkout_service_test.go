package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/payment"
	"github.com/harmon-corp/reseller-service/internal/persistence"
	"github.com/harmon-corp/reseller-service/internal/repository"
)

func newCheckoutFixture(t *testing.T) (*CheckoutService, *StockService, repository.TransactionRepository) {
	t.Helper()
	store, err := persistence.NewCSVStore(t.TempDir(), repository.TableHeaders(), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	stockSvc := NewStockService(repository.NewStockRepository(store))
	txnRepo := repository.NewTransactionRepository(store)
	carts := repository.NewMemoryCartRepository()
	return NewCheckoutService(carts, stockSvc, txnRepo, nil), stockSvc, txnRepo
}

const resellerEmail = "partner@example.com"

func TestCheckoutEndToEnd(t *testing.T) {
	checkout, stockSvc, txnRepo := newCheckoutFixture(t)
	ctx := context.Background()

	if _, err := stockSvc.Add(ctx, adminCaps, "Widget", 10, 5); err != nil {
		t.Fatalf("seed stock failed: %v", err)
	}

	line, err := checkout.AddToCart(ctx, resellerEmail, "Widget", 3)
	if err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if line.TotalPrice != 15 {
		t.Errorf("expected line total 15, got %v", line.TotalPrice)
	}

	result, err := checkout.Checkout(ctx, resellerEmail, payment.MethodCreditCard)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if result.TotalAmount != 15 {
		t.Errorf("expected total 15, got %v", result.TotalAmount)
	}
	if result.Receipt == "" {
		t.Error("expected a payment receipt")
	}

	items, err := stockSvc.View(ctx)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 7 {
		t.Errorf("expected Widget quantity 7, got %v", items)
	}

	txns, err := txnRepo.List(ctx)
	if err != nil {
		t.Fatalf("list transactions failed: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	txn := txns[0]
	if txn.Status != domain.TransactionStatusUnpacked || txn.Quantity != 3 || txn.TotalPrice != 15 || txn.Email != resellerEmail {
		t.Errorf("unexpected transaction: %+v", txn)
	}

	// Cart cleared after successful payment.
	lines, err := checkout.ViewCart(ctx, resellerEmail)
	if err != nil {
		t.Fatalf("view cart failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected empty cart, got %v", lines)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	checkout, _, _ := newCheckoutFixture(t)

	_, err := checkout.Checkout(context.Background(), resellerEmail, payment.MethodCreditCard)
	if got := code(t, err); got != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %s", got)
	}
}

func TestCheckoutUnknownPaymentMethod(t *testing.T) {
	checkout, stockSvc, _ := newCheckoutFixture(t)
	ctx := context.Background()

	if _, err := stockSvc.Add(ctx, adminCaps, "Widget", 10, 5); err != nil {
		t.Fatalf("seed stock failed: %v", err)
	}
	if _, err := checkout.AddToCart(ctx, resellerEmail, "Widget", 1); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	_, err := checkout.Checkout(ctx, resellerEmail, payment.Method("cash"))
	if got := code(t, err); got != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %s", got)
	}

	// Stock untouched when strategy selection fails.
	items, _ := stockSvc.View(ctx)
	if items[0].Quantity != 10 {
		t.Errorf("stock changed on failed checkout: %v", items)
	}
}

func TestCheckoutInsufficientStockWritesNothing(t *testing.T) {
	checkout, stockSvc, txnRepo := newCheckoutFixture(t)
	ctx := context.Background()

	if _, err := stockSvc.Add(ctx, adminCaps, "Widget", 5, 5); err != nil {
		t.Fatalf("seed stock failed: %v", err)
	}

	// Two cart lines that together exceed stock; each alone is fine.
	if _, err := checkout.AddToCart(ctx, resellerEmail, "Widget", 3); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if _, err := checkout.AddToCart(ctx, resellerEmail, "Widget", 3); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	_, err := checkout.Checkout(ctx, resellerEmail, payment.MethodDigitalWallet)
	if got := code(t, err); got != "INSUFFICIENT_STOCK" {
		t.Errorf("expected INSUFFICIENT_STOCK, got %s", got)
	}

	items, _ := stockSvc.View(ctx)
	if items[0].Quantity != 5 {
		t.Errorf("stock changed on aborted checkout: %v", items)
	}
	txns, _ := txnRepo.List(ctx)
	if len(txns) != 0 {
		t.Errorf("expected no transactions, got %v", txns)
	}
}

func TestAddToCartValidations(t *testing.T) {
	checkout, stockSvc, _ := newCheckoutFixture(t)
	ctx := context.Background()

	if _, err := stockSvc.Add(ctx, adminCaps, "Widget", 5, 5); err != nil {
		t.Fatalf("seed stock failed: %v", err)
	}

	if _, err := checkout.AddToCart(ctx, resellerEmail, "Widget", 0); err == nil {
		t.Error("expected zero quantity to fail")
	}
	_, err := checkout.AddToCart(ctx, resellerEmail, "Ghost", 1)
	if got := code(t, err); got != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", got)
	}
	_, err = checkout.AddToCart(ctx, resellerEmail, "Widget", 6)
	if got := code(t, err); got != "INSUFFICIENT_STOCK" {
		t.Errorf("expected INSUFFICIENT_STOCK, got %s", got)
	}
}
