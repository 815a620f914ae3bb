package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/events"
	"github.com/harmon-corp/reseller-service/internal/persistence"
	"github.com/harmon-corp/reseller-service/internal/repository"
)

func newFulfillmentFixture(t *testing.T) (*FulfillmentService, repository.TransactionRepository) {
	t.Helper()
	store, err := persistence.NewCSVStore(t.TempDir(), repository.TableHeaders(), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	txnRepo := repository.NewTransactionRepository(store)
	return NewFulfillmentService(txnRepo, nil), txnRepo
}

func seedTransaction(t *testing.T, repo repository.TransactionRepository, id string, status domain.TransactionStatus) {
	t.Helper()
	err := repo.CreateBatch(context.Background(), []domain.Transaction{{
		ID:          id,
		Email:       resellerEmail,
		ProductName: "Widget",
		Quantity:    3,
		Price:       5,
		Status:      status,
		TotalPrice:  15,
		CreatedAt:   time.Now().UTC(),
	}})
	if err != nil {
		t.Fatalf("seed transaction failed: %v", err)
	}
}

var adminActor = events.Actor{Email: "boss@example.com", Role: domain.RoleAdmin}
var shipperActor = events.Actor{Email: "courier@example.com", Role: domain.RoleShipper}

func TestPackThenDeliver(t *testing.T) {
	svc, repo := newFulfillmentFixture(t)
	ctx := context.Background()
	seedTransaction(t, repo, "t-1", domain.TransactionStatusUnpacked)

	txn, err := svc.Pack(ctx, adminActor, "t-1")
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	if txn.Status != domain.TransactionStatusPacked {
		t.Errorf("expected packed, got %s", txn.Status)
	}

	txn, err = svc.Deliver(ctx, shipperActor, "t-1")
	if err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if txn.Status != domain.TransactionStatusDelivered {
		t.Errorf("expected delivered, got %s", txn.Status)
	}
}

func TestOutOfOrderTransitionsRejected(t *testing.T) {
	svc, repo := newFulfillmentFixture(t)
	ctx := context.Background()
	seedTransaction(t, repo, "t-1", domain.TransactionStatusUnpacked)

	// Deliver before pack.
	_, err := svc.Deliver(ctx, shipperActor, "t-1")
	if got := code(t, err); got != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %s", got)
	}

	// Pack a delivered row.
	seedTransaction(t, repo, "t-2", domain.TransactionStatusDelivered)
	_, err = svc.Pack(ctx, adminActor, "t-2")
	if got := code(t, err); got != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %s", got)
	}

	// Pack twice.
	if _, err := svc.Pack(ctx, adminActor, "t-1"); err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	_, err = svc.Pack(ctx, adminActor, "t-1")
	if got := code(t, err); got != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %s", got)
	}
}

func TestTransitionUnknownID(t *testing.T) {
	svc, _ := newFulfillmentFixture(t)

	_, err := svc.Pack(context.Background(), adminActor, "ghost")
	if got := code(t, err); got != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", got)
	}
}

func TestListByStatusAndTotals(t *testing.T) {
	svc, repo := newFulfillmentFixture(t)
	ctx := context.Background()
	seedTransaction(t, repo, "t-1", domain.TransactionStatusUnpacked)
	seedTransaction(t, repo, "t-2", domain.TransactionStatusPacked)
	seedTransaction(t, repo, "t-3", domain.TransactionStatusDelivered)

	unpacked, err := svc.ListByStatus(ctx, domain.TransactionStatusUnpacked)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(unpacked) != 1 || unpacked[0].ID != "t-1" {
		t.Errorf("unexpected unpacked list: %v", unpacked)
	}

	if _, err := svc.ListByStatus(ctx, domain.TransactionStatus("shipped")); err == nil {
		t.Error("expected unknown status to fail")
	}

	total, err := svc.TotalExpenditure(ctx)
	if err != nil {
		t.Fatalf("totals failed: %v", err)
	}
	if total != 45 {
		t.Errorf("expected total 45, got %v", total)
	}
}

func TestDeliveredForResellerAndSalesReport(t *testing.T) {
	svc, repo := newFulfillmentFixture(t)
	ctx := context.Background()
	seedTransaction(t, repo, "t-1", domain.TransactionStatusDelivered)
	seedTransaction(t, repo, "t-2", domain.TransactionStatusUnpacked)

	delivered, err := svc.DeliveredForReseller(ctx, resellerEmail)
	if err != nil {
		t.Fatalf("delivered list failed: %v", err)
	}
	if len(delivered) != 1 || delivered[0].ID != "t-1" {
		t.Errorf("unexpected delivered list: %v", delivered)
	}

	// Reporting more than delivered remainder fails.
	err = svc.ReportSales(ctx, resellerEmail, "Widget", 4)
	if got := code(t, err); got != "INSUFFICIENT_STOCK" {
		t.Errorf("expected INSUFFICIENT_STOCK, got %s", got)
	}

	if err := svc.ReportSales(ctx, resellerEmail, "Widget", 2); err != nil {
		t.Fatalf("sales report failed: %v", err)
	}
	delivered, err = svc.DeliveredForReseller(ctx, resellerEmail)
	if err != nil {
		t.Fatalf("delivered list failed: %v", err)
	}
	if delivered[0].Quantity != 1 || delivered[0].TotalPrice != 5 {
		t.Errorf("sales report not applied: %+v", delivered[0])
	}

	// Unknown product for this reseller.
	err = svc.ReportSales(ctx, resellerEmail, "Ghost", 1)
	if got := code(t, err); got != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", got)
	}
}
