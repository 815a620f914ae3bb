package repository

import (
	"context"
	"testing"

	"github.com/harmon-corp/reseller-service/internal/domain"
)

func TestMemoryCartRepository(t *testing.T) {
	carts := NewMemoryCartRepository()
	ctx := context.Background()

	lines, err := carts.Get(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected empty cart, got %v", lines)
	}

	if err := carts.Add(ctx, "a@example.com", domain.NewCartLine("Widget", 5, 3)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := carts.Add(ctx, "a@example.com", domain.NewCartLine("Gadget", 2, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := carts.Add(ctx, "b@example.com", domain.NewCartLine("Widget", 5, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	lines, err = carts.Get(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(lines) != 2 || lines[0].ProductName != "Widget" {
		t.Errorf("unexpected cart: %v", lines)
	}

	// Carts are isolated per email.
	lines, _ = carts.Get(ctx, "b@example.com")
	if len(lines) != 1 {
		t.Errorf("expected 1 line for b, got %v", lines)
	}

	if err := carts.Clear(ctx, "a@example.com"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	lines, _ = carts.Get(ctx, "a@example.com")
	if len(lines) != 0 {
		t.Errorf("expected cleared cart, got %v", lines)
	}
	lines, _ = carts.Get(ctx, "b@example.com")
	if len(lines) != 1 {
		t.Errorf("clear leaked across carts: %v", lines)
	}
}
