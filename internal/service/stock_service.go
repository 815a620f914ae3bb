package service

import (
	"context"
	"errors"
	"strings"

	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/repository"
	apperrors "github.com/harmon-corp/reseller-service/pkg/util"
)

// StockService manages the central inventory. Mutating operations are gated
// by the caller's capabilities; the purchase decrement is ungated because
// checkout runs it on behalf of resellers.
type StockService struct {
	stock repository.StockRepository
}

// NewStockService builds the service.
func NewStockService(stock repository.StockRepository) *StockService {
	return &StockService{stock: stock}
}

// View returns all stock items without side effects.
func (s *StockService) View(ctx context.Context) ([]domain.StockItem, error) {
	return s.stock.List(ctx)
}

// Add inserts a new item into the inventory.
func (s *StockService) Add(ctx context.Context, caps domain.Capabilities, item string, quantity int, price float64) (*domain.StockItem, error) {
	if !caps.CanAdd {
		return nil, apperrors.NewForbidden("not allowed to add stock")
	}
	if strings.TrimSpace(item) == "" {
		return nil, apperrors.NewValidationError("item name must not be empty", nil)
	}
	if quantity <= 0 || price <= 0 {
		return nil, apperrors.NewValidationError("quantity and price must be positive", nil)
	}

	stockItem := &domain.StockItem{ItemName: item, Quantity: quantity, Price: price}
	if err := s.stock.Create(ctx, stockItem); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("item already exists", map[string]any{"item": item})
		}
		return nil, err
	}
	return stockItem, nil
}

// Edit overwrites quantity and price of an existing item.
func (s *StockService) Edit(ctx context.Context, caps domain.Capabilities, item string, quantity int, price float64) (*domain.StockItem, error) {
	if !caps.CanEdit {
		return nil, apperrors.NewForbidden("not allowed to edit stock")
	}
	if quantity < 0 || price < 0 {
		return nil, apperrors.NewValidationError("quantity and price must not be negative", nil)
	}

	stockItem := &domain.StockItem{ItemName: item, Quantity: quantity, Price: price}
	if err := s.stock.Update(ctx, stockItem); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("stock item", map[string]any{"item": item})
		}
		return nil, err
	}
	return stockItem, nil
}

// Delete removes an item from the inventory.
func (s *StockService) Delete(ctx context.Context, caps domain.Capabilities, item string) error {
	if !caps.CanDelete {
		return apperrors.NewForbidden("not allowed to delete stock")
	}
	if err := s.stock.Delete(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("stock item", map[string]any{"item": item})
		}
		return err
	}
	return nil
}

// DecrementForPurchase reserves stock for a checkout, all lines or none.
func (s *StockService) DecrementForPurchase(ctx context.Context, lines []domain.CartLine) error {
	if err := s.stock.DecrementBatch(ctx, lines); err != nil {
		return mapStockError(err)
	}
	return nil
}

// Restore puts reserved quantities back when a checkout does not complete.
func (s *StockService) Restore(ctx context.Context, lines []domain.CartLine) error {
	if err := s.stock.IncrementBatch(ctx, lines); err != nil {
		return mapStockError(err)
	}
	return nil
}

func mapStockError(err error) error {
	var insufficient *repository.InsufficientStockError
	if errors.As(err, &insufficient) {
		return apperrors.NewInsufficientStock(insufficient.Item, insufficient.Requested, insufficient.Available)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("stock item", nil)
	}
	return err
}
