package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/events"
	"github.com/harmon-corp/reseller-service/internal/payment"
	"github.com/harmon-corp/reseller-service/internal/repository"
	apperrors "github.com/harmon-corp/reseller-service/pkg/util"
)

// CheckoutService manages the reseller cart and the purchase flow.
type CheckoutService struct {
	carts      repository.CartRepository
	stock      *StockService
	txns       repository.TransactionRepository
	dispatcher events.Dispatcher
}

// NewCheckoutService builds the service.
func NewCheckoutService(carts repository.CartRepository, stock *StockService, txns repository.TransactionRepository, dispatcher events.Dispatcher) *CheckoutService {
	return &CheckoutService{carts: carts, stock: stock, txns: txns, dispatcher: dispatcher}
}

// CheckoutResult summarizes a completed purchase.
type CheckoutResult struct {
	Receipt      string
	TotalAmount  float64
	Transactions []domain.Transaction
}

// AddToCart prices a line from current stock and appends it to the cart.
func (s *CheckoutService) AddToCart(ctx context.Context, email, product string, quantity int) (domain.CartLine, error) {
	if quantity < 1 {
		return domain.CartLine{}, apperrors.NewValidationError("quantity must be at least 1", nil)
	}

	item, err := s.stock.stock.GetByName(ctx, product)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.CartLine{}, apperrors.NewNotFound("stock item", map[string]any{"item": product})
		}
		return domain.CartLine{}, err
	}
	if quantity > item.Quantity {
		return domain.CartLine{}, apperrors.NewInsufficientStock(product, quantity, item.Quantity)
	}

	line := domain.NewCartLine(product, item.Price, quantity)
	if err := s.carts.Add(ctx, email, line); err != nil {
		return domain.CartLine{}, err
	}
	return line, nil
}

// ViewCart returns the cart contents.
func (s *CheckoutService) ViewCart(ctx context.Context, email string) ([]domain.CartLine, error) {
	return s.carts.Get(ctx, email)
}

// ClearCart empties the cart without purchasing.
func (s *CheckoutService) ClearCart(ctx context.Context, email string) error {
	return s.carts.Clear(ctx, email)
}

// Checkout completes the purchase: stock is reserved all-or-nothing before
// any transaction row is written, the chosen payment strategy is invoked
// exactly once with the summed total, and one unpacked transaction is
// recorded per cart line. Reserved stock is restored when payment declines.
func (s *CheckoutService) Checkout(ctx context.Context, email string, method payment.Method) (*CheckoutResult, error) {
	lines, err := s.carts.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperrors.NewValidationError("cart is empty", nil)
	}

	strategy, err := payment.ForMethod(method)
	if err != nil {
		return nil, err
	}

	if err := s.stock.DecrementForPurchase(ctx, lines); err != nil {
		return nil, err
	}

	total := domain.CartTotal(lines)
	receipt, err := strategy.Pay(ctx, total)
	if err != nil {
		if restoreErr := s.stock.Restore(ctx, lines); restoreErr != nil {
			return nil, restoreErr
		}
		return nil, err
	}

	now := time.Now().UTC()
	txns := make([]domain.Transaction, 0, len(lines))
	for _, line := range lines {
		txns = append(txns, domain.Transaction{
			ID:          uuid.NewString(),
			Email:       email,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.Price,
			Status:      domain.TransactionStatusUnpacked,
			TotalPrice:  line.TotalPrice,
			CreatedAt:   now,
		})
	}
	if err := s.txns.CreateBatch(ctx, txns); err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, email); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:  events.EventOrderPlaced,
		Actor: events.Actor{Email: email, Role: domain.RoleReseller},
		Payload: events.OrderPlacedPayload{
			Email:          email,
			LineCount:      len(txns),
			TotalAmount:    total,
			PaymentReceipt: receipt,
		},
	})

	return &CheckoutResult{Receipt: receipt, TotalAmount: total, Transactions: txns}, nil
}

func (s *CheckoutService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}
