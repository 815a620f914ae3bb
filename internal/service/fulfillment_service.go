package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/events"
	"github.com/harmon-corp/reseller-service/internal/repository"
	apperrors "github.com/harmon-corp/reseller-service/pkg/util"
)

// FulfillmentService advances order lines through the packing and delivery
// states and serves the reporting views over the transactions table.
type FulfillmentService struct {
	txns       repository.TransactionRepository
	dispatcher events.Dispatcher
}

// NewFulfillmentService builds the service.
func NewFulfillmentService(txns repository.TransactionRepository, dispatcher events.Dispatcher) *FulfillmentService {
	return &FulfillmentService{txns: txns, dispatcher: dispatcher}
}

// Pack marks an unpacked order line as packed. Performed by an admin.
func (s *FulfillmentService) Pack(ctx context.Context, actor events.Actor, id string) (*domain.Transaction, error) {
	return s.transition(ctx, actor, id, domain.TransactionStatusPacked, events.EventOrderPacked)
}

// Deliver marks a packed order line as delivered. Performed by a shipper.
func (s *FulfillmentService) Deliver(ctx context.Context, actor events.Actor, id string) (*domain.Transaction, error) {
	return s.transition(ctx, actor, id, domain.TransactionStatusDelivered, events.EventOrderDelivered)
}

func (s *FulfillmentService) transition(ctx context.Context, actor events.Actor, id string, to domain.TransactionStatus, eventType events.EventType) (*domain.Transaction, error) {
	txn, err := s.txns.Transition(ctx, id, to)
	if err != nil {
		var invalid *repository.InvalidTransitionError
		if errors.As(err, &invalid) {
			return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
				"transaction_id": invalid.ID,
				"from":           string(invalid.From),
				"to":             string(invalid.To),
			})
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("transaction", map[string]any{"id": id})
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:  eventType,
		Actor: actor,
		Payload: events.OrderStatusPayload{
			TransactionID: txn.ID,
			ProductName:   txn.ProductName,
			NewStatus:     txn.Status,
		},
	})
	return txn, nil
}

// ListByStatus returns order lines in the given fulfillment state.
func (s *FulfillmentService) ListByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	switch status {
	case domain.TransactionStatusUnpacked, domain.TransactionStatusPacked, domain.TransactionStatusDelivered:
		return s.txns.ListByStatus(ctx, status)
	}
	return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(status)})
}

// ListAll returns every recorded transaction.
func (s *FulfillmentService) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	return s.txns.List(ctx)
}

// TotalExpenditure sums total_price over all transactions.
func (s *FulfillmentService) TotalExpenditure(ctx context.Context) (float64, error) {
	return s.txns.SumTotals(ctx)
}

// DeliveredForReseller returns the reseller's delivered order lines, the
// stock they resell from.
func (s *FulfillmentService) DeliveredForReseller(ctx context.Context, email string) ([]domain.Transaction, error) {
	return s.txns.ListByEmailAndStatus(ctx, email, domain.TransactionStatusDelivered)
}

// ReportSales consumes a reseller's daily sales against their delivered
// order lines.
func (s *FulfillmentService) ReportSales(ctx context.Context, email, product string, quantity int) error {
	if quantity < 1 {
		return apperrors.NewValidationError("quantity must be at least 1", nil)
	}
	if err := s.txns.ReduceDeliveredQuantity(ctx, email, product, quantity); err != nil {
		var insufficient *repository.InsufficientStockError
		if errors.As(err, &insufficient) {
			return apperrors.NewInsufficientStock(insufficient.Item, insufficient.Requested, insufficient.Available)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("delivered product", map[string]any{"product": product})
		}
		return err
	}
	return nil
}

func (s *FulfillmentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}
