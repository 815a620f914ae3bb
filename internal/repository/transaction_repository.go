package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/persistence"
)

// InvalidTransitionError reports an attempt to move a transaction out of order.
type InvalidTransitionError struct {
	ID   string
	From domain.TransactionStatus
	To   domain.TransactionStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transaction %s cannot move from %s to %s", e.ID, e.From, e.To)
}

// TransactionRepository defines persistence access for order lines.
type TransactionRepository interface {
	CreateBatch(ctx context.Context, txns []domain.Transaction) error
	List(ctx context.Context) ([]domain.Transaction, error)
	ListByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error)
	ListByEmailAndStatus(ctx context.Context, email string, status domain.TransactionStatus) ([]domain.Transaction, error)
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	Transition(ctx context.Context, id string, to domain.TransactionStatus) (*domain.Transaction, error)
	SumTotals(ctx context.Context) (float64, error)
	ReduceDeliveredQuantity(ctx context.Context, email, product string, quantity int) error
}

type transactionRepository struct {
	store persistence.Store
}

// NewTransactionRepository returns a CSV-table backed implementation.
func NewTransactionRepository(store persistence.Store) TransactionRepository {
	return &transactionRepository{store: store}
}

func transactionToRow(txn *domain.Transaction) persistence.Row {
	return persistence.Row{
		txn.ID,
		txn.Email,
		txn.ProductName,
		strconv.Itoa(txn.Quantity),
		strconv.FormatFloat(txn.Price, 'f', -1, 64),
		string(txn.Status),
		strconv.FormatFloat(txn.TotalPrice, 'f', -1, 64),
		txn.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func transactionFromRow(row persistence.Row) (domain.Transaction, error) {
	if len(row) < 8 {
		return domain.Transaction{}, errors.New("malformed transaction row")
	}
	quantity, err := strconv.Atoi(row[3])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse quantity for %s: %w", row[0], err)
	}
	price, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse price for %s: %w", row[0], err)
	}
	total, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse total for %s: %w", row[0], err)
	}
	createdAt, err := time.Parse(time.RFC3339, row[7])
	if err != nil {
		createdAt = time.Time{}
	}
	return domain.Transaction{
		ID:          row[0],
		Email:       row[1],
		ProductName: row[2],
		Quantity:    quantity,
		Price:       price,
		Status:      domain.TransactionStatus(row[5]),
		TotalPrice:  total,
		CreatedAt:   createdAt,
	}, nil
}

func (r *transactionRepository) CreateBatch(ctx context.Context, txns []domain.Transaction) error {
	return r.store.Update(ctx, TableTransactions, func(rows []persistence.Row) ([]persistence.Row, error) {
		for i := range txns {
			rows = append(rows, transactionToRow(&txns[i]))
		}
		return rows, nil
	})
}

func (r *transactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := r.store.Load(ctx, TableTransactions)
	if err != nil {
		if errors.Is(err, persistence.ErrTableMissing) {
			return nil, nil
		}
		return nil, err
	}
	txns := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		txn, err := transactionFromRow(row)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func (r *transactionRepository) ListByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	txns, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := txns[:0]
	for _, txn := range txns {
		if txn.Status == status {
			filtered = append(filtered, txn)
		}
	}
	return filtered, nil
}

func (r *transactionRepository) ListByEmailAndStatus(ctx context.Context, email string, status domain.TransactionStatus) ([]domain.Transaction, error) {
	txns, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := txns[:0]
	for _, txn := range txns {
		if txn.Email == email && txn.Status == status {
			filtered = append(filtered, txn)
		}
	}
	return filtered, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	txns, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range txns {
		if txns[i].ID == id {
			return &txns[i], nil
		}
	}
	return nil, ErrNotFound
}

// Transition advances one order line, validating the state machine inside the
// table update so the check and the write happen under the same lock.
func (r *transactionRepository) Transition(ctx context.Context, id string, to domain.TransactionStatus) (*domain.Transaction, error) {
	var updated domain.Transaction
	err := r.store.Update(ctx, TableTransactions, func(rows []persistence.Row) ([]persistence.Row, error) {
		for i, row := range rows {
			if len(row) > 0 && row[0] == id {
				txn, err := transactionFromRow(row)
				if err != nil {
					return nil, err
				}
				if !domain.CanTransition(txn.Status, to) {
					return nil, &InvalidTransitionError{ID: id, From: txn.Status, To: to}
				}
				txn.Status = to
				rows[i] = transactionToRow(&txn)
				updated = txn
				return rows, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *transactionRepository) SumTotals(ctx context.Context) (float64, error) {
	txns, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, txn := range txns {
		sum += txn.TotalPrice
	}
	return sum, nil
}

// ReduceDeliveredQuantity consumes reported sales against the reseller's
// delivered order lines, oldest rows first. Line totals are recomputed so
// total_price stays price * quantity.
func (r *transactionRepository) ReduceDeliveredQuantity(ctx context.Context, email, product string, quantity int) error {
	return r.store.Update(ctx, TableTransactions, func(rows []persistence.Row) ([]persistence.Row, error) {
		remaining := quantity
		available := 0
		for _, row := range rows {
			txn, err := transactionFromRow(row)
			if err != nil {
				return nil, err
			}
			if txn.Email == email && txn.ProductName == product && txn.Status == domain.TransactionStatusDelivered {
				available += txn.Quantity
			}
		}
		if available == 0 {
			return nil, ErrNotFound
		}
		if quantity > available {
			return nil, &InsufficientStockError{Item: product, Requested: quantity, Available: available}
		}

		for i, row := range rows {
			if remaining == 0 {
				break
			}
			txn, err := transactionFromRow(row)
			if err != nil {
				return nil, err
			}
			if txn.Email != email || txn.ProductName != product || txn.Status != domain.TransactionStatusDelivered {
				continue
			}
			take := txn.Quantity
			if take > remaining {
				take = remaining
			}
			txn.Quantity -= take
			txn.TotalPrice = txn.Price * float64(txn.Quantity)
			remaining -= take
			rows[i] = transactionToRow(&txn)
		}
		return rows, nil
	})
}
