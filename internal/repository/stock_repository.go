package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/persistence"
)

// InsufficientStockError reports a decrement that would drive stock negative.
type InsufficientStockError struct {
	Item      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.Item, e.Requested, e.Available)
}

// StockRepository defines persistence access for the central inventory.
type StockRepository interface {
	List(ctx context.Context) ([]domain.StockItem, error)
	GetByName(ctx context.Context, name string) (*domain.StockItem, error)
	Create(ctx context.Context, item *domain.StockItem) error
	Update(ctx context.Context, item *domain.StockItem) error
	Delete(ctx context.Context, name string) error
	DecrementBatch(ctx context.Context, lines []domain.CartLine) error
	IncrementBatch(ctx context.Context, lines []domain.CartLine) error
}

type stockRepository struct {
	store persistence.Store
}

// NewStockRepository returns a CSV-table backed implementation.
func NewStockRepository(store persistence.Store) StockRepository {
	return &stockRepository{store: store}
}

func stockToRow(item *domain.StockItem) persistence.Row {
	return persistence.Row{
		item.ItemName,
		strconv.Itoa(item.Quantity),
		strconv.FormatFloat(item.Price, 'f', -1, 64),
	}
}

func stockFromRow(row persistence.Row) (domain.StockItem, error) {
	if len(row) < 3 {
		return domain.StockItem{}, errors.New("malformed stock row")
	}
	quantity, err := strconv.Atoi(row[1])
	if err != nil {
		return domain.StockItem{}, fmt.Errorf("parse quantity for %s: %w", row[0], err)
	}
	price, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return domain.StockItem{}, fmt.Errorf("parse price for %s: %w", row[0], err)
	}
	return domain.StockItem{ItemName: row[0], Quantity: quantity, Price: price}, nil
}

func (r *stockRepository) List(ctx context.Context) ([]domain.StockItem, error) {
	rows, err := r.store.Load(ctx, TableStock)
	if err != nil {
		if errors.Is(err, persistence.ErrTableMissing) {
			return nil, nil
		}
		return nil, err
	}
	items := make([]domain.StockItem, 0, len(rows))
	for _, row := range rows {
		item, err := stockFromRow(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *stockRepository) GetByName(ctx context.Context, name string) (*domain.StockItem, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ItemName == name {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *stockRepository) Create(ctx context.Context, item *domain.StockItem) error {
	return r.store.Update(ctx, TableStock, func(rows []persistence.Row) ([]persistence.Row, error) {
		for _, row := range rows {
			if len(row) > 0 && row[0] == item.ItemName {
				return nil, ErrDuplicate
			}
		}
		return append(rows, stockToRow(item)), nil
	})
}

func (r *stockRepository) Update(ctx context.Context, item *domain.StockItem) error {
	return r.store.Update(ctx, TableStock, func(rows []persistence.Row) ([]persistence.Row, error) {
		for i, row := range rows {
			if len(row) > 0 && row[0] == item.ItemName {
				rows[i] = stockToRow(item)
				return rows, nil
			}
		}
		return nil, ErrNotFound
	})
}

func (r *stockRepository) Delete(ctx context.Context, name string) error {
	return r.store.Update(ctx, TableStock, func(rows []persistence.Row) ([]persistence.Row, error) {
		for i, row := range rows {
			if len(row) > 0 && row[0] == name {
				return append(rows[:i], rows[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

// DecrementBatch subtracts purchased quantities in a single table update.
// Every line is validated before any row changes; a single insufficient line
// aborts the whole batch with stock untouched.
func (r *stockRepository) DecrementBatch(ctx context.Context, lines []domain.CartLine) error {
	return r.adjustBatch(ctx, lines, -1)
}

// IncrementBatch adds quantities back, compensating a reserved batch whose
// payment did not complete.
func (r *stockRepository) IncrementBatch(ctx context.Context, lines []domain.CartLine) error {
	return r.adjustBatch(ctx, lines, 1)
}

func (r *stockRepository) adjustBatch(ctx context.Context, lines []domain.CartLine, sign int) error {
	return r.store.Update(ctx, TableStock, func(rows []persistence.Row) ([]persistence.Row, error) {
		index := make(map[string]int, len(rows))
		quantities := make(map[string]int, len(rows))
		for i, row := range rows {
			item, err := stockFromRow(row)
			if err != nil {
				return nil, err
			}
			index[item.ItemName] = i
			quantities[item.ItemName] = item.Quantity
		}

		for _, line := range lines {
			current, ok := quantities[line.ProductName]
			if !ok {
				return nil, ErrNotFound
			}
			next := current + sign*line.Quantity
			if next < 0 {
				return nil, &InsufficientStockError{
					Item:      line.ProductName,
					Requested: line.Quantity,
					Available: current,
				}
			}
			quantities[line.ProductName] = next
		}

		for name, quantity := range quantities {
			rows[index[name]][1] = strconv.Itoa(quantity)
		}
		return rows, nil
	})
}
