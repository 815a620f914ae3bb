package repository

import "errors"

// Table names used by the repositories. Each maps to one CSV file.
const (
	TableUsers        = "users"
	TableStock        = "stock_items"
	TableTransactions = "transactions"
)

// TableHeaders declares the column layout of every table.
func TableHeaders() map[string][]string {
	return map[string][]string{
		TableUsers:        {"email", "password_hash", "name", "address", "contact", "status", "role", "created_at"},
		TableStock:        {"item_name", "quantity", "price"},
		TableTransactions: {"id", "email", "product_name", "quantity", "price", "status", "total_price", "created_at"},
	}
}

// ErrNotFound is returned when a keyed record is absent.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when inserting a record whose key already exists.
var ErrDuplicate = errors.New("duplicate record")
