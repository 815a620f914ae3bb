package domain

// StockItem is one product line in the central inventory, keyed by name.
type StockItem struct {
	ItemName string
	Quantity int
	Price    float64
}
