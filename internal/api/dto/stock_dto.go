package dto

// StockItemRequest payload for adding or editing inventory.
type StockItemRequest struct {
	ItemName string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// StockItemResponse is the public view of an inventory row.
type StockItemResponse struct {
	ItemName string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}
