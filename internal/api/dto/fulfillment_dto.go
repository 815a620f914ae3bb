package dto

import "time"

// TransactionResponse is the public view of an order line.
type TransactionResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	TotalPrice  float64   `json:"total_price"`
	CreatedAt   time.Time `json:"created_at"`
}

// SalesReportRequest payload for the reseller daily sales report.
type SalesReportRequest struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}
