package dto

// AddCartLineRequest payload for adding a product to the cart.
type AddCartLineRequest struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// CheckoutRequest selects the payment strategy for the purchase.
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// CheckoutResponse summarizes a completed purchase.
type CheckoutResponse struct {
	Receipt      string                `json:"receipt"`
	TotalAmount  float64               `json:"total_amount"`
	Transactions []TransactionResponse `json:"transactions"`
}
