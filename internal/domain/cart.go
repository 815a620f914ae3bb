package domain

// CartLine is one pending purchase in a reseller's cart. TotalPrice is
// always Price * Quantity, computed from the stock price at add time.
type CartLine struct {
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"total_price"`
}

// NewCartLine builds a line with its total derived from price and quantity.
func NewCartLine(product string, price float64, quantity int) CartLine {
	return CartLine{
		ProductName: product,
		Price:       price,
		Quantity:    quantity,
		TotalPrice:  price * float64(quantity),
	}
}

// CartTotal sums the line totals of a cart.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.TotalPrice
	}
	return total
}
