package domain

// OrderBook is one line of a past order.
type OrderBook struct {
	BookID   int     `json:"bookId"`
	Title    string  `json:"title"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderSummary is one entry of the order history, grouped by order.
type OrderSummary struct {
	OrderID     int         `json:"orderId"`
	OrderDate   string      `json:"orderDate"`
	TotalAmount float64     `json:"totalAmount"`
	Status      string      `json:"status"`
	Books       []OrderBook `json:"books"`
}
