package domain

// Checkout session states as reported by the payment processor.
const (
	SessionStatusOpen     = "open"
	SessionStatusComplete = "complete"
	SessionStatusExpired  = "expired"

	PaymentStatusPaid = "paid"
)

// PaymentItem is one line item sent to the payment service when creating a
// checkout session.
type PaymentItem struct {
	BookID   int     `json:"bookId"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// PaymentRequest is the create-checkout-session payload. UserID is zero on
// the wire; the payment service extracts the user from the bearer token.
type PaymentRequest struct {
	UserID      int           `json:"userId"`
	OrderID     int           `json:"orderId"`
	TotalAmount float64       `json:"totalAmount"`
	Items       []PaymentItem `json:"items"`
}

// SessionState is the session-status response from the payment service.
type SessionState struct {
	Status          string `json:"status"`
	PaymentStatus   string `json:"payment_status"`
	PaymentIntentID string `json:"payment_intent_id"`
}

// PaymentItems converts cart lines into payment line items. A missing price
// becomes zero, matching CartTotal.
func PaymentItems(items []CartItem) []PaymentItem {
	out := make([]PaymentItem, 0, len(items))
	for _, item := range items {
		price := 0.0
		if item.Price != nil {
			price = *item.Price
		}
		out = append(out, PaymentItem{
			BookID:   item.BookID,
			Title:    item.Title,
			Price:    price,
			Quantity: item.BookQuantity,
		})
	}
	return out
}
