package domain

// CartItem mirrors the cart service's detail view: cart row fields joined
// with the book and author columns. Price is a pointer because the upstream
// view can return a book without a price.
type CartItem struct {
	CartItemID   int      `json:"cartItemId"`
	UserID       int      `json:"userId,omitempty"`
	BookID       int      `json:"bookId"`
	BookQuantity int      `json:"bookQuantity"`
	AuthorID     int      `json:"authorId"`
	Title        string   `json:"title"`
	Price        *float64 `json:"price,omitempty"`
	Description  string   `json:"description,omitempty"`
	FirstName    string   `json:"firstName,omitempty"`
	LastName     string   `json:"lastName,omitempty"`
}

// CartTotal sums unit price times quantity over the cart. A missing price
// counts as zero. The accumulator keeps full float precision; rounding is a
// display concern.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		if item.Price == nil {
			continue
		}
		total += *item.Price * float64(item.BookQuantity)
	}
	return total
}
