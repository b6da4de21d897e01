package domain

// Book is a catalog entry joined with its author.
type Book struct {
	ID          int      `json:"id"`
	AuthorID    int      `json:"authorId"`
	Title       string   `json:"title"`
	Price       *float64 `json:"price,omitempty"`
	Description string   `json:"description,omitempty"`
	FirstName   string   `json:"firstName,omitempty"`
	LastName    string   `json:"lastName,omitempty"`
}
