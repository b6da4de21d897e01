package domain

// Address is a delivery address owned by a user.
type Address struct {
	ID            int    `json:"id,omitempty"`
	UserID        int    `json:"userId,omitempty"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state,omitempty"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	IsDefault     bool   `json:"isDefault,omitempty"`
}
