package address

// Address is a saved shipping/billing address.
type Address struct {
	AddressID   int    `json:"addressId"`
	UserID      int    `json:"userId"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}
