package store

// Store is a vendor shop as shown on the storefront.
type Store struct {
	StoreID     int     `json:"storeId"`
	VendorID    int     `json:"vendorId"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Logo        *string `json:"logo,omitempty"`
	Description string  `json:"description,omitempty"`
	Rating      float64 `json:"rating"`
}
