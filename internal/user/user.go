package user

// User represents a storefront customer. JSON tags follow the camelCase
// convention used across the API.
type User struct {
	ID            int     `json:"userId"`
	Email         string  `json:"email"`
	Password      string  `json:"password,omitempty"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Phone         string  `json:"phone"`
	Verified      bool    `json:"verified"`
	AvatarPic     *string `json:"avatarPic,omitempty"`
	MainAddressID *int    `json:"mainAddressId,omitempty"`

	// Wishlist and Cart are stored on the users row and managed by the
	// wishlist and cart packages.
	Wishlist []int       `json:"wishlistProductIds,omitempty"`
	Cart     map[int]int `json:"cart,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
