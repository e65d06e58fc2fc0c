package product

// Product maps the `products` table. Prices keep both the selling price and
// the MRP so clients can derive the discount themselves.
type Product struct {
	ID            int     `json:"productId"`
	StoreID       int     `json:"storeId"`
	BrandID       *int    `json:"brandId,omitempty"`
	CategoryID    *int    `json:"categoryId,omitempty"`
	SubcategoryID *int    `json:"subcategoryId,omitempty"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	Description   string  `json:"description,omitempty"`
	SellingPrice  float64 `json:"sellingPrice"`
	MRP           float64 `json:"mrp"`
	Image         *string `json:"image,omitempty"`
	Rating        float64 `json:"rating"`
	TotalReviews  int     `json:"totalReviews"`
	Stock         int     `json:"stock"`
	Featured      bool    `json:"featured,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// Summary is the compact product shape embedded in cart, wishlist and order
// responses.
type Summary struct {
	ProductID    int     `json:"productId"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	SellingPrice float64 `json:"sellingPrice"`
	MRP          float64 `json:"mrp"`
	Image        *string `json:"image,omitempty"`
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"totalReviews"`
}

// Filter collects the listing query parameters.
type Filter struct {
	CategoryID *int
	BrandID    *int
	StoreID    *int
	MinPrice   *float64
	MaxPrice   *float64
	Query      string
	Page       int
	Limit      int
}

// Page is a single page of listing results.
type Page struct {
	Items      []Product `json:"items"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
	TotalItems int       `json:"totalItems"`
}

// Sections groups the home page product rails.
type Sections struct {
	Featured []Product `json:"featured"`
	Latest   []Product `json:"latest"`
	TopRated []Product `json:"topRated"`
}

func (p Product) summary() Summary {
	return Summary{
		ProductID:    p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		SellingPrice: p.SellingPrice,
		MRP:          p.MRP,
		Image:        p.Image,
		Rating:       p.Rating,
		TotalReviews: p.TotalReviews,
	}
}
