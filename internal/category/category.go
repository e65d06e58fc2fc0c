package category

// CategoryItem is the public DTO returned by the category API.
type CategoryItem struct {
	CategoryID int     `json:"categoryId"`
	Name       string  `json:"name"`
	Slug       string  `json:"slug"`
	Image      *string `json:"image,omitempty"`
}

// Subcategory belongs to a single category.
type Subcategory struct {
	SubcategoryID int    `json:"subcategoryId"`
	CategoryID    int    `json:"categoryId"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
}
