package brand

// BrandItem is the public DTO returned by the brand API.
type BrandItem struct {
	BrandID int     `json:"brandId"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	Logo    *string `json:"logo,omitempty"`
}
