package storefront

import "math"

// RawProduct is the product record as the API returns it.
type RawProduct struct {
	ID           int     `json:"productId"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	SellingPrice float64 `json:"sellingPrice"`
	MRP          float64 `json:"mrp"`
	Image        *string `json:"image,omitempty"`
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"totalReviews"`
	Stock        int     `json:"stock"`
}

// Product is the view shape: selling price becomes the price, MRP the
// original price, and the discount percent is derived.
type Product struct {
	ID            int
	Name          string
	Slug          string
	Price         float64
	OriginalPrice float64
	Discount      int
	Image         string
	Rating        float64
	TotalReviews  int
	Stock         int
}

// Transform maps a raw API product to the view shape. The discount percent
// rounds to the nearest integer and is 0 when the MRP is unset or not above
// the selling price.
func Transform(raw RawProduct) Product {
	p := Product{
		ID:            raw.ID,
		Name:          raw.Name,
		Slug:          raw.Slug,
		Price:         raw.SellingPrice,
		OriginalPrice: raw.MRP,
		Rating:        raw.Rating,
		TotalReviews:  raw.TotalReviews,
		Stock:         raw.Stock,
	}
	if raw.Image != nil {
		p.Image = *raw.Image
	}
	if raw.MRP > raw.SellingPrice {
		p.Discount = int(math.Round((raw.MRP - raw.SellingPrice) / raw.MRP * 100))
	}
	return p
}

// TransformAll maps a slice of raw products, preserving order.
func TransformAll(raw []RawProduct) []Product {
	out := make([]Product, len(raw))
	for i, r := range raw {
		out[i] = Transform(r)
	}
	return out
}
