package storefront

import (
	"context"
	"net/url"
	"strconv"
)

// ProductQuery collects listing parameters. Zero values are omitted from the
// request.
type ProductQuery struct {
	Query      string
	Page       int
	Limit      int
	CategoryID int
	BrandID    int
	StoreID    int
	MinPrice   float64
	MaxPrice   float64
}

// ProductPage is one page of transformed products.
type ProductPage struct {
	Items      []Product
	Page       int
	TotalPages int
	TotalItems int
}

type rawPage struct {
	Items      []RawProduct `json:"items"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	TotalItems int          `json:"totalItems"`
}

// ListProducts fetches a listing page and transforms every product.
func ListProducts(ctx context.Context, client *Client, q ProductQuery) (ProductPage, error) {
	values := url.Values{}
	if q.Query != "" {
		values.Set("q", q.Query)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.CategoryID > 0 {
		values.Set("category", strconv.Itoa(q.CategoryID))
	}
	if q.BrandID > 0 {
		values.Set("brand", strconv.Itoa(q.BrandID))
	}
	if q.StoreID > 0 {
		values.Set("store", strconv.Itoa(q.StoreID))
	}
	if q.MinPrice > 0 {
		values.Set("minPrice", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		values.Set("maxPrice", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}

	path := EndpointProducts
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	payload, err := client.Call(ctx, path, nil)
	if err != nil {
		return ProductPage{}, err
	}
	var page rawPage
	if err := unmarshal(payload, &page); err != nil {
		return ProductPage{}, err
	}
	return ProductPage{
		Items:      TransformAll(page.Items),
		Page:       page.Page,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
	}, nil
}

// HomeSections groups the transformed home page rails.
type HomeSections struct {
	Featured []Product
	Latest   []Product
	TopRated []Product
}

// FetchSections loads the home page product rails.
func FetchSections(ctx context.Context, client *Client) (HomeSections, error) {
	payload, err := client.Call(ctx, EndpointProductSections, nil)
	if err != nil {
		return HomeSections{}, err
	}
	var raw struct {
		Featured []RawProduct `json:"featured"`
		Latest   []RawProduct `json:"latest"`
		TopRated []RawProduct `json:"topRated"`
	}
	if err := unmarshal(payload, &raw); err != nil {
		return HomeSections{}, err
	}
	return HomeSections{
		Featured: TransformAll(raw.Featured),
		Latest:   TransformAll(raw.Latest),
		TopRated: TransformAll(raw.TopRated),
	}, nil
}
