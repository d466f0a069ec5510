package api

import (
	"context"
	"net/http"
)

// Categories lists all product categories.
func (c *Client) Categories(ctx context.Context, page, size int) ([]Category, *Page, error) {
	raw, err := c.do(ctx, http.MethodGet, "/category", pageQuery(page, size), nil)
	if err != nil {
		return nil, nil, err
	}
	var categories []Category
	pg, err := DecodeList(raw, &categories)
	if err != nil {
		return nil, nil, err
	}
	return categories, pg, nil
}

// ProductsByCategory lists the products belonging to one category.
func (c *Client) ProductsByCategory(ctx context.Context, categoryID string, page, size int) ([]Product, *Page, error) {
	raw, err := c.do(ctx, http.MethodGet, "/category/"+categoryID+"/products", pageQuery(page, size), nil)
	if err != nil {
		return nil, nil, err
	}
	var products []Product
	pg, err := DecodeList(raw, &products)
	if err != nil {
		return nil, nil, err
	}
	return products, pg, nil
}
