package api

import (
	"context"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
)

// ProductInput is the create/update payload for a product.
type ProductInput struct {
	Name       string          `json:"name"`
	CategoryID string          `json:"categoryId"`
	Price      decimal.Decimal `json:"price"`
}

// Products lists products.
func (c *Client) Products(ctx context.Context, page, size int) ([]Product, *Page, error) {
	raw, err := c.do(ctx, http.MethodGet, "/products", pageQuery(page, size), nil)
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

// Product fetches one product by id.
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	raw, err := c.do(ctx, http.MethodGet, "/products/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	var p Product
	if err := DecodeObject(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct creates a product.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) error {
	_, err := c.do(ctx, http.MethodPost, "/products", nil, in)
	return err
}

// UpdateProduct updates a product's fields. Image handling is separate.
func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) error {
	_, err := c.do(ctx, http.MethodPut, "/products/"+id, nil, in)
	return err
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil)
	return err
}

// AttachProductImage links an already-uploaded image URL to a product.
func (c *Client) AttachProductImage(ctx context.Context, id, imageURL string) error {
	_, err := c.do(ctx, http.MethodPut, "/products/"+id+"/image", nil, map[string]string{"imageUrl": imageURL})
	return err
}

// RemoveProductImage detaches a product's image.
func (c *Client) RemoveProductImage(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/products/"+id+"/image", nil, nil)
	return err
}

// Upload sends one file and returns the URL the backend stored it under.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	raw, err := c.upload(ctx, "/uploads", filename, file)
	if err != nil {
		return "", err
	}
	var payload struct {
		URL string `json:"url"`
	}
	if err := DecodeObject(raw, &payload); err != nil {
		return "", err
	}
	return payload.URL, nil
}
