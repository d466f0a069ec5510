package api

import (
	"context"
	"net/http"
)

// StockInput moves stock for one product. Quantity must be positive for
// both directions; stock-out covers damage and loss as well as sales.
type StockInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Inventories lists inventory records, one per product.
func (c *Client) Inventories(ctx context.Context, page, size int) ([]Inventory, *Page, error) {
	raw, err := c.do(ctx, http.MethodGet, "/inventory", pageQuery(page, size), nil)
	if err != nil {
		return nil, nil, err
	}
	var records []Inventory
	pg, err := DecodeList(raw, &records)
	if err != nil {
		return nil, nil, err
	}
	return records, pg, nil
}

// StockIn records received stock.
func (c *Client) StockIn(ctx context.Context, in StockInput) error {
	_, err := c.do(ctx, http.MethodPost, "/inventory/stock-in", nil, in)
	return err
}

// StockOut records removed stock (sales adjustments, damage, loss).
func (c *Client) StockOut(ctx context.Context, in StockInput) error {
	_, err := c.do(ctx, http.MethodPost, "/inventory/stock-out", nil, in)
	return err
}
