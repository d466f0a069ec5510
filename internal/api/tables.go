package api

import (
	"context"
	"net/http"
)

// TableInput is the create/update payload for a table.
type TableInput struct {
	Code     string `json:"tableCode"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status,omitempty"`
}

// Tables lists dining tables.
func (c *Client) Tables(ctx context.Context, page, size int) ([]Table, *Page, error) {
	raw, err := c.do(ctx, http.MethodGet, "/tables", pageQuery(page, size), nil)
	if err != nil {
		return nil, nil, err
	}
	var tables []Table
	pg, err := DecodeList(raw, &tables)
	if err != nil {
		return nil, nil, err
	}
	return tables, pg, nil
}

// Table fetches one table by id.
func (c *Client) Table(ctx context.Context, id string) (*Table, error) {
	raw, err := c.do(ctx, http.MethodGet, "/tables/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	var t Table
	if err := DecodeObject(raw, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTable adds a table.
func (c *Client) CreateTable(ctx context.Context, in TableInput) error {
	_, err := c.do(ctx, http.MethodPost, "/tables", nil, in)
	return err
}

// UpdateTable updates a table.
func (c *Client) UpdateTable(ctx context.Context, id string, in TableInput) error {
	_, err := c.do(ctx, http.MethodPut, "/tables/"+id, nil, in)
	return err
}

// DeleteTable removes a table.
func (c *Client) DeleteTable(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/tables/"+id, nil, nil)
	return err
}
