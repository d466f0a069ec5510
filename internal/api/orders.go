package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// OrderFilter narrows the order list. Zero values mean "no filter".
type OrderFilter struct {
	Status   string
	FromDate time.Time
	ToDate   time.Time
	Page     int
	Size     int
}

// AddItemInput adds one line item to an open order.
type AddItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

const dateLayout = "2006-01-02"

// Orders lists orders with optional status and date-range filters.
func (c *Client) Orders(ctx context.Context, f OrderFilter) ([]Order, *Page, error) {
	size := f.Size
	if size <= 0 {
		size = 20
	}
	q := pageQuery(f.Page, size)
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if !f.FromDate.IsZero() {
		q.Set("fromDate", f.FromDate.Format(dateLayout))
	}
	if !f.ToDate.IsZero() {
		q.Set("toDate", f.ToDate.Format(dateLayout))
	}

	raw, err := c.do(ctx, http.MethodGet, "/orders", q, nil)
	if err != nil {
		return nil, nil, err
	}
	var orders []Order
	pg, err := DecodeList(raw, &orders)
	if err != nil {
		return nil, nil, err
	}
	return orders, pg, nil
}

// ActiveOrderByTable fetches the table's active (OPEN or CONFIRMED) order.
// A 404 means the table has no active order and is returned as (nil, nil):
// for this endpoint absence is a normal answer, not a failure.
func (c *Client) ActiveOrderByTable(ctx context.Context, tableID string) (*Order, error) {
	raw, err := c.do(ctx, http.MethodGet, "/orders/tables/"+tableID+"/active", nil, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var order Order
	if err := DecodeObject(raw, &order); err != nil {
		return nil, err
	}
	if order.ID == uuid.Nil {
		return nil, nil
	}
	return &order, nil
}

// OpenTable opens a new order on the table. The backend rejects this with a
// conflict when another terminal already opened it.
func (c *Client) OpenTable(ctx context.Context, tableID string) error {
	_, err := c.do(ctx, http.MethodPost, "/orders/tables/"+tableID+"/open", nil, nil)
	return err
}

// OrderDetail fetches one order with its items.
func (c *Client) OrderDetail(ctx context.Context, orderID string) (*Order, error) {
	raw, err := c.do(ctx, http.MethodGet, "/orders/"+orderID, nil, nil)
	if err != nil {
		return nil, err
	}
	var order Order
	if err := DecodeObject(raw, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ConfirmOrder moves the order from OPEN to CONFIRMED.
func (c *Client) ConfirmOrder(ctx context.Context, orderID string) error {
	_, err := c.do(ctx, http.MethodPost, "/orders/"+orderID+"/confirm", nil, nil)
	return err
}

// AddOrderItem appends a line item to an open order.
func (c *Client) AddOrderItem(ctx context.Context, orderID string, in AddItemInput) error {
	_, err := c.do(ctx, http.MethodPost, "/orders/"+orderID+"/items", nil, in)
	return err
}

// CancelOrderItem cancels one line item while the order is still open.
func (c *Client) CancelOrderItem(ctx context.Context, orderID, itemID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/orders/"+orderID+"/items/"+itemID, nil, nil)
	return err
}

// CancelOrder cancels an open order outright.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	_, err := c.do(ctx, http.MethodPost, "/orders/"+orderID+"/cancel", nil, nil)
	return err
}

// PayOrder settles a confirmed order.
func (c *Client) PayOrder(ctx context.Context, orderID string) error {
	_, err := c.do(ctx, http.MethodPost, "/orders/"+orderID+"/pay", nil, nil)
	return err
}
