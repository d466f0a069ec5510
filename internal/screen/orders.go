package screen

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/restaurant-pos/admin/internal/api"
	"github.com/restaurant-pos/admin/internal/enum"
	"github.com/restaurant-pos/admin/internal/notify"
)

// OrdersAPI is the slice of the gateway client the orders screen needs.
type OrdersAPI interface {
	Orders(ctx context.Context, f api.OrderFilter) ([]api.Order, *api.Page, error)
	OrderDetail(ctx context.Context, orderID string) (*api.Order, error)
	Tables(ctx context.Context, page, size int) ([]api.Table, *api.Page, error)
}

// OrdersScreen lists orders with status filter and free-text search over
// the short order id and the table label.
type OrdersScreen struct {
	client OrdersAPI
	toasts *notify.Center

	orders      []api.Order
	tableLabels map[string]string

	StatusFilter string // "" means all
	Search       string
}

func NewOrdersScreen(client OrdersAPI, toasts *notify.Center) *OrdersScreen {
	return &OrdersScreen{client: client, toasts: toasts, tableLabels: make(map[string]string)}
}

// Load fetches orders (optionally date-bounded) and the table list used
// for labels. A table-list failure only degrades labels, never the screen.
func (s *OrdersScreen) Load(ctx context.Context, from, to time.Time) error {
	orders, _, err := s.client.Orders(ctx, api.OrderFilter{
		FromDate: from,
		ToDate:   to,
		Page:     0,
		Size:     100,
	})
	if err != nil {
		s.toasts.Error(notify.MsgLoadFailed)
		return err
	}
	s.orders = orders

	tables, _, err := s.client.Tables(ctx, 0, 1000)
	if err != nil {
		log.Printf("ERROR: load tables for order labels: %v", err)
	} else {
		s.tableLabels = make(map[string]string, len(tables))
		for _, t := range tables {
			s.tableLabels[t.ID.String()] = t.Label()
		}
	}
	return nil
}

// Detail fetches one order with items.
func (s *OrdersScreen) Detail(ctx context.Context, orderID string) (*api.Order, error) {
	order, err := s.client.OrderDetail(ctx, orderID)
	if err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgLoadFailed))
		return nil, err
	}
	return order, nil
}

// TableLabel resolves an order's table to its display label. Orders with
// no table are counter sales.
func (s *OrdersScreen) TableLabel(o api.Order) string {
	if label, ok := s.tableLabels[o.TableID.String()]; ok {
		return label
	}
	return "Tại quầy"
}

// DisplayID is the short uppercase id prefix shown in lists.
func DisplayID(o api.Order) string {
	id := o.ID.String()
	if len(id) > 5 {
		id = id[:5]
	}
	return strings.ToUpper(id)
}

// Filtered applies the status filter and free-text search.
func (s *OrdersScreen) Filtered() []api.Order {
	var out []api.Order
	for _, o := range s.orders {
		if s.StatusFilter != "" && o.Status != s.StatusFilter {
			continue
		}
		if !containsFold(DisplayID(o), s.Search) && !containsFold(s.TableLabel(o), s.Search) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// StatusCounts tallies the loaded orders per status, unaffected by filters.
func (s *OrdersScreen) StatusCounts() map[string]int {
	counts := map[string]int{
		enum.OrderStatusOpen:      0,
		enum.OrderStatusConfirmed: 0,
		enum.OrderStatusPaid:      0,
		enum.OrderStatusCancelled: 0,
	}
	for _, o := range s.orders {
		counts[o.Status]++
	}
	return counts
}
