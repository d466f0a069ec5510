package screen

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/restaurant-pos/admin/internal/api"
	"github.com/restaurant-pos/admin/internal/enum"
	"github.com/restaurant-pos/admin/internal/notify"
)

// DashboardAPI is the slice of the gateway client the dashboard needs.
type DashboardAPI interface {
	Orders(ctx context.Context, f api.OrderFilter) ([]api.Order, *api.Page, error)
	Tables(ctx context.Context, page, size int) ([]api.Table, *api.Page, error)
}

// Stats are the headline KPI cards.
type Stats struct {
	Revenue        decimal.Decimal // PAID orders only
	OrderCount     int
	OpenOrders     int
	OccupiedTables int
	TotalTables    int
}

// TopProduct is one row of the best-seller list.
type TopProduct struct {
	Name     string
	Quantity int
}

// DashboardScreen computes today's KPIs from the order list; the backend
// has no dedicated stats endpoint.
type DashboardScreen struct {
	client DashboardAPI
	toasts *notify.Center

	orders []api.Order
	tables []api.Table
}

func NewDashboardScreen(client DashboardAPI, toasts *notify.Center) *DashboardScreen {
	return &DashboardScreen{client: client, toasts: toasts}
}

// Load fetches today's orders and the table list. A table failure degrades
// the occupancy card only.
func (s *DashboardScreen) Load(ctx context.Context, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	orders, _, err := s.client.Orders(ctx, api.OrderFilter{
		FromDate: today,
		ToDate:   today,
		Size:     1000,
	})
	if err != nil {
		s.toasts.Error(notify.MsgLoadFailed)
		return err
	}
	s.orders = orders

	tables, _, err := s.client.Tables(ctx, 0, 1000)
	if err != nil {
		s.tables = nil
	} else {
		s.tables = tables
	}
	return nil
}

// Stats aggregates the loaded orders.
func (s *DashboardScreen) Stats() Stats {
	stats := Stats{TotalTables: len(s.tables)}
	for _, o := range s.orders {
		stats.OrderCount++
		switch o.Status {
		case enum.OrderStatusPaid:
			stats.Revenue = stats.Revenue.Add(o.TotalAmount)
		case enum.OrderStatusOpen, enum.OrderStatusConfirmed:
			stats.OpenOrders++
		}
	}
	for _, t := range s.tables {
		if t.Status == enum.TableStatusOccupied {
			stats.OccupiedTables++
		}
	}
	return stats
}

// RecentOrders returns the n newest orders.
func (s *DashboardScreen) RecentOrders(n int) []api.Order {
	orders := make([]api.Order, len(s.orders))
	copy(orders, s.orders)
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt.Time)
	})
	if len(orders) > n {
		orders = orders[:n]
	}
	return orders
}

// TopProducts ranks products by quantity across non-cancelled items of
// non-cancelled orders.
func (s *DashboardScreen) TopProducts(n int) []TopProduct {
	quantities := make(map[string]int)
	for _, o := range s.orders {
		if o.Status == enum.OrderStatusCancelled {
			continue
		}
		for _, it := range o.ActiveItems() {
			name := it.ProductName
			if name == "" {
				name = UnknownProductLabel
			}
			quantities[name] += it.Quantity
		}
	}

	top := make([]TopProduct, 0, len(quantities))
	for name, qty := range quantities {
		top = append(top, TopProduct{Name: name, Quantity: qty})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity != top[j].Quantity {
			return top[i].Quantity > top[j].Quantity
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}
