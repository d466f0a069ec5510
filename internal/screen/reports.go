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

// ReportsAPI is the slice of the gateway client the reports screen needs.
type ReportsAPI interface {
	Orders(ctx context.Context, f api.OrderFilter) ([]api.Order, *api.Page, error)
}

// DailyRevenue is one point of the revenue chart.
type DailyRevenue struct {
	Date    time.Time
	Revenue decimal.Decimal
	Orders  int
}

// ReportsScreen aggregates revenue and order counts per day over a date
// range. Only PAID orders contribute revenue; cancelled orders are
// excluded from counts.
type ReportsScreen struct {
	client ReportsAPI
	toasts *notify.Center

	orders []api.Order
}

func NewReportsScreen(client ReportsAPI, toasts *notify.Center) *ReportsScreen {
	return &ReportsScreen{client: client, toasts: toasts}
}

// Load fetches all orders in [from, to].
func (s *ReportsScreen) Load(ctx context.Context, from, to time.Time) error {
	orders, _, err := s.client.Orders(ctx, api.OrderFilter{
		FromDate: from,
		ToDate:   to,
		Size:     1000,
	})
	if err != nil {
		s.toasts.Error(notify.MsgLoadFailed)
		return err
	}
	s.orders = orders
	return nil
}

// Daily buckets the loaded orders by calendar day, sorted ascending.
func (s *ReportsScreen) Daily() []DailyRevenue {
	byDay := make(map[string]*DailyRevenue)
	for _, o := range s.orders {
		if o.Status == enum.OrderStatusCancelled || o.CreatedAt.IsZero() {
			continue
		}
		day := o.CreatedAt.Format("2006-01-02")
		entry, ok := byDay[day]
		if !ok {
			date, _ := time.Parse("2006-01-02", day)
			entry = &DailyRevenue{Date: date}
			byDay[day] = entry
		}
		entry.Orders++
		if o.Status == enum.OrderStatusPaid {
			entry.Revenue = entry.Revenue.Add(o.TotalAmount)
		}
	}

	out := make([]DailyRevenue, 0, len(byDay))
	for _, entry := range byDay {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// TotalRevenue sums PAID revenue across the loaded range.
func (s *ReportsScreen) TotalRevenue() decimal.Decimal {
	total := decimal.Zero
	for _, o := range s.orders {
		if o.Status == enum.OrderStatusPaid {
			total = total.Add(o.TotalAmount)
		}
	}
	return total
}
