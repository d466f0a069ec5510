package screen

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restaurant-pos/admin/internal/api"
	"github.com/restaurant-pos/admin/internal/enum"
	"github.com/restaurant-pos/admin/internal/notify"
)

type fakeOrdersAPI struct {
	orders    []api.Order
	tables    []api.Table
	tablesErr error
}

func (f *fakeOrdersAPI) Orders(ctx context.Context, filter api.OrderFilter) ([]api.Order, *api.Page, error) {
	return f.orders, nil, nil
}

func (f *fakeOrdersAPI) OrderDetail(ctx context.Context, orderID string) (*api.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID.String() == orderID {
			return &f.orders[i], nil
		}
	}
	return nil, &api.Error{Status: 404, Message: "not found"}
}

func (f *fakeOrdersAPI) Tables(ctx context.Context, page, size int) ([]api.Table, *api.Page, error) {
	return f.tables, nil, f.tablesErr
}

func ordersFixture() *fakeOrdersAPI {
	t1, t2 := uuid.New(), uuid.New()
	return &fakeOrdersAPI{
		orders: []api.Order{
			{ID: uuid.New(), TableID: t1, Status: enum.OrderStatusOpen},
			{ID: uuid.New(), TableID: t2, Status: enum.OrderStatusPaid},
			{ID: uuid.New(), Status: enum.OrderStatusPaid}, // counter sale, no table
		},
		tables: []api.Table{
			{ID: t1, Code: "B01"},
			{ID: t2, Code: "B02"},
		},
	}
}

func TestOrdersTableLabels(t *testing.T) {
	f := ordersFixture()
	s := NewOrdersScreen(f, notify.NewCenter())
	require.NoError(t, s.Load(context.Background(), time.Time{}, time.Time{}))

	assert.Equal(t, "B01", s.TableLabel(f.orders[0]))
	assert.Equal(t, "B02", s.TableLabel(f.orders[1]))
	assert.Equal(t, "Tại quầy", s.TableLabel(f.orders[2]))
}

func TestOrdersTableFailureDegradesLabels(t *testing.T) {
	f := ordersFixture()
	f.tablesErr = &api.Error{Status: 500, Message: "boom"}
	s := NewOrdersScreen(f, notify.NewCenter())

	require.NoError(t, s.Load(context.Background(), time.Time{}, time.Time{}), "orders still load")
	assert.Equal(t, "Tại quầy", s.TableLabel(f.orders[0]), "labels fall back")
	assert.Len(t, s.Filtered(), 3)
}

func TestOrdersStatusFilterAndSearch(t *testing.T) {
	f := ordersFixture()
	s := NewOrdersScreen(f, notify.NewCenter())
	require.NoError(t, s.Load(context.Background(), time.Time{}, time.Time{}))

	s.StatusFilter = enum.OrderStatusPaid
	assert.Len(t, s.Filtered(), 2)

	s.StatusFilter = ""
	s.Search = "b01"
	filtered := s.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, f.orders[0].ID, filtered[0].ID)

	s.Search = DisplayID(f.orders[1])
	filtered = s.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, f.orders[1].ID, filtered[0].ID)
}

func TestOrdersStatusCounts(t *testing.T) {
	s := NewOrdersScreen(ordersFixture(), notify.NewCenter())
	require.NoError(t, s.Load(context.Background(), time.Time{}, time.Time{}))

	counts := s.StatusCounts()
	assert.Equal(t, 1, counts[enum.OrderStatusOpen])
	assert.Equal(t, 2, counts[enum.OrderStatusPaid])
	assert.Equal(t, 0, counts[enum.OrderStatusCancelled])
}

func TestDisplayID(t *testing.T) {
	id := uuid.MustParse("abcde123-0000-0000-0000-000000000000")
	assert.Equal(t, "ABCDE", DisplayID(api.Order{ID: id}))
}
