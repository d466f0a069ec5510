package screen

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restaurant-pos/admin/internal/api"
	"github.com/restaurant-pos/admin/internal/enum"
	"github.com/restaurant-pos/admin/internal/notify"
)

type fakeInventoryAPI struct {
	products     []api.Product
	inventories  []api.Inventory
	productsErr  error
	inventoryErr error

	stockIns  []api.StockInput
	stockOuts []api.StockInput
}

func (f *fakeInventoryAPI) Products(ctx context.Context, page, size int) ([]api.Product, *api.Page, error) {
	return f.products, nil, f.productsErr
}

func (f *fakeInventoryAPI) Inventories(ctx context.Context, page, size int) ([]api.Inventory, *api.Page, error) {
	return f.inventories, nil, f.inventoryErr
}

func (f *fakeInventoryAPI) StockIn(ctx context.Context, in api.StockInput) error {
	f.stockIns = append(f.stockIns, in)
	return nil
}

func (f *fakeInventoryAPI) StockOut(ctx context.Context, in api.StockInput) error {
	f.stockOuts = append(f.stockOuts, in)
	return nil
}

func inventoryFixture() *fakeInventoryAPI {
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
	dangling := uuid.New()
	return &fakeInventoryAPI{
		products: []api.Product{
			{ID: p1, Name: "Phở bò"},
			{ID: p2, Name: "Trà đá"},
			{ID: p3, Name: "Cơm gà"},
		},
		inventories: []api.Inventory{
			{ID: uuid.New(), ProductID: p1, TotalQuantity: 50, AvailableQuantity: 0},
			{ID: uuid.New(), ProductID: p2, TotalQuantity: 50, AvailableQuantity: 5},
			{ID: uuid.New(), ProductID: p3, TotalQuantity: 50, AvailableQuantity: 6},
			{ID: uuid.New(), ProductID: dangling, TotalQuantity: 9, AvailableQuantity: 9},
		},
	}
}

func TestInventoryBuckets(t *testing.T) {
	s := NewInventoryScreen(inventoryFixture(), notify.NewCenter(), 5)
	require.NoError(t, s.Load(context.Background()))

	rows := s.Rows()
	require.Len(t, rows, 4)

	byName := map[string]InventoryRow{}
	for _, r := range rows {
		byName[r.ProductName] = r
	}
	assert.Equal(t, enum.StockBucketOut, byName["Phở bò"].Bucket)
	assert.Equal(t, enum.StockBucketLow, byName["Trà đá"].Bucket)
	assert.Equal(t, enum.StockBucketIn, byName["Cơm gà"].Bucket)

	counts := s.Counts()
	assert.Equal(t, 1, counts[enum.StockBucketOut])
	assert.Equal(t, 1, counts[enum.StockBucketLow])
	assert.Equal(t, 2, counts[enum.StockBucketIn])
}

func TestInventoryDanglingProductKeepsRow(t *testing.T) {
	s := NewInventoryScreen(inventoryFixture(), notify.NewCenter(), 5)
	require.NoError(t, s.Load(context.Background()))

	var placeholder int
	for _, r := range s.Rows() {
		if r.ProductName == UnknownProductLabel {
			placeholder++
			assert.Equal(t, 9, r.Record.AvailableQuantity)
		}
	}
	assert.Equal(t, 1, placeholder, "deleted product's stock row must stay visible")
}

func TestInventoryBucketFilterAndSearch(t *testing.T) {
	s := NewInventoryScreen(inventoryFixture(), notify.NewCenter(), 5)
	require.NoError(t, s.Load(context.Background()))

	s.BucketFilter = enum.StockBucketOut
	rows := s.Filtered()
	require.Len(t, rows, 1)
	assert.Equal(t, "Phở bò", rows[0].ProductName)

	s.BucketFilter = ""
	s.Search = "trà"
	rows = s.Filtered()
	require.Len(t, rows, 1)
	assert.Equal(t, "Trà đá", rows[0].ProductName)
}

func TestInventoryLoadDegradations(t *testing.T) {
	// Product failure blocks the screen.
	f := inventoryFixture()
	f.productsErr = &api.Error{Status: 500, Message: "boom"}
	s := NewInventoryScreen(f, notify.NewCenter(), 5)
	assert.Error(t, s.Load(context.Background()))

	// Inventory failure degrades to empty rows instead of failing.
	f = inventoryFixture()
	f.inventoryErr = &api.Error{Status: 500, Message: "boom"}
	s = NewInventoryScreen(f, notify.NewCenter(), 5)
	assert.NoError(t, s.Load(context.Background()))
	assert.Empty(t, s.Rows())

	// A 404 just means no records yet; no toast either.
	f = inventoryFixture()
	f.inventoryErr = &api.Error{Status: http.StatusNotFound, Message: "none"}
	center := notify.NewCenter()
	var toasts []string
	center.Subscribe(func(msg notify.Message) { toasts = append(toasts, msg.Text) })
	s = NewInventoryScreen(f, center, 5)
	assert.NoError(t, s.Load(context.Background()))
	assert.Empty(t, toasts)
}

func TestStockMutationsValidateInput(t *testing.T) {
	f := inventoryFixture()
	s := NewInventoryScreen(f, notify.NewCenter(), 5)
	require.NoError(t, s.Load(context.Background()))

	assert.Error(t, s.StockIn(context.Background(), "", 5))
	assert.Error(t, s.StockIn(context.Background(), "p1", 0))
	assert.Error(t, s.StockOut(context.Background(), "p1", -2))
	assert.Empty(t, f.stockIns)
	assert.Empty(t, f.stockOuts)

	require.NoError(t, s.StockIn(context.Background(), "p1", 10))
	require.Len(t, f.stockIns, 1)
	assert.Equal(t, api.StockInput{ProductID: "p1", Quantity: 10}, f.stockIns[0])

	require.NoError(t, s.StockOut(context.Background(), "p2", 3))
	require.Len(t, f.stockOuts, 1)
	assert.Equal(t, api.StockInput{ProductID: "p2", Quantity: 3}, f.stockOuts[0])
}
