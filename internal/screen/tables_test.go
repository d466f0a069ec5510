package screen

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restaurant-pos/admin/internal/api"
	"github.com/restaurant-pos/admin/internal/enum"
	"github.com/restaurant-pos/admin/internal/notify"
)

type fakeTablesAPI struct {
	tables  []api.Table
	creates []api.TableInput
	deletes []string
	delErr  error
}

func (f *fakeTablesAPI) Tables(ctx context.Context, page, size int) ([]api.Table, *api.Page, error) {
	return f.tables, nil, nil
}

func (f *fakeTablesAPI) CreateTable(ctx context.Context, in api.TableInput) error {
	f.creates = append(f.creates, in)
	return nil
}

func (f *fakeTablesAPI) UpdateTable(ctx context.Context, id string, in api.TableInput) error {
	return nil
}

func (f *fakeTablesAPI) DeleteTable(ctx context.Context, id string) error {
	f.deletes = append(f.deletes, id)
	return f.delErr
}

func tablesFixture() *fakeTablesAPI {
	return &fakeTablesAPI{tables: []api.Table{
		{ID: uuid.New(), Code: "B02", Status: enum.TableStatusAvailable},
		{ID: uuid.New(), Code: "B01", Status: enum.TableStatusOccupied},
		{ID: uuid.New(), Code: "B10", Status: enum.TableStatusAvailable},
	}}
}

func TestTablesLoadSortsByLabel(t *testing.T) {
	s := NewTablesScreen(tablesFixture(), notify.NewCenter())
	require.NoError(t, s.Load(context.Background()))

	tables := s.Tables()
	require.Len(t, tables, 3)
	assert.Equal(t, "B01", tables[0].Code)
	assert.Equal(t, "B02", tables[1].Code)
	assert.Equal(t, "B10", tables[2].Code)
}

func TestTablesFilterAndSearch(t *testing.T) {
	s := NewTablesScreen(tablesFixture(), notify.NewCenter())
	require.NoError(t, s.Load(context.Background()))

	s.StatusFilter = enum.TableStatusOccupied
	filtered := s.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "B01", filtered[0].Code)

	s.StatusFilter = ""
	s.Search = "b1"
	filtered = s.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "B10", filtered[0].Code)
}

func TestTablesCreateValidation(t *testing.T) {
	f := tablesFixture()
	s := NewTablesScreen(f, notify.NewCenter())
	ctx := context.Background()

	assert.Error(t, s.Create(ctx, api.TableInput{Capacity: 4}))
	assert.Error(t, s.Create(ctx, api.TableInput{Code: "B11"}))
	assert.Empty(t, f.creates)

	require.NoError(t, s.Create(ctx, api.TableInput{Code: "B11", Capacity: 4}))
	require.Len(t, f.creates, 1)
	assert.Equal(t, "B11", f.creates[0].Code)
}

func TestTablesDeleteOccupiedSurfacesBackendError(t *testing.T) {
	f := tablesFixture()
	f.delErr = &api.Error{Status: 409, Message: "table has an active order"}

	center := notify.NewCenter()
	var toasts []string
	center.Subscribe(func(msg notify.Message) { toasts = append(toasts, msg.Text) })

	s := NewTablesScreen(f, center)
	require.NoError(t, s.Load(context.Background()))

	err := s.Delete(context.Background(), f.tables[1].ID.String())
	require.Error(t, err)
	assert.Contains(t, toasts, "table has an active order")
}
