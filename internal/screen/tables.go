package screen

import (
	"context"
	"sort"
	"strings"

	"github.com/restaurant-pos/admin/internal/api"
	"github.com/restaurant-pos/admin/internal/notify"
)

// TablesAPI is the slice of the gateway client the tables screen needs.
type TablesAPI interface {
	Tables(ctx context.Context, page, size int) ([]api.Table, *api.Page, error)
	CreateTable(ctx context.Context, in api.TableInput) error
	UpdateTable(ctx context.Context, id string, in api.TableInput) error
	DeleteTable(ctx context.Context, id string) error
}

// TablesScreen manages the floor layout.
type TablesScreen struct {
	client TablesAPI
	toasts *notify.Center

	tables []api.Table

	StatusFilter string // "" means all
	Search       string
}

func NewTablesScreen(client TablesAPI, toasts *notify.Center) *TablesScreen {
	return &TablesScreen{client: client, toasts: toasts}
}

// Load fetches all tables, sorted by display label.
func (s *TablesScreen) Load(ctx context.Context) error {
	tables, _, err := s.client.Tables(ctx, 0, 1000)
	if err != nil {
		s.toasts.Error("Không thể tải danh sách bàn")
		return err
	}
	sort.Slice(tables, func(i, j int) bool {
		return strings.ToLower(tables[i].Label()) < strings.ToLower(tables[j].Label())
	})
	s.tables = tables
	return nil
}

func (s *TablesScreen) Tables() []api.Table { return s.tables }

// Filtered applies the status filter and label search.
func (s *TablesScreen) Filtered() []api.Table {
	var out []api.Table
	for _, t := range s.tables {
		if s.StatusFilter != "" && t.Status != s.StatusFilter {
			continue
		}
		if !containsFold(t.Label(), s.Search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Create validates and adds a table.
func (s *TablesScreen) Create(ctx context.Context, in api.TableInput) error {
	if in.Code == "" || in.Capacity <= 0 {
		s.toasts.Error(notify.MsgMissingInput)
		return errMissingInput
	}
	if err := s.client.CreateTable(ctx, in); err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgSaveFailed))
		return err
	}
	s.toasts.Success(notify.MsgCreated)
	return s.Load(ctx)
}

// Update saves table changes.
func (s *TablesScreen) Update(ctx context.Context, id string, in api.TableInput) error {
	if err := s.client.UpdateTable(ctx, id, in); err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgSaveFailed))
		return err
	}
	s.toasts.Success(notify.MsgUpdated)
	return s.Load(ctx)
}

// Delete removes a table.
func (s *TablesScreen) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteTable(ctx, id); err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgDeleteFailed))
		return err
	}
	s.toasts.Success(notify.MsgDeleted)
	return s.Load(ctx)
}
