package screen

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/restaurant-pos/admin/internal/api"
	"github.com/restaurant-pos/admin/internal/enum"
	"github.com/restaurant-pos/admin/internal/notify"
)

// UnknownProductLabel is shown for inventory rows whose product has been
// deleted. The row stays visible; hiding it would hide real stock.
const UnknownProductLabel = "Không xác định"

// InventoryAPI is the slice of the gateway client the inventory screen needs.
type InventoryAPI interface {
	Inventories(ctx context.Context, page, size int) ([]api.Inventory, *api.Page, error)
	Products(ctx context.Context, page, size int) ([]api.Product, *api.Page, error)
	StockIn(ctx context.Context, in api.StockInput) error
	StockOut(ctx context.Context, in api.StockInput) error
}

// InventoryRow is one inventory record joined with its product.
type InventoryRow struct {
	Record      api.Inventory
	ProductName string
	Bucket      string // enum.StockBucket* value
}

// InventoryScreen presents computed stock status over the inventory and
// product collections.
type InventoryScreen struct {
	client       InventoryAPI
	toasts       *notify.Center
	lowThreshold int

	inventories []api.Inventory
	products    map[uuid.UUID]api.Product

	BucketFilter string // "", "in", "low", "out"
	Search       string
}

func NewInventoryScreen(client InventoryAPI, toasts *notify.Center, lowThreshold int) *InventoryScreen {
	return &InventoryScreen{
		client:       client,
		toasts:       toasts,
		lowThreshold: lowThreshold,
		products:     make(map[uuid.UUID]api.Product),
	}
}

// Load fetches products and inventory. An inventory failure degrades the
// stock section to empty rather than blocking the screen, and a 404 means
// the backend simply has no records yet, so it stays silently empty.
func (s *InventoryScreen) Load(ctx context.Context) error {
	products, _, err := s.client.Products(ctx, 0, 1000)
	if err != nil {
		s.toasts.Error(notify.MsgLoadFailed)
		return err
	}
	s.products = make(map[uuid.UUID]api.Product, len(products))
	for _, p := range products {
		s.products[p.ID] = p
	}

	inventories, _, err := s.client.Inventories(ctx, 0, 1000)
	if err != nil {
		s.inventories = nil
		if !api.IsNotFound(err) {
			log.Printf("ERROR: load inventory: %v", err)
			s.toasts.Error("Không thể tải dữ liệu tồn kho")
		}
		return nil
	}
	s.inventories = inventories
	return nil
}

// Rows joins inventory to products and classifies each record. Records
// referencing a deleted product are kept with a placeholder name.
func (s *InventoryScreen) Rows() []InventoryRow {
	rows := make([]InventoryRow, 0, len(s.inventories))
	for _, inv := range s.inventories {
		name := UnknownProductLabel
		if p, ok := s.products[inv.ProductID]; ok {
			name = p.Name
		}
		rows = append(rows, InventoryRow{
			Record:      inv,
			ProductName: name,
			Bucket:      enum.StockBucket(inv.AvailableQuantity, s.lowThreshold),
		})
	}
	return rows
}

// Filtered applies the bucket filter and product-name search.
func (s *InventoryScreen) Filtered() []InventoryRow {
	var out []InventoryRow
	for _, row := range s.Rows() {
		if s.BucketFilter != "" && row.Bucket != s.BucketFilter {
			continue
		}
		if !containsFold(row.ProductName, s.Search) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// Counts tallies rows per bucket, unaffected by filters.
func (s *InventoryScreen) Counts() map[string]int {
	counts := map[string]int{
		enum.StockBucketIn:  0,
		enum.StockBucketLow: 0,
		enum.StockBucketOut: 0,
	}
	for _, row := range s.Rows() {
		counts[row.Bucket]++
	}
	return counts
}

// StockIn records received stock after client-side validation.
func (s *InventoryScreen) StockIn(ctx context.Context, productID string, quantity int) error {
	if err := s.validateStock(productID, quantity); err != nil {
		return err
	}
	if err := s.client.StockIn(ctx, api.StockInput{ProductID: productID, Quantity: quantity}); err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgActionFailed))
		return err
	}
	s.toasts.Success("Nhập kho thành công")
	return s.Load(ctx)
}

// StockOut records removed stock (sales corrections, damage, loss).
func (s *InventoryScreen) StockOut(ctx context.Context, productID string, quantity int) error {
	if err := s.validateStock(productID, quantity); err != nil {
		return err
	}
	if err := s.client.StockOut(ctx, api.StockInput{ProductID: productID, Quantity: quantity}); err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgActionFailed))
		return err
	}
	s.toasts.Success("Xuất kho thành công")
	return s.Load(ctx)
}

func (s *InventoryScreen) validateStock(productID string, quantity int) error {
	if productID == "" || quantity <= 0 {
		s.toasts.Error("Vui lòng chọn sản phẩm và nhập số lượng hợp lệ")
		return errMissingInput
	}
	return nil
}
