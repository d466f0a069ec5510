package mockpos

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restaurant-pos/admin/internal/api"
	"github.com/restaurant-pos/admin/internal/enum"
	"github.com/restaurant-pos/admin/internal/session"
	"github.com/restaurant-pos/admin/internal/storage"
)

// harness boots the mock backend and a real gateway client against it.
type harness struct {
	store  *Store
	sess   *session.Manager
	client *api.Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := NewStore()
	require.NoError(t, store.Seed())
	srv := httptest.NewServer(New(store, "test-secret"))
	t.Cleanup(srv.Close)

	sess := session.NewManager(storage.NewMemStore(), storage.NewMemStore())
	client := api.New(srv.URL+"/api/v1", 5*time.Second, sess, nil)
	return &harness{store: store, sess: sess, client: client}
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	res, err := h.client.Login(context.Background(), "admin@restaurant.com", "password123")
	require.NoError(t, err)
	token, err := session.ExtractToken(res.Raw)
	require.NoError(t, err)
	require.NoError(t, h.sess.SetToken(token, false))
}

func (h *harness) productByName(t *testing.T, name string) *Product {
	t.Helper()
	for _, p := range h.store.Products() {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("seed product %q not found", name)
	return nil
}

func TestLoginIssuesUsableToken(t *testing.T) {
	h := newHarness(t)

	res, err := h.client.Login(context.Background(), "admin@restaurant.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "admin@restaurant.com", res.User.Email)

	token, err := session.ExtractToken(res.Raw)
	require.NoError(t, err)
	require.NoError(t, h.sess.SetToken(token, false))

	claims, err := h.sess.PeekClaims()
	require.NoError(t, err)
	assert.Equal(t, enum.RoleAdmin, claims.Role)

	// The token actually authenticates requests.
	_, _, err = h.client.Tables(context.Background(), 0, 100)
	assert.NoError(t, err)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	h := newHarness(t)
	_, err := h.client.Login(context.Background(), "admin@restaurant.com", "wrong")
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.client.Tables(context.Background(), 0, 100)
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
}

// The envelope shapes differ per resource; the client must normalize all
// of them.
func TestListEnvelopesAcrossResources(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	products, _, err := h.client.Products(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, products, 5)

	tables, _, err := h.client.Tables(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, tables, 8)
	assert.Equal(t, "B01", tables[0].Code)

	categories, _, err := h.client.Categories(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	records, _, err := h.client.Inventories(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, records, 5)

	users, _, err := h.client.Users(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestTableOrderLifecycle(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	tables, _, err := h.client.Tables(ctx, 0, 100)
	require.NoError(t, err)
	tableID := tables[0].ID.String()

	// No active order yet: absence, not an error.
	order, err := h.client.ActiveOrderByTable(ctx, tableID)
	require.NoError(t, err)
	assert.Nil(t, order)

	require.NoError(t, h.client.OpenTable(ctx, tableID))

	// Opening twice conflicts.
	err = h.client.OpenTable(ctx, tableID)
	require.Error(t, err)

	order, err = h.client.ActiveOrderByTable(ctx, tableID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, enum.OrderStatusOpen, order.Status)

	// The table now reports occupied.
	tbl, err := h.client.Table(ctx, tableID)
	require.NoError(t, err)
	assert.Equal(t, enum.TableStatusOccupied, tbl.Status)

	pho := h.productByName(t, "Phở bò")
	require.NoError(t, h.client.AddOrderItem(ctx, order.ID.String(), api.AddItemInput{
		ProductID: pho.ID.String(),
		Quantity:  2,
		Notes:     "ít hành",
	}))

	order, err = h.client.OrderDetail(ctx, order.ID.String())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Phở bò", order.Items[0].ProductName)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "ít hành", order.Items[0].Note)
	assert.Equal(t, "130000", order.TotalAmount.String())

	// Stock was decremented.
	assert.Equal(t, 38, h.store.inventories[pho.ID].AvailableQuantity)

	require.NoError(t, h.client.ConfirmOrder(ctx, order.ID.String()))
	require.NoError(t, h.client.PayOrder(ctx, order.ID.String()))

	// Paid order releases the table.
	order, err = h.client.ActiveOrderByTable(ctx, tableID)
	require.NoError(t, err)
	assert.Nil(t, order)
	tbl, err = h.client.Table(ctx, tableID)
	require.NoError(t, err)
	assert.Equal(t, enum.TableStatusAvailable, tbl.Status)
}

func TestConfirmEmptyOrderRejected(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	tables, _, err := h.client.Tables(ctx, 0, 100)
	require.NoError(t, err)
	tableID := tables[0].ID.String()
	require.NoError(t, h.client.OpenTable(ctx, tableID))
	order, err := h.client.ActiveOrderByTable(ctx, tableID)
	require.NoError(t, err)

	err = h.client.ConfirmOrder(ctx, order.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without items")
}

func TestPayRequiresConfirmation(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	tables, _, err := h.client.Tables(ctx, 0, 100)
	require.NoError(t, err)
	tableID := tables[0].ID.String()
	require.NoError(t, h.client.OpenTable(ctx, tableID))
	order, err := h.client.ActiveOrderByTable(ctx, tableID)
	require.NoError(t, err)

	err = h.client.PayOrder(ctx, order.ID.String())
	require.Error(t, err, "OPEN order cannot be paid")
}

func TestOutOfStockErrorWording(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	pho := h.productByName(t, "Phở bò")
	h.store.mu.Lock()
	h.store.inventories[pho.ID].AvailableQuantity = 0
	h.store.mu.Unlock()

	tables, _, err := h.client.Tables(ctx, 0, 100)
	require.NoError(t, err)
	tableID := tables[0].ID.String()
	require.NoError(t, h.client.OpenTable(ctx, tableID))
	order, err := h.client.ActiveOrderByTable(ctx, tableID)
	require.NoError(t, err)

	err = h.client.AddOrderItem(ctx, order.ID.String(), api.AddItemInput{
		ProductID: pho.ID.String(),
		Quantity:  1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of stock", "English wording reaches the client for normalization")
}

func TestCancelItemRestocks(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	pho := h.productByName(t, "Phở bò")
	tables, _, err := h.client.Tables(ctx, 0, 100)
	require.NoError(t, err)
	tableID := tables[0].ID.String()
	require.NoError(t, h.client.OpenTable(ctx, tableID))
	order, err := h.client.ActiveOrderByTable(ctx, tableID)
	require.NoError(t, err)

	require.NoError(t, h.client.AddOrderItem(ctx, order.ID.String(), api.AddItemInput{
		ProductID: pho.ID.String(), Quantity: 3,
	}))
	order, err = h.client.OrderDetail(ctx, order.ID.String())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)

	require.NoError(t, h.client.CancelOrderItem(ctx, order.ID.String(), order.Items[0].ID.String()))
	assert.Equal(t, 40, h.store.inventories[pho.ID].AvailableQuantity)

	// Cancelled items no longer count toward the total.
	order, err = h.client.OrderDetail(ctx, order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, order.TotalQuantity)
}

func TestStockInAndOutSemantics(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	pho := h.productByName(t, "Phở bò")

	// Stock-in raises both quantities.
	require.NoError(t, h.client.StockIn(ctx, api.StockInput{ProductID: pho.ID.String(), Quantity: 10}))
	assert.Equal(t, 50, h.store.inventories[pho.ID].TotalQuantity)
	assert.Equal(t, 50, h.store.inventories[pho.ID].AvailableQuantity)

	// Stock-out lowers available only.
	require.NoError(t, h.client.StockOut(ctx, api.StockInput{ProductID: pho.ID.String(), Quantity: 8}))
	assert.Equal(t, 50, h.store.inventories[pho.ID].TotalQuantity)
	assert.Equal(t, 42, h.store.inventories[pho.ID].AvailableQuantity)

	// Cannot remove more than is available.
	err := h.client.StockOut(ctx, api.StockInput{ProductID: pho.ID.String(), Quantity: 1000})
	require.Error(t, err)
}

func TestDeletedProductLeavesInventoryRow(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	pho := h.productByName(t, "Phở bò")
	require.NoError(t, h.client.DeleteProduct(ctx, pho.ID.String()))

	records, _, err := h.client.Inventories(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, records, 5, "stock history survives product deletion")

	products, _, err := h.client.Products(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, products, 4)
}

func TestUserManagementFlow(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	require.NoError(t, h.client.CreateUser(ctx, api.CreateUserInput{
		Email:    "cashier@restaurant.com",
		FullName: "Thu Ngân",
		Username: "cashier",
		Password: "secret12",
		RoleCode: enum.RoleCashier,
	}))

	// Duplicate email conflicts.
	err := h.client.CreateUser(ctx, api.CreateUserInput{
		Email:    "Cashier@Restaurant.com",
		Username: "cashier2",
		Password: "secret12",
		RoleCode: enum.RoleCashier,
	})
	require.Error(t, err)

	users, _, err := h.client.Users(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, users, 2)

	var cashier api.User
	for _, u := range users {
		if u.Email == "cashier@restaurant.com" {
			cashier = u
		}
	}
	require.NotEqual(t, uuid.Nil, cashier.ID)
	assert.Equal(t, enum.UserStatusActive, cashier.Status)

	require.NoError(t, h.client.BanUser(ctx, cashier.ID.String()))
	banned, err := h.client.UserByID(ctx, cashier.ID.String())
	require.NoError(t, err)
	assert.Equal(t, enum.UserStatusBanned, banned.Status)

	// A banned user cannot log in. The 401 also wipes the local session,
	// so re-authenticate before continuing.
	_, err = h.client.Login(ctx, "cashier@restaurant.com", "secret12")
	require.Error(t, err)
	h.login(t)

	require.NoError(t, h.client.ActivateUser(ctx, cashier.ID.String()))
	_, err = h.client.Login(ctx, "cashier@restaurant.com", "secret12")
	assert.NoError(t, err)
}

func TestChangePasswordFlow(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	// Wrong old password is rejected.
	err := h.client.ChangePassword(ctx, api.ChangePasswordInput{
		OldPassword: "nope", NewPassword: "newpass12",
	})
	require.Error(t, err)

	require.NoError(t, h.client.ChangePassword(ctx, api.ChangePasswordInput{
		OldPassword: "password123", NewPassword: "newpass12",
	}))

	_, err = h.client.Login(ctx, "admin@restaurant.com", "password123")
	require.Error(t, err)
	_, err = h.client.Login(ctx, "admin@restaurant.com", "newpass12")
	assert.NoError(t, err)
}

func TestMeEndpoint(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	me, err := h.client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin@restaurant.com", me.Email)
	assert.Equal(t, enum.RoleAdmin, me.RoleCode)
}

func TestOrdersListStatusFilter(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	tables, _, err := h.client.Tables(ctx, 0, 100)
	require.NoError(t, err)

	require.NoError(t, h.client.OpenTable(ctx, tables[0].ID.String()))
	require.NoError(t, h.client.OpenTable(ctx, tables[1].ID.String()))

	open, _, err := h.client.Orders(ctx, api.OrderFilter{Status: "OPEN"})
	require.NoError(t, err)
	assert.Len(t, open, 2)

	paid, _, err := h.client.Orders(ctx, api.OrderFilter{Status: "PAID"})
	require.NoError(t, err)
	assert.Empty(t, paid)
}

func TestProductCRUD(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	categories, _, err := h.client.Categories(ctx, 0, 100)
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	require.NoError(t, h.client.CreateProduct(ctx, api.ProductInput{
		Name:       "Nước cam",
		CategoryID: categories[0].ID.String(),
		Price:      decimal.NewFromInt(30000),
	}))

	products, _, err := h.client.Products(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, products, 6)

	var created api.Product
	for _, p := range products {
		if p.Name == "Nước cam" {
			created = p
		}
	}
	require.NotEqual(t, uuid.Nil, created.ID)

	// New products start with an inventory row at zero.
	records, _, err := h.client.Inventories(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, records, 6)
}
