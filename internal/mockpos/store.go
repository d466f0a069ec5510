// Package mockpos is an in-process stand-in for the real POS backend. It
// implements the full REST surface the console consumes, with the same
// envelope quirks, auth behavior, and business rules, so the console can
// be developed and integration-tested without a deployed backend.
package mockpos

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/restaurant-pos/admin/internal/enum"
)

// Business-rule errors surfaced to the console. Stock errors use English
// phrasing on purpose: the console is expected to rewrite them.
var (
	ErrNotFound         = errors.New("not found")
	ErrTableOccupied    = errors.New("table already has an active order")
	ErrOrderNotOpen     = errors.New("order is not open")
	ErrOrderNotReady    = errors.New("order must be confirmed before payment")
	ErrEmptyOrder       = errors.New("cannot confirm an order without items")
	ErrItemCancelled    = errors.New("order item is already cancelled")
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrNotEnoughStock   = errors.New("not enough stock for requested quantity")
	ErrDuplicateEmail   = errors.New("email already in use")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrWrongOldPassword = errors.New("old password is incorrect")
)

type Category struct {
	ID   uuid.UUID
	Name string
}

type Product struct {
	ID         uuid.UUID
	Name       string
	Price      decimal.Decimal
	ImageURL   string
	CategoryID uuid.UUID
}

type Table struct {
	ID       uuid.UUID
	Code     string
	Capacity int
}

type User struct {
	ID             uuid.UUID
	Email          string
	Phone          string
	FirstName      string
	LastName       string
	FullName       string
	Username       string
	HashedPassword []byte
	RoleCode       string
	Status         string
}

type Inventory struct {
	ID                uuid.UUID
	ProductID         uuid.UUID
	TotalQuantity     int
	AvailableQuantity int
}

type OrderItem struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Note        string
	Status      string
}

type Order struct {
	ID          uuid.UUID
	TableID     uuid.UUID
	Status      string
	CreatedAt   time.Time
	ConfirmedAt time.Time
	CancelledAt time.Time
	Items       []OrderItem
}

// TotalAmount sums the non-cancelled items.
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		if it.Status == enum.OrderItemStatusCancelled {
			continue
		}
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// TotalQuantity sums non-cancelled item quantities.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, it := range o.Items {
		if it.Status != enum.OrderItemStatusCancelled {
			total += it.Quantity
		}
	}
	return total
}

// Active reports whether the order still occupies its table.
func (o *Order) Active() bool {
	return !enum.IsTerminalOrderStatus(o.Status)
}

// Store holds all backend state behind one mutex. Request volume is a
// single test suite or one developer, so contention is a non-issue.
type Store struct {
	mu sync.Mutex

	categories  map[uuid.UUID]*Category
	products    map[uuid.UUID]*Product
	tables      map[uuid.UUID]*Table
	users       map[uuid.UUID]*User
	inventories map[uuid.UUID]*Inventory // keyed by product id
	orders      map[uuid.UUID]*Order
}

func NewStore() *Store {
	return &Store{
		categories:  make(map[uuid.UUID]*Category),
		products:    make(map[uuid.UUID]*Product),
		tables:      make(map[uuid.UUID]*Table),
		users:       make(map[uuid.UUID]*User),
		inventories: make(map[uuid.UUID]*Inventory),
		orders:      make(map[uuid.UUID]*Order),
	}
}

// Seed loads a small restaurant: one admin account, a few categories,
// products with stock, and numbered tables.
func (s *Store) Seed() error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	admin := &User{
		ID:             uuid.New(),
		Email:          "admin@restaurant.com",
		Phone:          "0900000001",
		FirstName:      "Quản",
		LastName:       "Trị",
		FullName:       "Quản Trị Viên",
		Username:       "admin",
		HashedPassword: hash,
		RoleCode:       enum.RoleAdmin,
		Status:         enum.UserStatusActive,
	}
	s.users[admin.ID] = admin

	food := &Category{ID: uuid.New(), Name: "Món chính"}
	drinks := &Category{ID: uuid.New(), Name: "Đồ uống"}
	s.categories[food.ID] = food
	s.categories[drinks.ID] = drinks

	seedProducts := []struct {
		name     string
		price    int64
		category uuid.UUID
		stock    int
	}{
		{"Phở bò", 65000, food.ID, 40},
		{"Cơm gà", 55000, food.ID, 30},
		{"Bún chả", 60000, food.ID, 25},
		{"Trà đá", 5000, drinks.ID, 200},
		{"Cà phê sữa", 25000, drinks.ID, 80},
	}
	for _, sp := range seedProducts {
		p := &Product{
			ID:         uuid.New(),
			Name:       sp.name,
			Price:      decimal.NewFromInt(sp.price),
			CategoryID: sp.category,
		}
		s.products[p.ID] = p
		s.inventories[p.ID] = &Inventory{
			ID:                uuid.New(),
			ProductID:         p.ID,
			TotalQuantity:     sp.stock,
			AvailableQuantity: sp.stock,
		}
	}

	for i := 1; i <= 8; i++ {
		t := &Table{ID: uuid.New(), Code: fmt.Sprintf("B%02d", i), Capacity: 4}
		s.tables[t.ID] = t
	}
	return nil
}

// activeOrderForTable returns the table's single non-terminal order.
// Caller must hold s.mu.
func (s *Store) activeOrderForTable(tableID uuid.UUID) *Order {
	for _, o := range s.orders {
		if o.TableID == tableID && o.Active() {
			return o
		}
	}
	return nil
}

// tableStatus derives the table's status from its active order.
// Caller must hold s.mu.
func (s *Store) tableStatus(tableID uuid.UUID) string {
	if s.activeOrderForTable(tableID) != nil {
		return enum.TableStatusOccupied
	}
	return enum.TableStatusAvailable
}
