package mockpos

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/restaurant-pos/admin/internal/enum"
)

// ── Orders ──

// OpenTable creates a new OPEN order, enforcing the one-active-order-per-
// table invariant the console relies on.
func (s *Store) OpenTable(tableID uuid.UUID) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[tableID]; !ok {
		return nil, ErrNotFound
	}
	if s.activeOrderForTable(tableID) != nil {
		return nil, ErrTableOccupied
	}

	o := &Order{
		ID:        uuid.New(),
		TableID:   tableID,
		Status:    enum.OrderStatusOpen,
		CreatedAt: time.Now(),
	}
	s.orders[o.ID] = o
	return o, nil
}

// ActiveOrder returns the table's active order, or ErrNotFound.
func (s *Store) ActiveOrder(tableID uuid.UUID) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.activeOrderForTable(tableID)
	if o == nil {
		return nil, ErrNotFound
	}
	return o, nil
}

// Order returns one order by id.
func (s *Store) Order(orderID uuid.UUID) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

// Orders lists orders, optionally filtered by status and creation date.
func (s *Store) Orders(status string, from, to time.Time) []*Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Order
	for _, o := range s.orders {
		if status != "" && o.Status != strings.ToUpper(status) {
			continue
		}
		if !from.IsZero() && o.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && o.CreatedAt.After(to.Add(24*time.Hour)) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// AddItem appends a line item to an open order, decrementing available
// stock. Stock errors keep English phrasing; the console rewrites them.
func (s *Store) AddItem(orderID, productID uuid.UUID, quantity int, note string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	if o.Status != enum.OrderStatusOpen {
		return nil, ErrOrderNotOpen
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	p, ok := s.products[productID]
	if !ok {
		return nil, ErrNotFound
	}

	inv := s.inventories[productID]
	if inv == nil || inv.AvailableQuantity == 0 {
		return nil, ErrOutOfStock
	}
	if inv.AvailableQuantity < quantity {
		return nil, ErrNotEnoughStock
	}
	inv.AvailableQuantity -= quantity

	o.Items = append(o.Items, OrderItem{
		ID:          uuid.New(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		UnitPrice:   p.Price,
		Note:        note,
		Status:      enum.OrderItemStatusActive,
	})
	return o, nil
}

// CancelItem cancels one line item and returns its stock.
func (s *Store) CancelItem(orderID, itemID uuid.UUID) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	if o.Status != enum.OrderStatusOpen {
		return nil, ErrOrderNotOpen
	}
	for i := range o.Items {
		if o.Items[i].ID != itemID {
			continue
		}
		if o.Items[i].Status == enum.OrderItemStatusCancelled {
			return nil, ErrItemCancelled
		}
		o.Items[i].Status = enum.OrderItemStatusCancelled
		if inv := s.inventories[o.Items[i].ProductID]; inv != nil {
			inv.AvailableQuantity += o.Items[i].Quantity
		}
		return o, nil
	}
	return nil, ErrNotFound
}

// ConfirmOrder moves OPEN → CONFIRMED, requiring at least one active item.
func (s *Store) ConfirmOrder(orderID uuid.UUID) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	if o.Status != enum.OrderStatusOpen {
		return nil, ErrOrderNotOpen
	}
	if o.TotalQuantity() == 0 {
		return nil, ErrEmptyOrder
	}
	o.Status = enum.OrderStatusConfirmed
	o.ConfirmedAt = time.Now()
	return o, nil
}

// PayOrder moves CONFIRMED → PAID.
func (s *Store) PayOrder(orderID uuid.UUID) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	if o.Status != enum.OrderStatusConfirmed {
		return nil, ErrOrderNotReady
	}
	o.Status = enum.OrderStatusPaid
	return o, nil
}

// CancelOrder moves OPEN → CANCELLED and restocks the active items.
func (s *Store) CancelOrder(orderID uuid.UUID) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	if o.Status != enum.OrderStatusOpen {
		return nil, ErrOrderNotOpen
	}
	for i := range o.Items {
		if o.Items[i].Status == enum.OrderItemStatusCancelled {
			continue
		}
		o.Items[i].Status = enum.OrderItemStatusCancelled
		if inv := s.inventories[o.Items[i].ProductID]; inv != nil {
			inv.AvailableQuantity += o.Items[i].Quantity
		}
	}
	o.Status = enum.OrderStatusCancelled
	o.CancelledAt = time.Now()
	return o, nil
}

// ── Inventory ──

// StockIn raises both total and available quantity.
func (s *Store) StockIn(productID uuid.UUID, quantity int) (*Inventory, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	inv := s.inventories[productID]
	if inv == nil {
		inv = &Inventory{ID: uuid.New(), ProductID: productID}
		s.inventories[productID] = inv
	}
	inv.TotalQuantity += quantity
	inv.AvailableQuantity += quantity
	return inv, nil
}

// StockOut lowers available quantity only; total records all stock ever
// received, so damage and loss never shrink it.
func (s *Store) StockOut(productID uuid.UUID, quantity int) (*Inventory, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	inv := s.inventories[productID]
	if inv == nil {
		return nil, ErrNotFound
	}
	if inv.AvailableQuantity < quantity {
		return nil, ErrNotEnoughStock
	}
	inv.AvailableQuantity -= quantity
	return inv, nil
}

// Inventories lists every inventory record, including rows whose product
// has since been deleted.
func (s *Store) Inventories() []*Inventory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Inventory, 0, len(s.inventories))
	for _, inv := range s.inventories {
		out = append(out, inv)
	}
	return out
}

// ── Users ──

// CreateUser adds a staff account with a unique email.
func (s *Store) CreateUser(u *User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicateEmail
		}
	}
	u.ID = uuid.New()
	u.HashedPassword = hash
	if u.Status == "" {
		u.Status = enum.UserStatusActive
	}
	s.users[u.ID] = u
	return nil
}

// UserByEmail looks a user up for login.
func (s *Store) UserByEmail(email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

// User returns one user by id.
func (s *Store) User(id uuid.UUID) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

// SetUserStatus bans or re-activates an account.
func (s *Store) SetUserStatus(id uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Status = status
	return nil
}

// ChangePassword verifies the old password before setting the new one.
func (s *Store) ChangePassword(id uuid.UUID, oldPassword, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword(u.HashedPassword, []byte(oldPassword)); err != nil {
		return ErrWrongOldPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.HashedPassword = hash
	return nil
}
