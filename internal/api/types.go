package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LocalTime accepts the backend's zone-less yyyy-MM-ddTHH:mm:ss timestamps
// as well as RFC 3339. Zero value means "not set".
type LocalTime struct {
	time.Time
}

const localTimeLayout = "2006-01-02T15:04:05"

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339, localTimeLayout, "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(localTimeLayout))
}

// parseID is tolerant of missing or malformed ids; screens handle uuid.Nil
// as "unknown" rather than failing the whole decode.
func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ── Catalog ──

type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Product struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	ImageURL   string          `json:"imageUrl,omitempty"`
	CategoryID uuid.UUID       `json:"categoryId"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID         string          `json:"id"`
		ProductID  string          `json:"productId"`
		Name       string          `json:"name"`
		Price      decimal.Decimal `json:"price"`
		ImageURL   string          `json:"imageUrl"`
		CategoryID string          `json:"categoryId"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.ID = parseID(firstNonEmpty(aux.ID, aux.ProductID))
	p.Name = aux.Name
	p.Price = aux.Price
	p.ImageURL = strings.TrimSpace(aux.ImageURL)
	p.CategoryID = parseID(aux.CategoryID)
	return nil
}

// ── Orders ──

type OrderItem struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Note        string          `json:"note,omitempty"`
	Status      string          `json:"status,omitempty"`
}

func (it *OrderItem) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID          string          `json:"id"`
		OrderItemID string          `json:"orderItemId"`
		ProductID   string          `json:"productId"`
		ProductName string          `json:"productName"`
		Quantity    int             `json:"quantity"`
		UnitPrice   decimal.Decimal `json:"unitPrice"`
		Price       decimal.Decimal `json:"price"`
		Note        string          `json:"note"`
		Notes       string          `json:"notes"`
		Status      string          `json:"status"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	it.ID = parseID(firstNonEmpty(aux.ID, aux.OrderItemID))
	it.ProductID = parseID(aux.ProductID)
	it.ProductName = aux.ProductName
	it.Quantity = aux.Quantity
	it.UnitPrice = aux.UnitPrice
	if it.UnitPrice.IsZero() && !aux.Price.IsZero() {
		it.UnitPrice = aux.Price
	}
	it.Note = firstNonEmpty(aux.Notes, aux.Note)
	it.Status = strings.ToUpper(aux.Status)
	return nil
}

// Total is quantity x unit price snapshot.
func (it OrderItem) Total() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

type Order struct {
	ID             uuid.UUID       `json:"orderId"`
	TableID        uuid.UUID       `json:"tableId"`
	Status         string          `json:"status"`
	CurrentBatchNo int             `json:"currentBatchNo,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	TotalQuantity  int             `json:"totalQuantity"`
	CreatedAt      LocalTime       `json:"createdAt"`
	ConfirmedAt    LocalTime       `json:"confirmedAt"`
	CancelledAt    LocalTime       `json:"cancelledAt"`
	Items          []OrderItem     `json:"items,omitempty"`
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var aux struct {
		OrderID        string          `json:"orderId"`
		ID             string          `json:"id"`
		TableID        string          `json:"tableId"`
		Status         string          `json:"status"`
		CurrentBatchNo int             `json:"currentBatchNo"`
		TotalAmount    decimal.Decimal `json:"totalAmount"`
		TotalQuantity  int             `json:"totalQuantity"`
		CreatedAt      LocalTime       `json:"createdAt"`
		ConfirmedAt    LocalTime       `json:"confirmedAt"`
		CancelledAt    LocalTime       `json:"cancelledAt"`
		Items          []OrderItem     `json:"items"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	o.ID = parseID(firstNonEmpty(aux.OrderID, aux.ID))
	o.TableID = parseID(aux.TableID)
	o.Status = strings.ToUpper(aux.Status)
	o.CurrentBatchNo = aux.CurrentBatchNo
	o.TotalAmount = aux.TotalAmount
	o.TotalQuantity = aux.TotalQuantity
	o.CreatedAt = aux.CreatedAt
	o.ConfirmedAt = aux.ConfirmedAt
	o.CancelledAt = aux.CancelledAt
	o.Items = aux.Items
	return nil
}

// ActiveItems returns the order's non-cancelled items.
func (o *Order) ActiveItems() []OrderItem {
	var items []OrderItem
	for _, it := range o.Items {
		if it.Status != "CANCELLED" {
			items = append(items, it)
		}
	}
	return items
}

// ── Tables ──

type Table struct {
	ID       uuid.UUID `json:"id"`
	Code     string    `json:"tableCode"`
	Number   string    `json:"number,omitempty"`
	Status   string    `json:"status"`
	Capacity int       `json:"capacity"`
}

func (t *Table) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID       string          `json:"id"`
		TableID  string          `json:"tableId"`
		Code     string          `json:"tableCode"`
		Number   json.RawMessage `json:"number"`
		Name     string          `json:"name"`
		Status   string          `json:"status"`
		Capacity json.RawMessage `json:"capacity"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.ID = parseID(firstNonEmpty(aux.ID, aux.TableID))
	t.Number = rawToString(aux.Number)
	t.Code = firstNonEmpty(aux.Code, t.Number, aux.Name)
	t.Status = strings.ToUpper(aux.Status)
	if t.Status == "" {
		t.Status = "AVAILABLE"
	}
	t.Capacity = rawToInt(aux.Capacity)
	return nil
}

// Label is the display name for a table: its code, or "Bàn <number>", or
// the raw id as a last resort.
func (t Table) Label() string {
	if t.Code != "" {
		return t.Code
	}
	if t.Number != "" {
		return "Bàn " + t.Number
	}
	return t.ID.String()
}

// rawToString accepts values that arrive either as strings or numbers.
func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func rawToInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return parsed
		}
	}
	return 0
}

// ── Users ──

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	FullName  string    `json:"fullName"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Username  string    `json:"username,omitempty"`
	RoleCode  string    `json:"roleCode"`
	Status    string    `json:"status"`
}

// ── Inventory ──

type Inventory struct {
	ID                uuid.UUID `json:"id"`
	ProductID         uuid.UUID `json:"productId"`
	TotalQuantity     int       `json:"totalQuantity"`
	AvailableQuantity int       `json:"availableQuantity"`
}
