package mockpos

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// The real backend grew organically and answers each resource with a
// different envelope shape. The mock reproduces that on purpose so the
// console's decoding stays honest: products use {items}, tables use
// {content}, categories nest under {data:{items}}, inventory is a bare
// array, and order mutations answer {succeed,message,data}.

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeItems(w http.ResponseWriter, items interface{}, total int) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":      items,
		"totalItems": total,
	})
}

func writeContent(w http.ResponseWriter, content interface{}, total int) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"content":    content,
		"totalItems": total,
	})
}

func writeData(w http.ResponseWriter, status int, v interface{}) {
	writeJSON(w, status, map[string]interface{}{"data": v})
}

func writeSucceed(w http.ResponseWriter, message string, v interface{}) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"succeed": true,
		"message": message,
		"data":    v,
	})
}

func writeRejected(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"succeed": false,
		"message": message,
	})
}

// ── DTOs ──

type categoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func categoryJSON(c *Category) categoryDTO {
	return categoryDTO{ID: c.ID.String(), Name: c.Name}
}

type productDTO struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	ImageURL   string          `json:"imageUrl,omitempty"`
	CategoryID string          `json:"categoryId"`
}

func productJSON(p *Product) productDTO {
	return productDTO{
		ID:         p.ID.String(),
		Name:       p.Name,
		Price:      p.Price,
		ImageURL:   p.ImageURL,
		CategoryID: p.CategoryID.String(),
	}
}

type tableDTO struct {
	ID       string `json:"id"`
	Code     string `json:"tableCode"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
}

func tableJSON(t *Table, status string) tableDTO {
	return tableDTO{ID: t.ID.String(), Code: t.Code, Capacity: t.Capacity, Status: status}
}

type userDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Username  string `json:"username"`
	RoleCode  string `json:"roleCode"`
	Status    string `json:"status"`
}

func userJSON(u *User) userDTO {
	return userDTO{
		ID:        u.ID.String(),
		Email:     u.Email,
		Phone:     u.Phone,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName,
		Username:  u.Username,
		RoleCode:  u.RoleCode,
		Status:    u.Status,
	}
}

type inventoryDTO struct {
	ID                string `json:"id"`
	ProductID         string `json:"productId"`
	TotalQuantity     int    `json:"totalQuantity"`
	AvailableQuantity int    `json:"availableQuantity"`
}

func inventoryJSON(inv *Inventory) inventoryDTO {
	return inventoryDTO{
		ID:                inv.ID.String(),
		ProductID:         inv.ProductID.String(),
		TotalQuantity:     inv.TotalQuantity,
		AvailableQuantity: inv.AvailableQuantity,
	}
}

type orderItemDTO struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Note        string          `json:"note,omitempty"`
	Status      string          `json:"status"`
}

type orderDTO struct {
	OrderID       string          `json:"orderId"`
	TableID       string          `json:"tableId"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalQuantity int             `json:"totalQuantity"`
	CreatedAt     string          `json:"createdAt"`
	ConfirmedAt   string          `json:"confirmedAt,omitempty"`
	CancelledAt   string          `json:"cancelledAt,omitempty"`
	Items         []orderItemDTO  `json:"items"`
}

func orderJSON(o *Order) orderDTO {
	dto := orderDTO{
		OrderID:       o.ID.String(),
		TableID:       o.TableID.String(),
		Status:        o.Status,
		TotalAmount:   o.TotalAmount(),
		TotalQuantity: o.TotalQuantity(),
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		Items:         make([]orderItemDTO, 0, len(o.Items)),
	}
	if !o.ConfirmedAt.IsZero() {
		dto.ConfirmedAt = o.ConfirmedAt.Format(time.RFC3339)
	}
	if !o.CancelledAt.IsZero() {
		dto.CancelledAt = o.CancelledAt.Format(time.RFC3339)
	}
	for _, it := range o.Items {
		dto.Items = append(dto.Items, orderItemDTO{
			ID:          it.ID.String(),
			ProductID:   it.ProductID.String(),
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Note:        it.Note,
			Status:      it.Status,
		})
	}
	return dto
}
