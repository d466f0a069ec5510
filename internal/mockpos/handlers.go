package mockpos

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/restaurant-pos/admin/internal/enum"
)

func parsePathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// errStatus maps store errors to HTTP status codes.
func errStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTableOccupied):
		return http.StatusConflict
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, ErrWrongOldPassword):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

// ── Auth ──

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := s.store.UserByEmail(req.Email)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if u.Status == enum.UserStatusBanned {
		writeError(w, http.StatusUnauthorized, "account is banned")
		return
	}
	if err := bcrypt.CompareHashAndPassword(u.HashedPassword, []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := GenerateToken(s.secret, u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	writeData(w, http.StatusOK, map[string]interface{}{
		"accessToken": token,
		"user":        userJSON(u),
	})
}

// ── Catalog ──

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats := s.store.Categories()
	out := make([]categoryDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryJSON(c))
	}
	writeData(w, http.StatusOK, map[string]interface{}{"items": out})
}

func (s *Server) handleCategoryProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	products, err := s.store.ProductsByCategory(id)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	out := make([]productDTO, 0, len(products))
	for _, p := range products {
		out = append(out, productJSON(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	products := s.store.Products()
	out := make([]productDTO, 0, len(products))
	for _, p := range products {
		out = append(out, productJSON(p))
	}
	writeItems(w, out, len(out))
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	p, err := s.store.Product(id)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, productJSON(p))
}

type productRequest struct {
	Name       string          `json:"name"`
	CategoryID string          `json:"categoryId"`
	Price      decimal.Decimal `json:"price"`
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeBody(w, r, &req) {
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	p := &Product{Name: req.Name, Price: req.Price, CategoryID: categoryID}
	if err := s.store.CreateProduct(p); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, productJSON(p))
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	var req productRequest
	if !decodeBody(w, r, &req) {
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	if err := s.store.UpdateProduct(id, &Product{Name: req.Name, Price: req.Price, CategoryID: categoryID}); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	p, _ := s.store.Product(id)
	writeJSON(w, http.StatusOK, productJSON(p))
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteProduct(id); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAttachImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		ImageURL string `json:"imageUrl"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.store.SetProductImage(id, req.ImageURL); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.SetProductImage(id, ""); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	file.Close()
	url := "/static/uploads/" + uuid.NewString() + filepath.Ext(header.Filename)
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// ── Orders ──

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var from, to time.Time
	if v := q.Get("fromDate"); v != "" {
		from, _ = time.Parse("2006-01-02", v)
	}
	if v := q.Get("toDate"); v != "" {
		to, _ = time.Parse("2006-01-02", v)
	}
	orders := s.store.Orders(q.Get("status"), from, to)
	out := make([]orderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderJSON(o))
	}
	writeItems(w, out, len(out))
}

func (s *Server) handleOrderDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	o, err := s.store.Order(id)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeData(w, http.StatusOK, orderJSON(o))
}

func (s *Server) handleActiveOrder(w http.ResponseWriter, r *http.Request) {
	tableID, ok := parsePathID(w, r, "tableID")
	if !ok {
		return
	}
	o, err := s.store.ActiveOrder(tableID)
	if err != nil {
		writeError(w, http.StatusNotFound, "no active order for table")
		return
	}
	writeData(w, http.StatusOK, orderJSON(o))
}

func (s *Server) handleOpenTable(w http.ResponseWriter, r *http.Request) {
	tableID, ok := parsePathID(w, r, "tableID")
	if !ok {
		return
	}
	o, err := s.store.OpenTable(tableID)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	s.hub.BroadcastOrderUpdated(o.ID.String(), o.TableID.String(), o.Status)
	writeSucceed(w, "order opened", orderJSON(o))
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
		Notes     string `json:"notes"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	o, err := s.store.AddItem(orderID, productID, req.Quantity, req.Notes)
	if err != nil {
		// Stock rejections come back as a 200 envelope, like the real
		// backend does.
		if errors.Is(err, ErrOutOfStock) || errors.Is(err, ErrNotEnoughStock) {
			writeRejected(w, err.Error())
			return
		}
		writeError(w, errStatus(err), err.Error())
		return
	}
	s.hub.BroadcastOrderUpdated(o.ID.String(), o.TableID.String(), o.Status)
	writeSucceed(w, "item added", orderJSON(o))
}

func (s *Server) handleCancelItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := parsePathID(w, r, "itemID")
	if !ok {
		return
	}
	o, err := s.store.CancelItem(orderID, itemID)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	s.hub.BroadcastOrderUpdated(o.ID.String(), o.TableID.String(), o.Status)
	writeSucceed(w, "item cancelled", orderJSON(o))
}

func (s *Server) handleConfirmOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	o, err := s.store.ConfirmOrder(orderID)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	s.hub.BroadcastOrderUpdated(o.ID.String(), o.TableID.String(), o.Status)
	writeSucceed(w, "order confirmed", orderJSON(o))
}

func (s *Server) handlePayOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	o, err := s.store.PayOrder(orderID)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	s.hub.BroadcastOrderUpdated(o.ID.String(), o.TableID.String(), o.Status)
	writeSucceed(w, "order paid", orderJSON(o))
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	o, err := s.store.CancelOrder(orderID)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	s.hub.BroadcastOrderUpdated(o.ID.String(), o.TableID.String(), o.Status)
	writeSucceed(w, "order cancelled", orderJSON(o))
}

// ── Tables ──

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	tables := s.store.Tables()
	out := make([]tableDTO, 0, len(tables))
	for _, t := range tables {
		out = append(out, tableJSON(t, s.store.TableStatus(t.ID)))
	}
	writeContent(w, out, len(out))
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	t, err := s.store.Table(id)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tableJSON(t, s.store.TableStatus(t.ID)))
}

type tableRequest struct {
	Code     string `json:"tableCode"`
	Capacity int    `json:"capacity"`
}

func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	var req tableRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t := &Table{Code: req.Code, Capacity: req.Capacity}
	s.store.CreateTable(t)
	writeJSON(w, http.StatusCreated, tableJSON(t, enum.TableStatusAvailable))
}

func (s *Server) handleUpdateTable(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	var req tableRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.store.UpdateTable(id, &Table{Code: req.Code, Capacity: req.Capacity}); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	t, _ := s.store.Table(id)
	writeJSON(w, http.StatusOK, tableJSON(t, s.store.TableStatus(id)))
}

func (s *Server) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteTable(id); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Users ──

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	users := s.store.Users()
	out := make([]userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, userJSON(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		FullName  string `json:"fullName"`
		Username  string `json:"username"`
		Password  string `json:"password"`
		Status    string `json:"status"`
		RoleCode  string `json:"roleCode"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if req.RoleCode != "" && !enum.IsValidRole(req.RoleCode) {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}
	u := &User{
		Email:     req.Email,
		Phone:     req.Phone,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		FullName:  req.FullName,
		Username:  req.Username,
		RoleCode:  req.RoleCode,
		Status:    req.Status,
	}
	if err := s.store.CreateUser(u, req.Password); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, userJSON(u))
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	u, err := s.store.User(claims.UserID)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeData(w, http.StatusOK, userJSON(u))
}

type updateUserRequest struct {
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Username  string `json:"username"`
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	in := &User{
		Phone:     req.Phone,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		FullName:  req.FullName,
		Username:  req.Username,
	}
	if err := s.store.UpdateUser(claims.UserID, in); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	u, _ := s.store.User(claims.UserID)
	writeData(w, http.StatusOK, userJSON(u))
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.store.ChangePassword(claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	u, err := s.store.User(id)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, userJSON(u))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	in := &User{
		Phone:     req.Phone,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		FullName:  req.FullName,
		Username:  req.Username,
	}
	if err := s.store.UpdateUser(id, in); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	u, _ := s.store.User(id)
	writeJSON(w, http.StatusOK, userJSON(u))
}

func (s *Server) handleActivateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.SetUserStatus(id, enum.UserStatusActive); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBanUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.SetUserStatus(id, enum.UserStatusBanned); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Inventory ──

func (s *Server) handleInventories(w http.ResponseWriter, r *http.Request) {
	invs := s.store.Inventories()
	out := make([]inventoryDTO, 0, len(invs))
	for _, inv := range invs {
		out = append(out, inventoryJSON(inv))
	}
	writeJSON(w, http.StatusOK, out)
}

type stockRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) handleStockIn(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	inv, err := s.store.StockIn(productID, req.Quantity)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, inventoryJSON(inv))
}

func (s *Server) handleStockOut(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	inv, err := s.store.StockOut(productID, req.Quantity)
	if err != nil {
		// Keep the English phrasing in the error body; the console
		// rewrites stock wording for the operator.
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, inventoryJSON(inv))
}
