// Package pos drives the table-ordering workflow: select a table, open or
// reuse its active order, add and cancel items, confirm, pay. The active
// order is re-fetched after every mutation and on a fixed polling interval,
// so changes made by other terminals or the kitchen show up on their own.
package pos

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/restaurant-pos/admin/internal/api"
	"github.com/restaurant-pos/admin/internal/enum"
	"github.com/restaurant-pos/admin/internal/notify"
)

// Guard failures, reported before any network call is made.
var (
	ErrNoTableSelected = errors.New("no table selected")
	ErrOrderExists     = errors.New("table already has an active order")
	ErrNoActiveOrder   = errors.New("no active order")
	ErrOrderNotOpen    = errors.New("order is not open")
	ErrNotConfirmed    = errors.New("order is not confirmed")
	ErrEmptyOrder      = errors.New("order has no items")
	ErrItemCancelled   = errors.New("item is already cancelled")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrNoProduct       = errors.New("no product selected")
	ErrBusy            = errors.New("another action is in flight")
	ErrDeclined        = errors.New("cancelled by user")
)

// OrderAPI is the slice of the gateway client the workflow needs.
// Satisfied by *api.Client; narrow interface for testability.
type OrderAPI interface {
	ActiveOrderByTable(ctx context.Context, tableID string) (*api.Order, error)
	OpenTable(ctx context.Context, tableID string) error
	AddOrderItem(ctx context.Context, orderID string, in api.AddItemInput) error
	CancelOrderItem(ctx context.Context, orderID, itemID string) error
	ConfirmOrder(ctx context.Context, orderID string) error
	CancelOrder(ctx context.Context, orderID string) error
	PayOrder(ctx context.Context, orderID string) error
}

// Workflow is the per-terminal ordering state machine.
type Workflow struct {
	client OrderAPI
	toasts *notify.Center

	// Confirm is asked before destructive actions (cancel item, cancel
	// order). Nil means "always yes", for callers without a UI.
	Confirm func(prompt string) bool

	pollInterval time.Duration

	mu         sync.Mutex
	tableID    string
	order      *api.Order
	submitting bool
	gen        uint64
	inflight   context.CancelFunc
	stopPoll   context.CancelFunc
}

// New creates a Workflow. pollInterval <= 0 disables background polling.
func New(client OrderAPI, toasts *notify.Center, pollInterval time.Duration) *Workflow {
	return &Workflow{client: client, toasts: toasts, pollInterval: pollInterval}
}

// SelectTable switches the workflow to a table, refreshes its active order
// and (re)starts polling. An empty id deselects and stops polling.
func (w *Workflow) SelectTable(ctx context.Context, tableID string) {
	w.mu.Lock()
	if w.stopPoll != nil {
		w.stopPoll()
		w.stopPoll = nil
	}
	w.tableID = tableID
	w.order = nil
	w.mu.Unlock()

	if tableID == "" {
		return
	}
	w.Refresh(ctx)
	w.startPolling(ctx)
}

// Close tears the workflow down, stopping any polling goroutine.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopPoll != nil {
		w.stopPoll()
		w.stopPoll = nil
	}
	if w.inflight != nil {
		w.inflight()
		w.inflight = nil
	}
}

// TableID returns the currently selected table, or "".
func (w *Workflow) TableID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tableID
}

// Order returns a snapshot of the active order, or nil.
func (w *Workflow) Order() *api.Order {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.order == nil {
		return nil
	}
	snapshot := *w.order
	return &snapshot
}

// Status returns the active order's status, or "" when there is none.
func (w *Workflow) Status() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.order == nil {
		return ""
	}
	return w.order.Status
}

// Refresh re-fetches the active order for the selected table. A newer
// refresh supersedes an older in-flight one: the old request is cancelled
// and its result, should it still arrive, is discarded.
func (w *Workflow) Refresh(ctx context.Context) {
	w.mu.Lock()
	tableID := w.tableID
	if tableID == "" {
		w.mu.Unlock()
		return
	}
	if w.inflight != nil {
		w.inflight()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	w.inflight = cancel
	w.gen++
	gen := w.gen
	w.mu.Unlock()

	order, err := w.client.ActiveOrderByTable(reqCtx, tableID)
	cancel()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen || w.tableID != tableID {
		return // superseded or table changed
	}
	if err != nil {
		// Treated the same as "no active order"; the next poll tick or
		// user action will reconcile.
		w.order = nil
		return
	}
	w.order = order
}

// ── Guards ──

// CanOpenTable reports whether the open-table action should be enabled.
func (w *Workflow) CanOpenTable() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tableID != "" && w.order == nil && !w.submitting
}

// CanAddItem reports whether items may currently be added.
func (w *Workflow) CanAddItem() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.order != nil && w.order.Status == enum.OrderStatusOpen && !w.submitting
}

// CanCancelItem reports whether the given item still shows a cancel control.
func (w *Workflow) CanCancelItem(item api.OrderItem) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.order != nil &&
		w.order.Status == enum.OrderStatusOpen &&
		item.Status != enum.OrderItemStatusCancelled
}

// CanConfirm reports whether the order may be confirmed.
func (w *Workflow) CanConfirm() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.order != nil &&
		w.order.Status == enum.OrderStatusOpen &&
		len(w.order.ActiveItems()) > 0 &&
		!w.submitting
}

// CanPay reports whether the payment action should be enabled.
func (w *Workflow) CanPay() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.order != nil && w.order.Status == enum.OrderStatusConfirmed && !w.submitting
}

// ── Actions ──

// OpenTable opens a new order on the selected table. When another terminal
// grabbed the table first the backend reports a conflict; that surfaces as
// a toast and the active order is re-fetched to reconcile.
func (w *Workflow) OpenTable(ctx context.Context) error {
	w.mu.Lock()
	if w.tableID == "" {
		w.mu.Unlock()
		return ErrNoTableSelected
	}
	if w.order != nil {
		w.mu.Unlock()
		return ErrOrderExists
	}
	if !w.beginSubmitLocked() {
		w.mu.Unlock()
		return ErrBusy
	}
	tableID := w.tableID
	w.mu.Unlock()
	defer w.endSubmit()

	if err := w.client.OpenTable(ctx, tableID); err != nil {
		w.toastError(api.ErrorMessage(err, "Mở bàn thất bại"))
		w.Refresh(ctx)
		return err
	}
	w.Refresh(ctx)
	w.toastSuccess("Mở bàn thành công")
	return nil
}

// AddItem validates and adds one line item. quantityInput mirrors the raw
// form field: blank defaults to 1; anything non-positive is rejected here,
// before any network call.
func (w *Workflow) AddItem(ctx context.Context, productID, quantityInput, notes string) error {
	quantity, err := ParseQuantity(quantityInput)
	if err != nil {
		return err
	}
	if productID == "" {
		return ErrNoProduct
	}

	w.mu.Lock()
	if w.order == nil {
		w.mu.Unlock()
		return ErrNoActiveOrder
	}
	if w.order.Status != enum.OrderStatusOpen {
		w.mu.Unlock()
		return ErrOrderNotOpen
	}
	if !w.beginSubmitLocked() {
		w.mu.Unlock()
		return ErrBusy
	}
	orderID := w.order.ID.String()
	w.mu.Unlock()
	defer w.endSubmit()

	err = w.client.AddOrderItem(ctx, orderID, api.AddItemInput{
		ProductID: productID,
		Quantity:  quantity,
		Notes:     notes,
	})
	if err != nil {
		w.toastError(NormalizeErrorMessage(api.ErrorMessage(err, "Thêm món thất bại")))
		return err
	}
	w.Refresh(ctx)
	w.toastSuccess("Đã thêm món")
	return nil
}

// CancelItem cancels one line item after user confirmation.
func (w *Workflow) CancelItem(ctx context.Context, item api.OrderItem) error {
	w.mu.Lock()
	if w.order == nil {
		w.mu.Unlock()
		return ErrNoActiveOrder
	}
	if w.order.Status != enum.OrderStatusOpen {
		w.mu.Unlock()
		return ErrOrderNotOpen
	}
	if item.Status == enum.OrderItemStatusCancelled {
		w.mu.Unlock()
		return ErrItemCancelled
	}
	orderID := w.order.ID.String()
	w.mu.Unlock()

	if !w.confirm("Bạn có chắc muốn hủy món này?") {
		return ErrDeclined
	}

	if !w.beginSubmit() {
		return ErrBusy
	}
	defer w.endSubmit()

	if err := w.client.CancelOrderItem(ctx, orderID, item.ID.String()); err != nil {
		w.toastError(api.ErrorMessage(err, "Hủy món thất bại"))
		return err
	}
	w.Refresh(ctx)
	w.toastSuccess("Đã hủy món")
	return nil
}

// ConfirmOrder moves the order to CONFIRMED. Rejected locally when no
// non-cancelled item exists, regardless of what the backend would say.
func (w *Workflow) ConfirmOrder(ctx context.Context) error {
	w.mu.Lock()
	if w.order == nil {
		w.mu.Unlock()
		return ErrNoActiveOrder
	}
	if w.order.Status != enum.OrderStatusOpen {
		w.mu.Unlock()
		return ErrOrderNotOpen
	}
	if len(w.order.ActiveItems()) == 0 {
		w.mu.Unlock()
		w.toastError("Vui lòng thêm món trước khi xác nhận")
		return ErrEmptyOrder
	}
	if !w.beginSubmitLocked() {
		w.mu.Unlock()
		return ErrBusy
	}
	orderID := w.order.ID.String()
	w.mu.Unlock()
	defer w.endSubmit()

	if err := w.client.ConfirmOrder(ctx, orderID); err != nil {
		w.toastError(api.ErrorMessage(err, "Xác nhận thất bại"))
		return err
	}
	w.Refresh(ctx)
	w.toastSuccess("Đã xác nhận đơn")
	return nil
}

// Pay settles a confirmed order.
func (w *Workflow) Pay(ctx context.Context) error {
	w.mu.Lock()
	if w.order == nil {
		w.mu.Unlock()
		return ErrNoActiveOrder
	}
	if w.order.Status != enum.OrderStatusConfirmed {
		w.mu.Unlock()
		return ErrNotConfirmed
	}
	if !w.beginSubmitLocked() {
		w.mu.Unlock()
		return ErrBusy
	}
	orderID := w.order.ID.String()
	w.mu.Unlock()
	defer w.endSubmit()

	if err := w.client.PayOrder(ctx, orderID); err != nil {
		w.toastError(api.ErrorMessage(err, "Thanh toán thất bại"))
		return err
	}
	w.Refresh(ctx)
	w.toastSuccess("Thanh toán thành công")
	return nil
}

// CancelOrder abandons an open order after user confirmation.
func (w *Workflow) CancelOrder(ctx context.Context) error {
	w.mu.Lock()
	if w.order == nil {
		w.mu.Unlock()
		return ErrNoActiveOrder
	}
	if w.order.Status != enum.OrderStatusOpen {
		w.mu.Unlock()
		return ErrOrderNotOpen
	}
	orderID := w.order.ID.String()
	w.mu.Unlock()

	if !w.confirm("Bạn có chắc muốn hủy đơn này?") {
		return ErrDeclined
	}

	if !w.beginSubmit() {
		return ErrBusy
	}
	defer w.endSubmit()

	if err := w.client.CancelOrder(ctx, orderID); err != nil {
		w.toastError(api.ErrorMessage(err, "Hủy đơn thất bại"))
		return err
	}
	w.Refresh(ctx)
	w.toastSuccess("Đã hủy đơn")
	return nil
}

// ParseQuantity turns a raw quantity field into a validated quantity.
// Blank defaults to 1; zero, negative, or unparseable input is rejected.
func ParseQuantity(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 1 {
		return 0, ErrInvalidQuantity
	}
	return n, nil
}

// ── internals ──

func (w *Workflow) beginSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.beginSubmitLocked()
}

func (w *Workflow) beginSubmitLocked() bool {
	if w.submitting {
		return false
	}
	w.submitting = true
	return true
}

func (w *Workflow) endSubmit() {
	w.mu.Lock()
	w.submitting = false
	w.mu.Unlock()
}

func (w *Workflow) confirm(prompt string) bool {
	if w.Confirm == nil {
		return true
	}
	return w.Confirm(prompt)
}

func (w *Workflow) toastError(text string) {
	if w.toasts != nil {
		w.toasts.Error(text)
	}
}

func (w *Workflow) toastSuccess(text string) {
	if w.toasts != nil {
		w.toasts.Success(text)
	}
}
