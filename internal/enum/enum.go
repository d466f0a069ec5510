package enum

// ── Order lifecycle ──

const (
	OrderStatusOpen      = "OPEN"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPaid      = "PAID"
	OrderStatusCancelled = "CANCELLED"
)

// orderTransitions defines valid order status transitions.
// Key is current status, value is the set of statuses it can move to.
var orderTransitions = map[string][]string{
	OrderStatusOpen:      {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPaid},
}

// CanTransitionOrder reports whether an order may move from current to next.
func CanTransitionOrder(current, next string) bool {
	for _, s := range orderTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// IsTerminalOrderStatus reports whether the status admits no further transitions.
func IsTerminalOrderStatus(status string) bool {
	return status == OrderStatusPaid || status == OrderStatusCancelled
}

const (
	OrderItemStatusActive    = "ACTIVE"
	OrderItemStatusCancelled = "CANCELLED"
)

// ── Tables ──

const (
	TableStatusAvailable = "AVAILABLE"
	TableStatusOccupied  = "OCCUPIED"
	TableStatusReserved  = "RESERVED"
)

// ── Users ──

const (
	UserStatusActive = "ACTIVE"
	UserStatusBanned = "BANNED"
)

const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
	RoleCashier = "CASHIER"
	RoleChef    = "CHEF"
)

// Roles lists every known role code, in display order.
var Roles = []string{RoleAdmin, RoleManager, RoleStaff, RoleCashier, RoleChef}

func IsValidRole(code string) bool {
	for _, r := range Roles {
		if r == code {
			return true
		}
	}
	return false
}

// ── Inventory buckets (client-derived, not stored) ──

const (
	StockBucketIn  = "in"
	StockBucketLow = "low"
	StockBucketOut = "out"
)

// StockBucket classifies an available quantity against the low-stock
// threshold. Buckets are exhaustive and mutually exclusive for all
// non-negative quantities.
func StockBucket(available, lowThreshold int) string {
	switch {
	case available <= 0:
		return StockBucketOut
	case available <= lowThreshold:
		return StockBucketLow
	default:
		return StockBucketIn
	}
}
