package pos

import "strings"

// Fixed user-facing rewrites for the two stock-related backend errors.
const (
	MsgOutOfStock        = "Món đã hết kho"
	MsgInsufficientStock = "Không đủ số lượng trong kho"
)

// NormalizeErrorMessage rewrites known stock-related backend error strings
// (Vietnamese and English variants, with and without diacritics) to fixed
// user-facing messages. Anything unrecognized passes through unchanged.
func NormalizeErrorMessage(raw string) string {
	msg := strings.ToLower(raw)

	outOfStock := strings.Contains(msg, "out of stock") ||
		strings.Contains(msg, "sold out") ||
		strings.Contains(msg, "hết kho") ||
		strings.Contains(msg, "het kho") ||
		strings.Contains(msg, "hết hàng") ||
		strings.Contains(msg, "het hang")
	if outOfStock {
		return MsgOutOfStock
	}

	insufficient := (strings.Contains(msg, "not enough") && strings.Contains(msg, "stock")) ||
		strings.Contains(msg, "insufficient") ||
		strings.Contains(msg, "không đủ") ||
		strings.Contains(msg, "khong du")
	if insufficient {
		return MsgInsufficientStock
	}

	return raw
}
