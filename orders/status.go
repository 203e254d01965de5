package orders

import (
	"fmt"
	"net/http"

	"greencart/models"
)

// nextStatus maps each order status to the single forward step a seller may
// take. Skipping a step is rejected; cancellation goes through CancelOrder.
var nextStatus = map[string]string{
	models.StatusPlaced:     models.StatusProcessing,
	models.StatusProcessing: models.StatusDelivered,
}

// CanAdvance reports whether a seller may move an order from one status to
// another.
func CanAdvance(from, to string) bool {
	return nextStatus[from] == to
}

// IsTerminal reports whether a status admits no further transition.
func IsTerminal(status string) bool {
	return status == models.StatusDelivered || status == models.StatusCancelled
}

// CancelCheck decides whether userID may cancel order. It returns a zero
// status code when cancellation is allowed, otherwise the HTTP status and
// message to reject with. Only the order's owner may cancel, and only while
// the order is still in a non-terminal state.
func CancelCheck(order models.Order, userID string) (int, string) {
	if order.UserID != userID {
		return http.StatusForbidden, "You can only cancel your own orders"
	}
	if IsTerminal(order.Status) {
		return http.StatusBadRequest, fmt.Sprintf("Order cannot be cancelled. Current status: %s", order.Status)
	}
	return 0, ""
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case models.StatusPlaced, models.StatusProcessing, models.StatusDelivered, models.StatusCancelled:
		return true
	}
	return false
}
