package orders

import (
	"net/http"
	"strings"
	"testing"

	"greencart/models"
)

func TestAmountWithSurcharge(t *testing.T) {
	cases := []struct {
		subtotal float64
		want     float64
	}{
		{200, 204},   // 2 x 100 plus 2%
		{0, 0},
		{100, 102},
		{50, 51},
		{99.5, 101},  // 101.49 floored
		{1, 1},       // 1.02 floored
	}
	for _, c := range cases {
		if got := AmountWithSurcharge(c.subtotal); got != c.want {
			t.Errorf("AmountWithSurcharge(%v) = %v, want %v", c.subtotal, got, c.want)
		}
	}
}

func TestCanAdvance(t *testing.T) {
	allowed := map[[2]string]bool{
		{models.StatusPlaced, models.StatusProcessing}:    true,
		{models.StatusProcessing, models.StatusDelivered}: true,
	}

	statuses := []string{
		models.StatusPlaced,
		models.StatusProcessing,
		models.StatusDelivered,
		models.StatusCancelled,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]string{from, to}]
			if got := CanAdvance(from, to); got != want {
				t.Errorf("CanAdvance(%q, %q) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestCanAdvanceRejectsSkip(t *testing.T) {
	if CanAdvance(models.StatusPlaced, models.StatusDelivered) {
		t.Error("order must not jump straight from placed to delivered")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(models.StatusPlaced) || IsTerminal(models.StatusProcessing) {
		t.Error("placed and processing are not terminal")
	}
	if !IsTerminal(models.StatusDelivered) || !IsTerminal(models.StatusCancelled) {
		t.Error("delivered and cancelled are terminal")
	}
}

func TestCancelCheck(t *testing.T) {
	cases := []struct {
		name     string
		owner    string
		status   string
		userID   string
		wantCode int
		wantMsg  string
	}{
		{"owner cancels placed order", "u1", models.StatusPlaced, "u1", 0, ""},
		{"owner cancels processing order", "u1", models.StatusProcessing, "u1", 0, ""},
		{"other user is forbidden", "u1", models.StatusPlaced, "u2", http.StatusForbidden, "You can only cancel your own orders"},
		{"delivered order cannot be cancelled", "u1", models.StatusDelivered, "u1", http.StatusBadRequest, "Order cannot be cancelled"},
		{"cancelled order stays cancelled", "u1", models.StatusCancelled, "u1", http.StatusBadRequest, "Order cannot be cancelled"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			order := models.Order{UserID: c.owner, Status: c.status}
			code, msg := CancelCheck(order, c.userID)
			if code != c.wantCode {
				t.Errorf("code = %d, want %d", code, c.wantCode)
			}
			if !strings.HasPrefix(msg, c.wantMsg) {
				t.Errorf("msg = %q, want prefix %q", msg, c.wantMsg)
			}
		})
	}
}

func TestCancelCheckOwnershipBeforeStatus(t *testing.T) {
	// a foreign user gets 403 even when the order is terminal
	order := models.Order{UserID: "u1", Status: models.StatusDelivered}
	code, _ := CancelCheck(order, "u2")
	if code != http.StatusForbidden {
		t.Errorf("code = %d, want %d", code, http.StatusForbidden)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		models.StatusPlaced, models.StatusProcessing,
		models.StatusDelivered, models.StatusCancelled,
	} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("shipped") || ValidStatus("") {
		t.Error("unknown statuses must be rejected")
	}
}
