package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"greencart/models"
)

var (
	tomato = models.Product{ProductID: "p1", Name: "Tomato", Category: "Vegetables",
		Description: []string{"Fresh and juicy", "Rich in vitamins"}, Price: 50, OfferPrice: 40, InStock: true}
	bread = models.Product{ProductID: "p2", Name: "Whole Wheat Bread", Category: "Bakery",
		Description: []string{"Baked daily"}, Price: 35, InStock: true}
)

func TestAddToCartMergesQuantity(t *testing.T) {
	s := NewStore(NewClient("http://unused"))

	s.AddToCart(tomato, 2)
	s.AddToCart(tomato, 3)

	if got := s.Quantity("p1"); got != 5 {
		t.Errorf("quantity = %d, want 5", got)
	}
}

func TestSetQuantity(t *testing.T) {
	s := NewStore(NewClient("http://unused"))
	s.AddToCart(tomato, 2)

	s.SetQuantity("p1", 7)
	if got := s.Quantity("p1"); got != 7 {
		t.Errorf("quantity = %d, want 7", got)
	}

	// zero and negative are no-ops
	s.SetQuantity("p1", 0)
	s.SetQuantity("p1", -3)
	if got := s.Quantity("p1"); got != 7 {
		t.Errorf("quantity after no-op updates = %d, want 7", got)
	}

	// unknown product is a no-op too
	s.SetQuantity("p999", 4)
	if got := s.Quantity("p999"); got != 0 {
		t.Errorf("unknown product quantity = %d, want 0", got)
	}
}

func TestRemoveFromCart(t *testing.T) {
	s := NewStore(NewClient("http://unused"))
	s.AddToCart(tomato, 2)
	s.AddToCart(bread, 1)

	s.RemoveFromCart("p1")

	if got := s.Quantity("p1"); got != 0 {
		t.Errorf("removed product quantity = %d, want 0", got)
	}
	if got := s.CartCount(); got != 1 {
		t.Errorf("cart count = %d, want 1", got)
	}
}

func TestSubtotalUsesOfferPrice(t *testing.T) {
	s := NewStore(NewClient("http://unused"))
	s.AddToCart(tomato, 2) // 2 x 40 (offer price)
	s.AddToCart(bread, 1)  // 1 x 35

	if got := s.Subtotal(); got != 115 {
		t.Errorf("subtotal = %v, want 115", got)
	}
}

func TestSearch(t *testing.T) {
	s := NewStore(NewClient("http://unused"))
	s.mu.Lock()
	s.products = []models.Product{tomato, bread}
	s.mu.Unlock()

	cases := []struct {
		query string
		want  int
	}{
		{"tomato", 1},
		{"TOMATO", 1},
		{"bakery", 1},  // category match
		{"vitamins", 1}, // description line match
		{"", 2},
		{"durian", 0},
	}
	for _, c := range cases {
		if got := len(s.Search(c.query)); got != c.want {
			t.Errorf("Search(%q) returned %d products, want %d", c.query, got, c.want)
		}
	}
}

func TestCheckoutValidation(t *testing.T) {
	s := NewStore(NewClient("http://unused"))
	ctx := context.Background()

	// the missing selections are reported before the empty cart
	if _, err := s.Checkout(ctx); !errors.Is(err, ErrNoAddress) {
		t.Errorf("fresh store: err = %v, want ErrNoAddress", err)
	}

	s.SelectAddress(models.Address{AddressID: "a1"})
	if _, err := s.Checkout(ctx); !errors.Is(err, ErrNoPaymentMethod) {
		t.Errorf("no payment method: err = %v, want ErrNoPaymentMethod", err)
	}

	s.SelectPaymentMethod("COD")
	if _, err := s.Checkout(ctx); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("empty cart: err = %v, want ErrEmptyCart", err)
	}

	s.AddToCart(tomato, 1)
	s.SelectPaymentMethod("")
	if _, err := s.Checkout(ctx); !errors.Is(err, ErrNoPaymentMethod) {
		t.Errorf("cleared payment method: err = %v, want ErrNoPaymentMethod", err)
	}

	// validation failures must leave the cart intact
	if got := s.CartCount(); got != 1 {
		t.Errorf("cart count after failed checkout = %d, want 1", got)
	}
}

func TestCheckoutSubmitsAndClears(t *testing.T) {
	var received struct {
		Items   []models.OrderItem `json:"items"`
		Address string             `json:"address"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/order/cod" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode order payload: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "order placed successfully",
			"order": models.Order{
				OrderID: "ord1", Status: models.StatusPlaced,
				Amount: 204, PaymentType: "COD",
			},
		})
	}))
	defer srv.Close()

	s := NewStore(NewClient(srv.URL))
	s.AddToCart(models.Product{ProductID: "p1", Price: 100}, 2)
	s.SelectAddress(models.Address{AddressID: "a1"})
	s.SelectPaymentMethod("COD")

	order, err := s.Checkout(context.Background())
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if order.OrderID != "ord1" {
		t.Errorf("order id = %q, want %q", order.OrderID, "ord1")
	}
	if order.Amount != 204 {
		t.Errorf("order amount = %v, want 204", order.Amount)
	}

	if received.Address != "a1" {
		t.Errorf("submitted address = %q, want %q", received.Address, "a1")
	}
	if len(received.Items) != 1 || received.Items[0].Product != "p1" || received.Items[0].Quantity != 2 {
		t.Errorf("submitted items = %+v, want one line of 2 x p1", received.Items)
	}

	// success clears cart and selections
	if got := s.CartCount(); got != 0 {
		t.Errorf("cart count after checkout = %d, want 0", got)
	}
	if _, err := s.Checkout(context.Background()); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("second checkout err = %v, want ErrEmptyCart", err)
	}
}

func TestCheckoutServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "invalid data"})
	}))
	defer srv.Close()

	s := NewStore(NewClient(srv.URL))
	s.AddToCart(tomato, 1)
	s.SelectAddress(models.Address{AddressID: "a1"})
	s.SelectPaymentMethod("COD")

	if _, err := s.Checkout(context.Background()); err == nil {
		t.Fatal("expected error from rejected checkout")
	}
	// cart survives a server-side rejection
	if got := s.CartCount(); got != 1 {
		t.Errorf("cart count after rejection = %d, want 1", got)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Logged out successfully"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.Token = "tok123"
	s := NewStore(c)
	s.AddToCart(tomato, 2)
	s.SelectAddress(models.Address{AddressID: "a1"})
	s.SelectPaymentMethod("COD")

	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if c.Token != "" {
		t.Errorf("token after logout = %q, want empty", c.Token)
	}
	if got := s.CartCount(); got != 0 {
		t.Errorf("cart count after logout = %d, want 0", got)
	}
}

func TestClientLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "tok123",
			"user":    models.User{UserID: "u1", Email: "alice@example.com"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	user, err := c.Login(context.Background(), "alice@example.com", "Abc123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.UserID != "u1" {
		t.Errorf("user id = %q, want %q", user.UserID, "u1")
	}
	if c.Token != "tok123" {
		t.Errorf("client token = %q, want %q", c.Token, "tok123")
	}
}
