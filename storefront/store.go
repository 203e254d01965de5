package storefront

import (
	"context"
	"errors"
	"strings"
	"sync"

	"greencart/models"
)

// Checkout preconditions. All three are recoverable: the caller fixes the
// selection and retries.
var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNoAddress       = errors.New("no delivery address selected")
	ErrNoPaymentMethod = errors.New("no payment method selected")
)

// CartLine is one cart entry: a product snapshot and a quantity.
type CartLine struct {
	Product  models.Product
	Quantity int
}

// Store holds the per-session storefront state: the fetched catalog, the
// cart, and the checkout selections. It lives in memory only and is rebuilt
// from scratch each session; nothing here is persisted.
type Store struct {
	client *Client

	mu              sync.Mutex
	products        []models.Product
	cart            map[string]*CartLine
	selectedAddress *models.Address
	paymentMethod   string
}

func NewStore(client *Client) *Store {
	return &Store{
		client: client,
		cart:   make(map[string]*CartLine),
	}
}

// RefreshProducts replaces the cached catalog from the server.
func (s *Store) RefreshProducts(ctx context.Context) error {
	products, err := s.client.FetchProducts(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return nil
}

func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Search filters the cached catalog by case-insensitive substring match
// across name, category, and each description line.
func (s *Store) Search(query string) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]models.Product, len(s.products))
		copy(out, s.products)
		return out
	}

	var matched []models.Product
	for _, p := range s.products {
		if matchesQuery(p, q) {
			matched = append(matched, p)
		}
	}
	return matched
}

func matchesQuery(p models.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	for _, line := range p.Description {
		if strings.Contains(strings.ToLower(line), q) {
			return true
		}
	}
	return false
}

// AddToCart merges the quantity into an existing line, or inserts a new one.
func (s *Store) AddToCart(product models.Product, quantity int) {
	if quantity < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if line, ok := s.cart[product.ProductID]; ok {
		line.Quantity += quantity
		return
	}
	s.cart[product.ProductID] = &CartLine{Product: product, Quantity: quantity}
}

func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cart, productID)
}

// SetQuantity replaces a line's quantity. Quantities below one are ignored.
func (s *Store) SetQuantity(productID string, quantity int) {
	if quantity < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if line, ok := s.cart[productID]; ok {
		line.Quantity = quantity
	}
}

func (s *Store) Quantity(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if line, ok := s.cart[productID]; ok {
		return line.Quantity
	}
	return 0
}

// CartCount returns the total number of units in the cart.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, line := range s.cart {
		total += line.Quantity
	}
	return total
}

// Subtotal sums unit price times quantity over the cart, using the offer
// price when present and lower than list price.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, line := range s.cart {
		total += line.Product.UnitPrice() * float64(line.Quantity)
	}
	return total
}

func (s *Store) SelectAddress(addr models.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedAddress = &addr
}

func (s *Store) SelectPaymentMethod(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentMethod = method
}

// Checkout validates the session state, submits the cart as a COD order, and
// on success clears the cart and selections. Validation failures leave the
// state untouched. Selections are checked before the cart, so a bare session
// is told about the missing address or payment method first.
func (s *Store) Checkout(ctx context.Context) (*models.Order, error) {
	s.mu.Lock()
	if s.selectedAddress == nil {
		s.mu.Unlock()
		return nil, ErrNoAddress
	}
	if s.paymentMethod == "" {
		s.mu.Unlock()
		return nil, ErrNoPaymentMethod
	}
	if len(s.cart) == 0 {
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(s.cart))
	for id, line := range s.cart {
		items = append(items, models.OrderItem{Product: id, Quantity: line.Quantity})
	}
	addressID := s.selectedAddress.AddressID
	s.mu.Unlock()

	order, err := s.client.PlaceOrderCOD(ctx, items, addressID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cart = make(map[string]*CartLine)
	s.selectedAddress = nil
	s.paymentMethod = ""
	s.mu.Unlock()

	return order, nil
}

// Logout ends the server session and clears all local state, cart included.
func (s *Store) Logout(ctx context.Context) error {
	err := s.client.Logout(ctx)
	s.Reset()
	return err
}

// Reset clears all session state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
	s.cart = make(map[string]*CartLine)
	s.selectedAddress = nil
	s.paymentMethod = ""
}
