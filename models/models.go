package models

import "time"

type User struct {
	UserID    string    `json:"userId" bson:"userid"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Address is a shipping address owned by exactly one user.
type Address struct {
	AddressID string `json:"addressId" bson:"addressid"`
	UserID    string `json:"userId" bson:"userid"`
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
	Email     string `json:"email" bson:"email"`
	Street    string `json:"street" bson:"street"`
	City      string `json:"city" bson:"city"`
	State     string `json:"state" bson:"state"`
	Zipcode   string `json:"zipcode" bson:"zipcode"`
	Country   string `json:"country" bson:"country"`
	Phone     string `json:"phone" bson:"phone"`
}

type Product struct {
	ProductID   string    `json:"productId" bson:"productid"`
	Name        string    `json:"name" bson:"name"`
	Description []string  `json:"description" bson:"description"`
	Category    string    `json:"category" bson:"category"`
	Price       float64   `json:"price" bson:"price"`
	OfferPrice  float64   `json:"offerPrice" bson:"offerPrice"`
	Image       []string  `json:"image" bson:"image"`
	InStock     bool      `json:"inStock" bson:"inStock"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UnitPrice is the price charged per unit: the offer price when one is set
// below the list price, else the list price.
func (p Product) UnitPrice() float64 {
	if p.OfferPrice > 0 && p.OfferPrice < p.Price {
		return p.OfferPrice
	}
	return p.Price
}

type OrderItem struct {
	Product  string `json:"product" bson:"product"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

// Order statuses. Transitions only move forward one step at a time;
// "cancelled" is reachable from the two non-terminal states only.
const (
	StatusPlaced     = "order placed"
	StatusProcessing = "processing"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

type Order struct {
	OrderID     string      `json:"orderId" bson:"orderid"`
	UserID      string      `json:"userId" bson:"userid"`
	Items       []OrderItem `json:"items" bson:"items"`
	Amount      float64     `json:"amount" bson:"amount"`
	Address     string      `json:"address" bson:"address"`
	Status      string      `json:"status" bson:"status"`
	PaymentType string      `json:"paymentType" bson:"paymentType"`
	IsPaid      bool        `json:"isPaid" bson:"isPaid"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// OrderStats is the per-status aggregate for the seller dashboard.
type OrderStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Delivered  int64 `json:"delivered"`
	Cancelled  int64 `json:"cancelled"`
}
