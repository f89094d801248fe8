package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// DefaultPaymentMethod is stored when the client does not name one
const DefaultPaymentMethod = "Cash on Delivery"

// Valid reports whether s is one of the fixed order statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusDelivered:
		return true
	}
	return false
}

// Order represents a customer order
type Order struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	UserID        uuid.UUID   `db:"user_id" json:"userId"`
	TotalAmount   float64     `db:"total_amount" json:"totalAmount"`
	Address       string      `db:"address" json:"address"`
	Status        OrderStatus `db:"status" json:"status"`
	PaymentMethod string      `db:"payment_method" json:"paymentMethod"`
	CreatedAt     time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updatedAt"`

	// Not stored directly in the database
	Items []OrderItem  `db:"-" json:"items"`
	User  *UserSummary `db:"-" json:"user,omitempty"`
}

// OrderItem is a line copied from the cart. Only the reference and quantity are kept.
type OrderItem struct {
	MenuItemID uuid.UUID `db:"menu_item_id" json:"menuItemId"`
	Quantity   int       `db:"quantity" json:"quantity"`

	// Joined for admin listings, nil when the menu item was deleted
	MenuItem *MenuItem `db:"-" json:"menuItem,omitempty"`
}

// PricedLine is a cart line with the menu item's price at order time
type PricedLine struct {
	MenuItemID uuid.UUID `db:"menu_item_id"`
	Quantity   int       `db:"quantity"`
	Price      float64   `db:"price"`
}

// TotalAmount sums unit price times quantity over lines, rounded to cents
func TotalAmount(lines []PricedLine) float64 {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total.Round(2).InexactFloat64()
}

// PlaceOrderRequest is used for order placement
type PlaceOrderRequest struct {
	Address       string `json:"address" validate:"required"`
	PaymentMethod string `json:"paymentMethod"`
}

// StatusRequest is used for admin status transitions of orders and bookings
type StatusRequest struct {
	Status string `json:"status"`
}
