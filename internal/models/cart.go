package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Cart is a user's staging area for an order. ID is nil until the first line is added.
type Cart struct {
	ID        *uuid.UUID `db:"id" json:"id,omitempty"`
	UserID    uuid.UUID  `db:"user_id" json:"user"`
	Items     []CartItem `db:"-" json:"items"`
	CreatedAt *time.Time `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}

// CartItem is one line of a cart
type CartItem struct {
	MenuItemID uuid.UUID `db:"menu_item_id" json:"menuItemId"`
	Quantity   int       `db:"quantity" json:"quantity"`

	// Joined at read time, nil when the menu item was deleted
	MenuItem *MenuItem `db:"-" json:"menuItem,omitempty"`
}

// EmptyCart is the shape returned for a user who never added anything
func EmptyCart(userID uuid.UUID) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}}
}

// AddToCartRequest is used for adding a line to the cart.
// Quantity accepts a JSON number or a numeric string.
type AddToCartRequest struct {
	MenuID   string      `json:"menuId"`
	Quantity json.Number `json:"quantity"`
}
