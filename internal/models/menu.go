package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a menu category
type Category struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Image     string    `db:"image" json:"image"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CategoryRef is the category shape joined onto menu items
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// MenuItem represents a menu item
type MenuItem struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	CategoryID  uuid.UUID `db:"category_id" json:"categoryId"`
	Image       string    `db:"image" json:"image"`
	IsAvailable bool      `db:"is_available" json:"isAvailable"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	// Not stored directly in the database
	Category *CategoryRef `db:"-" json:"category,omitempty"`
}

// CategoryRequest carries the form fields of a category create/update.
// Nil fields are left untouched on update.
type CategoryRequest struct {
	Name *string
}

// MenuItemRequest carries the form fields of a menu item create/update.
// Values arrive as strings from multipart forms; nil fields are left untouched on update.
type MenuItemRequest struct {
	Name        *string
	Description *string
	Price       *string
	Category    *string
	IsAvailable *string
}
