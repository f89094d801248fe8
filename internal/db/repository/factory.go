package repository

import (
	"github.com/jmoiron/sqlx"
)

// Factory provides access to all repositories
type Factory struct {
	User     *UserRepository
	Category *CategoryRepository
	Menu     *MenuRepository
	Cart     *CartRepository
	Order    *OrderRepository
	Booking  *BookingRepository
}

// NewFactory creates a new repository factory
func NewFactory(db *sqlx.DB) *Factory {
	return &Factory{
		User:     NewUserRepository(db),
		Category: NewCategoryRepository(db),
		Menu:     NewMenuRepository(db),
		Cart:     NewCartRepository(db),
		Order:    NewOrderRepository(db),
		Booking:  NewBookingRepository(db),
	}
}
