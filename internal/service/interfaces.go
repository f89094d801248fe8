package service

import (
	"context"

	"github.com/biteflow/restaurant-service/internal/db/repository"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/google/uuid"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user models.User) (*models.User, error)
}

type CategoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category models.Category) (*models.Category, error)
	Update(ctx context.Context, category models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MenuRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]models.MenuItem, error)
	Create(ctx context.Context, item models.MenuItem) (*models.MenuItem, error)
	Update(ctx context.Context, item models.MenuItem) (*models.MenuItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CartRepository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID, menuItemID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, userID, menuItemID uuid.UUID) error
}

type OrderRepository interface {
	CreateFromCart(ctx context.Context, userID uuid.UUID, address, paymentMethod string) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) (*models.Booking, error)
	SlotTaken(ctx context.Context, date, slot string, exclude uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) (*models.Booking, error)
}

// ImageStore pushes images to remote object storage
type ImageStore interface {
	Upload(ctx context.Context, subfolder string, img models.ImageUpload) (*models.StoredImage, error)
}

// CatalogCache holds the public catalog listings. Implementations report failures as misses.
// A lookup returns the catalog version it saw; a fill must pass that version back so it
// is discarded if Invalidate ran in between.
type CatalogCache interface {
	Categories(ctx context.Context) ([]models.Category, int64, bool)
	SetCategories(ctx context.Context, version int64, categories []models.Category)
	MenuItems(ctx context.Context) ([]models.MenuItem, int64, bool)
	SetMenuItems(ctx context.Context, version int64, items []models.MenuItem)
	Invalidate(ctx context.Context)
}

var (
	_ UserRepository     = (*repository.UserRepository)(nil)
	_ CategoryRepository = (*repository.CategoryRepository)(nil)
	_ MenuRepository     = (*repository.MenuRepository)(nil)
	_ CartRepository     = (*repository.CartRepository)(nil)
	_ OrderRepository    = (*repository.OrderRepository)(nil)
	_ BookingRepository  = (*repository.BookingRepository)(nil)
)
