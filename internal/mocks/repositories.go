package mocks

import (
	"context"

	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	register(&m.Mock, t)
	return m
}

func (_m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ret := _m.Called(ctx, id)
	user, _ := ret.Get(0).(*models.User)
	return user, ret.Error(1)
}

func (_m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ret := _m.Called(ctx, email)
	user, _ := ret.Get(0).(*models.User)
	return user, ret.Error(1)
}

func (_m *UserRepository) Create(ctx context.Context, user models.User) (*models.User, error) {
	ret := _m.Called(ctx, user)
	created, _ := ret.Get(0).(*models.User)
	return created, ret.Error(1)
}

type CategoryRepository struct {
	mock.Mock
}

func NewCategoryRepository(t testingT) *CategoryRepository {
	m := &CategoryRepository{}
	register(&m.Mock, t)
	return m
}

func (_m *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	ret := _m.Called(ctx, id)
	category, _ := ret.Get(0).(*models.Category)
	return category, ret.Error(1)
}

func (_m *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	ret := _m.Called(ctx, name)
	return ret.Bool(0), ret.Error(1)
}

func (_m *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	ret := _m.Called(ctx)
	categories, _ := ret.Get(0).([]models.Category)
	return categories, ret.Error(1)
}

func (_m *CategoryRepository) Create(ctx context.Context, category models.Category) (*models.Category, error) {
	ret := _m.Called(ctx, category)
	created, _ := ret.Get(0).(*models.Category)
	return created, ret.Error(1)
}

func (_m *CategoryRepository) Update(ctx context.Context, category models.Category) (*models.Category, error) {
	ret := _m.Called(ctx, category)
	updated, _ := ret.Get(0).(*models.Category)
	return updated, ret.Error(1)
}

func (_m *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return _m.Called(ctx, id).Error(0)
}

type MenuRepository struct {
	mock.Mock
}

func NewMenuRepository(t testingT) *MenuRepository {
	m := &MenuRepository{}
	register(&m.Mock, t)
	return m
}

func (_m *MenuRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	ret := _m.Called(ctx, id)
	item, _ := ret.Get(0).(*models.MenuItem)
	return item, ret.Error(1)
}

func (_m *MenuRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	ret := _m.Called(ctx, id)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MenuRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	ret := _m.Called(ctx)
	items, _ := ret.Get(0).([]models.MenuItem)
	return items, ret.Error(1)
}

func (_m *MenuRepository) Create(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	ret := _m.Called(ctx, item)
	created, _ := ret.Get(0).(*models.MenuItem)
	return created, ret.Error(1)
}

func (_m *MenuRepository) Update(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	ret := _m.Called(ctx, item)
	updated, _ := ret.Get(0).(*models.MenuItem)
	return updated, ret.Error(1)
}

func (_m *MenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return _m.Called(ctx, id).Error(0)
}

type CartRepository struct {
	mock.Mock
}

func NewCartRepository(t testingT) *CartRepository {
	m := &CartRepository{}
	register(&m.Mock, t)
	return m
}

func (_m *CartRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	ret := _m.Called(ctx, userID)
	cart, _ := ret.Get(0).(*models.Cart)
	return cart, ret.Error(1)
}

func (_m *CartRepository) AddItem(ctx context.Context, userID, menuItemID uuid.UUID, quantity int) error {
	return _m.Called(ctx, userID, menuItemID, quantity).Error(0)
}

func (_m *CartRepository) RemoveItem(ctx context.Context, userID, menuItemID uuid.UUID) error {
	return _m.Called(ctx, userID, menuItemID).Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	register(&m.Mock, t)
	return m
}

func (_m *OrderRepository) CreateFromCart(ctx context.Context, userID uuid.UUID, address, paymentMethod string) (*models.Order, error) {
	ret := _m.Called(ctx, userID, address, paymentMethod)
	order, _ := ret.Get(0).(*models.Order)
	return order, ret.Error(1)
}

func (_m *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	ret := _m.Called(ctx, userID)
	orders, _ := ret.Get(0).([]models.Order)
	return orders, ret.Error(1)
}

func (_m *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	ret := _m.Called(ctx)
	orders, _ := ret.Get(0).([]models.Order)
	return orders, ret.Error(1)
}

func (_m *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	ret := _m.Called(ctx, id, status)
	order, _ := ret.Get(0).(*models.Order)
	return order, ret.Error(1)
}

type BookingRepository struct {
	mock.Mock
}

func NewBookingRepository(t testingT) *BookingRepository {
	m := &BookingRepository{}
	register(&m.Mock, t)
	return m
}

func (_m *BookingRepository) Create(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	ret := _m.Called(ctx, booking)
	created, _ := ret.Get(0).(*models.Booking)
	return created, ret.Error(1)
}

func (_m *BookingRepository) SlotTaken(ctx context.Context, date, slot string, exclude uuid.UUID) (bool, error) {
	ret := _m.Called(ctx, date, slot, exclude)
	return ret.Bool(0), ret.Error(1)
}

func (_m *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	ret := _m.Called(ctx, id)
	booking, _ := ret.Get(0).(*models.Booking)
	return booking, ret.Error(1)
}

func (_m *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	ret := _m.Called(ctx, userID)
	bookings, _ := ret.Get(0).([]models.Booking)
	return bookings, ret.Error(1)
}

func (_m *BookingRepository) ListAll(ctx context.Context) ([]models.Booking, error) {
	ret := _m.Called(ctx)
	bookings, _ := ret.Get(0).([]models.Booking)
	return bookings, ret.Error(1)
}

func (_m *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	ret := _m.Called(ctx, id, status)
	booking, _ := ret.Get(0).(*models.Booking)
	return booking, ret.Error(1)
}
