package mocks

import (
	"context"

	"github.com/biteflow/restaurant-service/internal/events"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/stretchr/testify/mock"
)

type ImageStore struct {
	mock.Mock
}

func NewImageStore(t testingT) *ImageStore {
	m := &ImageStore{}
	register(&m.Mock, t)
	return m
}

func (_m *ImageStore) Upload(ctx context.Context, subfolder string, img models.ImageUpload) (*models.StoredImage, error) {
	ret := _m.Called(ctx, subfolder, img)
	stored, _ := ret.Get(0).(*models.StoredImage)
	return stored, ret.Error(1)
}

type CatalogCache struct {
	mock.Mock
}

func NewCatalogCache(t testingT) *CatalogCache {
	m := &CatalogCache{}
	register(&m.Mock, t)
	return m
}

func (_m *CatalogCache) Categories(ctx context.Context) ([]models.Category, int64, bool) {
	ret := _m.Called(ctx)
	categories, _ := ret.Get(0).([]models.Category)
	version, _ := ret.Get(1).(int64)
	return categories, version, ret.Bool(2)
}

func (_m *CatalogCache) SetCategories(ctx context.Context, version int64, categories []models.Category) {
	_m.Called(ctx, version, categories)
}

func (_m *CatalogCache) MenuItems(ctx context.Context) ([]models.MenuItem, int64, bool) {
	ret := _m.Called(ctx)
	items, _ := ret.Get(0).([]models.MenuItem)
	version, _ := ret.Get(1).(int64)
	return items, version, ret.Bool(2)
}

func (_m *CatalogCache) SetMenuItems(ctx context.Context, version int64, items []models.MenuItem) {
	_m.Called(ctx, version, items)
}

func (_m *CatalogCache) Invalidate(ctx context.Context) {
	_m.Called(ctx)
}

type Publisher struct {
	mock.Mock
}

func NewPublisher(t testingT) *Publisher {
	m := &Publisher{}
	register(&m.Mock, t)
	return m
}

func (_m *Publisher) Publish(ctx context.Context, event events.Event) error {
	return _m.Called(ctx, event).Error(0)
}
