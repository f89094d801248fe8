package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/biteflow/restaurant-service/internal/apperr"
	"github.com/biteflow/restaurant-service/internal/db/repository"
	"github.com/biteflow/restaurant-service/internal/events"
	"github.com/biteflow/restaurant-service/internal/models"
)

const (
	categoryImageFolder = "categories"
	menuImageFolder     = "menu"

	// catalogEventID keys menu.update events; the whole catalog is one stream
	catalogEventID = "catalog"
)

// MenuService handles category and menu item business logic
type MenuService struct {
	categories CategoryRepository
	menu       MenuRepository
	images     ImageStore
	cache      CatalogCache
	publisher  events.Publisher
}

// NewMenuService creates a new menu service
func NewMenuService(categories CategoryRepository, menu MenuRepository, images ImageStore, cache CatalogCache, publisher events.Publisher) *MenuService {
	return &MenuService{
		categories: categories,
		menu:       menu,
		images:     images,
		cache:      cache,
		publisher:  publisher,
	}
}

// ListCategories returns all categories, newest first
func (s *MenuService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, version, ok := s.cache.Categories(ctx)
	if ok {
		return categories, nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, internal("list categories", err)
	}

	s.cache.SetCategories(ctx, version, categories)
	return categories, nil
}

// AddCategory uploads the image and creates a category with a unique trimmed name
func (s *MenuService) AddCategory(ctx context.Context, req models.CategoryRequest, image *models.ImageUpload) (*models.Category, error) {
	name := trimmed(req.Name)
	if name == "" || image == nil {
		return nil, apperr.Validation("Name and image are required")
	}

	exists, err := s.categories.ExistsByName(ctx, name)
	if err != nil {
		return nil, internal("check category name", err)
	}
	if exists {
		return nil, apperr.Conflict("Category already exists")
	}

	stored, err := s.images.Upload(ctx, categoryImageFolder, *image)
	if err != nil {
		return nil, internal("upload category image", err)
	}

	category, err := s.categories.Create(ctx, models.Category{Name: name, Image: stored.URL})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("Category already exists")
		}
		return nil, internal("create category", err)
	}

	s.catalogChanged(ctx)
	return category, nil
}

// UpdateCategory merges the supplied fields onto an existing category.
// A replacement image is uploaded first; if that fails nothing is written.
func (s *MenuService) UpdateCategory(ctx context.Context, rawID string, req models.CategoryRequest, image *models.ImageUpload) (*models.Category, error) {
	category, err := s.findCategory(ctx, rawID)
	if err != nil {
		return nil, err
	}

	if image != nil {
		stored, err := s.images.Upload(ctx, categoryImageFolder, *image)
		if err != nil {
			return nil, internal("upload category image", err)
		}
		category.Image = stored.URL
	}

	if name := trimmed(req.Name); name != "" {
		category.Name = name
	}

	updated, err := s.categories.Update(ctx, *category)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.NotFound("Category not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperr.Conflict("Category already exists")
		}
		return nil, internal("update category", err)
	}

	s.catalogChanged(ctx)
	return updated, nil
}

// DeleteCategory removes a category. Menu items referencing it are left in place.
func (s *MenuService) DeleteCategory(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, apperr.NotFound("Category not found"))
	if err != nil {
		return err
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Category not found")
		}
		return internal("delete category", err)
	}

	s.catalogChanged(ctx)
	return nil
}

// ListMenuItems returns all menu items, newest first, with their category when it still exists
func (s *MenuService) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	items, version, ok := s.cache.MenuItems(ctx)
	if ok {
		return items, nil
	}

	items, err := s.menu.List(ctx)
	if err != nil {
		return nil, internal("list menu items", err)
	}

	s.cache.SetMenuItems(ctx, version, items)
	return items, nil
}

// AddMenuItem validates the form, checks the category exists, uploads the image and creates the item
func (s *MenuService) AddMenuItem(ctx context.Context, req models.MenuItemRequest, image *models.ImageUpload) (*models.MenuItem, error) {
	name := trimmed(req.Name)
	description := trimmed(req.Description)
	rawPrice := trimmed(req.Price)
	rawCategory := trimmed(req.Category)
	if name == "" || description == "" || rawPrice == "" || rawCategory == "" || image == nil {
		return nil, apperr.Validation("All fields are required")
	}

	price, err := parsePrice(rawPrice)
	if err != nil {
		return nil, err
	}

	isAvailable := true
	if req.IsAvailable != nil {
		if isAvailable, err = parseAvailability(*req.IsAvailable); err != nil {
			return nil, err
		}
	}

	category, err := s.findCategory(ctx, rawCategory)
	if err != nil {
		return nil, err
	}

	stored, err := s.images.Upload(ctx, menuImageFolder, *image)
	if err != nil {
		return nil, internal("upload menu image", err)
	}

	item, err := s.menu.Create(ctx, models.MenuItem{
		Name:        name,
		Description: description,
		Price:       price,
		CategoryID:  category.ID,
		Image:       stored.URL,
		IsAvailable: isAvailable,
	})
	if err != nil {
		return nil, internal("create menu item", err)
	}

	s.catalogChanged(ctx)
	return item, nil
}

// UpdateMenuItem merges the supplied fields onto an existing menu item.
// A replacement image is uploaded first; if that fails nothing is written.
func (s *MenuService) UpdateMenuItem(ctx context.Context, rawID string, req models.MenuItemRequest, image *models.ImageUpload) (*models.MenuItem, error) {
	id, err := parseID(rawID, apperr.NotFound("Menu item not found"))
	if err != nil {
		return nil, err
	}

	item, err := s.menu.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Menu item not found")
		}
		return nil, internal("get menu item", err)
	}

	if name := trimmed(req.Name); name != "" {
		item.Name = name
	}
	if description := trimmed(req.Description); description != "" {
		item.Description = description
	}
	if rawPrice := trimmed(req.Price); rawPrice != "" {
		if item.Price, err = parsePrice(rawPrice); err != nil {
			return nil, err
		}
	}
	if rawCategory := trimmed(req.Category); rawCategory != "" {
		category, err := s.findCategory(ctx, rawCategory)
		if err != nil {
			return nil, err
		}
		item.CategoryID = category.ID
	}
	if req.IsAvailable != nil {
		if item.IsAvailable, err = parseAvailability(*req.IsAvailable); err != nil {
			return nil, err
		}
	}

	if image != nil {
		stored, err := s.images.Upload(ctx, menuImageFolder, *image)
		if err != nil {
			return nil, internal("upload menu image", err)
		}
		item.Image = stored.URL
	}

	updated, err := s.menu.Update(ctx, *item)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Menu item not found")
		}
		return nil, internal("update menu item", err)
	}

	s.catalogChanged(ctx)
	return updated, nil
}

// DeleteMenuItem removes a menu item. Cart and order lines keep their reference.
func (s *MenuService) DeleteMenuItem(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, apperr.NotFound("Menu item not found"))
	if err != nil {
		return err
	}

	if err := s.menu.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Menu item not found")
		}
		return internal("delete menu item", err)
	}

	s.catalogChanged(ctx)
	return nil
}

func (s *MenuService) findCategory(ctx context.Context, rawID string) (*models.Category, error) {
	id, err := parseID(rawID, apperr.NotFound("Category not found"))
	if err != nil {
		return nil, err
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Category not found")
		}
		return nil, internal("get category", err)
	}

	return category, nil
}

func (s *MenuService) catalogChanged(ctx context.Context) {
	s.cache.Invalidate(ctx)
	publish(ctx, s.publisher, events.New(events.TypeMenuUpdate, catalogEventID, "", ""))
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, apperr.Validation("Price must be a non-negative number")
	}
	return price, nil
}

func parseAvailability(raw string) (bool, error) {
	available, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, apperr.Validation("isAvailable must be true or false")
	}
	return available, nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
