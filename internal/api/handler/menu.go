package handler

import (
	"net/http"

	"github.com/biteflow/restaurant-service/internal/api"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/biteflow/restaurant-service/internal/service"
	"github.com/gorilla/mux"
)

// MenuHandler handles category and menu item requests
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
	}
}

// ListCategories lists all categories
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.menuService.ListCategories(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "", api.Data{"categories": categories})
}

// AddCategory creates a category from a multipart form with name and image
func (h *MenuHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	image, closeImage, ok := readForm(w, r)
	if !ok {
		return
	}
	defer closeImage()

	category, err := h.menuService.AddCategory(r.Context(), categoryRequest(r), image)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusCreated, "Category added", api.Data{"category": category})
}

// UpdateCategory merges the sent fields onto a category
func (h *MenuHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	image, closeImage, ok := readForm(w, r)
	if !ok {
		return
	}
	defer closeImage()

	category, err := h.menuService.UpdateCategory(r.Context(), mux.Vars(r)["id"], categoryRequest(r), image)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "Category updated", api.Data{"category": category})
}

// DeleteCategory deletes a category
func (h *MenuHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.menuService.DeleteCategory(r.Context(), mux.Vars(r)["id"]); err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "Category deleted", nil)
}

// ListMenuItems lists all menu items
func (h *MenuHandler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.menuService.ListMenuItems(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "", api.Data{"menuItems": items})
}

// AddMenuItem creates a menu item from a multipart form
func (h *MenuHandler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	image, closeImage, ok := readForm(w, r)
	if !ok {
		return
	}
	defer closeImage()

	item, err := h.menuService.AddMenuItem(r.Context(), menuItemRequest(r), image)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusCreated, "Menu item added", api.Data{"menuItem": item})
}

// UpdateMenuItem merges the sent fields onto a menu item
func (h *MenuHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	image, closeImage, ok := readForm(w, r)
	if !ok {
		return
	}
	defer closeImage()

	item, err := h.menuService.UpdateMenuItem(r.Context(), mux.Vars(r)["id"], menuItemRequest(r), image)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "Menu item updated", api.Data{"menuItem": item})
}

// DeleteMenuItem deletes a menu item
func (h *MenuHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.menuService.DeleteMenuItem(r.Context(), mux.Vars(r)["id"]); err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "Menu item deleted", nil)
}

// readForm parses the multipart body and opens the optional image
func readForm(w http.ResponseWriter, r *http.Request) (*models.ImageUpload, func(), bool) {
	if err := parseMultipart(w, r); err != nil {
		api.Error(w, err)
		return nil, nil, false
	}

	image, closeImage, err := formImage(r)
	if err != nil {
		api.Error(w, err)
		return nil, nil, false
	}

	return image, closeImage, true
}

func categoryRequest(r *http.Request) models.CategoryRequest {
	return models.CategoryRequest{Name: formValue(r, "name")}
}

func menuItemRequest(r *http.Request) models.MenuItemRequest {
	return models.MenuItemRequest{
		Name:        formValue(r, "name"),
		Description: formValue(r, "description"),
		Price:       formValue(r, "price"),
		Category:    formValue(r, "category"),
		IsAvailable: formValue(r, "isAvailable"),
	}
}
