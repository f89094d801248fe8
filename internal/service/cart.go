package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/biteflow/restaurant-service/internal/apperr"
	"github.com/biteflow/restaurant-service/internal/db/repository"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/google/uuid"
)

// CartService handles the per-user shopping cart
type CartService struct {
	carts CartRepository
	menu  MenuRepository
}

// NewCartService creates a new cart service
func NewCartService(carts CartRepository, menu MenuRepository) *CartService {
	return &CartService{carts: carts, menu: menu}
}

// AddToCart merges quantity into the cart line for the menu item and returns the cart
func (s *CartService) AddToCart(ctx context.Context, userID uuid.UUID, req models.AddToCartRequest) (*models.Cart, error) {
	rawQuantity := strings.TrimSpace(req.Quantity.String())
	if strings.TrimSpace(req.MenuID) == "" || rawQuantity == "" {
		return nil, apperr.Validation("menuId and quantity are required")
	}

	menuID, err := parseID(req.MenuID, apperr.Validation("Invalid menuId"))
	if err != nil {
		return nil, err
	}

	quantity, err := strconv.ParseInt(rawQuantity, 10, 32)
	if err != nil || quantity < 1 {
		return nil, apperr.Validation("Quantity must be a positive number")
	}

	exists, err := s.menu.Exists(ctx, menuID)
	if err != nil {
		return nil, internal("check menu item", err)
	}
	if !exists {
		return nil, apperr.NotFound("Menu item not found")
	}

	if err := s.carts.AddItem(ctx, userID, menuID, int(quantity)); err != nil {
		if errors.Is(err, repository.ErrOutOfRange) {
			return nil, apperr.Validation("Quantity is too large")
		}
		return nil, internal("add cart item", err)
	}

	return s.GetCart(ctx, userID)
}

// GetCart returns the user's cart, or an empty one if nothing was ever added
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.EmptyCart(userID), nil
		}
		return nil, internal("get cart", err)
	}
	return cart, nil
}

// RemoveFromCart deletes the line for a menu item
func (s *CartService) RemoveFromCart(ctx context.Context, userID uuid.UUID, rawMenuID string) error {
	menuID, err := parseID(rawMenuID, apperr.Validation("Invalid menuId"))
	if err != nil {
		return err
	}

	if err := s.carts.RemoveItem(ctx, userID, menuID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return apperr.NotFound("Cart not found")
		case errors.Is(err, repository.ErrItemNotInCart):
			return apperr.NotFound("Item not found in cart")
		}
		return internal("remove cart item", err)
	}

	return nil
}
