package handler

import (
	"net/http"

	"github.com/biteflow/restaurant-service/internal/api"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/biteflow/restaurant-service/internal/service"
	"github.com/gorilla/mux"
)

// CartHandler handles the session user's cart
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddToCart merges a quantity into a cart line
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.AddToCartRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.BadRequest(w, "menuId and quantity are required")
		return
	}

	cart, err := h.cartService.AddToCart(r.Context(), userID, req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "Item added to cart", api.Data{"cart": cart})
}

// GetCart returns the cart, empty when nothing was ever added
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), userID)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "", api.Data{"cart": cart})
}

// RemoveFromCart drops the line of a menu item
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.cartService.RemoveFromCart(r.Context(), userID, mux.Vars(r)["menuId"]); err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "Item removed from cart", nil)
}
