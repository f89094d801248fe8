package handler

import (
	"net/http"

	"github.com/biteflow/restaurant-service/internal/api"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/biteflow/restaurant-service/internal/service"
	"github.com/gorilla/mux"
)

// OrderHandler handles order-related requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// PlaceOrder checks out the session user's cart
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.PlaceOrderRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.BadRequest(w, "Delivery address is required")
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), userID, req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusCreated, "Order placed successfully", api.Data{"order": order})
}

// MyOrders lists the session user's orders
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	orders, err := h.orderService.GetUserOrders(r.Context(), userID)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "", api.Data{"orders": orders})
}

// AllOrders lists every order for the admin dashboard
func (h *OrderHandler) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.GetAllOrders(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "", api.Data{"orders": orders})
}

// UpdateStatus moves an order along
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.StatusRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.BadRequest(w, "Invalid status value")
		return
	}

	order, err := h.orderService.UpdateOrderStatus(r.Context(), mux.Vars(r)["orderId"], req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "Order status updated", api.Data{"order": order})
}
