package service

import (
	"context"
	"errors"
	"strings"

	"github.com/biteflow/restaurant-service/internal/apperr"
	"github.com/biteflow/restaurant-service/internal/db/repository"
	"github.com/biteflow/restaurant-service/internal/events"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/google/uuid"
)

// OrderService handles order placement and fulfilment
type OrderService struct {
	orders    OrderRepository
	publisher events.Publisher
}

// NewOrderService creates a new order service
func NewOrderService(orders OrderRepository, publisher events.Publisher) *OrderService {
	return &OrderService{orders: orders, publisher: publisher}
}

// PlaceOrder turns the user's cart into an order priced at current menu prices and empties the cart
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req models.PlaceOrderRequest) (*models.Order, error) {
	req.Address = strings.TrimSpace(req.Address)
	if err := checkRequest(req, nil, "Delivery address is required"); err != nil {
		return nil, err
	}

	paymentMethod := strings.TrimSpace(req.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = models.DefaultPaymentMethod
	}

	order, err := s.orders.CreateFromCart(ctx, userID, req.Address, paymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmptyCart):
			return nil, apperr.EmptyCart("Your cart is empty")
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.NotFound("Menu item not found")
		}
		return nil, internal("place order", err)
	}

	publish(ctx, s.publisher, events.New(events.TypeOrderNew, order.ID.String(), userID.String(), string(order.Status)))
	return order, nil
}

// GetUserOrders returns the user's orders, newest first
func (s *OrderService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, internal("list user orders", err)
	}
	return orders, nil
}

// GetAllOrders returns every order with user and menu item details, newest first
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, internal("list orders", err)
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to one of the fixed statuses
func (s *OrderService) UpdateOrderStatus(ctx context.Context, rawID string, req models.StatusRequest) (*models.Order, error) {
	status := models.OrderStatus(strings.TrimSpace(req.Status))
	if !status.Valid() {
		return nil, apperr.Validation("Invalid status value")
	}

	id, err := parseID(rawID, apperr.NotFound("Order not found"))
	if err != nil {
		return nil, err
	}

	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, internal("update order status", err)
	}

	publish(ctx, s.publisher, events.New(events.TypeOrderUpdate, order.ID.String(), order.UserID.String(), string(order.Status)))
	return order, nil
}
