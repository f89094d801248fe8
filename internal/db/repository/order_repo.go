package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// OrderRepository handles order data access
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, user_id, total_amount, address, status, payment_method, created_at, updated_at`

type pricedLineRow struct {
	MenuItemID uuid.UUID       `db:"menu_item_id"`
	Quantity   int             `db:"quantity"`
	Price      sql.NullFloat64 `db:"price"`
}

type orderLineRow struct {
	OrderID    uuid.UUID `db:"order_id"`
	MenuItemID uuid.UUID `db:"menu_item_id"`
	Quantity   int       `db:"quantity"`
	joinedMenuItem
}

type orderWithUserRow struct {
	models.Order
	UserSummaryID uuid.NullUUID  `db:"u_id"`
	UserName      sql.NullString `db:"u_name"`
	UserEmail     sql.NullString `db:"u_email"`
}

// CreateFromCart snapshots the user's cart into a new order and empties the cart,
// all in one transaction. The cart row is locked so concurrent placements for the
// same user serialize; the loser observes an empty cart and gets ErrEmptyCart.
// A line whose menu item no longer exists yields ErrNotFound.
func (r *OrderRepository) CreateFromCart(ctx context.Context, userID uuid.UUID, address, paymentMethod string) (order *models.Order, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var cartID uuid.UUID
	err = tx.GetContext(ctx, &cartID, `SELECT id FROM carts WHERE user_id = $1 FOR UPDATE`, userID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrEmptyCart
		}
		return nil, fmt.Errorf("failed to lock cart: %w", err)
	}

	var rows []pricedLineRow
	err = tx.SelectContext(
		ctx,
		&rows,
		`SELECT ci.menu_item_id, ci.quantity, mi.price
		 FROM cart_items ci
		 LEFT JOIN menu_items mi ON mi.id = ci.menu_item_id
		 WHERE ci.cart_id = $1
		 ORDER BY ci.created_at ASC, ci.menu_item_id ASC`,
		cartID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart items: %w", err)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]models.PricedLine, 0, len(rows))
	for _, row := range rows {
		if !row.Price.Valid {
			return nil, ErrNotFound
		}
		lines = append(lines, models.PricedLine{
			MenuItemID: row.MenuItemID,
			Quantity:   row.Quantity,
			Price:      row.Price.Float64,
		})
	}

	var createdOrder models.Order
	err = tx.GetContext(
		ctx,
		&createdOrder,
		`INSERT INTO orders (user_id, total_amount, address, status, payment_method)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+orderColumns,
		userID,
		models.TotalAmount(lines),
		address,
		models.OrderStatusPending,
		paymentMethod,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	createdOrder.Items = make([]models.OrderItem, 0, len(lines))
	for i, line := range lines {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO order_items (order_id, line_no, menu_item_id, quantity) VALUES ($1, $2, $3, $4)`,
			createdOrder.ID,
			i,
			line.MenuItemID,
			line.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
		createdOrder.Items = append(createdOrder.Items, models.OrderItem{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
		})
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return nil, fmt.Errorf("failed to empty cart: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `UPDATE carts SET updated_at = $1 WHERE id = $2`, time.Now(), cartID); err != nil {
		return nil, fmt.Errorf("failed to touch cart: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &createdOrder, nil
}

// ListByUser retrieves the user's orders, newest first
func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	orders := []models.Order{}
	if err := r.db.SelectContext(ctx, &orders, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	if err := r.attachItems(ctx, orders, false); err != nil {
		return nil, err
	}

	return orders, nil
}

// ListAll retrieves every order, newest first, with user summary and menu item details
func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.total_amount, o.address, o.status, o.payment_method,
		       o.created_at, o.updated_at,
		       u.id AS u_id, u.name AS u_name, u.email AS u_email
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
	`

	var rows []orderWithUserRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list all orders: %w", err)
	}

	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		order := row.Order
		if row.UserSummaryID.Valid {
			order.User = &models.UserSummary{
				ID:    row.UserSummaryID.UUID,
				Name:  row.UserName.String,
				Email: row.UserEmail.String,
			}
		}
		orders = append(orders, order)
	}

	if err := r.attachItems(ctx, orders, true); err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateStatus sets the status of an order and returns it with its lines
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + orderColumns

	var order models.Order
	err := r.db.GetContext(ctx, &order, query, status, time.Now(), id)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	orders := []models.Order{order}
	if err := r.attachItems(ctx, orders, false); err != nil {
		return nil, err
	}

	return &orders[0], nil
}

// attachItems loads the lines of all orders in one query
func (r *OrderRepository) attachItems(ctx context.Context, orders []models.Order, withMenu bool) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		orders[i].Items = []models.OrderItem{}
	}

	query := `
		SELECT oi.order_id, oi.menu_item_id, oi.quantity,` + joinedMenuItemColumns + `
		FROM order_items oi
		LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY oi.order_id, oi.line_no ASC
	`

	var rows []orderLineRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(uuidStrings(ids))); err != nil {
		return fmt.Errorf("failed to get order items: %w", err)
	}

	byOrder := make(map[uuid.UUID][]models.OrderItem, len(orders))
	for _, row := range rows {
		item := models.OrderItem{MenuItemID: row.MenuItemID, Quantity: row.Quantity}
		if withMenu {
			item.MenuItem = row.toModel()
		}
		byOrder[row.OrderID] = append(byOrder[row.OrderID], item)
	}

	for i := range orders {
		if items, ok := byOrder[orders[i].ID]; ok {
			orders[i].Items = items
		}
	}

	return nil
}
