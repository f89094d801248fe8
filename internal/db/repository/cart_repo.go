package repository

import (
	"context"
	"fmt"

	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CartRepository handles cart data access
type CartRepository struct {
	db *sqlx.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *sqlx.DB) *CartRepository {
	return &CartRepository{db: db}
}

type cartLineRow struct {
	MenuItemID uuid.UUID `db:"menu_item_id"`
	Quantity   int       `db:"quantity"`
	joinedMenuItem
}

// GetByUser retrieves the user's cart with its lines in insertion order
func (r *CartRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.GetContext(
		ctx,
		&cart,
		`SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	query := `
		SELECT ci.menu_item_id, ci.quantity,` + joinedMenuItemColumns + `
		FROM cart_items ci
		LEFT JOIN menu_items mi ON mi.id = ci.menu_item_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at ASC, ci.menu_item_id ASC
	`

	var rows []cartLineRow
	if err := r.db.SelectContext(ctx, &rows, query, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	cart.Items = make([]models.CartItem, 0, len(rows))
	for _, row := range rows {
		cart.Items = append(cart.Items, models.CartItem{
			MenuItemID: row.MenuItemID,
			Quantity:   row.Quantity,
			MenuItem:   row.toModel(),
		})
	}

	return &cart, nil
}

// AddItem creates the cart on first use and merges quantity into the line for menuItemID.
// ErrOutOfRange means the merged quantity no longer fits the column.
func (r *CartRepository) AddItem(ctx context.Context, userID, menuItemID uuid.UUID, quantity int) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var cartID uuid.UUID
	err = tx.GetContext(
		ctx,
		&cartID,
		`INSERT INTO carts (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		 RETURNING id`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO cart_items (cart_id, menu_item_id, quantity) VALUES ($1, $2, $3)
		 ON CONFLICT (cart_id, menu_item_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		cartID,
		menuItemID,
		quantity,
	)
	if err != nil {
		if isOutOfRange(err) {
			return ErrOutOfRange
		}
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RemoveItem deletes the line for menuItemID. ErrNotFound means the user has no cart,
// ErrItemNotInCart that the cart has no such line.
func (r *CartRepository) RemoveItem(ctx context.Context, userID, menuItemID uuid.UUID) error {
	var cartID uuid.UUID
	err := r.db.GetContext(ctx, &cartID, `SELECT id FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get cart: %w", err)
	}

	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND menu_item_id = $2`,
		cartID,
		menuItemID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrItemNotInCart
	}

	return nil
}
