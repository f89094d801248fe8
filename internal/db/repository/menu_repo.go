package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// MenuRepository handles menu item data access
type MenuRepository struct {
	db *sqlx.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *sqlx.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

const menuItemColumns = `id, name, description, price, category_id, image, is_available, created_at, updated_at`

// menuItemRow is a menu item with its category joined when it still exists
type menuItemRow struct {
	models.MenuItem
	JoinedCategoryID   uuid.NullUUID  `db:"joined_category_id"`
	JoinedCategoryName sql.NullString `db:"joined_category_name"`
}

func (row menuItemRow) toModel() models.MenuItem {
	item := row.MenuItem
	if row.JoinedCategoryID.Valid {
		item.Category = &models.CategoryRef{
			ID:   row.JoinedCategoryID.UUID,
			Name: row.JoinedCategoryName.String,
		}
	}
	return item
}

// GetByID retrieves a menu item by ID
func (r *MenuRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`

	var item models.MenuItem
	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	return &item, nil
}

// Exists reports whether a menu item with this ID exists
func (r *MenuRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM menu_items WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check menu item: %w", err)
	}

	return exists, nil
}

// List retrieves all menu items, newest first, with their category
func (r *MenuRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	query := `
		SELECT mi.id, mi.name, mi.description, mi.price, mi.category_id, mi.image,
		       mi.is_available, mi.created_at, mi.updated_at,
		       c.id AS joined_category_id, c.name AS joined_category_name
		FROM menu_items mi
		LEFT JOIN categories c ON c.id = mi.category_id
		ORDER BY mi.created_at DESC
	`

	var rows []menuItemRow
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	items := make([]models.MenuItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toModel())
	}

	return items, nil
}

// Create creates a new menu item
func (r *MenuRepository) Create(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	query := `
		INSERT INTO menu_items (name, description, price, category_id, image, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + menuItemColumns

	var createdItem models.MenuItem
	err := r.db.GetContext(
		ctx,
		&createdItem,
		query,
		item.Name,
		item.Description,
		item.Price,
		item.CategoryID,
		item.Image,
		item.IsAvailable,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	return &createdItem, nil
}

// Update writes all mutable fields of an existing menu item
func (r *MenuRepository) Update(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	query := `
		UPDATE menu_items
		SET name = $1, description = $2, price = $3, category_id = $4,
		    image = $5, is_available = $6, updated_at = $7
		WHERE id = $8
		RETURNING ` + menuItemColumns

	var updatedItem models.MenuItem
	err := r.db.GetContext(
		ctx,
		&updatedItem,
		query,
		item.Name,
		item.Description,
		item.Price,
		item.CategoryID,
		item.Image,
		item.IsAvailable,
		time.Now(),
		item.ID,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	return &updatedItem, nil
}

// Delete deletes a menu item. Cart and order lines keep their dangling reference.
func (r *MenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
