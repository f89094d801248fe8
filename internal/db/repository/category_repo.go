package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CategoryRepository handles category data access
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = `id, name, image, created_at, updated_at`

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	var category models.Category
	err := r.db.GetContext(ctx, &category, query, id)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

// ExistsByName reports whether a category with exactly this name exists
func (r *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)`, name)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}

	return exists, nil
}

// List retrieves all categories, newest first
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY created_at DESC`

	categories := []models.Category{}
	err := r.db.SelectContext(ctx, &categories, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category models.Category) (*models.Category, error) {
	query := `
		INSERT INTO categories (name, image)
		VALUES ($1, $2)
		RETURNING ` + categoryColumns

	var createdCategory models.Category
	err := r.db.GetContext(ctx, &createdCategory, query, category.Name, category.Image)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &createdCategory, nil
}

// Update writes name and image of an existing category
func (r *CategoryRepository) Update(ctx context.Context, category models.Category) (*models.Category, error) {
	query := `
		UPDATE categories
		SET name = $1, image = $2, updated_at = $3
		WHERE id = $4
		RETURNING ` + categoryColumns

	var updatedCategory models.Category
	err := r.db.GetContext(
		ctx,
		&updatedCategory,
		query,
		category.Name,
		category.Image,
		time.Now(),
		category.ID,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &updatedCategory, nil
}

// Delete deletes a category. Menu items keep their dangling reference.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
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
