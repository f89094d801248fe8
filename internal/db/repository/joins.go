package repository

import (
	"database/sql"

	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/google/uuid"
)

// joinedMenuItemColumns selects a LEFT JOINed menu_items row aliased as mi
const joinedMenuItemColumns = `
	mi.id AS mi_id, mi.name AS mi_name, mi.description AS mi_description,
	mi.price AS mi_price, mi.category_id AS mi_category_id, mi.image AS mi_image,
	mi.is_available AS mi_is_available, mi.created_at AS mi_created_at,
	mi.updated_at AS mi_updated_at`

// joinedMenuItem holds a menu item that may have been deleted since it was referenced
type joinedMenuItem struct {
	ID          uuid.NullUUID   `db:"mi_id"`
	Name        sql.NullString  `db:"mi_name"`
	Description sql.NullString  `db:"mi_description"`
	Price       sql.NullFloat64 `db:"mi_price"`
	CategoryID  uuid.NullUUID   `db:"mi_category_id"`
	Image       sql.NullString  `db:"mi_image"`
	IsAvailable sql.NullBool    `db:"mi_is_available"`
	CreatedAt   sql.NullTime    `db:"mi_created_at"`
	UpdatedAt   sql.NullTime    `db:"mi_updated_at"`
}

func (j joinedMenuItem) toModel() *models.MenuItem {
	if !j.ID.Valid {
		return nil
	}
	return &models.MenuItem{
		ID:          j.ID.UUID,
		Name:        j.Name.String,
		Description: j.Description.String,
		Price:       j.Price.Float64,
		CategoryID:  j.CategoryID.UUID,
		Image:       j.Image.String,
		IsAvailable: j.IsAvailable.Bool,
		CreatedAt:   j.CreatedAt.Time,
		UpdatedAt:   j.UpdatedAt.Time,
	}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
