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

// BookingRepository handles table booking data access
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, name, phone, number_of_people, date, time, note, status, created_at, updated_at`

type bookingWithUserRow struct {
	models.Booking
	UserSummaryID uuid.NullUUID  `db:"u_id"`
	UserName      sql.NullString `db:"u_name"`
	UserEmail     sql.NullString `db:"u_email"`
}

// Create inserts a booking. ErrDuplicate means the slot already holds an active booking.
func (r *BookingRepository) Create(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (user_id, name, phone, number_of_people, date, time, note, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bookingColumns

	var createdBooking models.Booking
	err := r.db.GetContext(
		ctx,
		&createdBooking,
		query,
		booking.UserID,
		booking.Name,
		booking.Phone,
		booking.NumberOfPeople,
		booking.Date,
		booking.Time,
		booking.Note,
		booking.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return &createdBooking, nil
}

// SlotTaken reports whether a non-cancelled booking other than exclude holds date and time.
// Pass uuid.Nil to consider every booking.
func (r *BookingRepository) SlotTaken(ctx context.Context, date, slot string, exclude uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE date = $1 AND time = $2 AND status <> $3 AND id <> $4
		)
	`

	var taken bool
	err := r.db.GetContext(ctx, &taken, query, date, slot, models.BookingStatusCancelled, exclude)
	if err != nil {
		return false, fmt.Errorf("failed to check booking slot: %w", err)
	}

	return taken, nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking models.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// ListByUser retrieves the user's bookings, newest first
func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`

	bookings := []models.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}

// ListAll retrieves every booking, newest first, with the booking user's summary
func (r *BookingRepository) ListAll(ctx context.Context) ([]models.Booking, error) {
	query := `
		SELECT b.id, b.user_id, b.name, b.phone, b.number_of_people, b.date, b.time,
		       b.note, b.status, b.created_at, b.updated_at,
		       u.id AS u_id, u.name AS u_name, u.email AS u_email
		FROM bookings b
		LEFT JOIN users u ON u.id = b.user_id
		ORDER BY b.created_at DESC
	`

	var rows []bookingWithUserRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list all bookings: %w", err)
	}

	bookings := make([]models.Booking, 0, len(rows))
	for _, row := range rows {
		booking := row.Booking
		if row.UserSummaryID.Valid {
			booking.User = &models.UserSummary{
				ID:    row.UserSummaryID.UUID,
				Name:  row.UserName.String,
				Email: row.UserEmail.String,
			}
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

// UpdateStatus sets the status of a booking. ErrDuplicate means reactivating it
// would collide with another active booking on the same slot.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + bookingColumns

	var booking models.Booking
	err := r.db.GetContext(ctx, &booking, query, status, time.Now(), id)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	return &booking, nil
}
