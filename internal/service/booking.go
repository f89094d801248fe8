package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/biteflow/restaurant-service/internal/apperr"
	"github.com/biteflow/restaurant-service/internal/db/repository"
	"github.com/biteflow/restaurant-service/internal/events"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const qrCodeSize = 256

var bookingMessages = map[string]string{
	"NumberOfPeople.min": "Number of people must be at least 1",
	"Date.datetime":      "Date must be in YYYY-MM-DD format",
	"Time.datetime":      "Time must be in HH:MM format",
}

// BookingService handles table reservations
type BookingService struct {
	bookings  BookingRepository
	publisher events.Publisher
	publicURL string
}

// NewBookingService creates a new booking service. publicURL is the front-end origin QR codes link to.
func NewBookingService(bookings BookingRepository, publisher events.Publisher, publicURL string) *BookingService {
	return &BookingService{
		bookings:  bookings,
		publisher: publisher,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// CreateBooking reserves a slot. Only one non-cancelled booking may hold a date and time.
func (s *BookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req models.BookingRequest) (*models.Booking, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)

	if err := checkRequest(req, bookingMessages, "All fields are required"); err != nil {
		return nil, err
	}

	taken, err := s.bookings.SlotTaken(ctx, req.Date, req.Time, uuid.Nil)
	if err != nil {
		return nil, internal("check booking slot", err)
	}
	if taken {
		return nil, apperr.Conflict("This time slot is already booked")
	}

	booking, err := s.bookings.Create(ctx, models.Booking{
		UserID:         userID,
		Name:           req.Name,
		Phone:          req.Phone,
		NumberOfPeople: req.NumberOfPeople,
		Date:           req.Date,
		Time:           req.Time,
		Note:           strings.TrimSpace(req.Note),
		Status:         models.BookingStatusPending,
	})
	if err != nil {
		// Lost a race for the slot
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("This time slot is already booked")
		}
		return nil, internal("create booking", err)
	}

	publish(ctx, s.publisher, events.New(events.TypeBookingNew, booking.ID.String(), userID.String(), string(booking.Status)))
	return booking, nil
}

// GetUserBookings returns the user's bookings, newest first
func (s *BookingService) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, internal("list user bookings", err)
	}
	return bookings, nil
}

// GetAllBookings returns every booking with the booking user's name and email, newest first
func (s *BookingService) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, internal("list bookings", err)
	}
	return bookings, nil
}

// UpdateBookingStatus moves a booking to one of the fixed statuses
func (s *BookingService) UpdateBookingStatus(ctx context.Context, rawID string, req models.StatusRequest) (*models.Booking, error) {
	status := models.BookingStatus(strings.TrimSpace(req.Status))
	if !status.Valid() {
		return nil, apperr.Validation("Invalid status value")
	}

	id, err := parseID(rawID, apperr.NotFound("Booking not found"))
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.NotFound("Booking not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperr.Conflict("This time slot is already booked")
		}
		return nil, internal("update booking status", err)
	}

	publish(ctx, s.publisher, events.New(events.TypeBookingUpdate, booking.ID.String(), booking.UserID.String(), string(booking.Status)))
	return booking, nil
}

// BookingQRCode renders a PNG QR code linking to the booking. Only the owner may fetch it.
func (s *BookingService) BookingQRCode(ctx context.Context, userID uuid.UUID, rawID string) ([]byte, error) {
	id, err := parseID(rawID, apperr.NotFound("Booking not found"))
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Booking not found")
		}
		return nil, internal("get booking", err)
	}
	if booking.UserID != userID {
		return nil, apperr.NotFound("Booking not found")
	}

	png, err := qrcode.Encode(fmt.Sprintf("%s/bookings/%s", s.publicURL, booking.ID), qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, internal("encode booking qr code", err)
	}

	return png, nil
}
