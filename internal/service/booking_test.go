package service_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/biteflow/restaurant-service/internal/apperr"
	"github.com/biteflow/restaurant-service/internal/db/repository"
	"github.com/biteflow/restaurant-service/internal/events"
	"github.com/biteflow/restaurant-service/internal/mocks"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/biteflow/restaurant-service/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newBookingService(t *testing.T) (*service.BookingService, *mocks.BookingRepository, *mocks.Publisher) {
	bookings := mocks.NewBookingRepository(t)
	publisher := mocks.NewPublisher(t)
	return service.NewBookingService(bookings, publisher, "https://biteflow.example/"), bookings, publisher
}

func validBooking() models.BookingRequest {
	return models.BookingRequest{
		Name:           "Jane",
		Phone:          "021 555 0101",
		NumberOfPeople: 4,
		Date:           "2026-11-20",
		Time:           "19:30",
		Note:           " window seat ",
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("books a free slot as pending", func(t *testing.T) {
		bookingService, bookings, publisher := newBookingService(t)
		bookings.On("SlotTaken", mock.Anything, "2026-11-20", "19:30", uuid.Nil).Return(false, nil)
		bookings.On("Create", mock.Anything, mock.MatchedBy(func(b models.Booking) bool {
			return b.UserID == userID && b.Status == models.BookingStatusPending && b.Note == "window seat"
		})).Return(&models.Booking{ID: uuid.New(), UserID: userID, Status: models.BookingStatusPending}, nil)
		publisher.On("Publish", mock.Anything, eventOfType(events.TypeBookingNew)).Return(nil)

		booking, err := bookingService.CreateBooking(ctx, userID, validBooking())
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
	})

	t.Run("taken slot", func(t *testing.T) {
		bookingService, bookings, _ := newBookingService(t)
		bookings.On("SlotTaken", mock.Anything, "2026-11-20", "19:30", uuid.Nil).Return(true, nil)

		_, err := bookingService.CreateBooking(ctx, userID, validBooking())
		requireAppErr(t, err, apperr.KindConflict, "This time slot is already booked")
	})

	t.Run("slot taken between check and insert", func(t *testing.T) {
		bookingService, bookings, _ := newBookingService(t)
		bookings.On("SlotTaken", mock.Anything, "2026-11-20", "19:30", uuid.Nil).Return(false, nil)
		bookings.On("Create", mock.Anything, mock.Anything).Return(nil, repository.ErrDuplicate)

		_, err := bookingService.CreateBooking(ctx, userID, validBooking())
		requireAppErr(t, err, apperr.KindConflict, "This time slot is already booked")
	})

	tests := []struct {
		name    string
		mutate  func(req *models.BookingRequest)
		message string
	}{
		{
			name:    "missing phone",
			mutate:  func(req *models.BookingRequest) { req.Phone = " " },
			message: "All fields are required",
		},
		{
			name:    "negative party size",
			mutate:  func(req *models.BookingRequest) { req.NumberOfPeople = -2 },
			message: "Number of people must be at least 1",
		},
		{
			name:    "bad date",
			mutate:  func(req *models.BookingRequest) { req.Date = "20/11/2026" },
			message: "Date must be in YYYY-MM-DD format",
		},
		{
			name:    "bad time",
			mutate:  func(req *models.BookingRequest) { req.Time = "7pm" },
			message: "Time must be in HH:MM format",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			bookingService, _, _ := newBookingService(t)
			req := validBooking()
			testCase.mutate(&req)

			_, err := bookingService.CreateBooking(ctx, userID, req)
			requireAppErr(t, err, apperr.KindValidation, testCase.message)
		})
	}
}

// slotBookings keeps bookings in memory and allows one non-cancelled booking per slot
type slotBookings struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*models.Booking
}

func newSlotBookings() *slotBookings {
	return &slotBookings{bookings: map[uuid.UUID]*models.Booking{}}
}

func (f *slotBookings) takenLocked(date, slot string, exclude uuid.UUID) bool {
	for id, b := range f.bookings {
		if id != exclude && b.Date == date && b.Time == slot && b.Status != models.BookingStatusCancelled {
			return true
		}
	}
	return false
}

func (f *slotBookings) Create(_ context.Context, booking models.Booking) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.takenLocked(booking.Date, booking.Time, uuid.Nil) {
		return nil, repository.ErrDuplicate
	}
	booking.ID = uuid.New()
	f.bookings[booking.ID] = &booking
	created := booking
	return &created, nil
}

func (f *slotBookings) SlotTaken(_ context.Context, date, slot string, exclude uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.takenLocked(date, slot, exclude), nil
}

func (f *slotBookings) GetByID(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *b
	return &found, nil
}

func (f *slotBookings) ListByUser(context.Context, uuid.UUID) ([]models.Booking, error) {
	return nil, nil
}

func (f *slotBookings) ListAll(context.Context) ([]models.Booking, error) {
	return nil, nil
}

func (f *slotBookings) UpdateStatus(_ context.Context, id uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if status != models.BookingStatusCancelled && f.takenLocked(b.Date, b.Time, id) {
		return nil, repository.ErrDuplicate
	}
	b.Status = status
	updated := *b
	return &updated, nil
}

func TestBookingService_CancelledSlotCanBeRebooked(t *testing.T) {
	ctx := context.Background()
	bookingService := service.NewBookingService(newSlotBookings(), events.Nop{}, "https://biteflow.example")
	first, second := uuid.New(), uuid.New()

	original, err := bookingService.CreateBooking(ctx, first, validBooking())
	require.NoError(t, err)

	_, err = bookingService.CreateBooking(ctx, second, validBooking())
	requireAppErr(t, err, apperr.KindConflict, "This time slot is already booked")

	cancelled, err := bookingService.UpdateBookingStatus(ctx, original.ID.String(), models.StatusRequest{Status: "Cancelled"})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)

	rebooked, err := bookingService.CreateBooking(ctx, second, validBooking())
	require.NoError(t, err)
	assert.Equal(t, second, rebooked.UserID)
	assert.NotEqual(t, original.ID, rebooked.ID)

	_, err = bookingService.UpdateBookingStatus(ctx, original.ID.String(), models.StatusRequest{Status: "Approved"})
	requireAppErr(t, err, apperr.KindConflict, "This time slot is already booked")
}

func TestBookingService_UpdateBookingStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("approves and publishes", func(t *testing.T) {
		bookingService, bookings, publisher := newBookingService(t)
		bookings.On("UpdateStatus", mock.Anything, id, models.BookingStatusApproved).
			Return(&models.Booking{ID: id, UserID: uuid.New(), Status: models.BookingStatusApproved}, nil)
		publisher.On("Publish", mock.Anything, eventOfType(events.TypeBookingUpdate)).Return(nil)

		booking, err := bookingService.UpdateBookingStatus(ctx, id.String(), models.StatusRequest{Status: "Approved"})
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusApproved, booking.Status)
	})

	t.Run("reactivation collides with an active booking", func(t *testing.T) {
		bookingService, bookings, _ := newBookingService(t)
		bookings.On("UpdateStatus", mock.Anything, id, models.BookingStatusPending).Return(nil, repository.ErrDuplicate)

		_, err := bookingService.UpdateBookingStatus(ctx, id.String(), models.StatusRequest{Status: "Pending"})
		requireAppErr(t, err, apperr.KindConflict, "This time slot is already booked")
	})

	t.Run("unknown status", func(t *testing.T) {
		bookingService, _, _ := newBookingService(t)

		_, err := bookingService.UpdateBookingStatus(ctx, id.String(), models.StatusRequest{Status: "Confirmed"})
		requireAppErr(t, err, apperr.KindValidation, "Invalid status value")
	})

	t.Run("missing booking", func(t *testing.T) {
		bookingService, bookings, _ := newBookingService(t)
		bookings.On("UpdateStatus", mock.Anything, id, models.BookingStatusCancelled).Return(nil, repository.ErrNotFound)

		_, err := bookingService.UpdateBookingStatus(ctx, id.String(), models.StatusRequest{Status: "Cancelled"})
		requireAppErr(t, err, apperr.KindNotFound, "Booking not found")
	})
}

func TestBookingService_BookingQRCode(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	booking := &models.Booking{ID: uuid.New(), UserID: owner}

	t.Run("owner gets a png", func(t *testing.T) {
		bookingService, bookings, _ := newBookingService(t)
		bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

		png, err := bookingService.BookingQRCode(ctx, owner, booking.ID.String())
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
	})

	t.Run("other users cannot see it", func(t *testing.T) {
		bookingService, bookings, _ := newBookingService(t)
		bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

		_, err := bookingService.BookingQRCode(ctx, uuid.New(), booking.ID.String())
		requireAppErr(t, err, apperr.KindNotFound, "Booking not found")
	})
}
