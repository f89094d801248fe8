package handler

import (
	"net/http"
	"strconv"

	"github.com/biteflow/restaurant-service/internal/api"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/biteflow/restaurant-service/internal/service"
	"github.com/gorilla/mux"
)

// BookingHandler handles table reservations
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBooking reserves a slot for the session user
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.BookingRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.BadRequest(w, "All fields are required")
		return
	}

	booking, err := h.bookingService.CreateBooking(r.Context(), userID, req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusCreated, "Table booked successfully", api.Data{"booking": booking})
}

// MyBookings lists the session user's bookings
func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	bookings, err := h.bookingService.GetUserBookings(r.Context(), userID)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "", api.Data{"bookings": bookings})
}

// AllBookings lists every booking for the admin dashboard
func (h *BookingHandler) AllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingService.GetAllBookings(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "", api.Data{"bookings": bookings})
}

// UpdateStatus approves or cancels a booking
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.StatusRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.BadRequest(w, "Invalid status value")
		return
	}

	booking, err := h.bookingService.UpdateBookingStatus(r.Context(), mux.Vars(r)["bookingId"], req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "Booking status updated", api.Data{"booking": booking})
}

// QRCode serves the booking's QR code as a PNG
func (h *BookingHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	png, err := h.bookingService.BookingQRCode(r.Context(), userID, mux.Vars(r)["bookingId"])
	if err != nil {
		api.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
