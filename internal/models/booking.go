package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a table booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusApproved  BookingStatus = "Approved"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// Valid reports whether s is one of the fixed booking statuses
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking represents a table reservation. Date and Time form the slot key.
type Booking struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	UserID         uuid.UUID     `db:"user_id" json:"userId"`
	Name           string        `db:"name" json:"name"`
	Phone          string        `db:"phone" json:"phone"`
	NumberOfPeople int           `db:"number_of_people" json:"numberOfPeople"`
	Date           string        `db:"date" json:"date"`
	Time           string        `db:"time" json:"time"`
	Note           string        `db:"note" json:"note"`
	Status         BookingStatus `db:"status" json:"status"`
	CreatedAt      time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updatedAt"`

	// Joined for admin listings
	User *UserSummary `db:"-" json:"user,omitempty"`
}

// BookingRequest is used for booking creation
type BookingRequest struct {
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	NumberOfPeople int    `json:"numberOfPeople" validate:"required,min=1"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"time" validate:"required,datetime=15:04"`
	Note           string `json:"note"`
}
