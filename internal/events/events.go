package events

import (
	"context"
	"errors"
	"time"
)

// Type names a domain event. The values double as websocket message types.
type Type string

const (
	TypeOrderNew      Type = "order.new"
	TypeOrderUpdate   Type = "order.update"
	TypeBookingNew    Type = "booking.new"
	TypeBookingUpdate Type = "booking.update"
	TypeMenuUpdate    Type = "menu.update"
)

// Event is a change worth telling admin dashboards and downstream consumers about
type Event struct {
	Type   Type      `json:"type"`
	ID     string    `json:"id"`
	UserID string    `json:"userId,omitempty"`
	Status string    `json:"status,omitempty"`
	At     time.Time `json:"at"`
}

// New stamps an event with the current time
func New(eventType Type, id, userID, status string) Event {
	return Event{Type: eventType, ID: id, UserID: userID, Status: status, At: time.Now().UTC()}
}

// Publisher delivers events to a sink
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Multi fans an event out to every publisher and joins their errors
type Multi []Publisher

// Publish delivers the event to every publisher, even after a failure
func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards events
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
