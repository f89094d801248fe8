package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/biteflow/restaurant-service/internal/apperr"
	"github.com/biteflow/restaurant-service/internal/events"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// checkRequest runs the struct's validate tags and turns the first failure into a client message
func checkRequest(req any, messages map[string]string, fallback string) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		first := validationErr[0]
		if msg, ok := messages[first.Field()+"."+first.Tag()]; ok {
			return apperr.Validation(msg)
		}
		if msg, ok := messages[first.Field()]; ok {
			return apperr.Validation(msg)
		}
	}

	return apperr.Validation(fallback)
}

// parseID maps a malformed id to err so callers choose between NotFound and Validation
func parseID(raw string, err *apperr.Error) (uuid.UUID, error) {
	id, parseErr := uuid.Parse(strings.TrimSpace(raw))
	if parseErr != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// publish is best effort; a failed notification never fails the request
func publish(ctx context.Context, publisher events.Publisher, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Printf("Failed to publish %s event for %s: %v", event.Type, event.ID, err)
	}
}

func internal(action string, err error) *apperr.Error {
	return apperr.Internal(fmt.Errorf("failed to %s: %w", action, err))
}
