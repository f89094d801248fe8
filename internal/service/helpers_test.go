package service_test

import (
	"errors"
	"testing"

	"github.com/biteflow/restaurant-service/internal/apperr"
	"github.com/biteflow/restaurant-service/internal/events"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func requireAppErr(t *testing.T, err error, kind apperr.Kind, message string) {
	t.Helper()

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr), "expected *apperr.Error, got %v", err)
	require.Equal(t, kind, appErr.Kind)
	if message != "" {
		require.Equal(t, message, appErr.Message)
	}
}

func eventOfType(eventType events.Type) interface{} {
	return mock.MatchedBy(func(event events.Event) bool {
		return event.Type == eventType
	})
}

func strPtr(s string) *string {
	return &s
}
