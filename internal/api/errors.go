package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/biteflow/restaurant-service/internal/apperr"
)

// Error writes err as a failure envelope. Unknown errors and internal causes
// are logged and reported as "Internal server error".
func Error(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(err)
	}

	if appErr.Kind == apperr.KindInternal {
		log.Printf("Internal error: %v", appErr.Err)
	}

	Fail(w, appErr.Status(), appErr.Message)
}

// BadRequest reports a request the handler could not parse
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, apperr.Validation(message))
}
